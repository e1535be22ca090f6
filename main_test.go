package main

import (
	"os"
	"testing"

	"github.com/mcncl/jsonxml/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_JSONToXML(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	// Test data
	jsonData := `{"name": "John", "age": 30, "active": true}`

	// Create temp input file
	tmpInput, err := os.CreateTemp("", "test_input_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpInput.Name()) }()

	_, err = tmpInput.WriteString(jsonData)
	require.NoError(t, err)
	_ = tmpInput.Close()

	// Create temp output file
	tmpOutput, err := os.CreateTemp("", "test_output_*.xml")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpOutput.Name()) }()
	_ = tmpOutput.Close()

	// Set CLI options
	CLI.Input = tmpInput.Name()
	CLI.Output = tmpOutput.Name()
	CLI.To = "auto"

	ctx := &Context{Debug: false, Config: config.NewConfig()}
	err = run(ctx)
	require.NoError(t, err)

	// Verify output file was created and contains expected content
	outputContent, err := os.ReadFile(tmpOutput.Name())
	require.NoError(t, err)

	outputStr := string(outputContent)
	assert.Contains(t, outputStr, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, outputStr, "<name>John</name>")
	assert.Contains(t, outputStr, "<age>30</age>")
	assert.Contains(t, outputStr, "<active>true</active>")
}

func TestRun_XMLToJSON(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	xmlData := `<person><name>John</name><age>30</age></person>`

	tmpInput, err := os.CreateTemp("", "test_input_*.xml")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpInput.Name()) }()

	_, err = tmpInput.WriteString(xmlData)
	require.NoError(t, err)
	_ = tmpInput.Close()

	tmpOutput, err := os.CreateTemp("", "test_output_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpOutput.Name()) }()
	_ = tmpOutput.Close()

	CLI.Input = tmpInput.Name()
	CLI.Output = tmpOutput.Name()
	CLI.To = "auto"

	ctx := &Context{Debug: false, Config: config.NewConfig()}
	err = run(ctx)
	require.NoError(t, err)

	outputContent, err := os.ReadFile(tmpOutput.Name())
	require.NoError(t, err)

	outputStr := string(outputContent)
	assert.Contains(t, outputStr, `"person"`)
	assert.Contains(t, outputStr, `"name": "John"`)
	assert.Contains(t, outputStr, `"age": "30"`)
}

func TestResolveDirection(t *testing.T) {
	tests := []struct {
		name     string
		to       string
		input    string
		expected string
		wantErr  bool
	}{
		{"explicit xml", "xml", "<anything/>", "xml", false},
		{"explicit json", "json", `{"a":1}`, "json", false},
		{"auto detects xml input", "auto", "  <doc/>", "json", false},
		{"auto detects json object", "auto", ` {"a":1}`, "xml", false},
		{"auto detects json array", "auto", `[1,2]`, "xml", false},
		{"auto fails on plain text", "auto", "hello", "", true},
		{"auto fails on empty", "auto", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveDirection(tt.to, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReadInput_FromFile(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	tmpFile, err := os.CreateTemp("", "test_read_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	_, err = tmpFile.WriteString(`{"hello": "world"}`)
	require.NoError(t, err)
	_ = tmpFile.Close()

	CLI.Input = tmpFile.Name()

	input, err := readInput()
	require.NoError(t, err)
	assert.Equal(t, `{"hello": "world"}`, input)
}

func TestReadInput_FromStdin(t *testing.T) {
	// Save original CLI state and stdin
	originalCLI := CLI
	originalStdin := os.Stdin
	defer func() {
		CLI = originalCLI
		os.Stdin = originalStdin
	}()

	// Clear input file to force stdin reading
	CLI.Input = ""

	// Create a pipe to simulate stdin
	xmlData := `<list><item>a</item></list>`
	r, w, err := os.Pipe()
	require.NoError(t, err)

	// Write test data to pipe
	go func() {
		defer func() { _ = w.Close() }()
		_, _ = w.WriteString(xmlData)
	}()

	// Replace stdin
	os.Stdin = r
	defer func() { _ = r.Close() }()

	input, err := readInput()
	require.NoError(t, err)
	assert.Equal(t, xmlData, input)
}

func TestReadInput_EmptyFile(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	tmpFile, err := os.CreateTemp("", "test_empty_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()
	_ = tmpFile.Close()

	CLI.Input = tmpFile.Name()

	_, err = readInput()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestReadInput_NonExistentFile(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Input = "/non/existent/file.json"

	_, err := readInput()
	assert.Error(t, err)
}

func TestRun_InvalidJSONInput(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	tmpFile, err := os.CreateTemp("", "test_invalid_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	_, err = tmpFile.WriteString(`{"invalid": json}`)
	require.NoError(t, err)
	_ = tmpFile.Close()

	CLI.Input = tmpFile.Name()
	CLI.Output = ""
	CLI.To = "auto"

	ctx := &Context{Debug: false, Config: config.NewConfig()}
	err = run(ctx)
	assert.Error(t, err)
}

func TestWriteOutput_ToFile(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	tmpFile, err := os.CreateTemp("", "test_write_*.xml")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpFile.Name()) }()
	_ = tmpFile.Close()

	CLI.Output = tmpFile.Name()

	testContent := "<root>\n    <a>1</a>\n</root>"
	err = writeOutput(testContent)
	require.NoError(t, err)

	// Verify content was written, with a trailing newline
	content, err := os.ReadFile(tmpFile.Name())
	require.NoError(t, err)
	assert.Equal(t, testContent+"\n", string(content))
}

func TestWriteOutput_ToStdout(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	// Clear output file to force stdout
	CLI.Output = ""

	err := writeOutput(`{"a": "1"}`)
	assert.NoError(t, err)
}

func TestWriteOutput_FileError(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	// Try to write to a directory that doesn't exist
	CLI.Output = "/non/existent/dir/output.xml"

	err := writeOutput("test content")
	assert.Error(t, err)
}

func TestResolveConfig_FlagOverrides(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Config = ""
	CLI.Root = "document"
	CLI.Indent = 2

	cfg, err := resolveConfig()
	require.NoError(t, err)
	assert.Equal(t, "document", cfg.Conversion.RootElement)
	assert.Equal(t, 2, cfg.Output.Indent)
}

func TestResolveConfig_InvalidRootFlag(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Config = ""
	CLI.Root = "not a name"
	CLI.Indent = defaultIndent

	_, err := resolveConfig()
	assert.Error(t, err)
}

// Integration test that tests the full pipeline both ways
func TestFullPipeline_RoundTrip(t *testing.T) {
	// Save original CLI state
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	jsonData := `{
		"user": {
			"name": "Integration Test User",
			"tags": ["a", "b"],
			"settings": {
				"theme": "dark",
				"notifications": true
			}
		}
	}`

	tmpInput, err := os.CreateTemp("", "roundtrip_input_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpInput.Name()) }()

	_, err = tmpInput.WriteString(jsonData)
	require.NoError(t, err)
	_ = tmpInput.Close()

	tmpXML, err := os.CreateTemp("", "roundtrip_mid_*.xml")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpXML.Name()) }()
	_ = tmpXML.Close()

	tmpJSON, err := os.CreateTemp("", "roundtrip_output_*.json")
	require.NoError(t, err)
	defer func() { _ = os.Remove(tmpJSON.Name()) }()
	_ = tmpJSON.Close()

	// First leg: JSON to XML
	CLI.Input = tmpInput.Name()
	CLI.Output = tmpXML.Name()
	CLI.To = "auto"

	ctx := &Context{Debug: false, Config: config.NewConfig()}
	require.NoError(t, run(ctx))

	xmlContent, err := os.ReadFile(tmpXML.Name())
	require.NoError(t, err)
	assert.Contains(t, string(xmlContent), "<theme>dark</theme>")
	assert.Contains(t, string(xmlContent), "<item>a</item>")

	// Second leg: XML back to JSON
	CLI.Input = tmpXML.Name()
	CLI.Output = tmpJSON.Name()

	require.NoError(t, run(ctx))

	jsonContent, err := os.ReadFile(tmpJSON.Name())
	require.NoError(t, err)

	out := string(jsonContent)
	assert.Contains(t, out, `"root"`)
	assert.Contains(t, out, `"name": "Integration Test User"`)
	// Scalars come back as strings; the boolean lost its type
	assert.Contains(t, out, `"notifications": "true"`)
	// The two-element array survived as an array
	assert.Contains(t, out, `"item": [`)
}
