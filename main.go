package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonxml/internal/config"
	"github.com/mcncl/jsonxml/internal/converter"
	"github.com/mcncl/jsonxml/internal/errors"
	"github.com/mcncl/jsonxml/internal/formatter"
	"github.com/mcncl/jsonxml/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	To          string `help:"Conversion direction: xml (JSON in, XML out), json (XML in, JSON out) or auto-detect from the input." short:"t" enum:"auto,xml,json" default:"auto"`
	Root        string `help:"Name of the synthetic root element for JSON to XML." short:"r" default:"root"`
	Indent      int    `help:"Indentation width for the output." default:"4"`
	Config      string `help:"Path to a config file. If not specified, searches for .jsonxml.yml in the current directory and parents." short:"c" type:"path"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

// Flag defaults, used to tell "flag left alone" from "flag set to the
// default value's twin in the config file"
const (
	defaultRoot   = "root"
	defaultIndent = 4
)

// Conversion directions
const (
	directionToXML  = "xml"
	directionToJSON = "json"
)

func main() {
	// Parse CLI arguments with Kong
	cliParser := kong.Must(&CLI,
		kong.Name("jsonxml"),
		kong.Description("A tool to convert between JSON and XML"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	// Parse the command line arguments
	_, err := cliParser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("jsonxml version %s\n", Version)
		return
	}

	cfg, err := resolveConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = run(&Context{Debug: CLI.Debug || cfg.Dev.Debug, Config: cfg})
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonxml --help\n")

		os.Exit(1)
	}
}

// resolveConfig loads the config file (explicit path, discovered, or
// defaults) and applies CLI flag overrides on top.
func resolveConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}

	var cfg *config.Config
	if path == "" {
		cfg = config.NewConfig()
	} else {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, errors.NewInputError(fmt.Sprintf("could not load config: %v", err), err)
		}
		cfg = loaded
	}

	// Flags beat the config file, but only when actually set
	if CLI.Root != defaultRoot {
		cfg.Conversion.RootElement = CLI.Root
	}
	if CLI.Indent != defaultIndent {
		cfg.Output.Indent = CLI.Indent
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewInputError(err.Error(), err)
	}

	return cfg, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	// 1. Read the raw input text
	input, err := readInput()
	if err != nil {
		// Error is already wrapped by readInput
		return err
	}

	// 2. Work out which way we are converting
	direction, err := resolveDirection(CLI.To, input)
	if err != nil {
		return err
	}

	if ctx.Debug {
		fmt.Fprintf(os.Stderr, "jsonxml: converting %d bytes to %s\n", len(input), direction)
	}

	conv := converter.NewConverterWithConfig(ctx.Config)
	form := formatter.NewFormatterWithConfig(ctx.Config)

	// 3. Parse, convert, render
	var result string
	switch direction {
	case directionToXML:
		value, err := parser.ParseJSONString(input)
		if err != nil {
			return err
		}
		result, err = form.FormatXML(conv.JSONToXML(value))
		if err != nil {
			return err
		}
	case directionToJSON:
		node, err := parser.ParseXMLString(input)
		if err != nil {
			return err
		}
		result, err = form.FormatJSON(conv.XMLToJSON(node))
		if err != nil {
			return err
		}
	}

	// 4. Output the result
	return writeOutput(result)
}

// resolveDirection decides the conversion direction, sniffing the first
// non-space byte of the input when the flag is set to auto.
func resolveDirection(to, input string) (string, error) {
	switch to {
	case directionToXML, directionToJSON:
		return to, nil
	}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	switch trimmed[0] {
	case '<':
		return directionToJSON, nil
	case '{', '[':
		return directionToXML, nil
	default:
		return "", errors.NewInputError(
			fmt.Sprintf("cannot detect format of input starting with %q", trimmed[0]),
			errors.ErrUnknownFormat,
		)
	}
}

// readInput reads raw text from file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		// Read from file
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewInputError(
					fmt.Sprintf("file '%s' not found", CLI.Input),
					errors.ErrFileNotFound,
				)
			}
			return "", errors.NewInputError(
				fmt.Sprintf("failed to read file '%s'", CLI.Input),
				err,
			)
		}
		if len(data) == 0 {
			return "", errors.NewInputError(
				fmt.Sprintf("input file '%s' is empty", CLI.Input),
				errors.ErrFileEmpty,
			)
		}
		return string(data), nil
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			// Interactive mode
			return readInteractiveInput()
		}
		// No data provided on stdin and not in interactive mode
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}

	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return string(data), nil
}

// writeOutput writes the converted document to file or stdout
func writeOutput(content string) error {
	if CLI.Output != "" {
		// Write to file
		err := os.WriteFile(CLI.Output, []byte(content+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Converted output written to %s\n", CLI.Output)
		return nil
	}

	// Write to stdout
	_, err := fmt.Println(content)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste a
// document and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "jsonxml Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON or XML below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			builder.WriteString(line)
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
		builder.WriteString(line)
	}

	input := builder.String()
	if strings.TrimSpace(input) == "" {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing input...")
	return input, nil
}
