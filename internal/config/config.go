package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Valid element_case values. "none" leaves key casing untouched.
var validElementCases = map[string]bool{
	"none":   true,
	"snake":  true,
	"camel":  true,
	"pascal": true,
	"kebab":  true,
}

var elementNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Config represents the complete configuration for jsonxml
type Config struct {
	Conversion ConversionConfig `yaml:"conversion"`
	Naming     NamingConfig     `yaml:"naming"`
	Output     OutputConfig     `yaml:"output"`
	Dev        DevConfig        `yaml:"dev"`
}

// ConversionConfig controls the JSON/XML mapping convention
type ConversionConfig struct {
	// RootElement names the synthetic element wrapping a JSON document.
	RootElement string `yaml:"root_element"`
	// ItemElement names the repeated element used for JSON array items.
	ItemElement string `yaml:"item_element"`
	// AttributePrefix is prepended to attribute names on the XML to JSON path.
	AttributePrefix string `yaml:"attribute_prefix"`
	// NullAttribute marks elements produced from JSON null.
	NullAttribute string `yaml:"null_attribute"`
}

// NamingConfig controls element naming on the JSON to XML path
type NamingConfig struct {
	// ElementCase applies a case transform to object keys before
	// sanitization: none, snake, camel, pascal or kebab.
	ElementCase string `yaml:"element_case"`
	// KeyMappings maps exact JSON keys to element names, bypassing the
	// case transform (the result is still sanitized).
	KeyMappings map[string]string `yaml:"key_mappings"`
}

// OutputConfig controls rendering options
type OutputConfig struct {
	// Indent is the indentation width in spaces for both output formats.
	Indent int `yaml:"indent"`
	// XMLDeclaration controls whether rendered XML starts with <?xml ...?>.
	XMLDeclaration bool `yaml:"xml_declaration"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug   bool `yaml:"debug"`
	Verbose bool `yaml:"verbose"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Conversion: ConversionConfig{
			RootElement:     "root",
			ItemElement:     "item",
			AttributePrefix: "@",
			NullAttribute:   "null",
		},
		Naming: NamingConfig{
			ElementCase: "none",
			KeyMappings: make(map[string]string),
		},
		Output: OutputConfig{
			Indent:         4,
			XMLDeclaration: true,
		},
		Dev: DevConfig{
			Debug:   false,
			Verbose: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonxml.yml", ".jsonxml.yaml", "jsonxml.yml", "jsonxml.yaml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that the configuration describes a usable mapping
func (c *Config) Validate() error {
	if !elementNameRegex.MatchString(c.Conversion.RootElement) {
		return fmt.Errorf("root_element %q is not a valid element name", c.Conversion.RootElement)
	}
	if !elementNameRegex.MatchString(c.Conversion.ItemElement) {
		return fmt.Errorf("item_element %q is not a valid element name", c.Conversion.ItemElement)
	}
	if !elementNameRegex.MatchString(c.Conversion.NullAttribute) {
		return fmt.Errorf("null_attribute %q is not a valid attribute name", c.Conversion.NullAttribute)
	}
	if c.Conversion.AttributePrefix == "" {
		return fmt.Errorf("attribute_prefix must not be empty")
	}
	if !validElementCases[c.Naming.ElementCase] {
		return fmt.Errorf("element_case %q is not one of none, snake, camel, pascal, kebab", c.Naming.ElementCase)
	}
	if c.Output.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", c.Output.Indent)
	}
	return nil
}
