// Package config loads the srectool configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-srec/srec"
)

// Config represents the srectool configuration
type Config struct {
	Output  Output  `yaml:"output"`
	Logging Logging `yaml:"logging"`
}

// Output controls how S-record text is written
type Output struct {
	// MaxPayload is the number of data bytes per record
	MaxPayload int `yaml:"max_payload"`

	// AddressFamily is one of auto, 16, 24 or 32
	AddressFamily string `yaml:"address_family"`

	// LineEnding is one of platform, lf, crlf or cr
	LineEnding string `yaml:"line_ending"`

	// CountRecord enables the S5/S6 record
	CountRecord bool `yaml:"count_record"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Output: Output{
			MaxPayload:    srec.DefaultMaxPayload,
			AddressFamily: "auto",
			LineEnding:    "platform",
			CountRecord:   true,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path. Fields missing
// from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks every field that has a fixed set of values.
func (c *Config) Validate() error {
	if c.Output.MaxPayload < 1 || c.Output.MaxPayload > srec.MaxDataBytes {
		return fmt.Errorf("output.max_payload must be between 1 and %d, got %d",
			srec.MaxDataBytes, c.Output.MaxPayload)
	}
	if _, err := ParseFamily(c.Output.AddressFamily); err != nil {
		return err
	}
	if _, err := ParseLineEnding(c.Output.LineEnding); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

// WriterOptions converts the output section to serializer options.
func (o Output) WriterOptions() ([]srec.WriterOption, error) {
	family, err := ParseFamily(o.AddressFamily)
	if err != nil {
		return nil, err
	}
	ending, err := ParseLineEnding(o.LineEnding)
	if err != nil {
		return nil, err
	}

	opts := []srec.WriterOption{
		srec.WithMaxPayload(o.MaxPayload),
		srec.WithAddressFamily(family),
		srec.WithCountRecord(o.CountRecord),
	}
	// Empty means the platform default already chosen by the writer
	if ending != "" {
		opts = append(opts, srec.WithLineEnding(ending))
	}
	return opts, nil
}

// ParseFamily parses an address family name.
func ParseFamily(s string) (srec.AddressFamily, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return srec.FamilyAuto, nil
	case "16", "s1", "s19":
		return srec.Family16, nil
	case "24", "s2", "s28":
		return srec.Family24, nil
	case "32", "s3", "s37":
		return srec.Family32, nil
	default:
		return srec.FamilyAuto, fmt.Errorf("unknown address family %q (want auto, 16, 24 or 32)", s)
	}
}

// ParseLineEnding parses a line ending name. The platform default is
// returned as the empty string.
func ParseLineEnding(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "platform":
		return "", nil
	case "lf":
		return "\n", nil
	case "crlf":
		return "\r\n", nil
	case "cr":
		return "\r", nil
	default:
		return "", fmt.Errorf("unknown line ending %q (want platform, lf, crlf or cr)", s)
	}
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./srectool.yaml"
	}

	// For Linux/macOS, use ~/.config/srectool/config.yaml
	return filepath.Join(homeDir, ".config", "srectool", "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
