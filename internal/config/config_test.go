package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-srec/srec"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, srec.DefaultMaxPayload, config.Output.MaxPayload)
	assert.Equal(t, "auto", config.Output.AddressFamily)
	assert.Equal(t, "platform", config.Output.LineEnding)
	assert.True(t, config.Output.CountRecord)
	assert.Equal(t, "info", config.Logging.Level)
	assert.NoError(t, config.Validate())
}

func TestSaveAndLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", "config.yaml")

	original := DefaultConfig()
	original.Output.MaxPayload = 32
	original.Output.AddressFamily = "32"
	original.Output.LineEnding = "crlf"
	original.Output.CountRecord = false
	original.Logging.Level = "debug"

	require.NoError(t, SaveConfig(original, configPath))
	assert.True(t, ConfigExists(configPath))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadConfigKeepsDefaultsForMissingFields(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("output:\n  max_payload: 8\n"), 0600))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.Output.MaxPayload)
	assert.Equal(t, "auto", loaded.Output.AddressFamily)
	assert.True(t, loaded.Output.CountRecord)
	assert.Equal(t, "info", loaded.Logging.Level)
}

func TestLoadConfigErrors(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(tempDir, "nope.yaml"))
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(tempDir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output: [unterminated"), 0600))
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "failed to parse config file")
	})

	t.Run("invalid value", func(t *testing.T) {
		path := filepath.Join(tempDir, "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output:\n  max_payload: 300\n"), 0600))
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "max_payload")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"zero payload", func(c *Config) { c.Output.MaxPayload = 0 }, "max_payload"},
		{"payload too large", func(c *Config) { c.Output.MaxPayload = srec.MaxDataBytes + 1 }, "max_payload"},
		{"bad family", func(c *Config) { c.Output.AddressFamily = "64" }, "address family"},
		{"bad line ending", func(c *Config) { c.Output.LineEnding = "nl" }, "line ending"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"max payload allowed", func(c *Config) { c.Output.MaxPayload = srec.MaxDataBytes }, ""},
		{"upper case level", func(c *Config) { c.Logging.Level = "DEBUG" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			err := config.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestParseFamily(t *testing.T) {
	tests := []struct {
		in   string
		want srec.AddressFamily
	}{
		{"", srec.FamilyAuto},
		{"auto", srec.FamilyAuto},
		{"16", srec.Family16},
		{"S19", srec.Family16},
		{"24", srec.Family24},
		{"s28", srec.Family24},
		{" 32 ", srec.Family32},
		{"S3", srec.Family32},
	}
	for _, tt := range tests {
		got, err := ParseFamily(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFamily("8")
	assert.Error(t, err)
}

func TestWriterOptions(t *testing.T) {
	output := Output{
		MaxPayload:    4,
		AddressFamily: "24",
		LineEnding:    "cr",
		CountRecord:   false,
	}
	opts, err := output.WriterOptions()
	require.NoError(t, err)

	got := srec.NewWriter(nil, opts...).Config()
	assert.Equal(t, srec.WriterConfig{
		MaxPayload:  4,
		Family:      srec.Family24,
		LineEnding:  "\r",
		CountRecord: false,
	}, got)

	// platform keeps the writer default
	opts, err = DefaultConfig().Output.WriterOptions()
	require.NoError(t, err)
	def := srec.NewWriter(nil).Config()
	assert.Equal(t, def, srec.NewWriter(nil, opts...).Config())

	_, err = Output{AddressFamily: "bogus"}.WriterOptions()
	assert.Error(t, err)
}
