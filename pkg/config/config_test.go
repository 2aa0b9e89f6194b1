package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nextver/nextver/pkg/analyzer/signals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1000, cfg.Versioning.Modulus)
	assert.Equal(t, "VERSION", cfg.Versioning.File)
	assert.Equal(t, "v", cfg.Versioning.TagPrefix)
	assert.Equal(t, float64(250), cfg.Tiers.Patch.Divisor)
	assert.Equal(t, float64(500), cfg.Tiers.Minor.Divisor)
	assert.Equal(t, float64(1000), cfg.Tiers.Major.Divisor)
	assert.Equal(t, 10, cfg.Tiers.Minor.Threshold)
	assert.Equal(t, 20, cfg.Tiers.Major.Threshold)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "human", cfg.Output.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero divisor", func(c *Config) { c.Tiers.Patch.Divisor = 0 }, true},
		{"negative divisor", func(c *Config) { c.Tiers.Minor.Divisor = -10 }, true},
		{"negative coefficient", func(c *Config) { c.Tiers.Major.Coefficient = -1 }, true},
		{"negative threshold", func(c *Config) { c.Tiers.Minor.Threshold = -1 }, true},
		{"unknown bonus signal", func(c *Config) {
			c.Tiers.Patch.Bonuses["no_such_signal"] = 1
		}, true},
		{"negative bonus", func(c *Config) {
			c.Tiers.Minor.Bonuses[signals.NameNewSourceFiles] = -5
		}, true},
		{"modulus too small", func(c *Config) { c.Versioning.Modulus = 1 }, true},
		{"empty version file", func(c *Config) { c.Versioning.File = "" }, true},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }, true},
		{"kv format", func(c *Config) { c.Output.Format = "kv" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nextver.toml")
	content := `[versioning]
modulus = 100
file = "VERSION.txt"

[tiers.major]
threshold = 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Versioning.Modulus)
	assert.Equal(t, "VERSION.txt", cfg.Versioning.File)
	assert.Equal(t, 30, cfg.Tiers.Major.Threshold)
	// Untouched sections keep their defaults.
	assert.Equal(t, float64(250), cfg.Tiers.Patch.Divisor)
	assert.Equal(t, "v", cfg.Versioning.TagPrefix)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nextver.yaml")
	content := `versioning:
  modulus: 500
output:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Versioning.Modulus)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestFindConfig(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	assert.Empty(t, FindConfig())

	require.NoError(t, os.WriteFile("nextver.toml", []byte("[output]\nformat = \"kv\"\n"), 0o644))
	assert.Equal(t, "nextver.toml", FindConfig())

	cfg := LoadOrDefault()
	assert.Equal(t, "kv", cfg.Output.Format)
}
