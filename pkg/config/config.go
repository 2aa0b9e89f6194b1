// Package config holds the resolved configuration for a decision run. The
// Config value is built once at startup and passed into every stage; no
// stage reads the process environment directly.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/nextver/nextver/pkg/analyzer/signals"
)

// ErrInvalid is wrapped by all configuration validation errors.
var ErrInvalid = errors.New("invalid configuration")

// TierConfig is the scoring configuration for one tier.
type TierConfig struct {
	// Coefficient scales the line-count-derived base delta.
	Coefficient float64 `koanf:"coefficient" json:"coefficient"`
	// Divisor controls how fast changed lines grow the scale factor.
	// Must be positive.
	Divisor float64 `koanf:"divisor" json:"divisor"`
	// Threshold is the minimum total bonus required to select this tier.
	// Ignored for patch, which is the catch-all.
	Threshold int `koanf:"threshold" json:"threshold"`
	// Bonuses maps signal names to point values.
	Bonuses map[string]float64 `koanf:"bonuses" json:"bonuses"`
}

// TiersConfig holds the three tier configurations.
type TiersConfig struct {
	Patch TierConfig `koanf:"patch" json:"patch"`
	Minor TierConfig `koanf:"minor" json:"minor"`
	Major TierConfig `koanf:"major" json:"major"`
}

// VersioningConfig controls version arithmetic and the version file.
type VersioningConfig struct {
	// Modulus is the component ceiling for carry propagation. Must be >= 2.
	Modulus int `koanf:"modulus" json:"modulus"`
	// File is the version file name, relative to the repository root.
	File string `koanf:"file" json:"file"`
	// TagPrefix is prepended to the version when tagging.
	TagPrefix string `koanf:"tag_prefix" json:"tag_prefix"`
}

// CacheConfig controls the signal cache.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" json:"enabled"`
	Dir     string `koanf:"dir" json:"dir"`
}

// OutputConfig controls output defaults.
type OutputConfig struct {
	Format string `koanf:"format" json:"format"` // human, kv, json, suggest
	Color  bool   `koanf:"color" json:"color"`
}

// Config holds all configuration options for nextver.
type Config struct {
	Tiers      TiersConfig      `koanf:"tiers" json:"tiers"`
	Rules      signals.Rules    `koanf:"rules" json:"rules"`
	Markers    signals.Markers  `koanf:"markers" json:"markers"`
	Versioning VersioningConfig `koanf:"versioning" json:"versioning"`
	Cache      CacheConfig      `koanf:"cache" json:"cache"`
	Output     OutputConfig     `koanf:"output" json:"output"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Tiers: TiersConfig{
			Patch: TierConfig{
				Coefficient: 1,
				Divisor:     250,
				Threshold:   0,
				Bonuses: map[string]float64{
					signals.NameCLIChanged:       2,
					signals.NameManualCLIChanged: 2,
					signals.NameNewTestFiles:     1,
					signals.NameNewDocFiles:      1,
					signals.NameSecurityKeywords: 2,
				},
			},
			Minor: TierConfig{
				Coefficient: 1,
				Divisor:     500,
				Threshold:   10,
				Bonuses: map[string]float64{
					signals.NameNewSourceFiles:    5,
					signals.NameAddedShortOptions: 3,
					signals.NameAddedLongOptions:  3,
					signals.NameCLIChanged:        4,
					signals.NameManualCLIChanged:  4,
					signals.NameSecurityKeywords:  5,
				},
			},
			Major: TierConfig{
				Coefficient: 1,
				Divisor:     1000,
				Threshold:   20,
				Bonuses: map[string]float64{
					signals.NameBreakingCLIChanged:  10,
					signals.NameAPIBreaking:         10,
					signals.NameRemovedShortOptions: 5,
					signals.NameRemovedLongOptions:  5,
					signals.NameSecurityKeywords:    2,
				},
			},
		},
		Rules:   signals.DefaultRules(),
		Markers: signals.DefaultMarkers(),
		Versioning: VersioningConfig{
			Modulus:   1000,
			File:      "VERSION",
			TagPrefix: "v",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".nextver/cache",
		},
		Output: OutputConfig{
			Format: "human",
			Color:  true,
		},
	}
}

// Load loads configuration from a file, merged over defaults.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return cfg, err
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FindConfig returns the first config file found in the standard
// locations, or "" when none exists.
func FindConfig() string {
	configNames := []string{
		"nextver.toml",
		"nextver.yaml",
		"nextver.yml",
		"nextver.json",
		".nextver.toml",
		".nextver.yaml",
		".nextver.yml",
		".nextver.json",
	}

	searchDirs := []string{".", ".nextver"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// LoadOrDefault tries to load config from standard locations or returns
// defaults.
func LoadOrDefault() Config {
	if path := FindConfig(); path != "" {
		if cfg, err := Load(path); err == nil {
			return cfg
		}
	}
	return DefaultConfig()
}

// Validate checks numeric constraints and bonus table keys. All returned
// errors wrap ErrInvalid.
func (c Config) Validate() error {
	tiers := []struct {
		name string
		tc   TierConfig
	}{
		{"patch", c.Tiers.Patch},
		{"minor", c.Tiers.Minor},
		{"major", c.Tiers.Major},
	}

	known := make(map[string]bool)
	for _, name := range signals.Names() {
		known[name] = true
	}

	for _, t := range tiers {
		if t.tc.Divisor <= 0 {
			return fmt.Errorf("%w: %s divisor must be positive (got %g)", ErrInvalid, t.name, t.tc.Divisor)
		}
		if t.tc.Coefficient < 0 {
			return fmt.Errorf("%w: %s coefficient must not be negative (got %g)", ErrInvalid, t.name, t.tc.Coefficient)
		}
		if t.tc.Threshold < 0 {
			return fmt.Errorf("%w: %s threshold must not be negative (got %d)", ErrInvalid, t.name, t.tc.Threshold)
		}
		for name, points := range t.tc.Bonuses {
			if !known[name] {
				return fmt.Errorf("%w: unknown bonus signal %q in %s tier", ErrInvalid, name, t.name)
			}
			if points < 0 {
				return fmt.Errorf("%w: bonus %q in %s tier must not be negative (got %g)", ErrInvalid, name, t.name, points)
			}
		}
	}

	if c.Versioning.Modulus < 2 {
		return fmt.Errorf("%w: modulus must be at least 2 (got %d)", ErrInvalid, c.Versioning.Modulus)
	}
	if c.Versioning.File == "" {
		return fmt.Errorf("%w: version file name must not be empty", ErrInvalid)
	}

	switch c.Output.Format {
	case "human", "kv", "json", "suggest":
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalid, c.Output.Format)
	}

	return nil
}
