package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/go-git/go-git/v5"
	"github.com/nextver/nextver/internal/vcs"
	"github.com/nextver/nextver/pkg/config"
	"github.com/nextver/nextver/pkg/semver"
	"github.com/urfave/cli/v2"
)

// Failure exit codes. Decision status codes live in the 10+ range and
// never overlap these.
const (
	exitFailure   = 1
	exitInput     = 2
	exitRepoError = 3
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// loadConfig resolves the configuration: explicit file if given, standard
// locations otherwise, then flag overrides and validation.
func loadConfig(c *cli.Context) (config.Config, error) {
	var cfg config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrDefault()
	}

	applyOverrides(c, &cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyOverrides copies set numeric flags over the loaded configuration.
func applyOverrides(c *cli.Context, cfg *config.Config) {
	if c.IsSet("modulus") {
		cfg.Versioning.Modulus = c.Int("modulus")
	}
	if c.IsSet("major-threshold") {
		cfg.Tiers.Major.Threshold = c.Int("major-threshold")
	}
	if c.IsSet("minor-threshold") {
		cfg.Tiers.Minor.Threshold = c.Int("minor-threshold")
	}
	if c.IsSet("format") {
		cfg.Output.Format = string(parseFormatFlag(c))
	}
	if c.Bool("no-color") {
		cfg.Output.Color = false
	}
}

// validateVersionFlag rejects a malformed explicit --current-version. A
// malformed version file only falls back to the bootstrap path; an
// explicit flag is an input error.
func validateVersionFlag(c *cli.Context) error {
	v := c.String("current-version")
	if v == "" {
		return nil
	}
	_, err := semver.Parse(v)
	return err
}

// exitError maps an error to its failure exit code: 2 for input errors,
// 3 for repository errors, 1 otherwise.
func exitError(err error) error {
	code := exitFailure
	switch {
	case errors.Is(err, config.ErrInvalid), errors.Is(err, semver.ErrInvalidVersion):
		code = exitInput
	case errors.Is(err, vcs.ErrRefNotFound),
		errors.Is(err, git.ErrRepositoryNotExists):
		code = exitRepoError
	}
	return cli.Exit(color.RedString("Error: %v", err), code)
}
