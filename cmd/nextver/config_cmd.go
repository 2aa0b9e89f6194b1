package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/nextver/nextver/pkg/config"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: runConfigShow,
			},
			{
				Name:   "validate",
				Usage:  "Validate a configuration file",
				Action: runConfigValidate,
			},
		},
	}
}

// resolveConfig loads the config named by the global --config flag, or the
// first file found in the standard locations. The returned source is ""
// when defaults are in effect.
func resolveConfig(c *cli.Context) (config.Config, string, error) {
	source := c.String("config")
	if source == "" {
		source = config.FindConfig()
	}
	if source == "" {
		return config.DefaultConfig(), "", nil
	}
	cfg, err := config.Load(source)
	if err != nil {
		return cfg, source, fmt.Errorf("failed to load config %s: %w", source, err)
	}
	return cfg, source, nil
}

func runConfigShow(c *cli.Context) error {
	cfg, source, err := resolveConfig(c)
	if err != nil {
		return exitError(err)
	}

	if source != "" {
		fmt.Printf("# Configuration from: %s\n\n", source)
	} else {
		fmt.Println("# Default configuration (no config file found)")
	}

	content, err := toml.Marshal(cfg)
	if err != nil {
		return exitError(fmt.Errorf("failed to marshal config: %w", err))
	}
	fmt.Print(string(content))
	return nil
}

func runConfigValidate(c *cli.Context) error {
	cfg, source, err := resolveConfig(c)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		color.Red("Configuration validation failed:")
		fmt.Printf("  - %s\n", err)
		return exitError(err)
	}

	if source != "" {
		color.Green("Configuration valid: %s", source)
	} else {
		color.Yellow("No config file found. Default configuration is valid.")
	}
	return nil
}
