package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/nextver/nextver/pkg/config"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"
)

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a nextver configuration file with default settings",
		Description: `Creates a nextver.toml configuration file with the default tier
coefficients, divisors, thresholds, and bonus tables. Edit the file to
tune how changes map to version deltas.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Value:   "nextver.toml",
				Usage:   "Output file path",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file",
			},
		},
		Action: runInit,
	}
}

func runInit(c *cli.Context) error {
	outputPath := c.String("path")

	if _, err := os.Stat(outputPath); err == nil && !c.Bool("force") {
		return exitError(fmt.Errorf("config file %q already exists (use --force to overwrite)", outputPath))
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exitError(fmt.Errorf("failed to create directory %q: %w", dir, err))
		}
	}

	content, err := generateDefaultConfig()
	if err != nil {
		return exitError(err)
	}

	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return exitError(fmt.Errorf("failed to write config file: %w", err))
	}

	color.Green("Created %s", outputPath)
	fmt.Println("Edit this file to customize scoring settings.")
	return nil
}

func generateDefaultConfig() (string, error) {
	cfg := config.DefaultConfig()

	content, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config to TOML: %w", err)
	}

	var buf strings.Builder
	buf.WriteString("# Nextver Configuration\n\n")
	buf.Write(content)

	return buf.String(), nil
}
