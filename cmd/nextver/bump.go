package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/nextver/nextver/internal/vcs"
	"github.com/urfave/cli/v2"
)

func bumpCmd() *cli.Command {
	return &cli.Command{
		Name:      "bump",
		Usage:     "Compute the next version and apply it: version file, commit, tag",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base",
				Aliases: []string{"b"},
				Usage:   "Base ref (tag, branch, hash); empty compares against the empty tree",
			},
			&cli.StringFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Value:   "HEAD",
				Usage:   "Target ref",
			},
			&cli.StringFlag{
				Name:  "current-version",
				Usage: "Current version (default: read from the version file)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print what would happen without writing anything",
			},
			&cli.BoolFlag{
				Name:  "no-commit",
				Usage: "Write the version file but do not commit",
			},
			&cli.BoolFlag{
				Name:  "no-tag",
				Usage: "Do not create a tag",
			},
			&cli.IntFlag{
				Name:  "modulus",
				Usage: "Rollover modulus for version components",
			},
		},
		Action: runBump,
	}
}

func runBump(c *cli.Context) error {
	paths := getPaths(c)
	absPath, err := filepath.Abs(paths[0])
	if err != nil {
		return exitError(fmt.Errorf("invalid path %s: %w", paths[0], err))
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return exitError(err)
	}
	if err := validateVersionFlag(c); err != nil {
		return exitError(err)
	}

	decision, err := analyzeRepo(c, cfg, absPath)
	if err != nil {
		return exitError(err)
	}

	if decision.NoChanges {
		fmt.Printf("No changes detected; version stays at %s\n", decision.CurrentVersion)
		return nil
	}

	tag := cfg.Versioning.TagPrefix + decision.NextVersion

	if c.Bool("dry-run") {
		fmt.Printf("Would bump %s -> %s (%s)\n", decision.CurrentVersion, decision.NextVersion, decision.Suggestion)
		fmt.Printf("Would write %s\n", cfg.Versioning.File)
		if !c.Bool("no-commit") {
			fmt.Printf("Would commit %q\n", fmt.Sprintf("release: version %s", decision.NextVersion))
		}
		if !c.Bool("no-tag") {
			fmt.Printf("Would tag %s\n", tag)
		}
		return nil
	}

	writer, err := vcs.NewWriter(absPath)
	if err != nil {
		return exitError(err)
	}

	if err := writer.WriteVersionFile(cfg.Versioning.File, decision.NextVersion); err != nil {
		return exitError(fmt.Errorf("failed to write version file: %w", err))
	}

	hash := ""
	if !c.Bool("no-commit") {
		hash, err = writer.CommitVersionFile(cfg.Versioning.File, decision.NextVersion)
		if err != nil {
			return exitError(fmt.Errorf("failed to commit: %w", err))
		}
	} else {
		hash, err = writer.Head()
		if err != nil {
			return exitError(err)
		}
	}

	if !c.Bool("no-tag") {
		message := fmt.Sprintf("Release %s", decision.NextVersion)
		if err := writer.CreateTag(tag, hash, message); err != nil {
			return exitError(fmt.Errorf("failed to create tag %s: %w", tag, err))
		}
	}

	color.Green("Bumped %s -> %s (%s)", decision.CurrentVersion, decision.NextVersion, decision.Suggestion)
	if !c.Bool("no-tag") {
		fmt.Printf("Tagged %s\n", tag)
	}
	return nil
}
