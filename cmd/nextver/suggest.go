package main

import (
	"fmt"
	"path/filepath"

	"github.com/nextver/nextver/internal/cache"
	"github.com/nextver/nextver/internal/output"
	"github.com/nextver/nextver/internal/progress"
	"github.com/nextver/nextver/pkg/analyzer/score"
	"github.com/nextver/nextver/pkg/analyzer/suggest"
	"github.com/nextver/nextver/pkg/config"
	"github.com/urfave/cli/v2"
)

func suggestCmd() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Aliases:   []string{"analyze"},
		Usage:     "Compute the next version for the changes between two refs",
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
				Name:  "strict-status",
				Usage: "Exit with the decision status code (10=major, 11=minor, 12=patch, 20=none)",
			},
			&cli.IntFlag{
				Name:  "modulus",
				Usage: "Rollover modulus for version components",
			},
			&cli.IntFlag{
				Name:  "major-threshold",
				Usage: "Minimum major bonus to select the major tier",
			},
			&cli.IntFlag{
				Name:  "minor-threshold",
				Usage: "Minimum minor bonus to select the minor tier",
			},
		},
		Action: runSuggest,
	}
}

func runSuggest(c *cli.Context) error {
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

	formatter, err := output.NewFormatter(output.ParseFormat(cfg.Output.Format), c.String("output"), cfg.Output.Color)
	if err != nil {
		return exitError(err)
	}
	defer formatter.Close()

	if err := formatter.Output(decision); err != nil {
		return exitError(err)
	}

	if c.Bool("strict-status") {
		return cli.Exit("", output.StatusCode(decision.Suggestion))
	}
	return nil
}

// analyzeRepo runs the decision pipeline with the spinner and optional
// signal cache wired in.
func analyzeRepo(c *cli.Context, cfg config.Config, absPath string) (decision *score.Decision, err error) {
	var sigCache *cache.Cache
	if cfg.Cache.Enabled && !c.Bool("no-cache") {
		sigCache, err = cache.New(filepath.Join(absPath, cfg.Cache.Dir), true)
		if err != nil {
			return nil, err
		}
	}

	spinner := progress.NewSpinner("Analyzing changes...")
	analyzer := suggest.New(
		suggest.WithConfig(cfg),
		suggest.WithCache(sigCache),
		suggest.WithCurrentVersion(c.String("current-version")),
	)
	defer analyzer.Close()

	decision, err = analyzer.Analyze(c.Context, absPath, c.String("base"), c.String("target"))
	if err != nil {
		spinner.FinishError(err)
		return nil, err
	}
	spinner.FinishSuccess()
	return decision, nil
}

func parseFormatFlag(c *cli.Context) output.Format {
	return output.ParseFormat(c.String("format"))
}
