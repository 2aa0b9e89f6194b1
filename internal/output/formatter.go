// Package output renders a version decision in one of the supported
// formats and maps tiers to process exit codes.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/nextver/nextver/pkg/analyzer/score"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Format represents an output format.
type Format string

const (
	FormatHuman   Format = "human"
	FormatKV      Format = "kv"
	FormatJSON    Format = "json"
	FormatSuggest Format = "suggest"
)

// ParseFormat converts a string to Format, defaulting to human.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "kv", "machine":
		return FormatKV
	case "json":
		return FormatJSON
	case "suggest", "suggest-only":
		return FormatSuggest
	default:
		return FormatHuman
	}
}

// StatusCode maps a tier to its strict-mode exit code. Decision codes
// never overlap the 1-9 failure range.
func StatusCode(t score.Tier) int {
	switch t {
	case score.TierMajor:
		return 10
	case score.TierMinor:
		return 11
	case score.TierPatch:
		return 12
	default:
		return 20
	}
}

// Formatter writes decisions in the configured format.
type Formatter struct {
	format  Format
	writer  io.Writer
	file    *os.File
	colored bool
}

// NewFormatter creates a new formatter. When output names a file, color is
// disabled and the file is created.
func NewFormatter(format Format, output string, colored bool) (*Formatter, error) {
	var writer io.Writer = os.Stdout
	var file *os.File

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return nil, err
		}
		writer = f
		file = f
		colored = false
	}

	return &Formatter{
		format:  format,
		writer:  writer,
		file:    file,
		colored: colored,
	}, nil
}

// Close closes the formatter's writer if it's a file.
func (f *Formatter) Close() error {
	if f.file != nil {
		return f.file.Close()
	}
	return nil
}

// Output writes the decision in the configured format. Exactly one
// representation is produced per call.
func (f *Formatter) Output(d *score.Decision) error {
	switch f.format {
	case FormatJSON:
		return f.renderJSON(d)
	case FormatKV:
		return f.renderKV(d)
	case FormatSuggest:
		_, err := fmt.Fprintln(f.writer, d.Suggestion)
		return err
	default:
		return f.renderHuman(d)
	}
}

// renderJSON writes the decision as indented JSON. Key order follows the
// Decision struct, so repeated renderings are byte-identical.
func (f *Formatter) renderJSON(d *score.Decision) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(d)
}

// renderKV writes one KEY=VALUE pair per line.
func (f *Formatter) renderKV(d *score.Decision) error {
	pairs := []struct {
		key   string
		value string
	}{
		{"SUGGESTION", d.Suggestion.String()},
		{"CURRENT_VERSION", d.CurrentVersion},
		{"NEXT_VERSION", d.NextVersion},
		{"TOTAL_BONUS", fmt.Sprintf("%d", d.TotalBonus)},
		{"PATCH_DELTA", fmt.Sprintf("%d", d.LOCDelta.PatchDelta)},
		{"MINOR_DELTA", fmt.Sprintf("%d", d.LOCDelta.MinorDelta)},
		{"MAJOR_DELTA", fmt.Sprintf("%d", d.LOCDelta.MajorDelta)},
		{"NO_CHANGES", fmt.Sprintf("%t", d.NoChanges)},
	}
	for _, p := range pairs {
		if _, err := fmt.Fprintf(f.writer, "%s=%s\n", p.key, p.value); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) renderHuman(d *score.Decision) error {
	w := f.writer

	title := "Version Decision"
	if f.colored {
		color.New(color.Bold, color.FgCyan).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Base:     %s\n", refLabel(d.BaseRef))
	fmt.Fprintf(w, "Target:   %s\n", refLabel(d.TargetRef))
	fmt.Fprintf(w, "Current:  %s\n\n", d.CurrentVersion)

	if d.NoChanges {
		if f.colored {
			color.New(color.FgGreen).Fprintln(w, "No changes detected; version stays at "+d.CurrentVersion)
		} else {
			fmt.Fprintln(w, "No changes detected; version stays at "+d.CurrentVersion)
		}
		return nil
	}

	fmt.Fprintf(w, "Changed lines: %d\n\n", d.Signals.ChangedLines)

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.Off,
				},
			},
		}),
	)

	table.Header([]string{"Tier", "Scale", "Base", "Bonus", "Total", "Selected"})
	rows := []struct {
		tier score.Tier
		b    score.Breakdown
	}{
		{tier: score.TierPatch, b: d.Scores.Patch},
		{tier: score.TierMinor, b: d.Scores.Minor},
		{tier: score.TierMajor, b: d.Scores.Major},
	}
	for _, row := range rows {
		selected := ""
		if row.tier == d.Suggestion {
			selected = "*"
		}
		table.Append([]string{
			row.tier.String(),
			fmt.Sprintf("%.2f", row.b.ScaleFactor),
			fmt.Sprintf("%d", row.b.BaseDelta),
			fmt.Sprintf("%d", row.b.TotalBonus),
			fmt.Sprintf("%d", row.b.TotalDelta),
			selected,
		})
	}
	table.Render()
	fmt.Fprintln(w)

	suggestion := strings.ToUpper(d.Suggestion.String())
	if f.colored {
		tierColor(d.Suggestion).Fprintf(w, "Suggestion:   %s\n", suggestion)
	} else {
		fmt.Fprintf(w, "Suggestion:   %s\n", suggestion)
	}
	fmt.Fprintf(w, "Next version: %s\n", d.NextVersion)
	return nil
}

func tierColor(t score.Tier) *color.Color {
	switch t {
	case score.TierMajor:
		return color.New(color.FgRed)
	case score.TierMinor:
		return color.New(color.FgYellow)
	case score.TierPatch:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgCyan)
	}
}

func refLabel(ref string) string {
	if ref == "" {
		return "(empty tree)"
	}
	return ref
}
