// Package signals extracts structured change signals from a diff between
// two repository states. A Signals value is built once per analysis run
// from commutative aggregations over the file set, so the same two states
// always yield an identical record.
package signals

// Signal names, used as keys in per-tier bonus point tables.
const (
	NameNewSourceFiles      = "new_source_files"
	NameNewTestFiles        = "new_test_files"
	NameNewDocFiles         = "new_doc_files"
	NameAddedShortOptions   = "added_short_options"
	NameAddedLongOptions    = "added_long_options"
	NameRemovedShortOptions = "removed_short_options"
	NameRemovedLongOptions  = "removed_long_options"
	NameCLIChanged          = "cli_changed"
	NameManualCLIChanged    = "manual_cli_changed"
	NameBreakingCLIChanged  = "breaking_cli_changed"
	NameAPIBreaking         = "api_breaking"
	NameSecurityKeywords    = "security_keywords"
)

// Names returns all valid bonus signal names.
func Names() []string {
	return []string{
		NameNewSourceFiles,
		NameNewTestFiles,
		NameNewDocFiles,
		NameAddedShortOptions,
		NameAddedLongOptions,
		NameRemovedShortOptions,
		NameRemovedLongOptions,
		NameCLIChanged,
		NameManualCLIChanged,
		NameBreakingCLIChanged,
		NameAPIBreaking,
		NameSecurityKeywords,
	}
}

// Signals is the immutable record of change signals for one analysis run.
type Signals struct {
	ChangedLines        int  `json:"changed_lines"`
	NewSourceFiles      int  `json:"new_source_files"`
	NewTestFiles        int  `json:"new_test_files"`
	NewDocFiles         int  `json:"new_doc_files"`
	AddedShortOptions   int  `json:"added_short_options"`
	AddedLongOptions    int  `json:"added_long_options"`
	RemovedShortOptions int  `json:"removed_short_options"`
	RemovedLongOptions  int  `json:"removed_long_options"`
	CLIChanged          bool `json:"cli_changed"`
	ManualCLIChanged    bool `json:"manual_cli_changed"`
	BreakingCLIChanged  bool `json:"breaking_cli_changed"`
	APIBreaking         bool `json:"api_breaking"`
	SecurityKeywords    int  `json:"security_keywords"`
}

// Value returns the bonus weight of the named signal: count signals
// contribute their count, boolean signals contribute 1 when set.
func (s Signals) Value(name string) float64 {
	switch name {
	case NameNewSourceFiles:
		return float64(s.NewSourceFiles)
	case NameNewTestFiles:
		return float64(s.NewTestFiles)
	case NameNewDocFiles:
		return float64(s.NewDocFiles)
	case NameAddedShortOptions:
		return float64(s.AddedShortOptions)
	case NameAddedLongOptions:
		return float64(s.AddedLongOptions)
	case NameRemovedShortOptions:
		return float64(s.RemovedShortOptions)
	case NameRemovedLongOptions:
		return float64(s.RemovedLongOptions)
	case NameCLIChanged:
		return boolValue(s.CLIChanged)
	case NameManualCLIChanged:
		return boolValue(s.ManualCLIChanged)
	case NameBreakingCLIChanged:
		return boolValue(s.BreakingCLIChanged)
	case NameAPIBreaking:
		return boolValue(s.APIBreaking)
	case NameSecurityKeywords:
		return float64(s.SecurityKeywords)
	default:
		return 0
	}
}

// Any reports whether any change was detected at all. A completely empty
// diff classifies as tier none rather than patch.
func (s Signals) Any() bool {
	if s.ChangedLines > 0 || s.SecurityKeywords > 0 {
		return true
	}
	if s.NewSourceFiles > 0 || s.NewTestFiles > 0 || s.NewDocFiles > 0 {
		return true
	}
	if s.AddedShortOptions > 0 || s.AddedLongOptions > 0 ||
		s.RemovedShortOptions > 0 || s.RemovedLongOptions > 0 {
		return true
	}
	return s.CLIChanged || s.ManualCLIChanged || s.BreakingCLIChanged || s.APIBreaking
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
