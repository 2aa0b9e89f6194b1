package signals

import (
	"strings"

	"github.com/nextver/nextver/internal/vcs"
)

// Extract builds the Signals record for one diff. All aggregations are
// commutative sums and set unions over the file list, so the output is
// identical for any ordering of the same inputs.
func Extract(files []vcs.FileDiff, messages []string, rules Rules, markers Markers) Signals {
	var sig Signals
	scan := newOptionScan()

	for _, f := range files {
		if f.IsBinary {
			continue
		}
		// A pure rename or copy carries no content change and must not
		// count as churn or as a new file.
		if f.IsRename && f.AddedLines == 0 && f.RemovedLines == 0 {
			continue
		}

		sig.ChangedLines += f.AddedLines + f.RemovedLines

		if f.IsNew {
			switch rules.Categorize(f.Path) {
			case CategoryTest:
				sig.NewTestFiles++
			case CategoryDoc:
				sig.NewDocFiles++
			case CategorySource:
				sig.NewSourceFiles++
			}
		}

		scan.scanPatch(f.Patch)

		added := addedText(f.Patch)
		sig.SecurityKeywords += countTokens(added, markers.Security)
		if containsToken(added, markers.Breaking) {
			sig.APIBreaking = true
		}
	}

	for _, msg := range messages {
		sig.SecurityKeywords += countTokens(msg, markers.Security)
		if containsToken(msg, markers.Breaking) {
			sig.APIBreaking = true
		}
	}

	d := scan.delta()
	sig.AddedShortOptions = d.addedShort
	sig.AddedLongOptions = d.addedLong
	sig.RemovedShortOptions = d.removedShort
	sig.RemovedLongOptions = d.removedLong
	sig.CLIChanged = d.cliChanged
	sig.ManualCLIChanged = d.manualChanged
	sig.BreakingCLIChanged = d.breaking

	return sig
}

// addedText returns the added lines of a unified diff as one string.
// Marker scanning considers additions only; reverting a security fix
// should not count as another security fix.
func addedText(patch string) string {
	var b strings.Builder
	for _, line := range strings.Split(patch, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			b.WriteString(line[1:])
			b.WriteByte('\n')
		}
	}
	return b.String()
}
