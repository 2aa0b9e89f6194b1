package signals

import (
	"regexp"
	"strings"
)

// Two independent CLI declaration conventions are recognized. The
// structured convention covers getopt-style option tables: long-option
// table entries and the short-option spec string of a getopt/getopts call.
// The manual convention covers option string literals compared by hand in
// ad-hoc argument loops.
var (
	optTableRe   = regexp.MustCompile(`\{\s*"([A-Za-z0-9][A-Za-z0-9-]*)"\s*,`)
	getoptSpecRe = regexp.MustCompile(`getopts?(?:_long)?\s*\(?[^"\n]*"([A-Za-z0-9:+-]*)"`)
	quotedOptRe  = regexp.MustCompile(`"(--?[A-Za-z0-9][A-Za-z0-9-]*[=:]?)"`)
)

type optionSet map[string]struct{}

func (s optionSet) add(opt string) {
	s[opt] = struct{}{}
}

func (s optionSet) equal(other optionSet) bool {
	if len(s) != len(other) {
		return false
	}
	for opt := range s {
		if _, ok := other[opt]; !ok {
			return false
		}
	}
	return true
}

// subtract returns the options in s that are not in other.
func (s optionSet) subtract(other optionSet) optionSet {
	result := make(optionSet)
	for opt := range s {
		if _, ok := other[opt]; !ok {
			result.add(opt)
		}
	}
	return result
}

func union(a, b optionSet) optionSet {
	result := make(optionSet, len(a)+len(b))
	for opt := range a {
		result.add(opt)
	}
	for opt := range b {
		result.add(opt)
	}
	return result
}

// normalizeOption strips trailing argument-indicator markers so an option
// whose declaration changes only by a requires-argument suffix is not
// misread as a removal plus an addition.
func normalizeOption(opt string) string {
	return strings.TrimRight(opt, ":=")
}

func isShortOption(opt string) bool {
	return !strings.HasPrefix(opt, "--")
}

// optionScan accumulates the normalized option sets seen on the base and
// target sides of every scanned patch. Set unions are commutative, so the
// result is independent of file order.
type optionScan struct {
	structuredBase   optionSet
	structuredTarget optionSet
	manualBase       optionSet
	manualTarget     optionSet
}

func newOptionScan() *optionScan {
	return &optionScan{
		structuredBase:   make(optionSet),
		structuredTarget: make(optionSet),
		manualBase:       make(optionSet),
		manualTarget:     make(optionSet),
	}
}

// scanPatch reads a unified diff. Removed lines contribute to the base
// side, added lines to the target side; context lines carry no signal.
func (o *optionScan) scanPatch(patch string) {
	for _, line := range strings.Split(patch, "\n") {
		var structured, manual optionSet
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			continue
		case strings.HasPrefix(line, "+"):
			structured, manual = o.structuredTarget, o.manualTarget
		case strings.HasPrefix(line, "-"):
			structured, manual = o.structuredBase, o.manualBase
		default:
			continue
		}
		scanLine(line[1:], structured, manual)
	}
}

// scanLine extracts option declarations from one changed line.
func scanLine(content string, structured, manual optionSet) {
	for _, m := range optTableRe.FindAllStringSubmatch(content, -1) {
		structured.add("--" + normalizeOption(m[1]))
	}
	for _, m := range getoptSpecRe.FindAllStringSubmatch(content, -1) {
		for _, c := range m[1] {
			if c == ':' || c == '+' || c == '-' {
				continue
			}
			structured.add("-" + string(c))
		}
	}
	for _, m := range quotedOptRe.FindAllStringSubmatch(content, -1) {
		manual.add(normalizeOption(m[1]))
	}
}

// optionDelta is the aggregate CLI-option outcome of a scan.
type optionDelta struct {
	addedShort    int
	addedLong     int
	removedShort  int
	removedLong   int
	cliChanged    bool
	manualChanged bool
	breaking      bool
}

// delta compares the base and target option sets. Breaking means at least
// one option present in the base set is absent from the target set,
// regardless of which convention declared it.
func (o *optionScan) delta() optionDelta {
	baseAll := union(o.structuredBase, o.manualBase)
	targetAll := union(o.structuredTarget, o.manualTarget)

	added := targetAll.subtract(baseAll)
	removed := baseAll.subtract(targetAll)

	var d optionDelta
	for opt := range added {
		if isShortOption(opt) {
			d.addedShort++
		} else {
			d.addedLong++
		}
	}
	for opt := range removed {
		if isShortOption(opt) {
			d.removedShort++
		} else {
			d.removedLong++
		}
	}

	d.cliChanged = !o.structuredBase.equal(o.structuredTarget)
	d.manualChanged = !o.manualBase.equal(o.manualTarget)
	d.breaking = len(removed) > 0
	return d
}
