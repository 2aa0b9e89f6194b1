package signals

import (
	"path/filepath"
	"strings"
)

// Category is the classification of a newly added file.
type Category int

const (
	CategoryNone Category = iota
	CategoryTest
	CategoryDoc
	CategorySource
)

// Rules describes the path conventions used to classify newly added files.
// Patterns are case-insensitive substrings matched against the full path;
// extensions match the file extension exactly.
type Rules struct {
	TestPatterns     []string `koanf:"test_patterns" json:"test_patterns"`
	DocPatterns      []string `koanf:"doc_patterns" json:"doc_patterns"`
	DocExtensions    []string `koanf:"doc_extensions" json:"doc_extensions"`
	SourceExtensions []string `koanf:"source_extensions" json:"source_extensions"`
}

// DefaultRules returns the built-in file classification conventions.
func DefaultRules() Rules {
	return Rules{
		TestPatterns: []string{
			"_test.",
			"test_",
			".spec.",
			"/test/",
			"/tests/",
			"/spec/",
			"/testdata/",
		},
		DocPatterns: []string{
			"/doc/",
			"/docs/",
			"/man/",
			"readme",
			"changelog",
			"license",
		},
		DocExtensions: []string{
			".md", ".rst", ".adoc", ".txt", ".1", ".5", ".8",
		},
		SourceExtensions: []string{
			".go", ".c", ".h", ".cc", ".cpp", ".hpp",
			".py", ".rb", ".rs", ".js", ".ts", ".tsx",
			".java", ".kt", ".sh", ".bash", ".pl", ".lua", ".zig",
		},
	}
}

// Categorize classifies a path. Categories are checked in fixed priority
// order, test before doc before source, so a test fixture never counts as
// new source.
func (r Rules) Categorize(path string) Category {
	// Leading slash so directory patterns match the first path segment.
	lower := "/" + strings.ToLower(filepath.ToSlash(path))
	ext := filepath.Ext(lower)

	for _, p := range r.TestPatterns {
		if strings.Contains(lower, p) {
			return CategoryTest
		}
	}
	for _, p := range r.DocPatterns {
		if strings.Contains(lower, p) {
			return CategoryDoc
		}
	}
	for _, e := range r.DocExtensions {
		if ext == e {
			return CategoryDoc
		}
	}
	for _, e := range r.SourceExtensions {
		if ext == e {
			return CategorySource
		}
	}
	return CategoryNone
}
