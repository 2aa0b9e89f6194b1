package semver

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr bool
	}{
		{"plain", "1.2.3", Version{1, 2, 3}, false},
		{"v prefix", "v9.3.0", Version{9, 3, 0}, false},
		{"whitespace", "  2.0.1\n", Version{2, 0, 1}, false},
		{"zero", "0.0.0", Version{}, false},
		{"large components", "12.999.457", Version{12, 999, 457}, false},
		{"empty", "", Version{}, true},
		{"two components", "1.2", Version{}, true},
		{"four components", "1.2.3.4", Version{}, true},
		{"non-numeric", "1.x.3", Version{}, true},
		{"negative", "1.-2.3", Version{}, true},
		{"plus sign", "1.+2.3", Version{}, true},
		{"leading plus", "+1.2.3", Version{}, true},
		{"prerelease suffix", "1.2.3-rc1", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error", tt.input)
				}
				if !errors.Is(err, ErrInvalidVersion) {
					t.Errorf("Parse(%q) error = %v, want ErrInvalidVersion", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseOrZero(t *testing.T) {
	if got := ParseOrZero("1.2.3"); got != (Version{1, 2, 3}) {
		t.Errorf("ParseOrZero(valid) = %v", got)
	}
	if got := ParseOrZero("garbage"); !got.IsZero() {
		t.Errorf("ParseOrZero(invalid) = %v, want zero", got)
	}
	if got := ParseOrZero(""); !got.IsZero() {
		t.Errorf("ParseOrZero(empty) = %v, want zero", got)
	}
}

func TestVersion_String(t *testing.T) {
	v := Version{Major: 9, Minor: 3, Patch: 0}
	if got := v.String(); got != "9.3.0" {
		t.Errorf("String() = %q, want %q", got, "9.3.0")
	}
}

func TestVersion_Add(t *testing.T) {
	tests := []struct {
		name    string
		current Version
		delta   int
		modulus int
		want    Version
	}{
		{"no carry", Version{9, 3, 0}, 9, 1000, Version{9, 3, 9}},
		{"carry to minor", Version{9, 3, 995}, 10, 1000, Version{9, 4, 5}},
		{"carry to major", Version{1, 999, 999}, 1, 1000, Version{2, 0, 0}},
		{"double carry", Version{0, 999, 990}, 2010, 1000, Version{1, 1, 0}},
		{"small modulus", Version{0, 0, 9}, 1, 10, Version{0, 1, 0}},
		{"zero delta", Version{1, 2, 3}, 0, 1000, Version{1, 2, 3}},
		{"negative delta clamps", Version{1, 2, 3}, -5, 1000, Version{1, 2, 3}},
		{"modulus below 2 uses default", Version{0, 0, 999}, 1, 0, Version{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.current.Add(tt.delta, tt.modulus)
			if got != tt.want {
				t.Errorf("%v.Add(%d, %d) = %v, want %v",
					tt.current, tt.delta, tt.modulus, got, tt.want)
			}
		})
	}
}

// The total patch count major*m*m + minor*m + patch is conserved across
// carries: adding delta always increases it by exactly delta.
func TestVersion_Add_Conservation(t *testing.T) {
	const m = 1000
	flat := func(v Version) int {
		return v.Major*m*m + v.Minor*m + v.Patch
	}

	starts := []Version{{}, {0, 0, 999}, {3, 999, 998}, {12, 500, 457}}
	deltas := []int{1, 9, 10, 999, 1000, 12345}

	for _, start := range starts {
		for _, delta := range deltas {
			got := start.Add(delta, m)
			if flat(got) != flat(start)+delta {
				t.Errorf("%v.Add(%d) = %v: flattened %d, want %d",
					start, delta, got, flat(got), flat(start)+delta)
			}
		}
	}
}
