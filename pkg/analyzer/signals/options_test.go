package signals

import "testing"

func TestOptionScan_StructuredTable(t *testing.T) {
	patch := `--- a/opts.c
+++ b/opts.c
@@ -10,4 +10,4 @@
 static struct option longopts[] = {
 	{"verbose", no_argument, NULL, 'v'},
-	{"force", no_argument, NULL, 'f'},
+	{"dry-run", no_argument, NULL, 'n'},
 	{NULL, 0, NULL, 0},
`
	scan := newOptionScan()
	scan.scanPatch(patch)
	d := scan.delta()

	if d.addedLong != 1 {
		t.Errorf("addedLong = %d, want 1", d.addedLong)
	}
	if d.removedLong != 1 {
		t.Errorf("removedLong = %d, want 1", d.removedLong)
	}
	if !d.cliChanged {
		t.Error("cliChanged = false, want true")
	}
	if !d.breaking {
		t.Error("breaking = false, want true")
	}
}

func TestOptionScan_GetoptSpec(t *testing.T) {
	patch := `@@ -5,1 +5,1 @@
-	while ((c = getopt(argc, argv, "ab:c")) != -1) {
+	while ((c = getopt(argc, argv, "ab:cd")) != -1) {
`
	scan := newOptionScan()
	scan.scanPatch(patch)
	d := scan.delta()

	if d.addedShort != 1 {
		t.Errorf("addedShort = %d, want 1 (-d)", d.addedShort)
	}
	if d.removedShort != 0 {
		t.Errorf("removedShort = %d, want 0", d.removedShort)
	}
	if !d.cliChanged {
		t.Error("cliChanged = false, want true")
	}
	if d.breaking {
		t.Error("breaking = true, want false")
	}
}

func TestOptionScan_ManualConvention(t *testing.T) {
	patch := `@@ -20,2 +20,1 @@
-	if (strcmp(arg, "--color") == 0 ||
-	    strcmp(arg, "-k") == 0)
+	if (strcmp(arg, "--color") == 0)
`
	scan := newOptionScan()
	scan.scanPatch(patch)
	d := scan.delta()

	if d.removedShort != 1 {
		t.Errorf("removedShort = %d, want 1 (-k)", d.removedShort)
	}
	if !d.manualChanged {
		t.Error("manualChanged = false, want true")
	}
	if d.cliChanged {
		t.Error("cliChanged = true, want false for manual-only change")
	}
	if !d.breaking {
		t.Error("breaking = false, want true")
	}
}

// A declaration whose only change is a trailing argument marker keeps the
// same normalized option and must not count as removed plus added.
func TestOptionScan_ArgumentMarkerCosmetic(t *testing.T) {
	patch := `@@ -3,1 +3,1 @@
-	case "--output":
+	case "--output=":
`
	scan := newOptionScan()
	scan.scanPatch(patch)
	d := scan.delta()

	if d.addedLong != 0 || d.removedLong != 0 {
		t.Errorf("added/removed = %d/%d, want 0/0", d.addedLong, d.removedLong)
	}
	if d.breaking {
		t.Error("breaking = true, want false")
	}
}

func TestOptionScan_ContextLinesIgnored(t *testing.T) {
	patch := `@@ -1,3 +1,3 @@
 	{"verbose", no_argument, NULL, 'v'},
-	old();
+	new_call();
`
	scan := newOptionScan()
	scan.scanPatch(patch)
	d := scan.delta()

	if d.cliChanged {
		t.Error("cliChanged = true for untouched option table")
	}
	if d.addedLong+d.removedLong+d.addedShort+d.removedShort != 0 {
		t.Errorf("option counts nonzero: %+v", d)
	}
}

// The same option moved between files appears removed in one patch and
// added in another; the union over all patches cancels it out.
func TestOptionScan_MoveAcrossFiles(t *testing.T) {
	scan := newOptionScan()
	scan.scanPatch(`@@ -1,1 +0,0 @@
-	{"quiet", no_argument, NULL, 'q'},
`)
	scan.scanPatch(`@@ -0,0 +1,1 @@
+	{"quiet", no_argument, NULL, 'q'},
`)
	d := scan.delta()

	if d.addedLong != 0 || d.removedLong != 0 {
		t.Errorf("added/removed = %d/%d, want 0/0", d.addedLong, d.removedLong)
	}
	if d.breaking {
		t.Error("breaking = true, want false")
	}
}

func TestNormalizeOption(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"--output", "--output"},
		{"--output=", "--output"},
		{"--output:", "--output"},
		{"color", "color"},
		{"b:", "b"},
	}
	for _, tt := range tests {
		if got := normalizeOption(tt.in); got != tt.want {
			t.Errorf("normalizeOption(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsShortOption(t *testing.T) {
	if !isShortOption("-v") {
		t.Error("-v should be short")
	}
	if isShortOption("--verbose") {
		t.Error("--verbose should be long")
	}
}
