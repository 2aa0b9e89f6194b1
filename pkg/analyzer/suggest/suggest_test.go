package suggest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/nextver/nextver/internal/cache"
	"github.com/nextver/nextver/pkg/analyzer/score"
	"github.com/nextver/nextver/pkg/config"
)

func commitFile(t *testing.T, repo *git.Repository, repoPath, name, content, message string) string {
	t.Helper()
	full := filepath.Join(repoPath, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Add(name); err != nil {
		t.Fatal(err)
	}
	hash, err := w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return hash.String()
}

func initTestRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	repoPath := t.TempDir()
	repo, err := git.PlainInit(repoPath, false)
	if err != nil {
		t.Fatal(err)
	}
	return repoPath, repo
}

func TestAnalyzer_Analyze_FirstCommit(t *testing.T) {
	repoPath, repo := initTestRepo(t)
	commitFile(t, repo, repoPath, "src/main.go", "package main\n\nfunc main() {}\n", "initial")

	analyzer := New(WithCurrentVersion("9.3.0"))
	defer analyzer.Close()

	decision, err := analyzer.Analyze(context.Background(), repoPath, "", "HEAD")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if decision.Suggestion != score.TierPatch {
		t.Errorf("Suggestion = %v, want patch (scores %+v)", decision.Suggestion, decision.Scores)
	}
	if decision.CurrentVersion != "9.3.0" {
		t.Errorf("CurrentVersion = %q, want 9.3.0", decision.CurrentVersion)
	}
	if decision.NextVersion != "9.3.1" {
		t.Errorf("NextVersion = %q, want 9.3.1", decision.NextVersion)
	}
	if decision.BaseRef != "" {
		t.Errorf("BaseRef = %q, want empty-tree sentinel", decision.BaseRef)
	}
	if decision.Signals.NewSourceFiles != 1 {
		t.Errorf("NewSourceFiles = %d, want 1", decision.Signals.NewSourceFiles)
	}
	if decision.NoChanges {
		t.Error("NoChanges = true, want false")
	}
}

func TestAnalyzer_Analyze_NoChanges(t *testing.T) {
	repoPath, repo := initTestRepo(t)
	hash := commitFile(t, repo, repoPath, "a.txt", "content\n", "initial")

	analyzer := New(WithCurrentVersion("1.2.3"))
	defer analyzer.Close()

	decision, err := analyzer.Analyze(context.Background(), repoPath, hash, hash)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if decision.Suggestion != score.TierNone {
		t.Errorf("Suggestion = %v, want none", decision.Suggestion)
	}
	if !decision.NoChanges {
		t.Error("NoChanges = false, want true")
	}
	if decision.NextVersion != "1.2.3" {
		t.Errorf("NextVersion = %q, want unchanged 1.2.3", decision.NextVersion)
	}
}

func TestAnalyzer_Analyze_VersionFile(t *testing.T) {
	repoPath, repo := initTestRepo(t)
	commitFile(t, repo, repoPath, "VERSION", "2.5.0\n", "add version file")
	commitFile(t, repo, repoPath, "a.txt", "one line\n", "edit")

	analyzer := New()
	defer analyzer.Close()

	decision, err := analyzer.Analyze(context.Background(), repoPath, "", "HEAD")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if decision.CurrentVersion != "2.5.0" {
		t.Errorf("CurrentVersion = %q, want 2.5.0 from version file", decision.CurrentVersion)
	}
}

func TestAnalyzer_Analyze_BootstrapVersion(t *testing.T) {
	repoPath, repo := initTestRepo(t)
	commitFile(t, repo, repoPath, "a.txt", "content\n", "initial")

	// No version file and no override: the zero version bootstraps.
	analyzer := New()
	defer analyzer.Close()

	decision, err := analyzer.Analyze(context.Background(), repoPath, "", "HEAD")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if decision.CurrentVersion != "0.0.0" {
		t.Errorf("CurrentVersion = %q, want 0.0.0", decision.CurrentVersion)
	}
	if decision.NextVersion != "0.0.1" {
		t.Errorf("NextVersion = %q, want bootstrap 0.0.1", decision.NextVersion)
	}
}

func TestAnalyzer_Analyze_BadRef(t *testing.T) {
	repoPath, repo := initTestRepo(t)
	commitFile(t, repo, repoPath, "a.txt", "content\n", "initial")

	analyzer := New()
	defer analyzer.Close()

	if _, err := analyzer.Analyze(context.Background(), repoPath, "", "no-such-ref"); err == nil {
		t.Error("Analyze() with bad target should fail")
	}
}

func TestAnalyzer_Analyze_CachedSignals(t *testing.T) {
	repoPath, repo := initTestRepo(t)
	commitFile(t, repo, repoPath, "src/main.go", "package main\n", "initial")

	sigCache, err := cache.New(filepath.Join(t.TempDir(), "cache"), true)
	if err != nil {
		t.Fatal(err)
	}

	analyzer := New(
		WithConfig(config.DefaultConfig()),
		WithCache(sigCache),
		WithCurrentVersion("1.0.0"),
	)
	defer analyzer.Close()

	first, err := analyzer.Analyze(context.Background(), repoPath, "", "HEAD")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	second, err := analyzer.Analyze(context.Background(), repoPath, "", "HEAD")
	if err != nil {
		t.Fatalf("cached Analyze() error = %v", err)
	}

	if *first != *second {
		t.Errorf("cached decision differs:\n%+v\n%+v", first, second)
	}
}
