package vcs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Writer applies a computed version to a repository: it writes the version
// file, commits it, and creates an annotated tag. It is the release side of
// the pipeline and performs no decision logic.
type Writer struct {
	repo *git.Repository
	root string
}

// NewWriter opens the repository at path for writing, detecting .git in
// parent directories.
func NewWriter(path string) (*Writer, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}

	return &Writer{repo: repo, root: wt.Filesystem.Root()}, nil
}

// WriteVersionFile writes the version string, with a trailing newline, to
// the named file at the repository root.
func (w *Writer) WriteVersionFile(name, version string) error {
	return os.WriteFile(filepath.Join(w.root, name), []byte(version+"\n"), 0o644)
}

// CommitVersionFile stages the version file and commits it. Returns the
// commit hash.
func (w *Writer) CommitVersionFile(name, version string) (string, error) {
	wt, err := w.repo.Worktree()
	if err != nil {
		return "", err
	}

	if _, err := wt.Add(name); err != nil {
		return "", fmt.Errorf("failed to stage %s: %w", name, err)
	}

	hash, err := wt.Commit(fmt.Sprintf("release: version %s", version), &git.CommitOptions{
		Author: w.signature(),
	})
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

// CreateTag creates an annotated tag pointing at the given commit.
func (w *Writer) CreateTag(name, hash, message string) error {
	_, err := w.repo.CreateTag(name, plumbing.NewHash(hash), &git.CreateTagOptions{
		Tagger:  w.signature(),
		Message: message,
	})
	return err
}

// Head returns the current HEAD commit hash.
func (w *Writer) Head() (string, error) {
	head, err := w.repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String(), nil
}

// signature builds the commit/tag signature from the repository's git
// config, falling back to a tool identity when none is configured.
func (w *Writer) signature() *object.Signature {
	sig := &object.Signature{
		Name:  "nextver",
		Email: "nextver@localhost",
		When:  time.Now(),
	}

	cfg, err := w.repo.ConfigScoped(gitconfig.SystemScope)
	if err == nil && cfg.User.Name != "" {
		sig.Name = cfg.User.Name
		sig.Email = cfg.User.Email
	}
	return sig
}
