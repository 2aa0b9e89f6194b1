// Package vcs provides version control system access for diff analysis.
package vcs

import (
	"context"
	"errors"
)

// ErrRefNotFound is returned when a ref cannot be resolved to a commit.
var ErrRefNotFound = errors.New("ref not found")

// FileDiff is one changed file between two resolved refs.
type FileDiff struct {
	// Path is the file path in the target revision, or the base path for
	// deleted files.
	Path string
	// OldPath is the base path when the file was renamed or copied.
	OldPath string
	// AddedLines and RemovedLines count content lines; both are zero for
	// binary files and pure renames.
	AddedLines   int
	RemovedLines int
	IsNew        bool
	IsRename     bool
	IsBinary     bool
	// Patch is the unified diff text. Empty for binary files.
	Patch string
}

// Repository exposes the read operations the decision engine consumes.
// Refs passed to DiffFiles and CommitMessages must already be resolved via
// ResolveRef; the empty string denotes the empty tree (no history), which
// covers the empty-repository and first-commit cases.
type Repository interface {
	// ResolveRef resolves a tag, branch, hash, or HEAD to a commit hash.
	// An empty ref resolves to the empty-tree sentinel "".
	ResolveRef(ref string) (string, error)
	// DiffFiles returns the per-file changes from base to target.
	DiffFiles(ctx context.Context, base, target string) ([]FileDiff, error)
	// CommitMessages returns the messages of commits reachable from target
	// and not from base, newest first.
	CommitMessages(ctx context.Context, base, target string) ([]string, error)
	// Path returns the repository root path.
	Path() string
}

// Opener opens git repositories.
type Opener interface {
	// PlainOpen opens an existing git repository.
	PlainOpen(path string) (Repository, error)
	// PlainOpenWithDetect opens a git repository, detecting .git in parent
	// directories.
	PlainOpenWithDetect(path string) (Repository, error)
}

// Default opener singleton
var defaultOpener Opener = NewGitOpener()

// DefaultOpener returns the default git opener.
func DefaultOpener() Opener {
	return defaultOpener
}

// SetDefaultOpener sets the default git opener (useful for testing).
func SetDefaultOpener(opener Opener) {
	defaultOpener = opener
}
