package vcs

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
	"github.com/sourcegraph/conc/pool"
)

// GitOpener opens git repositories using go-git.
type GitOpener struct{}

// NewGitOpener creates a new GitOpener.
func NewGitOpener() *GitOpener {
	return &GitOpener{}
}

// PlainOpen opens an existing git repository.
func (o *GitOpener) PlainOpen(path string) (Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, err
	}
	return &gitRepository{repo: repo, path: path}, nil
}

// PlainOpenWithDetect opens a git repository, detecting .git in parent directories.
func (o *GitOpener) PlainOpenWithDetect(path string) (Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, err
	}
	return &gitRepository{repo: repo, path: path}, nil
}

// gitRepository wraps go-git Repository.
type gitRepository struct {
	repo *git.Repository
	path string
}

func (r *gitRepository) Path() string {
	return r.path
}

func (r *gitRepository) ResolveRef(ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrRefNotFound, ref)
	}
	return hash.String(), nil
}

// treeAt returns the tree of the commit at hash, or nil for the empty-tree
// sentinel "".
func (r *gitRepository) treeAt(hash string) (*object.Tree, error) {
	if hash == "" {
		return nil, nil
	}
	commit, err := r.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrRefNotFound, hash)
	}
	return commit.Tree()
}

func (r *gitRepository) DiffFiles(ctx context.Context, base, target string) ([]FileDiff, error) {
	baseTree, err := r.treeAt(base)
	if err != nil {
		return nil, err
	}
	targetTree, err := r.treeAt(target)
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTreeWithOptions(ctx, baseTree, targetTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, err
	}

	// Patch computation dominates the run; compute per-file patches
	// concurrently. Results are index-addressed so output order matches
	// the tree diff regardless of scheduling.
	diffs := make([]FileDiff, len(changes))
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(runtime.NumCPU())
	for i, change := range changes {
		p.Go(func(ctx context.Context) error {
			fd, err := fileDiff(ctx, change)
			if err != nil {
				return err
			}
			diffs[i] = fd
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return diffs, nil
}

// fileDiff converts a single tree change into a FileDiff record.
func fileDiff(ctx context.Context, change *object.Change) (FileDiff, error) {
	action, err := change.Action()
	if err != nil {
		return FileDiff{}, err
	}

	from := change.From.Name
	to := change.To.Name

	fd := FileDiff{
		Path:  to,
		IsNew: action == merkletrie.Insert,
	}
	if fd.Path == "" {
		fd.Path = from
	}
	if from != "" && to != "" && from != to {
		fd.IsRename = true
		fd.OldPath = from
	}

	patch, err := change.PatchContext(ctx)
	if err != nil {
		return FileDiff{}, err
	}

	for _, filePatch := range patch.FilePatches() {
		if filePatch.IsBinary() {
			fd.IsBinary = true
			continue
		}
		for _, chunk := range filePatch.Chunks() {
			lines := strings.Count(chunk.Content(), "\n")
			switch chunk.Type() {
			case diff.Add:
				fd.AddedLines += lines
			case diff.Delete:
				fd.RemovedLines += lines
			}
		}
	}

	if !fd.IsBinary {
		fd.Patch = patch.String()
	}
	return fd, nil
}

func (r *gitRepository) CommitMessages(ctx context.Context, base, target string) ([]string, error) {
	if target == "" {
		return nil, nil
	}

	// Exclusion by reachability set, not by stopping the walk at base:
	// on a merge history the walk reaches base before it has visited the
	// merged side branch, and stopping there would drop those commits.
	exclude, err := r.reachableFrom(ctx, base)
	if err != nil {
		return nil, err
	}

	iter, err := r.repo.Log(&git.LogOptions{From: plumbing.NewHash(target)})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var messages []string
	err = iter.ForEach(func(c *object.Commit) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, ok := exclude[c.Hash]; ok {
			return nil
		}
		messages = append(messages, c.Message)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// reachableFrom returns every commit hash reachable from hash, or nil for
// the empty-tree sentinel.
func (r *gitRepository) reachableFrom(ctx context.Context, hash string) (map[plumbing.Hash]struct{}, error) {
	if hash == "" {
		return nil, nil
	}

	iter, err := r.repo.Log(&git.LogOptions{From: plumbing.NewHash(hash)})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	reachable := make(map[plumbing.Hash]struct{})
	err = iter.ForEach(func(c *object.Commit) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		reachable[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reachable, nil
}
