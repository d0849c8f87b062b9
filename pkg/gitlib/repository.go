// Package gitlib wraps libgit2 with the narrow set of primitives the
// history walk consumes: HEAD metadata, per-file change statistics
// against the parent commit, and a destructive reset to the parent.
package gitlib

import (
	"errors"
	"fmt"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
)

// ErrNoParent is returned when the walk tries to move past a commit
// without a parent (the repository's root commit).
var ErrNoParent = errors.New("commit has no parent")

// statWidth is the rendering width for stat lines, matching git's
// default terminal layout.
const statWidth = 80

// Repository wraps a libgit2 repository opened on a working tree that
// the walk owns exclusively.
type Repository struct {
	repo *git2go.Repository
	path string
}

// OpenRepository opens the git repository at the given path.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git2go.OpenRepository(path)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	return &Repository{repo: repo, path: path}, nil
}

// Path returns the repository path.
func (r *Repository) Path() string {
	return r.path
}

// Free releases the repository resources.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// headCommit resolves the commit HEAD points at. The caller frees it.
func (r *Repository) headCommit() (*git2go.Commit, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("get HEAD: %w", err)
	}
	defer ref.Free()

	commit, err := r.repo.LookupCommit(ref.Target())
	if err != nil {
		return nil, fmt.Errorf("lookup HEAD commit: %w", err)
	}

	return commit, nil
}

// CurrentAuthor returns the author name of the HEAD commit.
func (r *Repository) CurrentAuthor() (string, error) {
	commit, err := r.headCommit()
	if err != nil {
		return "", err
	}
	defer commit.Free()

	return commit.Author().Name, nil
}

// CurrentCommitHash returns the hash of the HEAD commit.
func (r *Repository) CurrentCommitHash() (string, error) {
	commit, err := r.headCommit()
	if err != nil {
		return "", err
	}
	defer commit.Free()

	return commit.Id().String(), nil
}

// StatLines renders the per-file change statistics between HEAD and its
// first parent in the canonical "path | N ++--" text format, one trimmed
// non-blank line per entry. A root commit diffs against an empty tree.
func (r *Repository) StatLines() ([]string, error) {
	commit, err := r.headCommit()
	if err != nil {
		return nil, err
	}
	defer commit.Free()

	newTree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("get HEAD tree: %w", err)
	}
	defer newTree.Free()

	var oldTree *git2go.Tree

	if commit.ParentCount() > 0 {
		parent := commit.Parent(0)
		defer parent.Free()

		oldTree, err = parent.Tree()
		if err != nil {
			return nil, fmt.Errorf("get parent tree: %w", err)
		}
		defer oldTree.Free()
	}

	opts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return nil, fmt.Errorf("get diff options: %w", err)
	}

	diff, err := r.repo.DiffTreeToTree(oldTree, newTree, &opts)
	if err != nil {
		return nil, fmt.Errorf("diff trees: %w", err)
	}

	defer func() {
		_ = diff.Free()
	}()

	stats, err := diff.Stats()
	if err != nil {
		return nil, fmt.Errorf("get diff stats: %w", err)
	}

	defer func() {
		_ = stats.Free()
	}()

	rendered, err := stats.String(git2go.DiffStatsFull, statWidth)
	if err != nil {
		return nil, fmt.Errorf("render diff stats: %w", err)
	}

	return statTextLines(rendered), nil
}

// MoveToParent discards the HEAD commit and hard-resets the working tree
// to its first parent. Irreversible; fails when no parent exists.
func (r *Repository) MoveToParent() error {
	commit, err := r.headCommit()
	if err != nil {
		return err
	}
	defer commit.Free()

	if commit.ParentCount() == 0 {
		return fmt.Errorf("reset %s: %w", commit.Id().String(), ErrNoParent)
	}

	parent := commit.Parent(0)
	defer parent.Free()

	checkout := git2go.CheckoutOptions{Strategy: git2go.CheckoutForce}

	err = r.repo.ResetToCommit(parent, git2go.ResetHard, &checkout)
	if err != nil {
		return fmt.Errorf("reset to parent of %s: %w", commit.Id().String(), err)
	}

	return nil
}

// statTextLines splits rendered stat text into trimmed non-blank lines.
func statTextLines(rendered string) []string {
	var lines []string

	for _, line := range strings.Split(rendered, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
