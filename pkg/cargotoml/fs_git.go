package cargotoml

import (
	"errors"
	"io/fs"
	"path"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitFS lists directory entries from a committed git tree, so a manifest
// can be completed against a repository without checking it out.
type GitFS struct {
	tree *object.Tree
}

// NewGitFS opens the repository at repoPath and anchors the listing at rev
// (any revision expression go-git resolves, e.g. a branch, tag or hash).
// An empty rev means HEAD.
func NewGitFS(repoPath, rev string) (*GitFS, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, err
	}
	return NewGitFSFromRepo(repo, rev)
}

// NewGitFSFromRepo is NewGitFS over an already opened repository.
func NewGitFSFromRepo(repo *git.Repository, rev string) (*GitFS, error) {
	var hash plumbing.Hash
	if rev == "" {
		head, err := repo.Head()
		if err != nil {
			return nil, err
		}
		hash = head.Hash()
	} else {
		resolved, err := repo.ResolveRevision(plumbing.Revision(rev))
		if err != nil {
			return nil, err
		}
		hash = *resolved
	}
	commit, err := repo.CommitObject(hash)
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}
	return &GitFS{tree: tree}, nil
}

func (g *GitFS) FileNamesIn(dir string) ([]string, error) {
	tree := g.tree
	if clean := path.Clean(dir); clean != "." && clean != "/" {
		sub, err := g.tree.Tree(clean)
		if err != nil {
			if errors.Is(err, object.ErrDirectoryNotFound) || errors.Is(err, object.ErrEntryNotFound) ||
				errors.Is(err, object.ErrFileNotFound) {
				return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrNotExist}
			}
			return nil, err
		}
		tree = sub
	}
	names := make([]string, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		names = append(names, entry.Name)
	}
	return names, nil
}
