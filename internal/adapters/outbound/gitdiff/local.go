// Package gitdiff provides the two interchangeable changed-file providers:
// a local repository walk (go-git) and the GitHub compare API. Both return
// the same ordered set of (path, extension, content-at-target-commit).
package gitdiff

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/flaggate/flaggate/internal/domain"
)

// LocalProvider implements domain.ChangeSource against an on-disk git
// repository.
type LocalProvider struct {
	path string
}

func NewLocal(repoPath string) *LocalProvider {
	return &LocalProvider{path: repoPath}
}

func (p *LocalProvider) Changes(ctx context.Context, before, after string) ([]domain.ChangedFile, error) {
	repo, err := git.PlainOpen(p.path)
	if err != nil {
		return nil, fmt.Errorf("opening git repo %s: %w", p.path, err)
	}

	fromTree, err := treeAt(repo, before)
	if err != nil {
		return nil, err
	}
	toTree, err := treeAt(repo, after)
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTreeWithOptions(ctx, fromTree, toTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, fmt.Errorf("diffing %s..%s: %w", before, after, err)
	}

	var files []domain.ChangedFile
	for _, change := range changes {
		name := change.To.Name
		if name == "" {
			continue // deletion; nothing to analyze at the target commit
		}
		f, err := toTree.File(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s at %s: %w", name, after, err)
		}
		content, err := f.Contents()
		if err != nil {
			return nil, fmt.Errorf("reading %s at %s: %w", name, after, err)
		}
		files = append(files, domain.ChangedFile{
			Path:      name,
			Extension: filepath.Ext(name),
			Content:   content,
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func treeAt(repo *git.Repository, rev string) (*object.Tree, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("loading tree for %s: %w", hash, err)
	}
	return tree, nil
}
