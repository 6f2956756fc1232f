// Package gogit lists local branches in-process with go-git.
package gogit

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/runoshun/git-jira/internal/domain"
)

// notRepoMessage mirrors what the git CLI prints outside a repository.
const notRepoMessage = "fatal: not a git repository (or any of the parent directories): .git\n"

// Lister implements domain.BranchLister by reading refs with go-git.
type Lister struct {
	dir string
}

// Ensure Lister implements domain.BranchLister.
var _ domain.BranchLister = (*Lister)(nil)

// New creates a Lister for the repository containing dir.
func New(dir string) *Lister {
	return &Lister{dir: dir}
}

// ListBranches returns local branches sorted by name, rendered like
// "git branch --list --no-column".
func (l *Lister) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo, err := git.PlainOpenWithOptions(l.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, &domain.CommandError{
				Name:     "go-git open",
				Stderr:   []byte(notRepoMessage),
				ExitCode: 128,
			}
		}
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	iter, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("list branch refs: %w", err)
	}
	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate branch refs: %w", err)
	}
	sort.Strings(names)

	current, detached, err := headState(repo)
	if err != nil {
		return nil, err
	}

	branches := make([]domain.Branch, 0, len(names)+1)
	if detached != "" {
		line := domain.FormatBranchLine("(HEAD detached at "+detached+")", true)
		branches = append(branches, domain.ParseBranchLine(line))
	}
	for _, name := range names {
		line := domain.FormatBranchLine(name, name == current)
		branches = append(branches, domain.ParseBranchLine(line))
	}
	return branches, nil
}

// headState returns the checked-out branch name, or the abbreviated commit
// when HEAD is detached. Both are empty on an unborn branch.
func headState(repo *git.Repository) (current, detached string, err error) {
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", "", nil
		}
		return "", "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if head.Name().IsBranch() {
		return head.Name().Short(), "", nil
	}
	return "", head.Hash().String()[:7], nil
}
