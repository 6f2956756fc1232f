package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/git-jira/internal/domain"
)

// AnnotateBranchesInput contains the parameters for annotating branches.
type AnnotateBranchesInput struct {
	Config *domain.Config // Resolved tracker configuration
	Strict bool           // Fail when the tracker omits a requested key
}

// AnnotateBranchesOutput contains the annotated branch listing.
// When the branch listing command failed, Aborted is set, Stderr holds its
// error output verbatim and Branches is empty.
type AnnotateBranchesOutput struct {
	Branches []domain.AnnotatedBranch
	Stderr   []byte
	Aborted  bool
}

// AnnotateBranches is the use case joining local branches with issue summaries.
type AnnotateBranches struct {
	branches domain.BranchLister
	trackers domain.TrackerFactory
	logger   domain.Logger
}

// NewAnnotateBranches creates a new AnnotateBranches use case.
func NewAnnotateBranches(branches domain.BranchLister, trackers domain.TrackerFactory, logger domain.Logger) *AnnotateBranches {
	return &AnnotateBranches{
		branches: branches,
		trackers: trackers,
		logger:   logger,
	}
}

// Execute lists branches, extracts issue keys, fetches their summaries in one
// search and returns the branches in listing order.
func (uc *AnnotateBranches) Execute(ctx context.Context, in AnnotateBranchesInput) (*AnnotateBranchesOutput, error) {
	branches, err := uc.branches.ListBranches(ctx)
	if err != nil {
		var cmdErr *domain.CommandError
		if errors.As(err, &cmdErr) {
			uc.logger.Debug("branch", cmdErr.Error())
			return &AnnotateBranchesOutput{Aborted: true, Stderr: cmdErr.Stderr}, nil
		}
		return nil, fmt.Errorf("list branches: %w", err)
	}

	keys := domain.ExtractIssueKeys(branches)
	summaries, err := uc.fetchSummaries(ctx, in.Config, keys)
	if err != nil {
		return nil, err
	}

	annotated := make([]domain.AnnotatedBranch, len(branches))
	warned := make(map[domain.IssueKey]bool)
	for i, b := range branches {
		annotated[i] = domain.AnnotatedBranch{Branch: b, Key: keys[i]}
		if keys[i] == "" {
			continue
		}
		summary, ok := summaries[string(keys[i])]
		if !ok {
			if in.Strict {
				return nil, fmt.Errorf("%w: %s", domain.ErrIssueNotFound, keys[i])
			}
			if !warned[keys[i]] {
				uc.logger.Warn("branch", fmt.Sprintf("no summary returned for %s", keys[i]))
				warned[keys[i]] = true
			}
			continue
		}
		annotated[i].Summary = summary
	}

	return &AnnotateBranchesOutput{Branches: annotated}, nil
}

// fetchSummaries runs the tracker search, skipping it when no key was found.
func (uc *AnnotateBranches) fetchSummaries(ctx context.Context, cfg *domain.Config, keys []domain.IssueKey) (map[string]string, error) {
	unique := domain.UniqueKeys(keys)
	if len(unique) == 0 {
		uc.logger.Debug("branch", "no issue keys in branch names; skipping tracker search")
		return map[string]string{}, nil
	}
	if cfg == nil {
		return nil, errors.New("tracker configuration not resolved")
	}

	tracker, err := uc.trackers(cfg)
	if err != nil {
		return nil, fmt.Errorf("create tracker client: %w", err)
	}
	uc.logger.Debug("branch", "search: "+domain.BuildJQL(unique))
	summaries, err := tracker.Summaries(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("fetch issue summaries: %w", err)
	}
	return summaries, nil
}
