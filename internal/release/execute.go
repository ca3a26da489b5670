package release

import (
	"context"
	"fmt"

	"shipit.dev/shipit/internal/config"
	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/internal/git"
	"shipit.dev/shipit/internal/output"
)

// Outcome is the result of a release run
type Outcome struct {
	Released bool
	Version  string
	Tag      string
	Commit   string
	Branch   string
	DryRun   bool
	// ReleaseURL is populated by the publish collaborator after the fact
	ReleaseURL string
}

// rollback restores the repository to its pre-run state when a step fails.
// Restoration is best-effort: a failure during rollback is logged, not
// propagated, so the original error stays visible.
type rollback struct {
	repo         *git.Repository
	originalRef  string
	targetBranch string
	created      bool
	// preTip is the target branch tip before any mutation,
	// empty when the branch was created by this run
	preTip string
}

func (rb *rollback) restore(ctx context.Context, splog *output.Splog) {
	// Reset only when the failure left us on the target branch. A reset from
	// anywhere else (a failed checkout keeps us on the starting branch) would
	// move the branch the run started on.
	current, err := rb.repo.CurrentBranch()
	if err == nil && current == rb.targetBranch {
		reset := rb.preTip
		if reset == "" {
			reset = "HEAD"
		}
		if err := rb.repo.ResetHard(ctx, reset); err != nil {
			splog.Warn("rollback: reset failed: %v", err)
		}
	}
	if err := rb.repo.Checkout(ctx, rb.originalRef); err != nil {
		splog.Warn("rollback: could not return to %s: %v", rb.originalRef, err)
		return
	}
	if rb.created {
		if err := rb.repo.DeleteBranch(ctx, rb.targetBranch); err != nil {
			splog.Warn("rollback: could not delete branch %s: %v", rb.targetBranch, err)
		}
	}
}

// Execute applies a plan as one logically atomic sequence: branch creation,
// checkout, merge, marker rewrite, commit, annotated tag. Any failure
// leaves the repository as it was before the run — no orphan branch, no
// partial merge, no stray commit without a tag.
func Execute(ctx context.Context, repo *git.Repository, cfg *config.Config, plan *Plan, splog *output.Splog) (*Outcome, error) {
	originalRef, err := repo.CurrentBranch()
	if err != nil {
		// Detached HEAD (the usual CI checkout); return to the exact commit
		originalRef, err = repo.HeadCommit()
		if err != nil {
			return nil, fmt.Errorf("cannot determine starting point: %w", err)
		}
	}

	rb := &rollback{
		repo:         repo,
		originalRef:  originalRef,
		targetBranch: plan.TargetBranch,
		created:      plan.CreateTargetBranch,
	}

	if plan.CreateTargetBranch {
		if err := repo.CreateBranch(ctx, plan.TargetBranch, plan.BaseRef); err != nil {
			return nil, err
		}
		splog.Info("🌿 Created branch %s from %s", plan.TargetBranch, plan.BaseRef)
	} else {
		tip, err := repo.RevParse(ctx, plan.TargetBranch)
		if err != nil {
			return nil, err
		}
		rb.preTip = tip
	}

	if err := repo.Checkout(ctx, plan.TargetBranch); err != nil {
		rb.restore(ctx, splog)
		return nil, err
	}

	mergeResult, err := repo.Merge(ctx, plan.SourceRef)
	if err != nil {
		rb.restore(ctx, splog)
		return nil, err
	}
	if mergeResult.Kind == git.MergeConflict {
		rb.restore(ctx, splog)
		return nil, shipiterrors.NewMergeConflictError(plan.SourceRef, plan.TargetBranch, mergeResult.ConflictPaths)
	}

	if err := UpdateMarkers(repo, cfg.Version.Files, plan.Version); err != nil {
		rb.restore(ctx, splog)
		return nil, err
	}

	paths := make([]string, 0, len(cfg.Version.Files))
	for _, f := range cfg.Version.Files {
		paths = append(paths, f.Path)
	}
	sha, err := repo.CommitPaths(ctx, fmt.Sprintf("chore: release version %s", plan.Version), paths)
	if err != nil {
		rb.restore(ctx, splog)
		return nil, err
	}

	if err := repo.CreateAnnotatedTag(ctx, plan.Tag, sha, fmt.Sprintf("Release %s", plan.Tag)); err != nil {
		rb.restore(ctx, splog)
		return nil, err
	}

	splog.Info("📝 Committed release %s on %s", plan.Version, plan.TargetBranch)

	// Leave the working tree where the run found it; the release lives on
	// the target branch and its tag regardless.
	if err := repo.Checkout(ctx, originalRef); err != nil {
		splog.Warn("could not return to %s: %v", originalRef, err)
	}

	return &Outcome{
		Released: true,
		Version:  plan.Version.String(),
		Tag:      plan.Tag,
		Commit:   sha,
		Branch:   plan.TargetBranch,
	}, nil
}

// Validate checks that a plan would succeed without mutating the
// repository: branch and base refs resolve, the merge is conflict-free
// (via merge-tree, which never touches the working tree), and every
// configured marker is present. The returned outcome is fully populated
// so dry runs report exactly what a real run would do.
func Validate(ctx context.Context, repo *git.Repository, cfg *config.Config, plan *Plan, splog *output.Splog) (*Outcome, error) {
	targetRef := plan.TargetBranch
	if plan.CreateTargetBranch {
		if _, err := repo.RevParse(ctx, plan.BaseRef); err != nil {
			return nil, err
		}
		targetRef = plan.BaseRef
	}

	conflict, paths, err := repo.MergeWouldConflict(ctx, targetRef, plan.SourceRef)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, shipiterrors.NewMergeConflictError(plan.SourceRef, plan.TargetBranch, paths)
	}

	if err := VerifyMarkers(repo, cfg.Version.Files); err != nil {
		return nil, err
	}

	splog.Info("🔍 Dry run: would release %s on %s (tag %s)", plan.Version, plan.TargetBranch, plan.Tag)

	return &Outcome{
		Released: true,
		Version:  plan.Version.String(),
		Tag:      plan.Tag,
		Branch:   plan.TargetBranch,
		DryRun:   true,
	}, nil
}
