package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	shipiterrors "shipit.dev/shipit/internal/errors"
)

// MergeKind describes how a merge was (or would be) resolved
type MergeKind int

const (
	// MergeFastForward means the target branch had no divergent commits
	MergeFastForward MergeKind = iota
	// MergeCommit means a merge commit was created
	MergeCommit
	// MergeConflict means the merge could not be completed
	MergeConflict
)

// MergeResult is the outcome of merging a source ref into the checked-out branch
type MergeResult struct {
	Kind MergeKind
	// ConflictPaths lists the conflicting files when Kind is MergeConflict
	ConflictPaths []string
}

// Merge merges sourceRef into the currently checked-out branch.
// Fast-forwards when possible, otherwise creates a merge commit.
// On conflict the merge is aborted, the working tree is restored to its
// pre-merge condition, and the result carries the conflicting paths.
func (r *Repository) Merge(ctx context.Context, sourceRef string) (*MergeResult, error) {
	output, err := r.runner.Run(ctx, "merge", "--no-edit", sourceRef)
	if err != nil {
		var cmdErr *shipiterrors.GitCommandError
		if errors.As(err, &cmdErr) && strings.Contains(cmdErr.Stdout, "CONFLICT") {
			paths, pathsErr := r.runner.RunLines(ctx, "diff", "--name-only", "--diff-filter=U")
			if pathsErr != nil {
				paths = nil
			}
			if _, abortErr := r.runner.Run(ctx, "merge", "--abort"); abortErr != nil {
				return nil, fmt.Errorf("failed to abort conflicted merge: %w", abortErr)
			}
			return &MergeResult{Kind: MergeConflict, ConflictPaths: paths}, nil
		}
		return nil, fmt.Errorf("failed to merge %s: %w", sourceRef, err)
	}

	if strings.Contains(output, "Fast-forward") || strings.Contains(output, "Already up to date") {
		return &MergeResult{Kind: MergeFastForward}, nil
	}
	return &MergeResult{Kind: MergeCommit}, nil
}

// MergeWouldConflict checks, without touching the working tree, whether
// merging sourceRef into targetRef would conflict. Used by dry runs.
func (r *Repository) MergeWouldConflict(ctx context.Context, targetRef, sourceRef string) (bool, []string, error) {
	_, err := r.runner.RunRaw(ctx, "merge-tree", "--write-tree", "--name-only", targetRef, sourceRef)
	if err == nil {
		return false, nil, nil
	}

	var cmdErr *shipiterrors.GitCommandError
	if !errors.As(err, &cmdErr) || cmdErr.Stderr != "" {
		return false, nil, fmt.Errorf("failed to test merge of %s into %s: %w", sourceRef, targetRef, err)
	}

	// Exit status 1: conflicted. Output is the tree OID, the conflicted
	// file names one per line, then a blank line and informational text.
	var paths []string
	lines := strings.Split(strings.TrimSpace(cmdErr.Stdout), "\n")
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			break
		}
		paths = append(paths, line)
	}
	return true, paths, nil
}
