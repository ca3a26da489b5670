package git

import (
	"context"
	"fmt"
)

// CreateBranch creates a branch pointing at fromRef without checking it out
func (r *Repository) CreateBranch(ctx context.Context, name, fromRef string) error {
	_, err := r.runner.Run(ctx, "branch", name, fromRef)
	if err != nil {
		return fmt.Errorf("failed to create branch %s from %s: %w", name, fromRef, err)
	}
	return nil
}

// Checkout checks out an existing branch
func (r *Repository) Checkout(ctx context.Context, branchName string) error {
	_, err := r.runner.Run(ctx, "checkout", branchName)
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}
	return nil
}

// DeleteBranch force-deletes a local branch
func (r *Repository) DeleteBranch(ctx context.Context, branchName string) error {
	_, err := r.runner.Run(ctx, "branch", "-D", branchName)
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}

// ResetHard resets the current branch and working tree to ref
func (r *Repository) ResetHard(ctx context.Context, ref string) error {
	_, err := r.runner.Run(ctx, "reset", "--hard", ref)
	if err != nil {
		return fmt.Errorf("failed to reset to %s: %w", ref, err)
	}
	return nil
}
