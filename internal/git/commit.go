package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ReadFile reads a file from the working tree, path relative to the repository root
func (r *Repository) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(r.path, path))
}

// WriteFile writes bytes to a working-tree file, path relative to the repository
// root. Nothing is staged; staging happens in CommitPaths.
func (r *Repository) WriteFile(path string, data []byte) error {
	return os.WriteFile(filepath.Join(r.path, path), data, 0644)
}

// CommitPaths stages only the given paths and commits, returning the new
// commit's SHA. Unrelated dirty or untracked files in the working tree are
// left alone.
func (r *Repository) CommitPaths(ctx context.Context, message string, paths []string) (string, error) {
	if len(paths) > 0 {
		args := append([]string{"add", "--"}, paths...)
		if _, err := r.runner.Run(ctx, args...); err != nil {
			return "", fmt.Errorf("failed to stage changes: %w", err)
		}
	}
	// --allow-empty keeps the release commit total: a fast-forward merge
	// with no configured marker files still gets a commit to tag.
	if _, err := r.runner.Run(ctx, "commit", "--allow-empty", "-m", message); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	sha, err := r.runner.Run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve new commit: %w", err)
	}
	return sha, nil
}

// CreateAnnotatedTag creates an annotated tag pointing at the given commit
func (r *Repository) CreateAnnotatedTag(ctx context.Context, name, sha, message string) error {
	_, err := r.runner.Run(ctx, "tag", "-a", name, "-m", message, sha)
	if err != nil {
		return fmt.Errorf("failed to create tag %s: %w", name, err)
	}
	return nil
}

// DeleteTag deletes a local tag
func (r *Repository) DeleteTag(ctx context.Context, name string) error {
	_, err := r.runner.Run(ctx, "tag", "-d", name)
	if err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", name, err)
	}
	return nil
}

// Push pushes the given refspecs to a remote
func (r *Repository) Push(ctx context.Context, remote string, refspecs ...string) error {
	args := append([]string{"push", remote}, refspecs...)
	if _, err := r.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to push to %s: %w", remote, err)
	}
	return nil
}
