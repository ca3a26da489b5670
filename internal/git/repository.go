package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	shipiterrors "shipit.dev/shipit/internal/errors"
)

// trustState tracks the safe-directory recovery state machine during Open.
// The retry happens at most once; a second ownership failure is fatal.
type trustState int

const (
	trustUnconfigured trustState = iota
	trustConfiguring
	trustOpened
	trustFailed
)

// Repository owns the single git handle for a release run. All repository
// reads and mutations go through it; no other component touches git state.
type Repository struct {
	repo   *gogit.Repository
	runner *CommandRunner
	path   string
}

// Open opens the repository at path, registering it as a safe directory
// and retrying once if git refuses to operate on it because its on-disk
// ownership differs from the running user (typical of container bind-mounts).
func Open(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, shipiterrors.NewRepositoryAccessError(path, err)
	}

	runner := NewCommandRunner(absPath)

	state := trustUnconfigured
	for {
		// Probe with a real git command: go-git does not enforce
		// safe.directory, but every mutation we shell out later will.
		_, probeErr := runner.Run(context.Background(), "rev-parse", "--git-dir")
		if probeErr == nil {
			state = trustOpened
			break
		}

		if state == trustUnconfigured && isDubiousOwnership(probeErr) {
			state = trustConfiguring
			if _, err := runner.Run(context.Background(), "config", "--global", "--add", "safe.directory", absPath); err != nil {
				return nil, shipiterrors.NewRepositoryAccessError(absPath, err)
			}
			continue
		}

		state = trustFailed
		return nil, shipiterrors.NewRepositoryAccessError(absPath, probeErr)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, shipiterrors.NewRepositoryAccessError(absPath, err)
	}

	return &Repository{
		repo:   repo,
		runner: runner,
		path:   absPath,
	}, nil
}

// isDubiousOwnership reports whether err is git's ownership-trust refusal
func isDubiousOwnership(err error) bool {
	var cmdErr *shipiterrors.GitCommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	return strings.Contains(cmdErr.Stderr, "dubious ownership") ||
		strings.Contains(cmdErr.Stderr, "unsafe repository")
}

// Root returns the repository root directory
func (r *Repository) Root() string {
	return r.path
}

// HeadCommit returns the SHA of the current HEAD commit
func (r *Repository) HeadCommit() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// CurrentBranch returns the current branch name
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is not on a branch")
	}
	return head.Name().Short(), nil
}

// CommitMessage returns the full commit message for the given SHA
func (r *Repository) CommitMessage(sha string) (string, error) {
	commit, err := r.repo.CommitObject(plumbing.NewHash(sha))
	if err != nil {
		return "", fmt.Errorf("failed to get commit %s: %w", sha, err)
	}
	return commit.Message, nil
}

// BranchExists reports whether a local branch exists
func (r *Repository) BranchExists(name string) bool {
	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	return err == nil
}

// TagExists reports whether a tag with the given name exists
func (r *Repository) TagExists(name string) bool {
	_, err := r.repo.Reference(plumbing.NewTagReferenceName(name), true)
	return err == nil
}

// RevParse resolves a ref to a commit SHA
func (r *Repository) RevParse(ctx context.Context, ref string) (string, error) {
	sha, err := r.runner.Run(ctx, "rev-parse", ref)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", ref, err)
	}
	return sha, nil
}

// IsAncestor checks if ancestor is an ancestor of descendant
func (r *Repository) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	_, err := r.runner.Run(ctx, "merge-base", "--is-ancestor", ancestor, descendant)
	if err == nil {
		return true, nil
	}
	var cmdErr *shipiterrors.GitCommandError
	if errors.As(err, &cmdErr) && cmdErr.Stderr == "" {
		// Exit status 1 with no stderr means "not an ancestor"
		return false, nil
	}
	return false, err
}
