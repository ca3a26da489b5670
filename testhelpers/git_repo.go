// Package testhelpers provides fixtures for driving real git repositories
// in tests.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRepo represents a Git repository for testing purposes
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new Git repository in the specified directory
// with a main default branch and a test user configured.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	// Use git -c flags to avoid reading global config and set local configs
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	// Configure Git user (required for commits)
	if err := repo.RunGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.RunGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}

	return repo, nil
}

// RunGitCommand executes a git command in the repository directory
func (r *GitRepo) RunGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git %s failed: %s: %w", strings.Join(args, " "), string(out), err)
	}
	return nil
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// WriteFile writes a file inside the repository, creating parent directories
func (r *GitRepo) WriteFile(path, content string) error {
	full := filepath.Join(r.Dir, path)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, []byte(content), 0644)
}

// ReadFile reads a file from the repository
func (r *GitRepo) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.Dir, path))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CreateChangeAndCommit writes (or appends to) a file and commits it with
// the given message
func (r *GitRepo) CreateChangeAndCommit(path, content, message string) error {
	if err := r.WriteFile(path, content); err != nil {
		return err
	}
	if err := r.RunGitCommand("add", "-A"); err != nil {
		return err
	}
	return r.RunGitCommand("commit", "-m", message)
}

// CreateAnnotatedTag creates an annotated tag at HEAD
func (r *GitRepo) CreateAnnotatedTag(name string) error {
	return r.RunGitCommand("tag", "-a", name, "-m", name)
}

// CreateBranch creates a branch at HEAD without checking it out
func (r *GitRepo) CreateBranch(name string) error {
	return r.RunGitCommand("branch", name)
}

// Checkout checks out a branch
func (r *GitRepo) Checkout(name string) error {
	return r.RunGitCommand("checkout", name)
}

// CurrentBranch returns the current branch name
func (r *GitRepo) CurrentBranch() (string, error) {
	return r.RunGitCommandAndGetOutput("branch", "--show-current")
}

// HeadSHA returns the SHA of HEAD
func (r *GitRepo) HeadSHA() (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", "HEAD")
}

// ListBranches returns all local branch names
func (r *GitRepo) ListBranches() ([]string, error) {
	out, err := r.RunGitCommandAndGetOutput("for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// ListTags returns all tag names
func (r *GitRepo) ListTags() ([]string, error) {
	out, err := r.RunGitCommandAndGetOutput("tag", "--list")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}
