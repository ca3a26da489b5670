// Package errors provides sentinel errors and custom error types for the shipit application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrConfig indicates that the release configuration is missing or malformed
	ErrConfig = errors.New("invalid release configuration")

	// ErrRepositoryAccess indicates that the repository could not be opened
	ErrRepositoryAccess = errors.New("repository access failed")

	// ErrMergeConflict indicates that merging the main branch produced conflicts
	ErrMergeConflict = errors.New("merge conflict")

	// ErrMarkerNotFound indicates that a configured version marker has no occurrences
	ErrMarkerNotFound = errors.New("version marker not found")

	// ErrRemoteAPI indicates that pushing refs or publishing the release failed
	ErrRemoteAPI = errors.New("remote API failure")

	// ErrMalformedCommit indicates that a commit message is not a conventional commit.
	// Never fatal to a run: callers downgrade it to a non-releasing classification.
	ErrMalformedCommit = errors.New("malformed conventional commit")
)

// ConfigError represents a missing or malformed release configuration
type ConfigError struct {
	Path    string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("config: %s", e.Message)
}

// Is returns true if the target error is ErrConfig
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(path, message string, err error) *ConfigError {
	return &ConfigError{Path: path, Message: message, Err: err}
}

// RepositoryAccessError represents a failure to open the repository,
// including the case where the one-shot trust registration also failed.
type RepositoryAccessError struct {
	Path string
	Err  error
}

func (e *RepositoryAccessError) Error() string {
	return fmt.Sprintf("failed to open repository at %s: %v", e.Path, e.Err)
}

// Is returns true if the target error is ErrRepositoryAccess
func (e *RepositoryAccessError) Is(target error) bool {
	return target == ErrRepositoryAccess
}

func (e *RepositoryAccessError) Unwrap() error {
	return e.Err
}

// NewRepositoryAccessError creates a new RepositoryAccessError
func NewRepositoryAccessError(path string, err error) *RepositoryAccessError {
	return &RepositoryAccessError{Path: path, Err: err}
}

// MergeConflictError represents a merge that produced conflicts.
// The plan is aborted and the working tree restored before this is returned.
type MergeConflictError struct {
	SourceRef    string
	TargetBranch string
	Paths        []string
}

func (e *MergeConflictError) Error() string {
	if len(e.Paths) > 0 {
		return fmt.Sprintf("merging %s into %s conflicts in: %s",
			e.SourceRef, e.TargetBranch, strings.Join(e.Paths, ", "))
	}
	return fmt.Sprintf("merging %s into %s produced conflicts", e.SourceRef, e.TargetBranch)
}

// Is returns true if the target error is ErrMergeConflict
func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}

// NewMergeConflictError creates a new MergeConflictError
func NewMergeConflictError(sourceRef, targetBranch string, paths []string) *MergeConflictError {
	return &MergeConflictError{SourceRef: sourceRef, TargetBranch: targetBranch, Paths: paths}
}

// MarkerNotFoundError represents a configured marker with zero occurrences in its file.
// Treated as a configuration bug rather than silently shipping an unupdated file.
type MarkerNotFoundError struct {
	Path   string
	Marker string
}

func (e *MarkerNotFoundError) Error() string {
	return fmt.Sprintf("marker %q not found in %s", e.Marker, e.Path)
}

// Is returns true if the target error is ErrMarkerNotFound
func (e *MarkerNotFoundError) Is(target error) bool {
	return target == ErrMarkerNotFound
}

// NewMarkerNotFoundError creates a new MarkerNotFoundError
func NewMarkerNotFoundError(path, marker string) *MarkerNotFoundError {
	return &MarkerNotFoundError{Path: path, Marker: marker}
}

// RemoteAPIError represents a failure pushing refs or publishing the release.
// The local commit and tag already exist when this is returned.
type RemoteAPIError struct {
	Operation string
	Err       error
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

// Is returns true if the target error is ErrRemoteAPI
func (e *RemoteAPIError) Is(target error) bool {
	return target == ErrRemoteAPI
}

func (e *RemoteAPIError) Unwrap() error {
	return e.Err
}

// NewRemoteAPIError creates a new RemoteAPIError
func NewRemoteAPIError(operation string, err error) *RemoteAPIError {
	return &RemoteAPIError{Operation: operation, Err: err}
}

// MalformedCommitError represents a commit message that does not match
// the conventional commit header form.
type MalformedCommitError struct {
	Header string
	Reason string
}

func (e *MalformedCommitError) Error() string {
	return fmt.Sprintf("malformed commit header %q: %s", e.Header, e.Reason)
}

// Is returns true if the target error is ErrMalformedCommit
func (e *MalformedCommitError) Is(target error) bool {
	return target == ErrMalformedCommit
}

// NewMalformedCommitError creates a new MalformedCommitError
func NewMalformedCommitError(header, reason string) *MalformedCommitError {
	return &MalformedCommitError{Header: header, Reason: reason}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
