// Package runtime provides the per-run context: output, credentials and
// environment-derived settings, bundled so command bodies take one value.
package runtime

import (
	"os"

	"shipit.dev/shipit/internal/output"
)

// Context provides access to output and environment for commands
type Context struct {
	Splog *output.Splog

	// Token is the GitHub credential for the publish collaborator
	Token string
	// RepoSlug is the owner/repo pair from GITHUB_REPOSITORY
	RepoSlug string
	// DryRunEnv is set when the DRY_RUN environment variable enables dry-run
	DryRunEnv bool
}

// NewContext creates a context from the process environment
func NewContext() *Context {
	return &Context{
		Splog:     output.NewSplog(),
		Token:     os.Getenv("GITHUB_TOKEN"),
		RepoSlug:  os.Getenv("GITHUB_REPOSITORY"),
		DryRunEnv: isTruthy(os.Getenv("DRY_RUN")),
	}
}

func isTruthy(v string) bool {
	switch v {
	case "1", "true", "TRUE", "True", "yes":
		return true
	default:
		return false
	}
}
