// Package cli defines the shipit command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shipit",
		Short: "Shipit cuts semantic releases from conventional commits across major-version branch lines",
		Long: `Shipit inspects the most recent commit on the main line, decides whether it
calls for a release, computes the next semantic version from the repository's
tags, and materializes the release as a branch/merge/commit/tag sequence on
the matching major-version line.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newReleaseCmd())

	return rootCmd
}
