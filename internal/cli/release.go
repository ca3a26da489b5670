package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"shipit.dev/shipit/internal/config"
	"shipit.dev/shipit/internal/git"
	"shipit.dev/shipit/internal/github"
	"shipit.dev/shipit/internal/output"
	"shipit.dev/shipit/internal/release"
	"shipit.dev/shipit/internal/runtime"
)

func newReleaseCmd() *cobra.Command {
	var (
		configFile string
		workingDir string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Release from the most recent commit, if it calls for one",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := runtime.NewContext()

			repo, err := git.Open(workingDir)
			if err != nil {
				rt.Splog.Error("%v", err)
				return err
			}

			opts := release.Options{
				ConfigFile: configFile,
				DryRun:     dryRun || rt.DryRunEnv,
			}

			outcome, err := release.Run(cmd.Context(), repo, opts, rt.Splog)
			if err != nil {
				rt.Splog.Error("%v", err)
				return err
			}

			if outcome.Released && !outcome.DryRun {
				publisher, err := github.NewPublisher(cmd.Context(), rt.Token, rt.RepoSlug)
				if err != nil {
					emitOutputs(rt.Splog, outcome)
					rt.Splog.Error("%v", err)
					return err
				}

				url, err := publisher.Publish(cmd.Context(), repo, outcome.Branch, outcome.Tag)
				if err != nil {
					// The local commit and tag exist; report them even
					// though the run fails.
					emitOutputs(rt.Splog, outcome)
					rt.Splog.Error("%v", err)
					return err
				}
				outcome.ReleaseURL = url
				rt.Splog.Success("Published release %s: %s", outcome.Tag, url)
			}

			if outcome.Released && outcome.DryRun {
				rt.Splog.Success("Dry run: release %s is feasible", outcome.Tag)
			}

			return emitOutputs(rt.Splog, outcome)
		},
	}

	cmd.Flags().StringVar(&configFile, "config-file", config.DefaultConfigFile, "path to the release configuration file")
	cmd.Flags().StringVar(&workingDir, "working-directory", ".", "repository working directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the release plan without mutating the repository")

	return cmd
}

func emitOutputs(splog *output.Splog, outcome *release.Outcome) error {
	outputs := map[string]string{
		"released": strconv.FormatBool(outcome.Released),
	}
	if outcome.Released {
		outputs["version"] = outcome.Version
		outputs["tag"] = outcome.Tag
	}
	if outcome.ReleaseURL != "" {
		outputs["release-url"] = outcome.ReleaseURL
	}

	if err := output.WriteActionOutputs(outputs); err != nil {
		splog.Warn("failed to write action outputs: %v", err)
		return err
	}
	return nil
}
