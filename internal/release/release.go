package release

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"shipit.dev/shipit/internal/commit"
	"shipit.dev/shipit/internal/config"
	"shipit.dev/shipit/internal/git"
	"shipit.dev/shipit/internal/output"
	"shipit.dev/shipit/internal/version"
)

// Options configures a release run
type Options struct {
	ConfigFile string
	DryRun     bool
}

// Run decides, from the single most recent commit, whether a release
// should occur, and performs it. A non-releasing commit is a successful
// no-op with Released=false. The caller owns the repository handle for
// the run's duration; all git state flows through it.
func Run(ctx context.Context, repo *git.Repository, opts Options, splog *output.Splog) (*Outcome, error) {
	configPath := opts.ConfigFile
	if configPath == "" {
		configPath = config.DefaultConfigFile
	}
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(repo.Root(), configPath)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	head, err := repo.HeadCommit()
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD: %w", err)
	}
	message, err := repo.CommitMessage(head)
	if err != nil {
		return nil, err
	}

	bump := commit.ClassifyText(message)
	splog.Debug("commit %s classified as %s", head, bump)
	if bump == commit.BumpNone {
		splog.Info("ℹ️  Commit does not trigger a release")
		return &Outcome{Released: false, DryRun: opts.DryRun}, nil
	}

	tags, err := repo.ListTags("")
	if err != nil {
		return nil, err
	}
	tagNames := make([]string, len(tags))
	for i, t := range tags {
		tagNames[i] = t.Name
	}

	ledger := version.NewLedger(tagNames, cfg.TagPrefix(), cfg.TagSuffix())
	tip, hasPrior := ledger.Tip()

	// Re-running against a HEAD that the tip release already contains is a
	// guarded no-op so CI retries stay safe.
	if hasPrior {
		tipTag := cfg.TagName(tip)
		for _, t := range tags {
			if t.Name != tipTag {
				continue
			}
			contained, err := repo.IsAncestor(ctx, head, t.SHA)
			if err != nil {
				return nil, err
			}
			if contained {
				splog.Warn("HEAD is already part of release %s; nothing to release", tipTag)
				return &Outcome{Released: false, DryRun: opts.DryRun}, nil
			}
			break
		}
	}

	seed, err := semver.StrictNewVersion(cfg.InitialVersion())
	if err != nil {
		// Load already validated this; re-check keeps the invariant local
		return nil, err
	}

	sourceRef, err := repo.CurrentBranch()
	if err != nil {
		// Detached HEAD: merge the exact commit instead of a branch name
		sourceRef = head
	}

	var tipForPlan *semver.Version
	if hasPrior {
		tipForPlan = tip
	}

	plan, err := BuildPlan(cfg, PlanInputs{
		Bump:         bump,
		Tip:          tipForPlan,
		Seed:         seed,
		SourceRef:    sourceRef,
		BranchExists: repo.BranchExists,
	})
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		return Validate(ctx, repo, cfg, plan, splog)
	}
	return Execute(ctx, repo, cfg, plan, splog)
}
