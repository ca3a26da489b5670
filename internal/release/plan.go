// Package release computes and executes release plans: the branch, version
// and git mutations a releasing commit calls for.
package release

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"shipit.dev/shipit/internal/commit"
	"shipit.dev/shipit/internal/config"
	"shipit.dev/shipit/internal/version"
)

// Plan describes one release as computed before any mutation.
// It is immutable and either fully applied or not applied at all.
type Plan struct {
	Bump    commit.Bump
	Version *semver.Version
	Tag     string

	// TargetBranch is the major-line branch the release lands on (v<major>)
	TargetBranch string
	// SourceRef is the main line's current position, merged into TargetBranch
	SourceRef string
	// BaseRef is the ref TargetBranch is created from when it does not exist
	BaseRef string
	// CreateTargetBranch is set when TargetBranch must be created first
	CreateTargetBranch bool
	// IsNewMajorLine is set when this release opens a new major line
	IsNewMajorLine bool
}

// PlanInputs carries the repository facts planning needs. BranchExists is
// the only repository query; everything else is an immutable value.
type PlanInputs struct {
	Bump commit.Bump
	// Tip is the ledger's current tip, nil when no release exists yet
	Tip *semver.Version
	// Seed is the configured initial version, used when Tip is nil
	Seed *semver.Version
	// SourceRef is the main line's current HEAD (branch name or SHA)
	SourceRef    string
	BranchExists func(name string) bool
}

// BranchForMajor returns the branch name for a major line
func BranchForMajor(major uint64) string {
	return fmt.Sprintf("v%d", major)
}

// BuildPlan computes a release plan from a bump and the ledger tip.
// Planning is pure apart from branch-existence checks, so dry runs and
// real runs share it. Bump None never reaches this function.
func BuildPlan(cfg *config.Config, in PlanInputs) (*Plan, error) {
	if in.Bump == commit.BumpNone {
		return nil, fmt.Errorf("cannot plan a release for a non-releasing commit")
	}

	current := in.Tip
	hasPrior := current != nil
	if !hasPrior {
		current = in.Seed
	}
	if current == nil {
		return nil, fmt.Errorf("no current version: ledger tip and seed are both unset")
	}

	next := version.Next(current, in.Bump)

	plan := &Plan{
		Bump:      in.Bump,
		Version:   next,
		Tag:       cfg.TagName(next),
		SourceRef: in.SourceRef,
	}

	if in.Bump == commit.BumpMajor {
		plan.TargetBranch = BranchForMajor(next.Major())
		if !in.BranchExists(plan.TargetBranch) {
			plan.IsNewMajorLine = true
			plan.CreateTargetBranch = true
			// The new line starts from the previous major's branch tip
			// when one exists, otherwise from main.
			prevBranch := BranchForMajor(current.Major())
			if hasPrior && in.BranchExists(prevBranch) {
				plan.BaseRef = prevBranch
			} else {
				plan.BaseRef = in.SourceRef
			}
		}
		return plan, nil
	}

	// Minor and Patch stay on the current frontmost line
	plan.TargetBranch = BranchForMajor(current.Major())
	if !in.BranchExists(plan.TargetBranch) {
		plan.CreateTargetBranch = true
		plan.BaseRef = in.SourceRef
	}
	return plan, nil
}
