package release

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/require"

	"shipit.dev/shipit/internal/commit"
	"shipit.dev/shipit/internal/config"
)

func existing(branches ...string) func(string) bool {
	set := make(map[string]bool, len(branches))
	for _, b := range branches {
		set[b] = true
	}
	return func(name string) bool { return set[name] }
}

func TestBuildPlan(t *testing.T) {
	cfg := &config.Config{}
	seed := semver.MustParse("0.1.0")

	t.Run("patch stays on the current line", func(t *testing.T) {
		plan, err := BuildPlan(cfg, PlanInputs{
			Bump:         commit.BumpPatch,
			Tip:          semver.MustParse("1.0.0"),
			Seed:         seed,
			SourceRef:    "main",
			BranchExists: existing("main", "v1"),
		})
		require.NoError(t, err)
		require.Equal(t, "1.0.1", plan.Version.String())
		require.Equal(t, "v1", plan.TargetBranch)
		require.Equal(t, "v1.0.1", plan.Tag)
		require.False(t, plan.CreateTargetBranch)
		require.False(t, plan.IsNewMajorLine)
	})

	t.Run("minor stays on the current line", func(t *testing.T) {
		plan, err := BuildPlan(cfg, PlanInputs{
			Bump:         commit.BumpMinor,
			Tip:          semver.MustParse("2.3.1"),
			Seed:         seed,
			SourceRef:    "main",
			BranchExists: existing("main", "v1", "v2"),
		})
		require.NoError(t, err)
		require.Equal(t, "2.4.0", plan.Version.String())
		require.Equal(t, "v2", plan.TargetBranch)
		require.False(t, plan.CreateTargetBranch)
	})

	t.Run("major opens a new line from the previous line's branch", func(t *testing.T) {
		plan, err := BuildPlan(cfg, PlanInputs{
			Bump:         commit.BumpMajor,
			Tip:          semver.MustParse("2.3.1"),
			Seed:         seed,
			SourceRef:    "main",
			BranchExists: existing("main", "v1", "v2"),
		})
		require.NoError(t, err)
		require.Equal(t, "3.0.0", plan.Version.String())
		require.Equal(t, "v3", plan.TargetBranch)
		require.True(t, plan.IsNewMajorLine)
		require.True(t, plan.CreateTargetBranch)
		require.Equal(t, "v2", plan.BaseRef)
		require.Equal(t, "v3.0.0", plan.Tag)
	})

	t.Run("major without a previous branch starts from main", func(t *testing.T) {
		plan, err := BuildPlan(cfg, PlanInputs{
			Bump:         commit.BumpMajor,
			Tip:          semver.MustParse("1.5.0"),
			Seed:         seed,
			SourceRef:    "main",
			BranchExists: existing("main"),
		})
		require.NoError(t, err)
		require.Equal(t, "v2", plan.TargetBranch)
		require.Equal(t, "main", plan.BaseRef)
	})

	t.Run("first release ever with major bump", func(t *testing.T) {
		plan, err := BuildPlan(cfg, PlanInputs{
			Bump:         commit.BumpMajor,
			Tip:          nil,
			Seed:         seed,
			SourceRef:    "main",
			BranchExists: existing("main"),
		})
		require.NoError(t, err)
		require.Equal(t, "1.0.0", plan.Version.String())
		require.Equal(t, "v1", plan.TargetBranch)
		require.True(t, plan.IsNewMajorLine)
		require.Equal(t, "main", plan.BaseRef)
	})

	t.Run("first release ever with minor bump seeds from initial version", func(t *testing.T) {
		plan, err := BuildPlan(cfg, PlanInputs{
			Bump:         commit.BumpMinor,
			Tip:          nil,
			Seed:         seed,
			SourceRef:    "main",
			BranchExists: existing("main"),
		})
		require.NoError(t, err)
		require.Equal(t, "0.2.0", plan.Version.String())
		require.Equal(t, "v0", plan.TargetBranch)
		require.True(t, plan.CreateTargetBranch)
		require.False(t, plan.IsNewMajorLine)
		require.Equal(t, "main", plan.BaseRef)
	})

	t.Run("missing major-line branch is recreated from main", func(t *testing.T) {
		plan, err := BuildPlan(cfg, PlanInputs{
			Bump:         commit.BumpPatch,
			Tip:          semver.MustParse("1.0.0"),
			Seed:         seed,
			SourceRef:    "main",
			BranchExists: existing("main"),
		})
		require.NoError(t, err)
		require.Equal(t, "v1", plan.TargetBranch)
		require.True(t, plan.CreateTargetBranch)
		require.Equal(t, "main", plan.BaseRef)
	})

	t.Run("none never reaches planning", func(t *testing.T) {
		_, err := BuildPlan(cfg, PlanInputs{
			Bump:         commit.BumpNone,
			Seed:         seed,
			SourceRef:    "main",
			BranchExists: existing("main"),
		})
		require.Error(t, err)
	})

	t.Run("tag format honors prefix and suffix", func(t *testing.T) {
		prefix, suffix := "release-", "-lts"
		custom := &config.Config{Version: config.VersionConfig{TagPrefix: &prefix, TagSuffix: &suffix}}
		plan, err := BuildPlan(custom, PlanInputs{
			Bump:         commit.BumpPatch,
			Tip:          semver.MustParse("1.0.0"),
			Seed:         seed,
			SourceRef:    "main",
			BranchExists: existing("main", "v1"),
		})
		require.NoError(t, err)
		require.Equal(t, "release-1.0.1-lts", plan.Tag)
	})
}
