package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/require"

	shipiterrors "shipit.dev/shipit/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".release-config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full configuration", func(t *testing.T) {
		path := writeConfig(t, `
[version]
strategy = "git_tags"
initial_version = "1.0.0"
tag_prefix = "release-"
tag_suffix = "-stable"

[[version.files]]
path = "Cargo.toml"
marker = "0.0.0+local"

[[version.files]]
path = "README.md"
marker = "__VERSION__"
template = "version {version}"
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "1.0.0", cfg.InitialVersion())
		require.Equal(t, "release-", cfg.TagPrefix())
		require.Equal(t, "-stable", cfg.TagSuffix())
		require.Len(t, cfg.Version.Files, 2)
		require.Equal(t, "0.0.0+local", cfg.Version.Files[0].Marker)
	})

	t.Run("defaults apply when keys are absent", func(t *testing.T) {
		path := writeConfig(t, `
[version]
strategy = "git_tags"
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "0.1.0", cfg.InitialVersion())
		require.Equal(t, "v", cfg.TagPrefix())
		require.Equal(t, "", cfg.TagSuffix())
	})

	t.Run("explicitly empty prefix is honored", func(t *testing.T) {
		path := writeConfig(t, `
[version]
tag_prefix = ""
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "", cfg.TagPrefix())
	})

	t.Run("missing file is a config error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		require.ErrorIs(t, err, shipiterrors.ErrConfig)
	})

	t.Run("malformed TOML is a config error", func(t *testing.T) {
		path := writeConfig(t, "[version\nbroken")
		_, err := Load(path)
		require.ErrorIs(t, err, shipiterrors.ErrConfig)
	})

	t.Run("unknown strategy is rejected", func(t *testing.T) {
		path := writeConfig(t, `
[version]
strategy = "changelog"
`)
		_, err := Load(path)
		require.ErrorIs(t, err, shipiterrors.ErrConfig)
	})

	t.Run("invalid initial version is rejected", func(t *testing.T) {
		path := writeConfig(t, `
[version]
initial_version = "one.two"
`)
		_, err := Load(path)
		require.ErrorIs(t, err, shipiterrors.ErrConfig)
	})

	t.Run("file rule without marker is rejected", func(t *testing.T) {
		path := writeConfig(t, `
[version]

[[version.files]]
path = "README.md"
`)
		_, err := Load(path)
		require.ErrorIs(t, err, shipiterrors.ErrConfig)
	})

	t.Run("template without placeholder is rejected", func(t *testing.T) {
		path := writeConfig(t, `
[version]

[[version.files]]
path = "README.md"
marker = "X"
template = "no placeholder here"
`)
		_, err := Load(path)
		require.ErrorIs(t, err, shipiterrors.ErrConfig)
	})
}

func TestTagName(t *testing.T) {
	t.Run("default prefix", func(t *testing.T) {
		cfg := &Config{}
		require.Equal(t, "v1.2.3", cfg.TagName(semver.MustParse("1.2.3")))
	})

	t.Run("prefix and suffix", func(t *testing.T) {
		prefix, suffix := "release-", "-stable"
		cfg := &Config{Version: VersionConfig{TagPrefix: &prefix, TagSuffix: &suffix}}
		require.Equal(t, "release-2.0.0-stable", cfg.TagName(semver.MustParse("2.0.0")))
	})
}

func TestReplacement(t *testing.T) {
	v := semver.MustParse("1.4.0")

	t.Run("bare version without template", func(t *testing.T) {
		f := FileMarker{Path: "a", Marker: "X"}
		require.Equal(t, "1.4.0", f.Replacement(v))
	})

	t.Run("template instantiation", func(t *testing.T) {
		f := FileMarker{Path: "a", Marker: "X", Template: `version = "{version}"`}
		require.Equal(t, `version = "1.4.0"`, f.Replacement(v))
	})
}
