// Package config loads and validates the release configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"

	shipiterrors "shipit.dev/shipit/internal/errors"
)

// DefaultConfigFile is the config path used when none is given
const DefaultConfigFile = ".release-config.toml"

// versionPlaceholder is the substring a marker template must contain
const versionPlaceholder = "{version}"

// Config is the top-level release configuration
type Config struct {
	Version VersionConfig `toml:"version"`
}

// VersionConfig controls version derivation and tag formatting.
// Pointer fields distinguish "absent" (defaulted) from explicitly empty.
type VersionConfig struct {
	Strategy       string       `toml:"strategy"`
	InitialVersion *string      `toml:"initial_version"`
	TagPrefix      *string      `toml:"tag_prefix"`
	TagSuffix      *string      `toml:"tag_suffix"`
	Files          []FileMarker `toml:"files"`
}

// FileMarker configures one required, exact-match, replace-all substitution
type FileMarker struct {
	Path     string `toml:"path"`
	Marker   string `toml:"marker"`
	Template string `toml:"template"`
}

// Load reads and validates the configuration at path.
// A missing or malformed file is a ConfigError; nothing touches the
// repository before configuration is known good.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, shipiterrors.NewConfigError(path, "cannot read configuration file", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, shipiterrors.NewConfigError(path, "invalid TOML", err)
	}

	if err := cfg.validate(path); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate(path string) error {
	if c.Version.Strategy != "" && c.Version.Strategy != "git_tags" {
		return shipiterrors.NewConfigError(path,
			fmt.Sprintf("unsupported version strategy %q", c.Version.Strategy), nil)
	}

	if _, err := semver.StrictNewVersion(c.InitialVersion()); err != nil {
		return shipiterrors.NewConfigError(path,
			fmt.Sprintf("invalid initial_version %q", c.InitialVersion()), err)
	}

	for i, f := range c.Version.Files {
		if f.Path == "" {
			return shipiterrors.NewConfigError(path,
				fmt.Sprintf("version.files[%d]: path is required", i), nil)
		}
		if f.Marker == "" {
			return shipiterrors.NewConfigError(path,
				fmt.Sprintf("version.files[%d]: marker is required", i), nil)
		}
		if f.Template != "" && !strings.Contains(f.Template, versionPlaceholder) {
			return shipiterrors.NewConfigError(path,
				fmt.Sprintf("version.files[%d]: template must contain %s", i, versionPlaceholder), nil)
		}
	}

	return nil
}

// InitialVersion returns the configured seed version, defaulting to 0.1.0
func (c *Config) InitialVersion() string {
	if c.Version.InitialVersion != nil {
		return *c.Version.InitialVersion
	}
	return "0.1.0"
}

// TagPrefix returns the tag prefix, defaulting to "v"
func (c *Config) TagPrefix() string {
	if c.Version.TagPrefix != nil {
		return *c.Version.TagPrefix
	}
	return "v"
}

// TagSuffix returns the tag suffix, defaulting to empty
func (c *Config) TagSuffix() string {
	if c.Version.TagSuffix != nil {
		return *c.Version.TagSuffix
	}
	return ""
}

// TagName formats the release tag for a version: {prefix}{major}.{minor}.{patch}{suffix}
func (c *Config) TagName(v *semver.Version) string {
	return fmt.Sprintf("%s%d.%d.%d%s", c.TagPrefix(), v.Major(), v.Minor(), v.Patch(), c.TagSuffix())
}

// Replacement returns the text a marker is replaced with for a version:
// the instantiated template when one is configured, the bare version otherwise.
func (f *FileMarker) Replacement(v *semver.Version) string {
	if f.Template != "" {
		return strings.ReplaceAll(f.Template, versionPlaceholder, v.String())
	}
	return v.String()
}
