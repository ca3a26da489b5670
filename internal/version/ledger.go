// Package version reconstructs the release state of a repository from its
// tag set and computes next versions.
package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"shipit.dev/shipit/internal/commit"
)

// Ledger indexes the highest released version per major line, built once
// per run from the full tag list. Only tags of the exact form
// prefix + major.minor.patch + suffix participate.
type Ledger struct {
	byMajor map[uint64]*semver.Version
}

// NewLedger builds a ledger from tag names, stripping the configured
// prefix and suffix. Tags that do not strip cleanly to a plain
// major.minor.patch version are ignored.
func NewLedger(tagNames []string, prefix, suffix string) *Ledger {
	l := &Ledger{byMajor: make(map[uint64]*semver.Version)}

	for _, name := range tagNames {
		v, ok := parseTag(name, prefix, suffix)
		if !ok {
			continue
		}
		if tip, exists := l.byMajor[v.Major()]; !exists || v.GreaterThan(tip) {
			l.byMajor[v.Major()] = v
		}
	}

	return l
}

func parseTag(name, prefix, suffix string) (*semver.Version, bool) {
	if prefix != "" {
		if !strings.HasPrefix(name, prefix) {
			return nil, false
		}
		name = name[len(prefix):]
	}
	if suffix != "" {
		if !strings.HasSuffix(name, suffix) {
			return nil, false
		}
		name = name[:len(name)-len(suffix)]
	}

	v, err := semver.StrictNewVersion(name)
	if err != nil {
		return nil, false
	}
	// Pre-release or build metadata means this is not a plain release tag
	if v.Prerelease() != "" || v.Metadata() != "" {
		return nil, false
	}
	return v, true
}

// Tip returns the current tip: the highest version within the numerically
// highest major line. The second return is false when no release exists.
// Lower major lines are never tips; fixes and features always land on the
// frontmost line.
func (l *Ledger) Tip() (*semver.Version, bool) {
	var tip *semver.Version
	for _, v := range l.byMajor {
		if tip == nil || v.Major() > tip.Major() {
			tip = v
		}
	}
	if tip == nil {
		return nil, false
	}
	return tip, true
}

// HasMajor reports whether any release exists on the given major line
func (l *Ledger) HasMajor(major uint64) bool {
	_, ok := l.byMajor[major]
	return ok
}

// Next applies a bump to the current version.
// Major → (M+1, 0, 0); Minor → (M, m+1, 0); Patch → (M, m, p+1).
func Next(current *semver.Version, bump commit.Bump) *semver.Version {
	switch bump {
	case commit.BumpMajor:
		v := current.IncMajor()
		return &v
	case commit.BumpMinor:
		v := current.IncMinor()
		return &v
	case commit.BumpPatch:
		v := current.IncPatch()
		return &v
	default:
		return current
	}
}
