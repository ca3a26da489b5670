package release

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"shipit.dev/shipit/internal/config"
	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/internal/git"
)

// UpdateMarkers rewrites every configured file, replacing all occurrences
// of its marker with the version (or instantiated template). A marker with
// zero occurrences, or a missing file, fails the release: shipping a file
// that silently kept its placeholder is a configuration bug.
func UpdateMarkers(repo *git.Repository, files []config.FileMarker, v *semver.Version) error {
	for i := range files {
		f := &files[i]

		data, err := repo.ReadFile(f.Path)
		if err != nil {
			return shipiterrors.NewMarkerNotFoundError(f.Path, f.Marker)
		}

		content := string(data)
		if !strings.Contains(content, f.Marker) {
			return shipiterrors.NewMarkerNotFoundError(f.Path, f.Marker)
		}

		updated := strings.ReplaceAll(content, f.Marker, f.Replacement(v))
		if err := repo.WriteFile(f.Path, []byte(updated)); err != nil {
			return fmt.Errorf("failed to update %s: %w", f.Path, err)
		}
	}
	return nil
}

// VerifyMarkers checks that every configured marker is present without
// rewriting anything. Used by dry runs.
func VerifyMarkers(repo *git.Repository, files []config.FileMarker) error {
	for i := range files {
		f := &files[i]

		data, err := repo.ReadFile(f.Path)
		if err != nil {
			return shipiterrors.NewMarkerNotFoundError(f.Path, f.Marker)
		}
		if !strings.Contains(string(data), f.Marker) {
			return shipiterrors.NewMarkerNotFoundError(f.Path, f.Marker)
		}
	}
	return nil
}
