package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteActionOutputs(t *testing.T) {
	t.Run("appends sorted key=value lines to GITHUB_OUTPUT", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "outputs")
		require.NoError(t, os.WriteFile(path, []byte("existing=1\n"), 0644))
		t.Setenv("GITHUB_OUTPUT", path)

		err := WriteActionOutputs(map[string]string{
			"version":  "1.2.3",
			"released": "true",
			"tag":      "v1.2.3",
		})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "existing=1\nreleased=true\ntag=v1.2.3\nversion=1.2.3\n", string(data))
	})

	t.Run("does not fail without GITHUB_OUTPUT", func(t *testing.T) {
		t.Setenv("GITHUB_OUTPUT", "")
		require.NoError(t, WriteActionOutputs(map[string]string{"released": "false"}))
	})
}
