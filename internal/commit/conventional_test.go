package commit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	shipiterrors "shipit.dev/shipit/internal/errors"
)

func TestParse(t *testing.T) {
	t.Run("simple commit", func(t *testing.T) {
		msg, err := Parse("feat: add new feature")
		require.NoError(t, err)
		require.Equal(t, "feat", msg.Type)
		require.Empty(t, msg.Scope)
		require.Equal(t, "add new feature", msg.Description)
		require.False(t, msg.Breaking)
	})

	t.Run("commit with scope", func(t *testing.T) {
		msg, err := Parse("fix(api): resolve login issue")
		require.NoError(t, err)
		require.Equal(t, "fix", msg.Type)
		require.Equal(t, "api", msg.Scope)
		require.Equal(t, "resolve login issue", msg.Description)
	})

	t.Run("breaking change with exclamation", func(t *testing.T) {
		msg, err := Parse("feat!: remove deprecated API")
		require.NoError(t, err)
		require.Equal(t, "feat", msg.Type)
		require.True(t, msg.Breaking)
	})

	t.Run("breaking change with scope and exclamation", func(t *testing.T) {
		msg, err := Parse("feat(api)!: remove old endpoint")
		require.NoError(t, err)
		require.Equal(t, "api", msg.Scope)
		require.True(t, msg.Breaking)
	})

	t.Run("breaking change body marker", func(t *testing.T) {
		msg, err := Parse("fix: tighten validation\n\nBREAKING CHANGE: rejects empty payloads")
		require.NoError(t, err)
		require.Equal(t, "fix", msg.Type)
		require.True(t, msg.Breaking)
	})

	t.Run("body marker is case sensitive", func(t *testing.T) {
		msg, err := Parse("fix: tighten validation\n\nbreaking change: rejects empty payloads")
		require.NoError(t, err)
		require.False(t, msg.Breaking)
	})

	t.Run("body marker must start the line", func(t *testing.T) {
		msg, err := Parse("fix: x\n\nnote that BREAKING CHANGE: is discussed here")
		require.NoError(t, err)
		require.False(t, msg.Breaking)
	})

	t.Run("only the header line is parsed for structure", func(t *testing.T) {
		msg, err := Parse("chore: update deps\n\nfeat: this is body text, not a header")
		require.NoError(t, err)
		require.Equal(t, "chore", msg.Type)
	})

	t.Run("missing colon is malformed", func(t *testing.T) {
		_, err := Parse("invalid message format")
		require.Error(t, err)
		require.ErrorIs(t, err, shipiterrors.ErrMalformedCommit)

		var malformed *shipiterrors.MalformedCommitError
		require.True(t, errors.As(err, &malformed))
		require.Equal(t, "invalid message format", malformed.Header)
	})

	t.Run("unclosed scope is malformed", func(t *testing.T) {
		_, err := Parse("feat(scope: missing closing paren")
		require.ErrorIs(t, err, shipiterrors.ErrMalformedCommit)
	})

	t.Run("empty description is malformed", func(t *testing.T) {
		_, err := Parse("feat: ")
		require.ErrorIs(t, err, shipiterrors.ErrMalformedCommit)
	})

	t.Run("merge commit default message is malformed", func(t *testing.T) {
		_, err := Parse("Merge pull request #42 from some/branch")
		require.ErrorIs(t, err, shipiterrors.ErrMalformedCommit)
	})
}

func TestClassify(t *testing.T) {
	cases := []struct {
		message string
		want    Bump
	}{
		{"feat: x", BumpMinor},
		{"fix: y", BumpPatch},
		{"feat!: z", BumpMajor},
		{"fix!: z", BumpMajor},
		{"chore: y", BumpNone},
		{"docs: y", BumpNone},
		{"refactor(core): y", BumpNone},
		{"chore: y\n\nBREAKING CHANGE: config format changed", BumpMajor},
		{"not a conventional commit", BumpNone},
		{"Merge pull request #7 from feature/login", BumpNone},
	}

	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			require.Equal(t, tc.want, ClassifyText(tc.message))
		})
	}
}

func TestBumpOrdering(t *testing.T) {
	// Major > Minor > Patch > None, used for precedence comparisons
	require.Greater(t, BumpMajor, BumpMinor)
	require.Greater(t, BumpMinor, BumpPatch)
	require.Greater(t, BumpPatch, BumpNone)
}

func TestBumpString(t *testing.T) {
	require.Equal(t, "major", BumpMajor.String())
	require.Equal(t, "minor", BumpMinor.String())
	require.Equal(t, "patch", BumpPatch.String())
	require.Equal(t, "none", BumpNone.String())
}
