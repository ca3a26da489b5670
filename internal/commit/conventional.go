// Package commit parses conventional commit messages and classifies the
// version bump a change calls for.
package commit

import (
	"strings"

	conventionalcommits "github.com/leodido/go-conventionalcommits"
	"github.com/leodido/go-conventionalcommits/parser"

	shipiterrors "shipit.dev/shipit/internal/errors"
)

// breakingChangeMarker is the literal, case-sensitive body marker
const breakingChangeMarker = "BREAKING CHANGE:"

// Message is a parsed conventional commit. Immutable once parsed.
type Message struct {
	Raw         string
	Header      string
	Type        string
	Scope       string
	Description string
	// Breaking is set by the header `!` or a body line starting with
	// BREAKING CHANGE:, independent of the commit type.
	Breaking bool
}

// Parse parses a raw commit message into a Message. The header goes through
// the conventional-commit machine with free-form types, so any alphabetic
// type is structurally valid; classification decides what releases. A
// nonconforming header returns a MalformedCommitError; callers treat that as
// a non-releasing commit, never as a fatal condition.
func Parse(text string) (*Message, error) {
	lines := strings.Split(text, "\n")
	header := strings.TrimRight(lines[0], "\r")

	machine := parser.NewMachine(conventionalcommits.WithTypes(conventionalcommits.TypesFreeForm))
	res, err := machine.Parse([]byte(header))
	if err != nil {
		return nil, shipiterrors.NewMalformedCommitError(header, err.Error())
	}
	cc, ok := res.(*conventionalcommits.ConventionalCommit)
	if !ok || !cc.Ok() {
		return nil, shipiterrors.NewMalformedCommitError(header, "not a conventional commit header")
	}

	msg := &Message{
		Raw:         text,
		Header:      header,
		Type:        cc.Type,
		Description: cc.Description,
		Breaking:    cc.Exclamation,
	}
	if cc.Scope != nil {
		msg.Scope = *cc.Scope
	}

	// The body scan is ours: the contract is a literal, case-sensitive
	// BREAKING CHANGE: starting any body line, looser than the footer
	// grammar the machine applies.
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, breakingChangeMarker) {
			msg.Breaking = true
			break
		}
	}

	return msg, nil
}
