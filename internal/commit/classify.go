package commit

// Bump is the kind of version bump a commit calls for.
// The order Major > Minor > Patch > None holds for comparisons.
type Bump int

const (
	// BumpNone means the commit does not trigger a release
	BumpNone Bump = iota
	// BumpPatch increments the patch component
	BumpPatch
	// BumpMinor increments the minor component
	BumpMinor
	// BumpMajor increments the major component and opens a new major line
	BumpMajor
)

// String returns the lowercase name of the bump kind
func (b Bump) String() string {
	switch b {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	case BumpPatch:
		return "patch"
	default:
		return "none"
	}
}

// Classify maps a parsed message to a version bump.
// Breaking changes win regardless of type; feat is minor, fix is patch,
// every other type is uniformly non-releasing.
func Classify(msg *Message) Bump {
	if msg == nil {
		return BumpNone
	}
	if msg.Breaking {
		return BumpMajor
	}
	switch msg.Type {
	case "feat":
		return BumpMinor
	case "fix":
		return BumpPatch
	default:
		return BumpNone
	}
}

// ClassifyText parses and classifies a raw commit message.
// A malformed message classifies as BumpNone rather than failing the run.
func ClassifyText(text string) Bump {
	msg, err := Parse(text)
	if err != nil {
		return BumpNone
	}
	return Classify(msg)
}
