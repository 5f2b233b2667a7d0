package extract

import (
	"fmt"

	"github.com/cognicore/textrush/pkg/textrush/internalerr"
)

// Strategy selects how overlapping keyword matches are reported.
type Strategy int

const (
	// All reports every keyword ending at every token reachable from each
	// start position. Matches may overlap and nest.
	All Strategy = iota
	// Longest keeps the longest keyword per start position and resumes
	// after it, so matches never overlap.
	Longest
)

// String returns the literal strategy token.
func (s Strategy) String() string {
	switch s {
	case All:
		return "all"
	case Longest:
		return "longest"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps "all" or "longest" to a Strategy. Anything else,
// including the empty string, is ErrUnknownStrategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "all":
		return All, nil
	case "longest":
		return Longest, nil
	default:
		return All, fmt.Errorf("%w: %q", internalerr.ErrUnknownStrategy, s)
	}
}
