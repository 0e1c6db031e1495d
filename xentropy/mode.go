package xentropy

import "strings"

// Mode selects how a sample collection is interpreted.
//
// Only two values exist, ProbabilityBased and DiscreteSample. Mode has no
// exported fields, so code outside this package cannot build any other value;
// the zero value is ProbabilityBased.
type Mode struct {
	discrete bool
}

var (
	// ProbabilityBased treats every element as a probability mass.
	// Elements are expected to lie in [0,1] and sum to 1; this is not checked.
	ProbabilityBased = Mode{}

	// DiscreteSample treats every element as a raw observation. Probabilities
	// are derived from the relative frequency of each distinct value.
	DiscreteSample = Mode{discrete: true}
)

const (
	probabilityTag = "PB"
	discreteTag    = "DS"
)

var modeTags = []string{probabilityTag, discreteTag}

// String returns the short tag of the mode: "PB" or "DS".
func (m Mode) String() string {
	if m.discrete {
		return discreteTag
	}
	return probabilityTag
}

// ParseMode converts a textual tag into a Mode.
//
// Accepted tags (case-insensitive):
//   - "PB", "probability", "probability-based"
//   - "DS", "discrete", "discrete-sample"
//
// Any other value returns an *InvalidModeError that matches ErrInvalidMode.
func ParseMode(tag string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "pb", "probability", "probability-based":
		return ProbabilityBased, nil
	case "ds", "discrete", "discrete-sample":
		return DiscreteSample, nil
	default:
		return Mode{}, &InvalidModeError{Value: tag}
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
