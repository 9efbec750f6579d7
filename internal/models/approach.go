// ABOUTME: Approach enumerates the supported therapeutic modalities
// ABOUTME: String values appear only at serialization boundaries (DB column, prompts)
package models

import "fmt"

// Approach is a therapeutic modality selecting conversational style and
// the system prompt used for text generation.
type Approach int

const (
	ApproachFreudian Approach = iota
	ApproachJungian
	ApproachCBT
	ApproachHumanistic
	ApproachExistential
	ApproachPsychodynamic
)

// approachNames holds the canonical serialized form of each approach.
// These values are stored in the therapy_sessions table and must not change.
var approachNames = [...]string{
	ApproachFreudian:      "Freudian",
	ApproachJungian:       "Jungian",
	ApproachCBT:           "Cognitive Behavioral Therapy",
	ApproachHumanistic:    "Humanistic",
	ApproachExistential:   "Existential",
	ApproachPsychodynamic: "Psychodynamic",
}

// Approaches returns all modalities in display order.
func Approaches() []Approach {
	return []Approach{
		ApproachFreudian,
		ApproachJungian,
		ApproachCBT,
		ApproachHumanistic,
		ApproachExistential,
		ApproachPsychodynamic,
	}
}

// String returns the serialized name of the approach.
func (a Approach) String() string {
	if a < 0 || int(a) >= len(approachNames) {
		return fmt.Sprintf("Approach(%d)", int(a))
	}
	return approachNames[a]
}

// Valid reports whether the approach is a known modality.
func (a Approach) Valid() bool {
	return a >= 0 && int(a) < len(approachNames)
}

// ParseApproach converts a serialized approach name back to its enum value.
func ParseApproach(s string) (Approach, error) {
	for i, name := range approachNames {
		if name == s {
			return Approach(i), nil
		}
	}
	return 0, fmt.Errorf("unknown therapy approach %q", s)
}
