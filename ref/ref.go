// Package ref holds the audio reference data model shared by the
// extraction and rendering sides of the toolchain.
package ref

import (
	"fmt"
	"regexp"
	"strings"
)

// Category is the semantic class of a referenced sample, derived from
// the shape of its filename.
type Category int

const (
	Unknown Category = iota
	Silence
	System
	Special
	LetterRhythm
	NumberedRhythm
)

var categoryNames = [...]string{
	Unknown:        "unknown",
	Silence:        "silence",
	System:         "system",
	Special:        "special",
	LetterRhythm:   "letter_rhythm",
	NumberedRhythm: "numbered_rhythm",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	s := string(b)
	for i, name := range categoryNames {
		if name == s {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("unknown audio category %q", s)
}

// AudioReference is one sample reference discovered in a level file.
// Immutable once the parser has filled it in; ordering is by
// SequencePosition, which tracks ascending BinaryOffset among
// deduplicated references.
type AudioReference struct {
	Filename         string   `json:"filename"`
	Category         Category `json:"file_type"`
	Resolved         bool     `json:"exists_in_rloops"`
	SequencePosition int      `json:"sequence_position"`
	BinaryOffset     int      `json:"binary_offset"`
	DurationSeconds  float64  `json:"duration_seconds"`
	SizeKB           int      `json:"file_size_kb"`
	ResolvedAlias    string   `json:"alternative_found,omitempty"`
}

var (
	letterRhythmRe   = regexp.MustCompile(`^[A-Z]RHYTH\.WAV$`)
	numberedRhythmRe = regexp.MustCompile(`^[0-9]+RHYTH\.WAV$`)
)

// Classify assigns a category from the filename shape. Rules are
// checked in priority order and the first hit wins, so NOSOUND.WAV is
// silence even though it doesn't start with X.
func Classify(filename string) Category {
	name := strings.ToUpper(filename)

	switch {
	case name == "NOSOUND.WAV":
		return Silence
	case strings.HasPrefix(name, "!"):
		return System
	case strings.HasPrefix(name, "X"):
		return Special
	case letterRhythmRe.MatchString(name):
		return LetterRhythm
	case numberedRhythmRe.MatchString(name):
		return NumberedRhythm
	}
	return Unknown
}
