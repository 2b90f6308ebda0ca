// Package scan locates audio filename tokens embedded in raw level
// data and orders them into the sequence the level designer intended,
// by byte offset of first appearance.
package scan

import (
	"regexp"
	"sort"
	"strings"

	"rloop/ref"
)

// RawMatch is a single pattern hit inside a blob. Offsets index the
// original blob, not a filtered copy.
type RawMatch struct {
	Pattern string
	Offset  int
	Text    string
}

// One case-insensitive pattern per filename shape. Overlapping shapes
// may both fire on the same bytes; the sequencer deduplicates.
var shapes = []struct {
	name string
	re   *regexp.Regexp
}{
	{"numbered_rhythm", regexp.MustCompile(`(?i)[0-9]+RHYTH\.WAV`)},
	{"letter_rhythm", regexp.MustCompile(`(?i)[A-Z]RHYTH\.WAV`)},
	{"system", regexp.MustCompile(`(?i)![0-9]+RHYT\.WAV`)},
	{"special", regexp.MustCompile(`(?i)X[0-9]+RHYT\.WAV`)},
	{"silence", regexp.MustCompile(`(?i)NOSOUND\.WAV`)},
}

// Scan reports every filename-shaped token in blob. Bytes outside
// printable ASCII are masked so they can't take part in a match, which
// keeps the reported offsets aligned with the original data. No
// ordering guarantee; callers pass the result to Sequence.
func Scan(blob []byte) []RawMatch {
	text := make([]byte, len(blob))
	for i, b := range blob {
		if b >= 0x20 && b < 0x7F {
			text[i] = b
		} else {
			text[i] = 0
		}
	}

	var matches []RawMatch
	for _, s := range shapes {
		for _, loc := range s.re.FindAllIndex(text, -1) {
			matches = append(matches, RawMatch{
				Pattern: s.name,
				Offset:  loc[0],
				Text:    strings.ToUpper(string(text[loc[0]:loc[1]])),
			})
		}
	}
	return matches
}

// Sequence orders matches by byte offset (stable on ties), keeps the
// first occurrence of each distinct filename, drops names of four
// characters or fewer as false positives, and assigns dense sequence
// positions. Category and resolution fields are left for the caller.
func Sequence(matches []RawMatch) []ref.AudioReference {
	sorted := make([]RawMatch, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	seen := make(map[string]bool)
	var refs []ref.AudioReference
	for _, m := range sorted {
		if len(m.Text) <= 4 || seen[m.Text] {
			continue
		}
		seen[m.Text] = true
		refs = append(refs, ref.AudioReference{
			Filename:         m.Text,
			SequencePosition: len(refs),
			BinaryOffset:     m.Offset,
		})
	}
	return refs
}
