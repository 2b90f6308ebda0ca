// Package report renders human-readable sequence analyses for parsed
// levels: availability counts, type breakdowns, a complexity score,
// and notes about the ordering the designers chose.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"rloop/elv"
	"rloop/ref"
)

// Summary holds the derived statistics for one level.
type Summary struct {
	Filename      string
	Title         string
	HeaderVersion int
	TotalAudio    int
	Available     int
	Missing       int
	TotalDuration float64
	TypeBreakdown map[string]int
	Complexity    int
	Notes         []string
}

// Summarize derives the per-level statistics from a parse result.
func Summarize(seq elv.LevelSequence) Summary {
	s := Summary{
		Filename:      seq.Filename,
		Title:         seq.Title,
		HeaderVersion: seq.HeaderVersion,
		TotalAudio:    len(seq.AudioSequence),
		TypeBreakdown: make(map[string]int),
	}
	if s.Title == "" {
		s.Title = "Unknown"
	}
	for _, r := range seq.AudioSequence {
		s.TypeBreakdown[r.Category.String()]++
		if r.Resolved {
			s.Available++
			s.TotalDuration += r.DurationSeconds
		}
	}
	s.Missing = s.TotalAudio - s.Available
	s.Complexity = complexityScore(seq.AudioSequence)
	s.Notes = analysisNotes(seq.AudioSequence)
	return s
}

// complexityScore weighs count, variety, duration and missing assets:
// 2 per file, 5 per distinct type, 1 per 10s of known audio, minus 3
// per missing file, floored at zero.
func complexityScore(refs []ref.AudioReference) int {
	score := len(refs) * 2

	types := make(map[ref.Category]bool)
	var duration float64
	missing := 0
	for _, r := range refs {
		types[r.Category] = true
		duration += r.DurationSeconds
		if !r.Resolved {
			missing++
		}
	}
	score += len(types) * 5
	score += int(duration / 10)
	score -= missing * 3

	if score < 0 {
		return 0
	}
	return score
}

func analysisNotes(refs []ref.AudioReference) []string {
	var notes []string
	if len(refs) == 0 {
		return []string{"No audio files found in this level"}
	}

	// how the numbered rhythm files progress
	var numbers []int
	for _, r := range refs {
		if r.Category != ref.NumberedRhythm {
			continue
		}
		digits := strings.TrimSuffix(r.Filename, "RHYTH.WAV")
		if n, err := strconv.Atoi(digits); err == nil {
			numbers = append(numbers, n)
		}
	}
	if len(numbers) > 1 {
		asc := sort.IntsAreSorted(numbers)
		desc := sort.IsSorted(sort.Reverse(sort.IntSlice(numbers)))
		switch {
		case asc:
			notes = append(notes, "Rhythm files are in ascending numerical order")
		case desc:
			notes = append(notes, "Rhythm files are in descending numerical order")
		default:
			notes = append(notes, "Rhythm files follow a custom sequence pattern")
		}
	}

	var silencePos []int
	for i, r := range refs {
		if r.Category == ref.Silence {
			silencePos = append(silencePos, i)
		}
	}
	if len(silencePos) > 0 {
		if silencePos[0] == 0 {
			notes = append(notes, "Level starts with silence")
		}
		if silencePos[len(silencePos)-1] == len(refs)-1 {
			notes = append(notes, "Level ends with silence")
		}
		if len(silencePos) > 1 {
			notes = append(notes, fmt.Sprintf("Multiple silence files at positions: %v", silencePos))
		}
	}

	if n := countCategory(refs, ref.System); n > 0 {
		notes = append(notes, fmt.Sprintf("Contains %d system audio file(s)", n))
	}
	if n := countCategory(refs, ref.Special); n > 0 {
		notes = append(notes, fmt.Sprintf("Contains %d special audio file(s)", n))
	}

	missing := 0
	for _, r := range refs {
		if !r.Resolved {
			missing++
		}
	}
	if missing > 0 {
		notes = append(notes, fmt.Sprintf("%d audio file(s) are missing from the sample directory", missing))
	}
	return notes
}

func countCategory(refs []ref.AudioReference, cat ref.Category) int {
	n := 0
	for _, r := range refs {
		if r.Category == cat {
			n++
		}
	}
	return n
}

// Write emits the full text report for a batch: overall statistics, a
// complexity ranking, and a per-level sequence breakdown.
func Write(w io.Writer, seqs []elv.LevelSequence) {
	summaries := make([]Summary, len(seqs))
	byFile := make(map[string]elv.LevelSequence, len(seqs))
	var totalRefs, totalAvail int
	var totalDuration float64
	for i, seq := range seqs {
		summaries[i] = Summarize(seq)
		byFile[seq.Filename] = seq
		totalRefs += summaries[i].TotalAudio
		totalAvail += summaries[i].Available
		totalDuration += summaries[i].TotalDuration
	}

	rule := strings.Repeat("=", 100)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "ELV SEQUENCE ANALYSIS SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total Levels Analyzed: %d\n", len(seqs))
	fmt.Fprintf(w, "Total Audio References: %d\n", totalRefs)
	fmt.Fprintf(w, "Available Audio Files: %d\n", totalAvail)
	fmt.Fprintf(w, "Missing Audio Files: %d\n", totalRefs-totalAvail)
	fmt.Fprintf(w, "Total Audio Duration: %.1f seconds (%.1f minutes)\n\n",
		totalDuration, totalDuration/60)

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Complexity > summaries[j].Complexity
	})

	fmt.Fprintln(w, "LEVELS BY COMPLEXITY (Highest to Lowest):")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	fmt.Fprintf(w, "%-4s %-15s %-28s %-5s %-5s %-8s %-5s\n",
		"Rank", "Level", "Title", "Files", "Avail", "Duration", "Score")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for i, s := range summaries {
		title := s.Title
		if len(title) > 25 {
			title = title[:25] + "..."
		}
		fmt.Fprintf(w, "%-4d %-15s %-28s %-5d %-5d %-8s %-5d\n",
			i+1, s.Filename, title, s.TotalAudio, s.Available,
			fmt.Sprintf("%.1fs", s.TotalDuration), s.Complexity)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "DETAILED SEQUENCE BREAKDOWN:")
	fmt.Fprintln(w, rule)
	for _, s := range summaries {
		seq := byFile[s.Filename]
		if len(seq.AudioSequence) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s - %s\n", s.Filename, s.Title)
		fmt.Fprintln(w, strings.Repeat("-", 80))
		writeSequenceLine(w, seq.AudioSequence)
		if len(s.Notes) > 0 {
			max := len(s.Notes)
			if max > 3 {
				max = 3
			}
			fmt.Fprintf(w, "Notes: %s\n", strings.Join(s.Notes[:max], "; "))
		}
	}
}

func writeSequenceLine(w io.Writer, refs []ref.AudioReference) {
	parts := make([]string, 0, 10)
	for i, r := range refs {
		if i == 10 {
			break
		}
		name := r.Filename
		if !r.Resolved {
			name += " (missing)"
		}
		parts = append(parts, name)
	}
	line := strings.Join(parts, " -> ")
	if len(refs) > 10 {
		line += fmt.Sprintf(" -> ... (%d more)", len(refs)-10)
	}
	fmt.Fprintf(w, "Audio Sequence: %s\n", line)
}

// WriteLevel emits the standalone report for one level, including the
// position-by-position sequence table.
func WriteLevel(w io.Writer, seq elv.LevelSequence) {
	s := Summarize(seq)
	rule := strings.Repeat("=", 80)

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "ELV SEQUENCE REPORT: %s\n", s.Filename)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Level Title: %s\n", s.Title)
	fmt.Fprintf(w, "ELVD Version: %d\n", s.HeaderVersion)
	fmt.Fprintf(w, "Total Audio Files: %d\n", s.TotalAudio)
	fmt.Fprintf(w, "Available Files: %d\n", s.Available)
	fmt.Fprintf(w, "Missing Files: %d\n", s.Missing)
	fmt.Fprintf(w, "Total Duration: %.1f seconds\n", s.TotalDuration)
	fmt.Fprintf(w, "Complexity Score: %d\n\n", s.Complexity)

	fmt.Fprintln(w, "AUDIO SEQUENCE (Original ELV Order):")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintf(w, "%-3s %-20s %-15s %-6s %-8s %-8s\n",
		"Pos", "Filename", "Type", "Found", "Duration", "Size")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, r := range seq.AudioSequence {
		found := "no"
		if r.Resolved {
			found = "yes"
		}
		duration, size := "N/A", "N/A"
		if r.DurationSeconds > 0 {
			duration = fmt.Sprintf("%.1fs", r.DurationSeconds)
		}
		if r.SizeKB > 0 {
			size = fmt.Sprintf("%dKB", r.SizeKB)
		}
		fmt.Fprintf(w, "%-3d %-20s %-15s %-6s %-8s %-8s\n",
			r.SequencePosition, r.Filename, r.Category, found, duration, size)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "TYPE BREAKDOWN:")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	types := make([]string, 0, len(s.TypeBreakdown))
	for name := range s.TypeBreakdown {
		types = append(types, name)
	}
	sort.Strings(types)
	for _, name := range types {
		fmt.Fprintf(w, "%-20s: %d\n", name, s.TypeBreakdown[name])
	}

	if len(s.Notes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "ANALYSIS NOTES:")
		fmt.Fprintln(w, strings.Repeat("-", 30))
		for _, note := range s.Notes {
			fmt.Fprintf(w, "- %s\n", note)
		}
	}
}
