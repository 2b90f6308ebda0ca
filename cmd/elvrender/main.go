// elvrender turns an extracted level sequence into a backing track:
// it loads the JSON sequence data written by elvextract, decodes the
// referenced samples in original order, and renders a fixed-duration
// 16-bit mono WAV.
//
// Usage: elvrender <sequence.json> [LEVEL.ELV] [seconds] [output.wav]
//
// Without a level argument it lists the renderable levels and exits.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"rloop/ref"
	"rloop/render"
	"rloop/seqfile"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: elvrender <sequence.json> [LEVEL.ELV] [seconds] [output.wav]")
		os.Exit(1)
	}

	doc, err := seqfile.Load(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if !doc.OrderPreserved() {
		fmt.Println("Warning: sequence data lacks the order-preserved marker; playback order may be wrong")
	}

	if len(os.Args) < 3 {
		listLevels(doc)
		return
	}
	levelName := os.Args[2]

	duration := 30.0
	if len(os.Args) > 3 {
		duration, err = strconv.ParseFloat(os.Args[3], 64)
		if err != nil || duration <= 0 {
			fmt.Printf("Bad duration %q\n", os.Args[3])
			os.Exit(1)
		}
	}

	rec, ok := doc.Level(levelName)
	if !ok {
		fmt.Printf("Level not found: %s\n", levelName)
		os.Exit(1)
	}
	if !rec.ParseSuccess {
		fmt.Printf("Level %s did not parse: %s\n", rec.Filename, rec.ErrorMessage)
		os.Exit(1)
	}

	fmt.Printf("Level: %s\n", rec.Filename)
	if rec.Title != "" {
		fmt.Printf("Title: %s\n", rec.Title)
	}
	fmt.Printf("Audio refs: %d (original binary order)\n\n", rec.AudioCount)

	clips := loadClips(rec, doc.Metadata.AudioDir)

	buf, err := render.Render(clips, duration, render.DefaultRate)
	if err != nil {
		if errors.Is(err, render.ErrEmptyRenderInput) {
			fmt.Println("Nothing to render: no usable clips in this level")
		} else {
			fmt.Printf("Render failed: %v\n", err)
		}
		os.Exit(1)
	}

	outPath := defaultOutputName(rec.Filename, duration)
	if len(os.Args) > 4 {
		outPath = os.Args[4]
	}
	if err := render.WriteWAV(outPath, buf, render.DefaultRate); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nSaved: %s (%.1fs at %d Hz)\n",
		outPath, float64(len(buf))/render.DefaultRate, render.DefaultRate)
}

// loadClips decodes every renderable reference in sequence order.
// Silence entries and unresolved or undecodable samples are skipped;
// a decode failure never aborts the render.
func loadClips(rec seqfile.FileRecord, wavDir string) []render.Clip {
	refs := make([]ref.AudioReference, len(rec.AudioFiles))
	copy(refs, rec.AudioFiles)
	// the artifact is written in position order already; re-sorting
	// guards against hand-edited files
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].SequencePosition < refs[j].SequencePosition
	})

	var clips []render.Clip
	for _, r := range refs {
		fmt.Printf("  %2d. %s (%s)", r.SequencePosition, r.Filename, r.Category)
		if r.Category == ref.Silence {
			fmt.Println(" - silence, skipped")
			continue
		}
		if !r.Resolved {
			fmt.Println(" - missing, skipped")
			continue
		}
		name := r.Filename
		if r.ResolvedAlias != "" {
			name = r.ResolvedAlias
		}
		samples, err := render.DecodeClip(filepath.Join(wavDir, name), render.DefaultRate)
		if err != nil {
			fmt.Printf(" - decode failed, skipped (%v)\n", err)
			continue
		}
		fmt.Printf(" - %.1fs\n", float64(len(samples))/render.DefaultRate)
		clips = append(clips, render.Clip{Name: name, Category: r.Category, Samples: samples})
	}
	return clips
}

func listLevels(doc seqfile.Document) {
	type row struct {
		name  string
		count int
		title string
	}
	var rows []row
	for _, f := range doc.Files {
		if f.ParseSuccess && f.AudioCount > 0 {
			rows = append(rows, row{f.Filename, f.AudioCount, f.Title})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].count > rows[j].count })

	fmt.Println("Renderable levels (most audio first):")
	fmt.Printf("%-4s %-15s %-5s %s\n", "Rank", "Level", "Audio", "Title")
	fmt.Println(strings.Repeat("-", 70))
	for i, r := range rows {
		title := r.title
		if len(title) > 40 {
			title = title[:40] + "..."
		}
		fmt.Printf("%-4d %-15s %-5d %s\n", i+1, r.name, r.count, title)
	}
	fmt.Println("\nUsage: elvrender <sequence.json> <LEVEL.ELV> [seconds] [output.wav]")
}

func defaultOutputName(levelName string, duration float64) string {
	base := strings.TrimSuffix(levelName, filepath.Ext(levelName))
	return fmt.Sprintf("%s_sequence_preserved_%ds.wav", strings.ToLower(base), int(duration))
}
