// elvextract scans a directory of ELVD level files, recovers the
// designer-ordered audio sequence from each, resolves every reference
// against the sample directory, and writes the sequence data as JSON
// plus a text analysis report.
//
// Usage: elvextract [elvdir] [wavdir]
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"rloop/elv"
	"rloop/inventory"
	"rloop/report"
	"rloop/seqfile"
)

func main() {
	elvDir := "ELVRL"
	wavDir := "rloops"
	if len(os.Args) > 1 {
		elvDir = os.Args[1]
	}
	if len(os.Args) > 2 {
		wavDir = os.Args[2]
	}

	inv, err := inventory.Build(wavDir)
	if err != nil {
		fmt.Printf("Warning: could not index %s: %v\n", wavDir, err)
	}
	fmt.Printf("Found %d audio files in %s\n", inv.Len(), wavDir)

	paths, err := findLevels(elvDir)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", elvDir, err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Printf("No ELV files found in %s\n", elvDir)
		os.Exit(1)
	}
	fmt.Printf("Found %d ELV files to process\n\n", len(paths))

	var seqs []elv.LevelSequence
	okCount := 0
	for i, path := range paths {
		seq := elv.ParseFile(path, inv)
		seqs = append(seqs, seq)

		fmt.Printf("[%d/%d] %s\n", i+1, len(paths), seq.Filename)
		if !seq.ParseOK {
			fmt.Printf("  ERROR: %s\n", seq.Err)
			continue
		}
		okCount++
		fmt.Printf("  Version %d, %d audio refs", seq.HeaderVersion, len(seq.AudioSequence))
		if seq.Title != "" {
			fmt.Printf(", title %q", seq.Title)
		}
		fmt.Println()

		available := 0
		for _, r := range seq.AudioSequence {
			if r.Resolved {
				available++
			}
		}
		if len(seq.AudioSequence) > 0 {
			fmt.Printf("  Available: %d, missing: %d\n",
				available, len(seq.AudioSequence)-available)
		}
	}
	fmt.Printf("\nProcessing complete: %d/%d files parsed\n", okCount, len(paths))

	stamp := time.Now().Format("20060102_150405")

	seqPath := fmt.Sprintf("sequence_preserved_elv_%s.json", stamp)
	if err := seqfile.Save(seqPath, seqfile.New(elvDir, wavDir, seqs)); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Sequence data saved: %s\n", seqPath)

	reportPath := fmt.Sprintf("elv_sequence_report_%s.txt", stamp)
	if err := writeReport(reportPath, seqs); err != nil {
		fmt.Printf("Error writing report: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Report saved: %s\n", reportPath)
}

// findLevels lists *.ELV files (case-insensitive) in dir, sorted by
// name for a stable batch order.
func findLevels(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".elv") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func writeReport(path string, seqs []elv.LevelSequence) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	report.Write(f, seqs)
	return f.Close()
}
