// Package inventory indexes the on-disk sample library that level
// references are resolved against.
package inventory

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
)

// Meta is what the inventory knows about one sample file.
type Meta struct {
	DurationSeconds float64
	SizeKB          int
}

// Inventory maps uppercase sample filenames to metadata. Built once at
// startup and read-only afterwards.
type Inventory struct {
	dir   string
	files map[string]Meta
}

// Build indexes every .WAV file (case-insensitive) directly under dir.
// A missing or unreadable directory yields an empty inventory and the
// error; callers may keep going with nothing resolvable.
func Build(dir string) (*Inventory, error) {
	inv := &Inventory{dir: dir, files: make(map[string]Meta)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return inv, err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			continue
		}
		var sizeKB int
		if info, err := e.Info(); err == nil {
			sizeKB = int(info.Size() / 1024)
		}
		inv.files[strings.ToUpper(e.Name())] = Meta{
			DurationSeconds: probeDuration(filepath.Join(dir, e.Name())),
			SizeKB:          sizeKB,
		}
	}
	return inv, nil
}

// probeDuration reads the WAV header for the play length. Corrupt or
// unreadable files report zero; they still resolve.
func probeDuration(path string) float64 {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return 0
	}
	dur, err := d.Duration()
	if err != nil {
		return 0
	}
	return dur.Seconds()
}

func (inv *Inventory) Dir() string { return inv.dir }

func (inv *Inventory) Len() int { return len(inv.files) }

// Resolve maps a referenced filename to an inventory entry. Exact
// case-insensitive match first; failing that, a name longer than four
// characters starting with an ASCII digit is retried once with that
// single digit stripped (the source asset set carries an extra leading
// digit on some names, e.g. 6970RHYTH.WAV on disk as 970RHYTH.WAV).
// No other transformation is attempted.
func (inv *Inventory) Resolve(filename string) (Meta, string, bool) {
	upper := strings.ToUpper(filename)
	if m, ok := inv.files[upper]; ok {
		return m, upper, true
	}
	if len(filename) > 4 && filename[0] >= '0' && filename[0] <= '9' {
		alt := upper[1:]
		if m, ok := inv.files[alt]; ok {
			return m, alt, true
		}
	}
	return Meta{}, "", false
}
