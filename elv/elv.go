// Package elv parses ELVD level containers and extracts the ordered
// audio sequence embedded in their payload.
package elv

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rloop/inventory"
	"rloop/ref"
	"rloop/scan"
)

const (
	magic = "ELVD"

	headerSize = 8
	titleMax   = 50
	titleMin   = 11 // fragments shorter than this are payload noise
)

// LevelSequence is the result of parsing one level file. Failures are
// captured in Err with ParseOK false; parsing never panics or returns
// a Go error, so a bad file can't stop a batch.
type LevelSequence struct {
	Filename      string
	Filepath      string
	FileSize      int
	HeaderVersion int
	Title         string
	AudioSequence []ref.AudioReference
	ParseOK       bool
	Err           string
}

// ParseFile reads and parses a level file, resolving every reference
// against inv.
func ParseFile(path string, inv *inventory.Inventory) LevelSequence {
	seq := LevelSequence{
		Filename: filepath.Base(path),
		Filepath: path,
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		seq.Err = fmt.Sprintf("file not found: %s", path)
		return seq
	}
	parse(&seq, blob, inv)
	return seq
}

// Parse parses an in-memory level blob under the given display name.
func Parse(name string, blob []byte, inv *inventory.Inventory) LevelSequence {
	seq := LevelSequence{Filename: name}
	parse(&seq, blob, inv)
	return seq
}

func parse(seq *LevelSequence, blob []byte, inv *inventory.Inventory) {
	seq.FileSize = len(blob)

	if len(blob) < headerSize || string(blob[:4]) != magic {
		seq.Err = "invalid ELVD header"
		return
	}
	seq.HeaderVersion = int(binary.LittleEndian.Uint16(blob[4:6]))
	// bytes 6-7 reserved
	seq.Title = extractTitle(blob[headerSize:])

	// the whole blob is scanned: tokens can sit inside the payload at
	// any offset, header included
	refs := scan.Sequence(scan.Scan(blob))
	for i := range refs {
		r := &refs[i]
		r.Category = ref.Classify(r.Filename)
		meta, alias, ok := inv.Resolve(r.Filename)
		r.Resolved = ok
		r.DurationSeconds = meta.DurationSeconds
		r.SizeKB = meta.SizeKB
		if ok && alias != r.Filename {
			r.ResolvedAlias = alias
		}
	}
	seq.AudioSequence = refs
	seq.ParseOK = true
}

// extractTitle picks the level title out of the null-delimited payload:
// the first fragment whose printable characters form a string longer
// than ten characters and not named after an image asset, cut to fifty.
func extractTitle(payload []byte) string {
	for _, frag := range bytes.Split(payload, []byte{0}) {
		var b strings.Builder
		for _, c := range frag {
			if c >= 0x20 && c < 0x7F {
				b.WriteByte(c)
			}
		}
		clean := strings.TrimSpace(b.String())
		if len(clean) >= titleMin && !strings.HasSuffix(clean, ".lbm") {
			if len(clean) > titleMax {
				clean = clean[:titleMax]
			}
			return clean
		}
	}
	return ""
}
