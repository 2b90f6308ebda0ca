// Package seqfile reads and writes the sequence interchange artifact:
// a JSON document carrying every parsed level with its audio references
// in original binary order. The document carries an explicit marker so
// that consumers know the order is byte-offset order and must not
// re-sort it.
package seqfile

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"rloop/elv"
	"rloop/ref"
)

// OrderNote is written into every document next to the
// sequence_preserved flag.
const OrderNote = "Audio files are in original ELV binary order, not alphabetical"

type Metadata struct {
	Timestamp         string `json:"timestamp"`
	TotalFiles        int    `json:"total_files"`
	SuccessfulFiles   int    `json:"successful_files"`
	LevelDir          string `json:"elvrl_directory"`
	AudioDir          string `json:"rloops_directory"`
	SequencePreserved bool   `json:"sequence_preserved"`
	Note              string `json:"note"`
}

// FileRecord mirrors elv.LevelSequence in the interchange schema.
type FileRecord struct {
	Filename      string               `json:"filename"`
	Filepath      string               `json:"filepath"`
	FileSize      int                  `json:"file_size"`
	HeaderVersion int                  `json:"elvd_version"`
	Title         string               `json:"level_title,omitempty"`
	AudioFiles    []ref.AudioReference `json:"audio_files"`
	AudioCount    int                  `json:"audio_count"`
	ParseSuccess  bool                 `json:"parse_success"`
	ErrorMessage  string               `json:"error_message,omitempty"`
}

type Document struct {
	Metadata Metadata     `json:"extraction_metadata"`
	Files    []FileRecord `json:"files"`
}

// New builds a document from a batch of parse results.
func New(levelDir, audioDir string, seqs []elv.LevelSequence) Document {
	doc := Document{
		Metadata: Metadata{
			Timestamp:         time.Now().Format(time.RFC3339),
			TotalFiles:        len(seqs),
			LevelDir:          levelDir,
			AudioDir:          audioDir,
			SequencePreserved: true,
			Note:              OrderNote,
		},
	}
	for _, s := range seqs {
		if s.ParseOK {
			doc.Metadata.SuccessfulFiles++
		}
		doc.Files = append(doc.Files, FileRecord{
			Filename:      s.Filename,
			Filepath:      s.Filepath,
			FileSize:      s.FileSize,
			HeaderVersion: s.HeaderVersion,
			Title:         s.Title,
			AudioFiles:    s.AudioSequence,
			AudioCount:    len(s.AudioSequence),
			ParseSuccess:  s.ParseOK,
			ErrorMessage:  s.Err,
		})
	}
	return doc
}

func Save(path string, doc Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sequence data: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write sequence data: %w", err)
	}
	return nil
}

func Load(path string) (Document, error) {
	var doc Document
	b, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("read sequence data: %w", err)
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("decode sequence data: %w", err)
	}
	return doc, nil
}

// OrderPreserved reports whether the document was written with the
// binary-order guarantee. Documents without the marker may have been
// sorted by other tools.
func (d Document) OrderPreserved() bool {
	return d.Metadata.SequencePreserved
}

// Level finds a file record by name, case-insensitively.
func (d Document) Level(name string) (FileRecord, bool) {
	for _, f := range d.Files {
		if strings.EqualFold(f.Filename, name) {
			return f, true
		}
	}
	return FileRecord{}, false
}
