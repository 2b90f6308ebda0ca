package seqfile

import (
	"path/filepath"
	"testing"

	"rloop/elv"
	"rloop/ref"
)

func TestSaveLoad(t *testing.T) {
	seqs := []elv.LevelSequence{
		{
			Filename:      "MAGIC.ELV",
			Filepath:      "ELVRL/MAGIC.ELV",
			FileSize:      1234,
			HeaderVersion: 1,
			Title:         "The Magic Level",
			ParseOK:       true,
			AudioSequence: []ref.AudioReference{
				{Filename: "970RHYTH.WAV", Category: ref.NumberedRhythm,
					Resolved: true, SequencePosition: 0, BinaryOffset: 40},
				{Filename: "NOSOUND.WAV", Category: ref.Silence,
					SequencePosition: 1, BinaryOffset: 90},
			},
		},
		{Filename: "BAD.ELV", Err: "invalid ELVD header"},
	}

	path := filepath.Join(t.TempDir(), "seq.json")
	if err := Save(path, New("ELVRL", "rloops", seqs)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !doc.OrderPreserved() {
		t.Error("order marker lost")
	}
	if doc.Metadata.Note != OrderNote {
		t.Errorf("note = %q", doc.Metadata.Note)
	}
	if doc.Metadata.TotalFiles != 2 || doc.Metadata.SuccessfulFiles != 1 {
		t.Errorf("totals = %d/%d", doc.Metadata.SuccessfulFiles, doc.Metadata.TotalFiles)
	}

	rec, ok := doc.Level("magic.elv")
	if !ok {
		t.Fatal("Level lookup failed")
	}
	if rec.AudioCount != 2 || len(rec.AudioFiles) != 2 {
		t.Fatalf("record = %+v", rec)
	}
	// category survives as its string form
	if rec.AudioFiles[1].Category != ref.Silence {
		t.Errorf("category = %v", rec.AudioFiles[1].Category)
	}
	if rec.AudioFiles[0].BinaryOffset != 40 {
		t.Errorf("offset = %d", rec.AudioFiles[0].BinaryOffset)
	}

	bad, ok := doc.Level("BAD.ELV")
	if !ok || bad.ParseSuccess || bad.ErrorMessage == "" {
		t.Errorf("failed record = %+v", bad)
	}

	if _, ok := doc.Level("NOPE.ELV"); ok {
		t.Error("found a level that was never written")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Load on missing file returned nil error")
	}
}
