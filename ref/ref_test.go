package ref

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		want Category
	}{
		{"NOSOUND.WAV", Silence},
		{"nosound.wav", Silence},
		{"!93RHYT.WAV", System},
		{"X93RHYT.WAV", Special},
		// X prefix outranks the letter-rhythm shape
		{"XRHYTH.WAV", Special},
		{"ARHYTH.WAV", LetterRhythm},
		{"arhyth.wav", LetterRhythm},
		{"123RHYTH.WAV", NumberedRhythm},
		{"6970RHYTH.WAV", NumberedRhythm},
		{"0RHYTH.WAV", NumberedRhythm},
		{"README.TXT", Unknown},
		{"RHYTH.WAV", Unknown},
		{"", Unknown},
	}

	for _, c := range cases {
		if got := Classify(c.name); got != c.want {
			t.Errorf("Classify(%q) = %v, want %v", c.name, got, c.want)
		}
	}

	// deterministic: same input, same answer
	for i := 0; i < 3; i++ {
		if got := Classify("NOSOUND.WAV"); got != Silence {
			t.Fatalf("Classify not deterministic: got %v on run %d", got, i)
		}
	}
}

func TestCategoryText(t *testing.T) {
	for _, c := range []Category{Unknown, Silence, System, Special, LetterRhythm, NumberedRhythm} {
		b, err := c.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", c, err)
		}
		var back Category
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if back != c {
			t.Errorf("round trip %v: got %v", c, back)
		}
	}

	var c Category
	if err := c.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText accepted bogus category")
	}
}
