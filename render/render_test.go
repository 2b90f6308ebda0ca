package render

import (
	"errors"
	"math"
	"testing"

	"rloop/ref"
)

func constClip(name string, cat ref.Category, value float64, n int) Clip {
	s := make([]float64, n)
	for i := range s {
		s[i] = value
	}
	return Clip{Name: name, Category: cat, Samples: s}
}

// rate 10 keeps the arithmetic readable: one second is ten samples.
const testRate = 10

func TestRenderCyclesInOrder(t *testing.T) {
	a := constClip("A", ref.NumberedRhythm, 0.25, 2*testRate)
	b := constClip("B", ref.LetterRhythm, 0.5, 1*testRate)

	t.Run("exact fit", func(t *testing.T) {
		// 5s = A(2) B(1) A(2), the second A landing exactly on the end
		out, err := Render([]Clip{a, b}, 5, testRate)
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != 5*testRate {
			t.Fatalf("len = %d, want %d", len(out), 5*testRate)
		}
		checkSpans(t, out, []span{
			{0, 20, 0.25}, {20, 30, 0.5}, {30, 50, 0.25},
		})
	})

	t.Run("truncated tail", func(t *testing.T) {
		// 7s = A(2) B(1) A(2) B(1) then A truncated to the last second
		out, err := Render([]Clip{a, b}, 7, testRate)
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != 7*testRate {
			t.Fatalf("len = %d, want %d", len(out), 7*testRate)
		}
		checkSpans(t, out, []span{
			{0, 20, 0.25}, {20, 30, 0.5}, {30, 50, 0.25},
			{50, 60, 0.5}, {60, 70, 0.25},
		})
	})
}

type span struct {
	from, to int
	value    float64
}

func checkSpans(t *testing.T, out []float64, spans []span) {
	t.Helper()
	for _, s := range spans {
		for i := s.from; i < s.to; i++ {
			if out[i] != s.value {
				t.Fatalf("out[%d] = %v, want %v (span %d..%d)", i, out[i], s.value, s.from, s.to)
			}
		}
	}
}

func TestRenderExcludesSilence(t *testing.T) {
	a := constClip("A", ref.NumberedRhythm, 0.25, testRate)
	sil := constClip("NOSOUND.WAV", ref.Silence, 0.9, testRate)
	b := constClip("B", ref.System, 0.5, testRate)

	out, err := Render([]Clip{a, sil, b}, 2, testRate)
	if err != nil {
		t.Fatal(err)
	}
	// silence contributes nothing and does not reset the cycle
	checkSpans(t, out, []span{{0, 10, 0.25}, {10, 20, 0.5}})
}

func TestRenderNormalizes(t *testing.T) {
	t.Run("peak above one", func(t *testing.T) {
		c := Clip{Name: "HOT", Category: ref.NumberedRhythm,
			Samples: []float64{1.5, -0.75, 0.3}}
		out, err := Render([]Clip{c}, 0.3, testRate)
		if err != nil {
			t.Fatal(err)
		}
		var peak float64
		for _, v := range out {
			if a := math.Abs(v); a > peak {
				peak = a
			}
		}
		if math.Abs(peak-1.0) > 1e-12 {
			t.Errorf("normalized peak = %v, want 1.0", peak)
		}
		if math.Abs(out[1]- -0.5) > 1e-12 {
			t.Errorf("out[1] = %v, want -0.5", out[1])
		}
	})

	t.Run("peak below one untouched", func(t *testing.T) {
		c := Clip{Name: "OK", Category: ref.NumberedRhythm,
			Samples: []float64{0.6, -0.2}}
		out, err := Render([]Clip{c}, 0.2, testRate)
		if err != nil {
			t.Fatal(err)
		}
		if out[0] != 0.6 || out[1] != -0.2 {
			t.Errorf("buffer rescaled: %v", out[:2])
		}
	})
}

func TestRenderEmptyInput(t *testing.T) {
	cases := []struct {
		name  string
		clips []Clip
	}{
		{"no clips", nil},
		{"all silence", []Clip{constClip("NOSOUND.WAV", ref.Silence, 0, testRate)}},
		{"all empty", []Clip{{Name: "DEAD", Category: ref.System}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := Render(c.clips, 1, testRate)
			if !errors.Is(err, ErrEmptyRenderInput) {
				t.Errorf("err = %v, want ErrEmptyRenderInput", err)
			}
			if out != nil {
				t.Errorf("got a buffer alongside the error")
			}
		})
	}
}
