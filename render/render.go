// Package render composes a resolved, ordered clip list into a
// fixed-duration mono waveform: cyclic concatenation in sequence order,
// truncation at the buffer end, peak normalization.
package render

import (
	"errors"
	"math"

	"rloop/ref"
)

// DefaultRate is the target sample rate of rendered backing tracks.
const DefaultRate = 44100

// ErrEmptyRenderInput means no clip survived silence exclusion and
// decode failures, so there is nothing to compose.
var ErrEmptyRenderInput = errors.New("no usable clips to render")

// Render fills a buffer of durationSec*rate samples by walking clips
// in order, copying each into the buffer at the write cursor and
// truncating whatever would overflow. When a full pass leaves room the
// walk restarts from the first clip. Silence-category clips are
// excluded before composition. If the filled peak exceeds 1.0 the
// whole buffer is scaled back to a 1.0 peak.
func Render(clips []Clip, durationSec float64, rate int) ([]float64, error) {
	var usable []Clip
	for _, c := range clips {
		if c.Category == ref.Silence || len(c.Samples) == 0 {
			continue
		}
		usable = append(usable, c)
	}
	if len(usable) == 0 {
		return nil, ErrEmptyRenderInput
	}

	out := make([]float64, int(durationSec*float64(rate)))
	pos := 0
	for pos < len(out) {
		for _, c := range usable {
			if pos >= len(out) {
				break
			}
			pos += copy(out[pos:], c.Samples)
		}
	}

	var peak float64
	for _, v := range out {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak > 1.0 {
		scale := 1.0 / peak
		for i := range out {
			out[i] *= scale
		}
	}
	return out, nil
}
