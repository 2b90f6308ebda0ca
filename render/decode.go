package render

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"rloop/ref"
)

// ErrUnsupportedFormat marks a sample whose width/channel combination
// the decoder doesn't handle. Only 8/16-bit mono or stereo is accepted.
var ErrUnsupportedFormat = errors.New("unsupported sample format")

// Clip is one decoded sample, ready for composition.
type Clip struct {
	Name     string
	Category ref.Category
	Samples  []float64
}

// DecodeClip decodes a WAV file into mono float samples at targetRate.
// Stereo collapses to mono by per-frame averaging. 8-bit data is
// unsigned and centered on 128; 16-bit is signed. Rate conversion is a
// coarse integer-ratio repeat or decimate, matching the vintage
// playback path; it is not a quality resampler.
func DecodeClip(path string, targetRate int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open clip: %w", err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("decode %s: not a WAV file", path)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	bitDepth := int(d.BitDepth)
	channels := buf.Format.NumChannels
	rate := buf.Format.SampleRate
	if (bitDepth != 8 && bitDepth != 16) || (channels != 1 && channels != 2) {
		return nil, fmt.Errorf("%w: %d-bit, %d channels (%s)",
			ErrUnsupportedFormat, bitDepth, channels, path)
	}

	frames := len(buf.Data) / channels
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var acc float64
		for c := 0; c < channels; c++ {
			acc += float64(buf.Data[i*channels+c])
		}
		v := acc / float64(channels)
		if bitDepth == 8 {
			mono[i] = (v - 128) / 128
		} else {
			mono[i] = v / 32768
		}
	}

	return resample(mono, rate, targetRate), nil
}

// resample approximates a rate change with integer ratios: repeat each
// sample when upsampling, keep every nth when downsampling. Non-integer
// ratios round down and are not corrected.
func resample(samples []float64, from, to int) []float64 {
	if from <= 0 || to <= 0 || from == to {
		return samples
	}
	if from < to {
		factor := to / from
		if factor <= 1 {
			return samples
		}
		out := make([]float64, 0, len(samples)*factor)
		for _, s := range samples {
			for i := 0; i < factor; i++ {
				out = append(out, s)
			}
		}
		return out
	}
	factor := from / to
	if factor <= 1 {
		return samples
	}
	out := make([]float64, 0, len(samples)/factor+1)
	for i := 0; i < len(samples); i += factor {
		out = append(out, samples[i])
	}
	return out
}
