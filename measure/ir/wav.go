package ir

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"
)

// HeadroomDB is the peak level, relative to full scale, of exported files.
const HeadroomDB = -1.0

var (
	ErrInvalidBitDepth = errors.New("ir: bit depth must be 16, 24 or 32")
	ErrInvalidWAV      = errors.New("ir: invalid WAV file")
)

// WriteWAV writes h as mono integer PCM. The response is scaled so its
// absolute peak sits at [HeadroomDB]; an all-zero response is written as
// silence.
func WriteWAV(w io.WriteSeeker, h []float64, sampleRate, bitDepth int) error {
	if len(h) == 0 {
		return ErrEmptyIR
	}
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	maxVal, err := fullScale(bitDepth)
	if err != nil {
		return err
	}

	scaled := make([]float64, len(h))
	if peak := math.Abs(h[findPeak(h)]); peak > 0 {
		f64.Scale(scaled, h, math.Pow(10, HeadroomDB/20)*maxVal/peak)
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(scaled)),
		SourceBitDepth: bitDepth,
	}
	for i, v := range scaled {
		buf.Data[i] = int(math.Round(v))
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("ir: write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("ir: finish WAV: %w", err)
	}
	return nil
}

// ReadWAV reads the first channel of an integer PCM WAV file and returns it
// scaled to [-1, 1] together with the sample rate.
func ReadWAV(r io.ReadSeeker) ([]float64, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, ErrInvalidWAV
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("ir: read samples: %w", err)
	}
	maxVal, err := fullScale(int(dec.BitDepth))
	if err != nil {
		return nil, 0, err
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, 0, ErrInvalidWAV
	}
	out := make([]float64, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		out = append(out, float64(buf.Data[i])/maxVal)
	}
	return out, int(dec.SampleRate), nil
}

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return float64(int64(1)<<(bitDepth-1) - 1), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidBitDepth, bitDepth)
	}
}
