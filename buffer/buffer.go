// SPDX-License-Identifier: EPL-2.0

package buffer

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/mokuworks-kr/PortaDJ/audio"
)

// Buffer holds a fully decoded track as per-channel sample arrays at a
// fixed sample rate. It is immutable once built: decks, the scratch
// renderer and the tempo estimator all read it concurrently without
// coordination.
type Buffer struct {
	channels   [][]float32
	sampleRate int
}

// SampleRate returns the rate the samples are stored at.
func (b *Buffer) SampleRate() int { return b.sampleRate }

// NumChannels returns the channel count (at least 1).
func (b *Buffer) NumChannels() int { return len(b.channels) }

// Frames returns the per-channel sample count.
func (b *Buffer) Frames() int {
	if len(b.channels) == 0 {
		return 0
	}
	return len(b.channels[0])
}

// Duration returns the track length in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.Frames()) / float64(b.sampleRate)
}

// Channel returns the sample array for one channel. Callers must not
// modify the returned slice.
func (b *Buffer) Channel(ch int) []float32 {
	return b.channels[ch]
}

// At reads one sample, returning 0 outside the valid frame range.
func (b *Buffer) At(ch, frame int) float32 {
	if frame < 0 || frame >= len(b.channels[ch]) {
		return 0
	}
	return b.channels[ch][frame]
}

// FromSource drains src into a Buffer at engineRate, resampling when the
// source rate differs so both decks can share one output bus.
func FromSource(src audio.Source, engineRate int) (*Buffer, error) {
	var s audio.Source = src
	if src.SampleRate() != engineRate {
		s = audio.NewResampler(src, engineRate)
	}

	channels := s.Channels()
	if channels < 1 {
		return nil, ErrNoChannels
	}

	perChannel := make([][]float32, channels)
	buf := make([]float32, 4096*channels)

	for {
		n, err := s.ReadSamples(buf)
		if n > 0 {
			frames := n / channels
			for f := 0; f < frames; f++ {
				for c := 0; c < channels; c++ {
					perChannel[c] = append(perChannel[c], buf[f*channels+c])
				}
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	if len(perChannel[0]) == 0 {
		return nil, ErrEmptyTrack
	}

	return &Buffer{channels: perChannel, sampleRate: engineRate}, nil
}

// Decode picks a decoder from reg by the extension of name, decodes data
// and collects it at engineRate. The error paths leave nothing half-built,
// so a failed load cannot disturb a deck's current track.
func Decode(name string, data []byte, reg *audio.Registry, engineRate int) (*Buffer, error) {
	ext := filepath.Ext(name)
	dec, ok := reg.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	defer src.Close()

	return FromSource(src, engineRate)
}
