// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides in-memory sample generators for tests.
package audiotest

import (
	"io"
	"math"
)

// MockSource generates interleaved samples from a waveform function.
// It satisfies the audio.Source interface without importing it.
type MockSource struct {
	sampleRate int
	channels   int
	total      int // frames to generate
	generated  int // frames emitted so far
	waveform   func(frame, channel int) float32
}

func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		total:      totalFrames,
		waveform:   waveform,
	}
}

// NewSilentSource generates all-zero samples.
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return 0
	})
}

// NewSineSource generates a sine wave at the given frequency on every channel.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource generates a fixed value on every channel.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return value
	})
}

// NewImpulseTrainSource emits short decaying 60Hz bursts at a fixed
// beats-per-minute rate, shaped like kick-drum transients. Useful for
// exercising tempo detection.
func NewImpulseTrainSource(sampleRate, channels, totalFrames int, bpm float64) *MockSource {
	period := int(float64(sampleRate) * 60.0 / bpm)
	const burstLen = 256

	return NewMockSource(sampleRate, channels, totalFrames, func(frame, _ int) float32 {
		phase := frame % period
		if phase >= burstLen {
			return 0
		}
		decay := 1.0 - float64(phase)/burstLen
		return float32(decay * math.Sin(2*math.Pi*60.0*float64(phase)/float64(sampleRate)))
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source so it can be drained again.
func (m *MockSource) Reset() { m.generated = 0 }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.total {
		return 0, io.EOF
	}

	frames := len(dst) / m.channels
	if remain := m.total - m.generated; frames > remain {
		frames = remain
	}

	for f := 0; f < frames; f++ {
		idx := m.generated + f
		for ch := 0; ch < m.channels; ch++ {
			dst[f*m.channels+ch] = m.waveform(idx, ch)
		}
	}

	m.generated += frames
	written := frames * m.channels

	if m.generated >= m.total {
		return written, io.EOF
	}
	return written, nil
}

// Interleave drains a MockSource into a single interleaved slice.
func Interleave(src *MockSource) []float32 {
	var out []float32
	buf := make([]float32, 4096)
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}
		if err == io.EOF {
			return out
		}
	}
}
