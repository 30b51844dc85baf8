// SPDX-License-Identifier: EPL-2.0

// Package mixer sums the two decks onto one output bus with a crossfade.
package mixer

import (
	"github.com/mokuworks-kr/PortaDJ/deck"
	"github.com/mokuworks-kr/PortaDJ/internal/atomix"
)

// Mixer renders both decks into one interleaved stereo block, applying
// the crossfade law gainA = 1-x, gainB = x. Per-deck volume is a separate
// stage inside each deck's chain; the mixer only owns the two crossfade
// gain handles.
type Mixer struct {
	a, b *deck.Deck

	crossfade atomix.Float64 // x in [0,1]; 0 = full A, 1 = full B

	// Per-deck scratch blocks, sized at construction so Render never
	// allocates.
	bufA []float32
	bufB []float32
}

// New builds a mixer over two decks with blocks of blockFrames frames.
// The crossfade starts centered.
func New(a, b *deck.Deck, blockFrames int) *Mixer {
	m := &Mixer{
		a:    a,
		b:    b,
		bufA: make([]float32, blockFrames*2),
		bufB: make([]float32, blockFrames*2),
	}
	m.crossfade.Store(0.5)
	return m
}

// SetCrossfade positions the crossfader, clamped to [0,1].
func (m *Mixer) SetCrossfade(x float64) {
	if x < 0 {
		x = 0
	} else if x > 1 {
		x = 1
	}
	m.crossfade.Store(x)
}

// Crossfade returns the current crossfader position.
func (m *Mixer) Crossfade() float64 {
	return m.crossfade.Load()
}

// GainA returns the crossfade gain applied to deck A.
func (m *Mixer) GainA() float64 { return 1 - m.crossfade.Load() }

// GainB returns the crossfade gain applied to deck B.
func (m *Mixer) GainB() float64 { return m.crossfade.Load() }

// Render fills dst with the crossfaded sum of both decks. len(dst) must
// not exceed 2*blockFrames. Runs in the audio callback; allocation-free.
func (m *Mixer) Render(dst []float32) {
	n := len(dst)
	if n > len(m.bufA) {
		n = len(m.bufA)
	}

	m.a.Render(m.bufA[:n])
	m.b.Render(m.bufB[:n])

	x := m.crossfade.Load()
	gainA := float32(1 - x)
	gainB := float32(x)

	for i := 0; i < n; i++ {
		dst[i] = m.bufA[i]*gainA + m.bufB[i]*gainB
	}
}
