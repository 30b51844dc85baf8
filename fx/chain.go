// SPDX-License-Identifier: EPL-2.0

package fx

import "github.com/mokuworks-kr/PortaDJ/internal/atomix"

// Band selects one of the three EQ bands of a deck chain.
type Band int

const (
	Low Band = iota
	Mid
	High

	numBands
)

// Fixed band layout: low shelf, peaking, high shelf.
const (
	lowShelfFreq  = 250.0
	peakingFreq   = 1000.0
	highShelfFreq = 2500.0
	peakingQ      = 1.0

	// Control range is ±15dB, mapped from [0,1].
	gainRangeDB = 30.0
)

// bypassDB is the gain magnitude below which a band is skipped entirely.
const bypassDB = 0.1

type band struct {
	kind Band
	freq float64

	gain atomix.Float64 // dB, written by the control surface

	// Render-path cache; only the render goroutine touches these.
	lastGain float64
	inited   bool
	filter   Biquad
}

// Chain is a deck's three-band EQ plus volume stage. Control setters may
// be called from any goroutine; Process runs in the render callback and
// reads the control values through atomics, rebuilding a band's
// coefficients only when its gain actually changed.
type Chain struct {
	bands      [numBands]band
	volume     atomix.Float64 // linear gain
	sampleRate float64
}

// NewChain builds a flat chain (all bands 0dB, volume 1.0) at sampleRate.
func NewChain(sampleRate float64) *Chain {
	c := &Chain{sampleRate: sampleRate}
	c.bands[Low] = band{kind: Low, freq: lowShelfFreq}
	c.bands[Mid] = band{kind: Mid, freq: peakingFreq}
	c.bands[High] = band{kind: High, freq: highShelfFreq}
	c.volume.Store(1.0)
	return c
}

// SetBand maps a normalized control value v in [0,1] to the band's gain:
// (v - 0.5) * 30 dB, so 0.5 is flat and the range is ±15dB. Values outside
// [0,1] are clamped.
func (c *Chain) SetBand(b Band, v float64) {
	if b < Low || b > High {
		return
	}
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	c.bands[b].gain.Store((v - 0.5) * gainRangeDB)
}

// BandGainDB returns the band's current gain in dB.
func (c *Chain) BandGainDB(b Band) float64 {
	if b < Low || b > High {
		return 0
	}
	return c.bands[b].gain.Load()
}

// SetVolume sets the deck's linear volume multiplier. Negative values
// clamp to 0. This stage is independent of the crossfade gain owned by
// the mixer.
func (c *Chain) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	c.volume.Store(v)
}

// Volume returns the current linear volume multiplier.
func (c *Chain) Volume() float64 {
	return c.volume.Load()
}

func (bd *band) rebuild(dB, sr float64) {
	if bd.inited && dB == bd.lastGain {
		return
	}
	bd.lastGain = dB
	bd.inited = true

	switch bd.kind {
	case Low:
		bd.filter.setLowShelf(bd.freq, dB, sr)
	case Mid:
		bd.filter.setPeaking(bd.freq, peakingQ, dB, sr)
	case High:
		bd.filter.setHighShelf(bd.freq, dB, sr)
	}
}

// Process applies the three bands and the volume stage to interleaved
// stereo samples in place. Allocation-free and lock-free.
func (c *Chain) Process(samples []float32) {
	for i := range c.bands {
		bd := &c.bands[i]
		dB := bd.gain.Load()

		// Skip processing when gain is effectively flat
		if dB > -bypassDB && dB < bypassDB {
			continue
		}

		bd.rebuild(dB, c.sampleRate)
		bd.filter.ProcessStereo(samples)
	}

	vol := float32(c.volume.Load())
	if vol == 1.0 {
		return
	}
	for i := range samples {
		samples[i] *= vol
	}
}
