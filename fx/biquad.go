// SPDX-License-Identifier: EPL-2.0

package fx

import "math"

// Biquad is a second-order IIR section with coefficients from the
// Audio EQ Cookbook (RBJ). State is kept per channel for up to two
// channels; Process* methods are allocation-free.
type Biquad struct {
	b0, b1, b2, a1, a2 float64

	x1, x2 [2]float64
	y1, y2 [2]float64
}

// NewLowpass returns a lowpass biquad with cutoff freq (Hz) and quality q.
func NewLowpass(freq, q, sampleRate float64) *Biquad {
	b := &Biquad{}
	b.setLowpass(freq, q, sampleRate)
	return b
}

// NewHighpass returns a highpass biquad with cutoff freq (Hz) and quality q.
func NewHighpass(freq, q, sampleRate float64) *Biquad {
	b := &Biquad{}
	b.setHighpass(freq, q, sampleRate)
	return b
}

// NewLowShelf returns a low-shelf biquad boosting or cutting below freq
// by gainDB.
func NewLowShelf(freq, gainDB, sampleRate float64) *Biquad {
	b := &Biquad{}
	b.setLowShelf(freq, gainDB, sampleRate)
	return b
}

// NewHighShelf returns a high-shelf biquad boosting or cutting above freq
// by gainDB.
func NewHighShelf(freq, gainDB, sampleRate float64) *Biquad {
	b := &Biquad{}
	b.setHighShelf(freq, gainDB, sampleRate)
	return b
}

// NewPeaking returns a peaking biquad centered at freq with quality q and
// gainDB boost or cut.
func NewPeaking(freq, q, gainDB, sampleRate float64) *Biquad {
	b := &Biquad{}
	b.setPeaking(freq, q, gainDB, sampleRate)
	return b
}

func (b *Biquad) normalize(b0, b1, b2, a0, a1, a2 float64) {
	b.b0 = b0 / a0
	b.b1 = b1 / a0
	b.b2 = b2 / a0
	b.a1 = a1 / a0
	b.a2 = a2 / a0
}

func (b *Biquad) setLowpass(freq, q, sr float64) {
	w0 := 2 * math.Pi * freq / sr
	sinW0, cosW0 := math.Sincos(w0)
	alpha := sinW0 / (2 * q)

	b.normalize(
		(1-cosW0)/2, 1-cosW0, (1-cosW0)/2,
		1+alpha, -2*cosW0, 1-alpha,
	)
}

func (b *Biquad) setHighpass(freq, q, sr float64) {
	w0 := 2 * math.Pi * freq / sr
	sinW0, cosW0 := math.Sincos(w0)
	alpha := sinW0 / (2 * q)

	b.normalize(
		(1+cosW0)/2, -(1 + cosW0), (1+cosW0)/2,
		1+alpha, -2*cosW0, 1-alpha,
	)
}

func (b *Biquad) setPeaking(freq, q, gainDB, sr float64) {
	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * freq / sr
	sinW0, cosW0 := math.Sincos(w0)
	alpha := sinW0 / (2 * q)

	b.normalize(
		1+alpha*a, -2*cosW0, 1-alpha*a,
		1+alpha/a, -2*cosW0, 1-alpha/a,
	)
}

// Shelves use S=1 (maximally steep without overshoot per the cookbook).
func (b *Biquad) setLowShelf(freq, gainDB, sr float64) {
	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * freq / sr
	sinW0, cosW0 := math.Sincos(w0)
	alpha := sinW0 / 2 * math.Sqrt(a+1/a)
	sq := 2 * math.Sqrt(a) * alpha

	b.normalize(
		a*((a+1)-(a-1)*cosW0+sq),
		2*a*((a-1)-(a+1)*cosW0),
		a*((a+1)-(a-1)*cosW0-sq),
		(a+1)+(a-1)*cosW0+sq,
		-2*((a-1)+(a+1)*cosW0),
		(a+1)+(a-1)*cosW0-sq,
	)
}

func (b *Biquad) setHighShelf(freq, gainDB, sr float64) {
	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * freq / sr
	sinW0, cosW0 := math.Sincos(w0)
	alpha := sinW0 / 2 * math.Sqrt(a+1/a)
	sq := 2 * math.Sqrt(a) * alpha

	b.normalize(
		a*((a+1)+(a-1)*cosW0+sq),
		-2*a*((a-1)+(a+1)*cosW0),
		a*((a+1)+(a-1)*cosW0-sq),
		(a+1)-(a-1)*cosW0+sq,
		2*((a-1)-(a+1)*cosW0),
		(a+1)-(a-1)*cosW0-sq,
	)
}

func (b *Biquad) tick(x float64, ch int) float64 {
	y := b.b0*x + b.b1*b.x1[ch] + b.b2*b.x2[ch] - b.a1*b.y1[ch] - b.a2*b.y2[ch]
	b.x2[ch] = b.x1[ch]
	b.x1[ch] = x
	b.y2[ch] = b.y1[ch]
	b.y1[ch] = y
	return y
}

// ProcessMono filters samples in place as a single channel.
func (b *Biquad) ProcessMono(samples []float32) {
	for i, x := range samples {
		samples[i] = float32(b.tick(float64(x), 0))
	}
}

// ProcessStereo filters interleaved stereo samples in place.
func (b *Biquad) ProcessStereo(samples []float32) {
	for i := 0; i+1 < len(samples); i += 2 {
		samples[i] = float32(b.tick(float64(samples[i]), 0))
		samples[i+1] = float32(b.tick(float64(samples[i+1]), 1))
	}
}

// Reset clears the filter state without touching coefficients.
func (b *Biquad) Reset() {
	b.x1 = [2]float64{}
	b.x2 = [2]float64{}
	b.y1 = [2]float64{}
	b.y2 = [2]float64{}
}
