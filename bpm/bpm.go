// SPDX-License-Identifier: EPL-2.0

// Package bpm estimates a track's tempo offline. The pipeline picks the
// loudest 10-second window, isolates the kick/bass band, extracts an
// amplitude envelope and searches it for the periodic lag with the
// strongest autocorrelation. It runs once per loaded track, off the
// render path; anything that goes wrong degrades to 0 ("unknown").
package bpm

import "github.com/mokuworks-kr/PortaDJ/fx"

const (
	// Analysis window and stride, seconds.
	windowSeconds = 10
	strideSeconds = 2

	// Coarse energy scan reads every energyStride-th sample.
	energyStride = 100

	// Band isolating kick-drum energy.
	highpassHz = 40.0
	lowpassHz  = 150.0
	filterQ    = 1.0

	// Envelope is decimated to roughly this rate.
	targetEnvelopeRate = 6000

	// Tempo search window; detections outside it fold by octaves.
	minBPM = 70.0
	maxBPM = 160.0
)

// Estimate returns the tempo of samples (one channel at sampleRate) as an
// integer BPM in [70,160], or 0 when the track is too short, has no
// detectable periodicity, or the pipeline fails.
func Estimate(samples []float32, sampleRate int) (result int) {
	// A numeric edge case in the pipeline must never take the deck down.
	defer func() {
		if r := recover(); r != nil {
			result = 0
		}
	}()

	if sampleRate <= 0 {
		return 0
	}

	window := windowSeconds * sampleRate
	if len(samples) < window {
		// Under 10s there is not enough signal to trust a correlation.
		return 0
	}

	segment := loudestWindow(samples, sampleRate)
	filtered := bandIsolate(segment, sampleRate)
	envelope, effRate := decimateEnvelope(filtered, sampleRate)

	bestLag := bestCorrelationLag(envelope, effRate)
	if bestLag <= 0 {
		return 0
	}

	bpm := 60.0 * float64(effRate) / float64(bestLag)
	bpm = roundTo1Decimal(bpm)

	// Autocorrelation is octave-ambiguous; fold into the search window.
	for bpm < minBPM {
		bpm *= 2
	}
	for bpm > maxBPM {
		bpm /= 2
	}

	return int(bpm + 0.5)
}

// loudestWindow slides a 10s window across the track in 2s strides and
// returns the one with maximum coarse energy. The loudest section is the
// most likely to carry a strong, regular beat.
func loudestWindow(samples []float32, sampleRate int) []float32 {
	window := windowSeconds * sampleRate
	stride := strideSeconds * sampleRate

	bestOffset := 0
	bestEnergy := -1.0

	for off := 0; off+window <= len(samples); off += stride {
		energy := 0.0
		for i := off; i < off+window; i += energyStride {
			s := float64(samples[i])
			energy += s * s
		}
		if energy > bestEnergy {
			bestEnergy = energy
			bestOffset = off
		}
	}

	return samples[bestOffset : bestOffset+window]
}

// bandIsolate applies highpass 40Hz into lowpass 150Hz, suppressing
// sub-bass rumble below and melodic content above the kick range.
func bandIsolate(segment []float32, sampleRate int) []float32 {
	out := make([]float32, len(segment))
	copy(out, segment)

	hp := fx.NewHighpass(highpassHz, filterQ, float64(sampleRate))
	lp := fx.NewLowpass(lowpassHz, filterQ, float64(sampleRate))
	hp.ProcessMono(out)
	lp.ProcessMono(out)

	return out
}

// decimateEnvelope rectifies the filtered signal and keeps every n-th
// sample so beats appear as periodic peaks in a compact sequence.
func decimateEnvelope(filtered []float32, sampleRate int) ([]float32, int) {
	decim := sampleRate / targetEnvelopeRate
	if decim < 1 {
		decim = 1
	}
	effRate := sampleRate / decim

	envelope := make([]float32, 0, len(filtered)/decim+1)
	for i := 0; i < len(filtered); i += decim {
		v := filtered[i]
		if v < 0 {
			v = -v
		}
		envelope = append(envelope, v)
	}

	return envelope, effRate
}

// bestCorrelationLag searches lags corresponding to 70-160 BPM and
// returns the lag with the highest correlation sum, or 0 when no lag
// correlates positively.
func bestCorrelationLag(envelope []float32, effRate int) int {
	minLag := effRate * 60 / int(maxBPM)
	maxLag := effRate * 60 / int(minBPM)

	bestLag := 0
	bestSum := 0.0

	for lag := minLag; lag <= maxLag && lag < len(envelope); lag++ {
		sum := 0.0
		for i := 0; i+lag < len(envelope); i++ {
			sum += float64(envelope[i]) * float64(envelope[i+lag])
		}
		if sum > bestSum {
			bestSum = sum
			bestLag = lag
		}
	}

	return bestLag
}

func roundTo1Decimal(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
