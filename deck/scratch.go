// SPDX-License-Identifier: EPL-2.0

package deck

import "math"

// Scratch emulation decouples drag input arriving at UI event rate from
// output rendered in fixed blocks: gestures only move a target position,
// and the render path chases it with a damped tracking filter, producing
// continuous variable-speed playback instead of discrete snaps.

// StartScratch enters scratch mode at the current position. Normal
// playback output stops; whether it resumes is decided by StopScratch.
// No-op without a track or when already scratching.
func (d *Deck) StartScratch() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.track == nil || d.scratching {
		return
	}

	d.wasPlaying = d.playing
	if d.playing {
		d.pauseLocked()
	}

	pos := d.pausedAt * float64(d.engineRate)
	d.scrCurrent.Store(pos)
	d.scrTarget.Store(pos)
	d.scratching = true
	d.scratchA.Store(true)
}

// Scratch feeds a gesture update as relative angular motion of the
// control surface (radians). The delta converts to seconds through the
// platter's revolution period and moves the target relative to the
// engine's own displayed position, never to an absolute pointer angle, so
// there is no discontinuity at the ±π wraparound.
//
// Lock-free: called at UI event rate while the render callback chases the
// target. Last write wins.
func (d *Deck) Scratch(angleDelta float64) {
	if !d.scratchA.Load() {
		return
	}

	dt := angleDelta / (2 * math.Pi) * d.revPeriod
	cur := d.scrCurrent.Load()
	d.scrTarget.Store(cur + dt*float64(d.engineRate))
}

// StopScratch leaves scratch mode, committing the physically tracked
// position, and resumes playback when the deck was playing before the
// scratch began. No-op when not scratching.
func (d *Deck) StopScratch() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopScratchLocked()
}

func (d *Deck) stopScratchLocked() {
	if !d.scratching {
		return
	}

	d.scratching = false
	d.scratchA.Store(false)
	d.pausedAt = clamp(d.scrCurrent.Load()/float64(d.engineRate), 0, d.track.Duration())

	if d.wasPlaying {
		d.playLocked()
	}
	d.wasPlaying = false
}
