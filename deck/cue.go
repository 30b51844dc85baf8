// SPDX-License-Identifier: EPL-2.0

package deck

import "sort"

const (
	// Two marks closer than this are treated as the same cue point.
	cueTolerance = 0.1

	// Next-cue search skips marks this close ahead of the current
	// position, so jump-jump-jump advances instead of sticking.
	nextCueEpsilon = 0.05
)

// CueList is an ascending set of cue point timestamps in seconds,
// deduplicated within cueTolerance.
type CueList struct {
	points []float64
}

// Add inserts t unless an existing point lies within tolerance of it.
func (c *CueList) Add(t float64) {
	for _, p := range c.points {
		if abs(p-t) < cueTolerance {
			return
		}
	}
	i := sort.SearchFloat64s(c.points, t)
	c.points = append(c.points, 0)
	copy(c.points[i+1:], c.points[i:])
	c.points[i] = t
}

// Remove deletes every point within tolerance of t.
func (c *CueList) Remove(t float64) {
	kept := c.points[:0]
	for _, p := range c.points {
		if abs(p-t) >= cueTolerance {
			kept = append(kept, p)
		}
	}
	c.points = kept
}

// Next returns the first point after t (with a small epsilon so the point
// just jumped to is skipped), wrapping to the earliest point, or 0 when
// the list is empty.
func (c *CueList) Next(t float64) float64 {
	if len(c.points) == 0 {
		return 0
	}
	for _, p := range c.points {
		if p > t+nextCueEpsilon {
			return p
		}
	}
	return c.points[0]
}

// Points returns a copy of the cue timestamps in ascending order.
func (c *CueList) Points() []float64 {
	out := make([]float64, len(c.points))
	copy(out, c.points)
	return out
}

func (c *CueList) Len() int { return len(c.points) }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// AddCue stores the given time as a cue point. No-op without a track.
func (d *Deck) AddCue(t float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.track == nil {
		return
	}
	d.cues.Add(clamp(t, 0, d.track.Duration()))
}

// RemoveCue deletes cue points within tolerance of t.
func (d *Deck) RemoveCue(t float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cues.Remove(t)
}

// Cues returns the deck's cue points in ascending order.
func (d *Deck) Cues() []float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cues.Points()
}

// JumpToNextCue seeks to the next cue point after the current position,
// wrapping to the first; with no cue points the target is 0. An active
// scratch is stopped (position reconciled) before the jump, so the seek
// behaves like any normal seek.
func (d *Deck) JumpToNextCue() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.track == nil {
		return
	}

	if d.scratching {
		d.stopScratchLocked()
	}

	t := d.pausedAt
	if d.playing {
		t = d.liveTimeLocked()
	}

	d.seekLocked(d.cues.Next(t))
}
