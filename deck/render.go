// SPDX-License-Identifier: EPL-2.0

package deck

import (
	"math"

	"github.com/mokuworks-kr/PortaDJ/buffer"
)

// Render fills dst with the deck's next block of interleaved stereo
// samples. It runs in the real-time audio callback: no allocation, no
// locks, no blocking. All state it needs is read through atomics; the
// scratch and playback cursors are owned by this goroutine.
//
// len(dst) must be a multiple of 2. A deck that is neither playing nor
// scratching, or has no track, emits silence.
func (d *Deck) Render(dst []float32) {
	track := d.trackA.Load()
	if track == nil {
		zero(dst)
		return
	}

	switch {
	case d.scratchA.Load():
		d.renderScratch(track, dst)
	case d.playingA.Load():
		d.renderPlayback(track, dst)
	default:
		zero(dst)
		return
	}

	d.chain.Process(dst)
}

// renderScratch advances the damped tracking filter one step per output
// frame. Out-of-range positions degrade to silent frames, never a fault.
func (d *Deck) renderScratch(track *buffer.Buffer, dst []float32) {
	cur := d.scrCurrent.Load()
	lastIdx := float64(track.Frames() - 1)

	for i := 0; i+1 < len(dst); i += 2 {
		// Re-read the target every frame: gesture updates land
		// asynchronously mid-block.
		target := d.scrTarget.Load()
		cur += (target - cur) * d.damping

		if cur < 0 || cur > lastIdx {
			dst[i] = 0
			dst[i+1] = 0
			continue
		}

		dst[i], dst[i+1] = sampleFrame(track, cur)
	}

	d.scrCurrent.Store(cur)
}

// renderPlayback reads the track at the playback-rate-scaled cursor.
// Past the end it emits silence; the transport's position query performs
// the actual auto-stop.
func (d *Deck) renderPlayback(track *buffer.Buffer, dst []float32) {
	pos := d.renderPos.Load()
	rate := d.rateA.Load()
	lastIdx := float64(track.Frames() - 1)

	for i := 0; i+1 < len(dst); i += 2 {
		if pos < 0 || pos > lastIdx {
			dst[i] = 0
			dst[i+1] = 0
		} else {
			dst[i], dst[i+1] = sampleFrame(track, pos)
		}
		pos += rate
	}

	d.renderPos.Store(pos)
}

// sampleFrame linearly interpolates one stereo frame at a fractional
// position. A mono track is duplicated to both outputs; extra channels
// beyond the second are ignored.
func sampleFrame(track *buffer.Buffer, pos float64) (left, right float32) {
	i0 := int(math.Floor(pos))
	i1 := i0 + 1
	if last := track.Frames() - 1; i1 > last {
		i1 = last
	}
	frac := float32(pos - float64(i0))

	ch0 := track.Channel(0)
	left = ch0[i0] + (ch0[i1]-ch0[i0])*frac

	if track.NumChannels() > 1 {
		ch1 := track.Channel(1)
		right = ch1[i0] + (ch1[i1]-ch1[i0])*frac
	} else {
		right = left
	}

	return left, right
}

func zero(dst []float32) {
	for i := range dst {
		dst[i] = 0
	}
}
