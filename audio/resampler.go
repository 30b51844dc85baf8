// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/mokuworks-kr/PortaDJ/utils"
)

// Resampler streams src at a target sample rate using cubic
// interpolation over a four-frame window. Interleaved samples in,
// interleaved samples out; channel count is preserved.
//
// Decks render at a single engine rate, so every loaded track passes
// through a Resampler once at load time when its file rate differs.
type Resampler struct {
	src      Source
	dstRate  float64
	step     float64 // source frames consumed per output frame
	channels int

	// window[1] and window[2] bracket the current output position,
	// window[0] and window[3] feed the cubic tails.
	window [4][]float32
	filled [4]bool
	primed bool

	// Fractional position between window[1] and window[2].
	cursor float64

	readBuf []float32
	eof     bool
	done    bool

	// One-pole low-pass applied while downsampling to tame aliasing.
	lpState []float32
	lpAlpha float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  float64(dstRate),
		step:     step,
		channels: channels,
		readBuf:  make([]float32, channels),
		lpState:  make([]float32, channels),
	}
	if step > 1.0 {
		r.lpAlpha = 0.5
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// readFrame pulls one interleaved frame from src into dst, applying
// the anti-alias filter when active.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	n, err := r.src.ReadSamples(r.readBuf)
	if n > 0 {
		copy(dst, r.readBuf[:n])
		if r.lpAlpha > 0 {
			for c := 0; c < r.channels; c++ {
				dst[c] = r.lpAlpha*dst[c] + (1-r.lpAlpha)*r.lpState[c]
				r.lpState[c] = dst[c]
			}
		}
	}

	if err == io.EOF {
		r.eof = true
		return n > 0, nil
	}
	if err != nil {
		return n > 0, fmt.Errorf("reading source frame: %w", err)
	}
	return n > 0, nil
}

// prime fills the four-frame window from the head of the stream,
// unfiltered. Missing tail frames are cloned from the last one read,
// and the filter state is seeded from the first frame so downsampling
// starts without a warm-up transient.
func (r *Resampler) prime() error {
	for i := range r.window {
		if r.eof {
			if i == 0 {
				return io.EOF
			}
			copy(r.window[i], r.window[i-1])
			r.filled[i] = true
			continue
		}

		n, err := r.src.ReadSamples(r.readBuf)
		if n > 0 {
			copy(r.window[i], r.readBuf[:n])
			if i == 0 {
				copy(r.lpState, r.readBuf[:n])
			}
		}
		if err == io.EOF {
			r.eof = true
			if n == 0 {
				if i == 0 {
					return io.EOF
				}
				copy(r.window[i], r.window[i-1])
			}
		} else if err != nil {
			return fmt.Errorf("reading source frame: %w", err)
		}

		r.filled[i] = true
	}

	r.primed = true
	return nil
}

// advance shifts the window one source frame forward.
func (r *Resampler) advance() error {
	if r.eof {
		return io.EOF
	}

	copy(r.window[0], r.window[1])
	copy(r.window[1], r.window[2])
	copy(r.window[2], r.window[3])
	r.filled[0], r.filled[1], r.filled[2] = r.filled[1], r.filled[2], r.filled[3]

	ok, err := r.readFrame(r.window[3])
	if err != nil {
		return err
	}
	r.filled[3] = ok
	if !ok && r.eof && !r.filled[2] {
		return io.EOF
	}

	return nil
}

// ReadSamples produces samples at the target rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			if err == io.EOF {
				r.done = true
			}
			return 0, err
		}
	}

	written := 0
	frames := len(dst) / r.channels

	for written < frames {
		for r.cursor >= 1.0 {
			r.cursor -= 1.0
			if err := r.advance(); err != nil {
				if err == io.EOF {
					r.done = true
				}
				return written * r.channels, err
			}
		}

		if !r.filled[1] || !r.filled[2] {
			r.done = true
			return written * r.channels, io.EOF
		}

		alpha := float32(r.cursor)
		out := dst[written*r.channels:]

		for c := 0; c < r.channels; c++ {
			y1 := r.window[1][c]
			y2 := r.window[2][c]
			y0, y3 := y1, y2
			if r.filled[0] {
				y0 = r.window[0][c]
			}
			if r.filled[3] {
				y3 = r.window[3][c]
			}

			out[c] = utils.CubicInterpolate(y0, y1, y2, y3, alpha)
		}

		written++
		r.cursor += r.step
	}

	return written * r.channels, nil
}
