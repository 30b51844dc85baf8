// SPDX-License-Identifier: EPL-2.0

package deck

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mokuworks-kr/PortaDJ/audio"
	"github.com/mokuworks-kr/PortaDJ/bpm"
	"github.com/mokuworks-kr/PortaDJ/buffer"
	"github.com/mokuworks-kr/PortaDJ/config"
	"github.com/mokuworks-kr/PortaDJ/fx"
	"github.com/mokuworks-kr/PortaDJ/internal/atomix"
)

// Deck is one playback channel: transport state, scratch physics, cue
// points and the EQ/volume chain. One Deck is created per channel at
// engine start and reused across loads for the life of the application.
//
// Two execution domains touch a Deck. The command and query surface
// (everything except Render) is guarded by a mutex. Render runs in the
// audio callback and reads its inputs through atomics only, so commands
// never block a block render.
type Deck struct {
	mu sync.Mutex

	// Command-surface state, guarded by mu.
	track    *buffer.Buffer
	fileName string
	pausedAt float64 // seconds, last committed stop position
	startRef time.Time
	playing  bool
	rate     float64
	baseBpm  float64 // detected or tap-derived, rate-independent; 0 = unknown
	cues     CueList

	scratching   bool
	wasPlaying   bool
	loadGen      uint64 // bumped per load; stale analysis results are discarded
	analysisDone chan struct{}

	// Render-path mirrors. The render callback reads only these.
	trackA     atomic.Pointer[buffer.Buffer]
	playingA   atomic.Bool
	scratchA   atomic.Bool
	rateA      atomix.Float64
	renderPos  atomix.Float64 // playback cursor, frames
	scrCurrent atomix.Float64 // physically tracked scratch position, frames
	scrTarget  atomix.Float64 // desired scratch position, frames

	chain *fx.Chain

	engineRate int
	damping    float64
	revPeriod  float64
	reg        *audio.Registry

	now     func() time.Time
	analyze func(samples []float32, sampleRate int) int
}

// New creates an empty deck rendering at the configured engine rate.
func New(cfg config.Engine, reg *audio.Registry) *Deck {
	d := &Deck{
		rate:       1.0,
		chain:      fx.NewChain(float64(cfg.SampleRate)),
		engineRate: cfg.SampleRate,
		damping:    cfg.ScratchDamping,
		revPeriod:  cfg.RevolutionSeconds,
		reg:        reg,
		now:        time.Now,
		analyze:    bpm.Estimate,
	}
	d.rateA.Store(1.0)
	return d
}

// Load decodes data (format chosen by the extension of name) and makes it
// the deck's track. On decode failure the deck is left untouched. A
// successful load stops any playback or scratch, resets position, cues,
// rate and tempo, and starts background tempo analysis on the first
// channel; a result from an analysis superseded by a newer load is
// discarded.
func (d *Deck) Load(name string, data []byte) error {
	track, err := buffer.Decode(name, data, d.reg, d.engineRate)
	if err != nil {
		return fmt.Errorf("loading %s: %w", name, err)
	}

	d.mu.Lock()

	d.scratching = false
	d.scratchA.Store(false)
	d.wasPlaying = false
	d.playing = false
	d.playingA.Store(false)

	d.track = track
	d.trackA.Store(track)
	d.fileName = name
	d.pausedAt = 0
	d.renderPos.Store(0)
	d.rate = 1.0
	d.rateA.Store(1.0)
	d.baseBpm = 0
	d.cues = CueList{}

	d.loadGen++
	gen := d.loadGen
	done := make(chan struct{})
	d.analysisDone = done
	samples := track.Channel(0)
	sampleRate := track.SampleRate()
	analyze := d.analyze

	d.mu.Unlock()

	go func() {
		defer close(done)
		tempo := analyze(samples, sampleRate)

		d.mu.Lock()
		if d.loadGen == gen {
			d.baseBpm = float64(tempo)
		}
		d.mu.Unlock()
	}()

	return nil
}

// Play starts audible output from the committed position. No-op without a
// track, while already playing, or during a scratch. A position at or past
// the end wraps to the start.
func (d *Deck) Play() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.playLocked()
}

func (d *Deck) playLocked() {
	if d.track == nil || d.playing || d.scratching {
		return
	}
	if d.pausedAt >= d.track.Duration() {
		d.pausedAt = 0
	}
	d.startRef = d.now()
	d.playing = true
	d.renderPos.Store(d.pausedAt * float64(d.engineRate))
	d.playingA.Store(true)
}

// Pause stops output, committing the extrapolated position. No-op when
// not playing.
func (d *Deck) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pauseLocked()
}

func (d *Deck) pauseLocked() {
	if !d.playing {
		return
	}
	d.pausedAt = d.liveTimeLocked()
	d.playing = false
	d.playingA.Store(false)
}

// liveTimeLocked extrapolates the playing position from the last commit.
// Callers hold mu and have checked d.playing.
func (d *Deck) liveTimeLocked() float64 {
	elapsed := d.now().Sub(d.startRef).Seconds() * d.rate
	t := d.pausedAt + elapsed
	if dur := d.track.Duration(); t > dur {
		return dur
	}
	return t
}

// Seek moves the position to t seconds, clamped to the track. While
// scratching only the scratch target moves; the audible jump is left to
// the damped tracking filter. Otherwise the committed position changes
// and, when playing, output restarts from t without leaving play state.
func (d *Deck) Seek(t float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seekLocked(t)
}

func (d *Deck) seekLocked(t float64) {
	if d.track == nil {
		return
	}
	t = clamp(t, 0, d.track.Duration())

	if d.scratching {
		d.scrTarget.Store(t * float64(d.engineRate))
		return
	}

	d.pausedAt = t
	d.renderPos.Store(t * float64(d.engineRate))
	if d.playing {
		d.startRef = d.now()
	}
}

// CurrentTime returns the playback position in seconds. It is a pull
// query: the host polls it on its own schedule (typically the display
// refresh). Reaching the end of the track while playing auto-stops the
// deck and rewinds to 0.
func (d *Deck) CurrentTime() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.track == nil {
		return 0
	}

	if d.scratching {
		// Keep pausedAt in sync so a later StopScratch needs no extra
		// reconciliation.
		t := clamp(d.scrCurrent.Load()/float64(d.engineRate), 0, d.track.Duration())
		d.pausedAt = t
		return t
	}

	if d.playing {
		elapsed := d.now().Sub(d.startRef).Seconds() * d.rate
		t := d.pausedAt + elapsed
		if t >= d.track.Duration() {
			d.playing = false
			d.playingA.Store(false)
			d.pausedAt = 0
			d.renderPos.Store(0)
			return 0
		}
		return t
	}

	return d.pausedAt
}

// SetRate changes the playback rate multiplier. The deck UI exposes ±8%
// but the engine itself accepts any positive value. While playing the
// change applies to live output without restarting it: the elapsed
// position is committed at the old rate first, so phase is continuous.
func (d *Deck) SetRate(rate float64) {
	if rate <= 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.playing && !d.scratching {
		d.pausedAt = d.liveTimeLocked()
		d.startRef = d.now()
	}
	d.rate = rate
	d.rateA.Store(rate)
}

// Rate returns the current playback rate multiplier.
func (d *Deck) Rate() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rate
}

// SetBPM overrides the base tempo from a measured tap tempo. The stored
// base stays rate-independent: tapping along to a track sped up 8% must
// not drift when the rate slider moves afterwards.
func (d *Deck) SetBPM(tapBpm float64) {
	if tapBpm <= 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.baseBpm = tapBpm / d.rate
}

// BPM returns the displayed tempo: base tempo scaled by the live playback
// rate. 0 means unknown.
func (d *Deck) BPM() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.baseBpm * d.rate
}

// IsPlaying reports whether transport playback is active.
func (d *Deck) IsPlaying() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.playing
}

// IsScratching reports whether a scratch gesture is in progress.
func (d *Deck) IsScratching() bool {
	return d.scratchA.Load()
}

// Loaded reports whether a track is loaded.
func (d *Deck) Loaded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.track != nil
}

// Duration returns the loaded track's length in seconds, 0 when empty.
func (d *Deck) Duration() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.track == nil {
		return 0
	}
	return d.track.Duration()
}

// FileName returns the display label of the loaded track.
func (d *Deck) FileName() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fileName
}

// Track returns the loaded sample buffer, nil when empty.
func (d *Deck) Track() *buffer.Buffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.track
}

// SetEQ sets one EQ band from a normalized control value in [0,1]
// (0.5 = flat, range ±15dB).
func (d *Deck) SetEQ(band fx.Band, v float64) {
	d.chain.SetBand(band, v)
}

// SetVolume sets the deck's linear volume stage, independent of the
// mixer's crossfade gain.
func (d *Deck) SetVolume(v float64) {
	d.chain.SetVolume(v)
}

// Chain exposes the deck's EQ/volume chain.
func (d *Deck) Chain() *fx.Chain {
	return d.chain
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
