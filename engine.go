// SPDX-License-Identifier: EPL-2.0

package portadj

import (
	"github.com/mokuworks-kr/PortaDJ/audio"
	"github.com/mokuworks-kr/PortaDJ/config"
	"github.com/mokuworks-kr/PortaDJ/deck"
	"github.com/mokuworks-kr/PortaDJ/formats/aiff"
	"github.com/mokuworks-kr/PortaDJ/formats/mp3"
	"github.com/mokuworks-kr/PortaDJ/formats/vorbis"
	"github.com/mokuworks-kr/PortaDJ/formats/wav"
	"github.com/mokuworks-kr/PortaDJ/mixer"
)

// Engine is the two-deck playback core: deck A, deck B and the crossfade
// bus between them. The decks are fully independent; they share nothing
// but the mixer's gain handles.
type Engine struct {
	deckA *deck.Deck
	deckB *deck.Deck
	mix   *mixer.Mixer
	reg   *audio.Registry
	cfg   config.Engine
}

// DefaultRegistry returns a decoder registry with all supported track
// formats registered: wav, mp3, ogg, aiff.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}

// New builds an engine from cfg with the default format registry.
func New(cfg config.Engine) *Engine {
	reg := DefaultRegistry()
	a := deck.New(cfg, reg)
	b := deck.New(cfg, reg)

	return &Engine{
		deckA: a,
		deckB: b,
		mix:   mixer.New(a, b, cfg.BlockFrames),
		reg:   reg,
		cfg:   cfg,
	}
}

// DeckA returns the left deck.
func (e *Engine) DeckA() *deck.Deck { return e.deckA }

// DeckB returns the right deck.
func (e *Engine) DeckB() *deck.Deck { return e.deckB }

// Mixer returns the crossfade bus.
func (e *Engine) Mixer() *mixer.Mixer { return e.mix }

// Registry returns the engine's format registry, so callers can register
// additional decoders.
func (e *Engine) Registry() *audio.Registry { return e.reg }

// Config returns the engine configuration in effect.
func (e *Engine) Config() config.Engine { return e.cfg }
