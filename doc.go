// SPDX-License-Identifier: EPL-2.0

// Package portadj is a two-deck audio playback and mixing engine: per-deck
// transport with clock-extrapolated position, physics-based scratch
// emulation, cue points, offline tempo detection and a three-band EQ per
// deck, summed through a crossfade bus.
//
// # Quick Start
//
//	eng := portadj.New(config.Default())
//
//	data, _ := os.ReadFile("track.mp3")
//	if err := eng.DeckA().Load("track.mp3", data); err != nil {
//	    // decode failure; deck state is unchanged
//	}
//	eng.DeckA().Play()
//
//	// Render fixed-size blocks from the host audio callback:
//	block := make([]float32, config.Default().BlockFrames*2)
//	eng.Mixer().Render(block)
//
// # Architecture
//
// Each deck owns its transport, scratch state, cue points and EQ/volume
// chain (package deck). Tracks are decoded through a format registry
// (packages audio and formats/...) into immutable per-channel buffers
// (package buffer), resampled at load time to the engine rate. Tempo is
// estimated once per load in the background (package bpm). The mixer
// applies the crossfade law gainA = 1-x, gainB = x.
//
// # Execution Domains
//
// Two paths touch the engine: the command/query surface (any goroutine,
// mutex-guarded) and the render callback (real-time, allocation- and
// lock-free). Position display is pull-based: the host polls
// Deck.CurrentTime on its own schedule.
//
// # Supported Formats
//
//   - WAV (PCM) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16-bit) via formats/aiff
package portadj
