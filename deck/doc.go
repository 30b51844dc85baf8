// SPDX-License-Identifier: EPL-2.0

// Package deck implements one playback channel of the mixing engine:
// transport (play/pause/seek with clock-extrapolated position), the
// physics-based scratch emulation, cue points, tempo state and the
// per-deck EQ/volume chain.
//
// # Transport
//
// Position is not sampled every audio frame. While playing it is
// extrapolated on demand from the last committed (position, clock
// reading) pair:
//
//	currentTime = pausedAt + (now - startRef) * rate
//
// The host polls CurrentTime on its own schedule; drift bounded by one
// polling interval is expected and acceptable. Reaching the end of the
// track auto-stops the deck and rewinds to 0.
//
// # Scratch
//
// A scratch gesture never positions audio directly. StartScratch seeds a
// physically tracked position, Scratch moves only a target, and the
// render callback chases the target with a damped tracking filter
// (current += (target-current) * damping, 0.5 by default). Positions
// outside the track degrade to silent frames. StopScratch commits the
// tracked position back to the transport and resumes playback when the
// deck was playing before.
//
// # Real-time contract
//
// Render is the only method that runs in the audio callback. It does not
// allocate, lock or block; everything it reads crosses from the command
// surface through atomics with last-write-wins semantics.
//
// # Tempo
//
// Loading a track starts background tempo analysis (package bpm) on the
// first channel. A result arriving after a newer load is discarded. The
// displayed tempo is always baseBpm*rate; a tap-tempo override stores
// tap/rate so the base stays rate-independent.
package deck
