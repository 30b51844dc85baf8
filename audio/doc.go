// SPDX-License-Identifier: EPL-2.0

// Package audio defines the streaming layer the deck engine loads tracks
// through: the Source and Decoder interfaces, a format Registry keyed by
// file extension, and a cubic-interpolation Resampler.
//
// # Sources and Decoders
//
// A Source delivers interleaved float32 PCM in [-1,1] via ReadSamples,
// returning io.EOF once drained. A Decoder turns raw file bytes (through
// an io.Reader) into a Source. Decoders for WAV, MP3, Ogg Vorbis and AIFF
// live under formats/.
//
// # Registry
//
// The Registry maps normalized file extensions to decoders so callers can
// load a track by name:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, ok := reg.Get(filepath.Ext("track.wav"))
//
// # Resampler
//
// Both decks of the engine render at one fixed sample rate. When a decoded
// track's rate differs, a Resampler brings it to the engine rate at load
// time using Catmull-Rom cubic interpolation, with a simple one-pole
// low-pass applied when downsampling:
//
//	src, _ := dec.Decode(r)
//	rs := audio.NewResampler(src, 44100)
//
// The Resampler is itself a Source, so it composes with any consumer of
// the interface.
package audio
