// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 tracks for deck loading, built on
// github.com/hajimehoshi/go-mp3. Output is always interleaved stereo
// float32 in [-1,1] at the file's native rate; the track loader resamples
// to the engine rate when they differ. Decoding only.
package mp3
