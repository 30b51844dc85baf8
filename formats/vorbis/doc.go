// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis tracks for deck loading, built on
// github.com/jfreymuth/oggvorbis. Vorbis decodes natively to float32 so
// samples pass through without an integer conversion step. Decoding only.
package vorbis
