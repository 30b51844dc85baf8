// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF tracks for deck loading, built on
// github.com/go-audio/aiff. Only 16-bit PCM files are accepted; samples
// come out as interleaved float32 in [-1,1]. go-audio needs an
// io.ReadSeeker, so plain readers are buffered in memory first.
package aiff
