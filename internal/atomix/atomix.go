// SPDX-License-Identifier: EPL-2.0

// Package atomix provides a lock-free float64 cell for control values
// written by the command surface and read inside the render callback.
package atomix

import (
	"math"
	"sync/atomic"
)

// Float64 is an atomic float64. Last-write-wins semantics: the render
// path treats these as continuous control signals, so brief staleness
// between a write and the next block is acceptable.
type Float64 struct {
	bits atomic.Uint64
}

func (f *Float64) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

func (f *Float64) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add stores v relative to the current value. Not atomic as a
// read-modify-write; callers that need that must own all writes.
func (f *Float64) Add(v float64) {
	f.Store(f.Load() + v)
}
