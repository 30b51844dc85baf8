// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

// ErrInvalidDstSize reports a destination slice that cannot hold a
// whole number of interleaved frames.
var ErrInvalidDstSize = errors.New("dst length must be a multiple of the channel count")
