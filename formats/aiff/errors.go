// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	ErrNotAiffFile        = errors.New("not an aiff file")
	ErrOnly16BitSupported = errors.New("only 16-bit PCM aiff is supported")
	ErrUnsupportedLayout  = errors.New("unsupported aiff layout")
)
