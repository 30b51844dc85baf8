package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a wav file")
	ErrUnsupportedLayout   = errors.New("unsupported wav layout")
	ErrNotPCM              = errors.New("only uncompressed PCM wav is supported")
	ErrInvalidChannelCount = errors.New("channel count must be positive")
)
