package buffer

import "errors"

var (
	ErrNoChannels    = errors.New("source has no channels")
	ErrEmptyTrack    = errors.New("track decoded to zero samples")
	ErrUnknownFormat = errors.New("no decoder registered for format")
)
