// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/mokuworks-kr/PortaDJ/audio"
)

// pcmReader is the slice of gomp3.Decoder the source needs; narrowed to
// an interface so tests can stand in for the real decoder.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// go-mp3 always emits interleaved stereo, 16-bit little-endian.
const (
	mp3Channels    = 2
	bytesPerSample = 2
)

type source struct {
	dec        pcmReader
	sampleRate int
	raw        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return mp3Channels }
func (s *source) Close() error    { return nil }

func (s *source) BufSize() int { return cap(s.raw) / bytesPerSample }

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) * bytesPerSample
	if cap(s.raw) < want {
		s.raw = make([]byte, want)
	}
	s.raw = s.raw[:want]

	n, err := s.dec.Read(s.raw)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	samples := n / bytesPerSample
	for i := 0; i < samples; i++ {
		v := int16(binary.LittleEndian.Uint16(s.raw[i*bytesPerSample:]))
		dst[i] = float32(v) / 32768.0
	}

	return samples, err
}

// Decoder decodes MPEG-1 Layer III streams via go-mp3.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		raw:        make([]byte, 8192),
	}, nil
}
