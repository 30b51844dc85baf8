package buffer

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/mokuworks-kr/PortaDJ/audio"
	"github.com/mokuworks-kr/PortaDJ/formats/wav"
	"github.com/mokuworks-kr/PortaDJ/internal/audiotest"
)

func TestFromSource_SplitsChannels(t *testing.T) {
	t.Parallel()

	// Left counts up, right counts down; de-interleaving must keep them apart.
	src := audiotest.NewMockSource(44100, 2, 100, func(sample, channel int) float32 {
		if channel == 0 {
			return float32(sample) / 100
		}
		return -float32(sample) / 100
	})

	buf, err := FromSource(src, 44100)
	if err != nil {
		t.Fatalf("FromSource() error = %v", err)
	}

	if got := buf.NumChannels(); got != 2 {
		t.Fatalf("NumChannels() = %d, want 2", got)
	}
	if got := buf.Frames(); got != 100 {
		t.Fatalf("Frames() = %d, want 100", got)
	}

	for i := 0; i < 100; i++ {
		if l := buf.At(0, i); l != float32(i)/100 {
			t.Fatalf("left[%d] = %v, want %v", i, l, float32(i)/100)
		}
		if r := buf.At(1, i); r != -float32(i)/100 {
			t.Fatalf("right[%d] = %v, want %v", i, r, -float32(i)/100)
		}
	}
}

func TestFromSource_ResamplesToEngineRate(t *testing.T) {
	t.Parallel()

	// One second of audio at 22050 must come out as one second at 44100.
	src := audiotest.NewSineSource(22050, 1, 22050, 220)

	buf, err := FromSource(src, 44100)
	if err != nil {
		t.Fatalf("FromSource() error = %v", err)
	}

	if got := buf.SampleRate(); got != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", got)
	}
	if d := buf.Duration(); math.Abs(d-1.0) > 0.02 {
		t.Errorf("Duration() = %v, want ~1.0", d)
	}
}

func TestFromSource_EmptySourceFails(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(44100, 2, 0)

	if _, err := FromSource(src, 44100); !errors.Is(err, ErrEmptyTrack) {
		t.Errorf("FromSource() error = %v, want ErrEmptyTrack", err)
	}
}

func TestFromSource_NoChannelsFails(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(44100, 0, 100)

	if _, err := FromSource(src, 44100); !errors.Is(err, ErrNoChannels) {
		t.Errorf("FromSource() error = %v, want ErrNoChannels", err)
	}
}

func TestBuffer_AtOutOfRangeIsZero(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(44100, 1, 10, 0.7)
	buf, err := FromSource(src, 44100)
	if err != nil {
		t.Fatalf("FromSource() error = %v", err)
	}

	if got := buf.At(0, -1); got != 0 {
		t.Errorf("At(0, -1) = %v, want 0", got)
	}
	if got := buf.At(0, 10); got != 0 {
		t.Errorf("At(0, 10) = %v, want 0", got)
	}
	if got := buf.At(0, 5); got != 0.7 {
		t.Errorf("At(0, 5) = %v, want 0.7", got)
	}
}

func TestDecode_UnknownFormat(t *testing.T) {
	t.Parallel()

	reg := audio.NewRegistry()

	_, err := Decode("track.flac", []byte("data"), reg, 44100)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Decode() error = %v, want ErrUnknownFormat", err)
	}
}

func TestDecode_WavRoundTrip(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 2*441) // 441 stereo frames
	for i := 0; i < 441; i++ {
		samples[2*i] = 16384
		samples[2*i+1] = -16384
	}

	var raw bytes.Buffer
	if err := wav.WritePCM16(&raw, 44100, 2, samples); err != nil {
		t.Fatalf("WritePCM16() error = %v", err)
	}

	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})

	buf, err := Decode("loop.WAV", raw.Bytes(), reg, 44100)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got := buf.NumChannels(); got != 2 {
		t.Fatalf("NumChannels() = %d, want 2", got)
	}
	if got := buf.Frames(); got != 441 {
		t.Fatalf("Frames() = %d, want 441", got)
	}
	if l := buf.At(0, 100); math.Abs(float64(l)-0.5) > 0.01 {
		t.Errorf("left sample = %v, want ~0.5", l)
	}
	if r := buf.At(1, 100); math.Abs(float64(r)+0.5) > 0.01 {
		t.Errorf("right sample = %v, want ~-0.5", r)
	}
}

func TestDecode_CorruptPayloadFails(t *testing.T) {
	t.Parallel()

	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})

	if _, err := Decode("bad.wav", []byte("definitely not a wav"), reg, 44100); err == nil {
		t.Error("Decode() expected error for corrupt payload")
	}
}
