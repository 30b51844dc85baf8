package audio

import (
	"io"
	"math"
	"testing"
)

// drain collects everything a Source produces.
func drain(t *testing.T, src Source, bufSize int) []float32 {
	t.Helper()

	buf := make([]float32, bufSize)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(newSilentSource(44100, 2, 1000), 8000)

	if got := r.SampleRate(); got != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", got)
	}
	if got := r.Channels(); got != 2 {
		t.Errorf("Channels() = %d, want 2", got)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestResampler_SameRatePassesValuesThrough(t *testing.T) {
	t.Parallel()

	r := NewResampler(newConstantSource(8000, 1, 100, 0.5), 8000)

	out := drain(t, r, 64)
	if len(out) == 0 {
		t.Fatal("no samples produced")
	}
	for i, s := range out {
		if math.Abs(float64(s-0.5)) > 0.1 {
			t.Errorf("out[%d] = %v, want ≈0.5", i, s)
		}
	}
}

func TestResampler_OutputLengthTracksRateRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		srcRate   int
		dstRate   int
		tolerance int
	}{
		{"downsample 44.1k to 8k", 44100, 8000, 100},
		{"upsample 8k to 44.1k", 8000, 44100, 500},
		{"downsample 6:1", 48000, 8000, 200},
		{"upsample 1:6", 8000, 48000, 500},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// One second of audio in, roughly one second out.
			src := newSineSource(tt.srcRate, 1, tt.srcRate, 440.0)
			out := drain(t, NewResampler(src, tt.dstRate), 1024)

			if got := len(out); got < tt.dstRate-tt.tolerance || got > tt.dstRate+tt.tolerance {
				t.Errorf("output length = %d, want %d ±%d", got, tt.dstRate, tt.tolerance)
			}

			for i, s := range out {
				if s < -1.5 || s > 1.5 {
					t.Fatalf("out[%d] = %v, outside [-1.5, 1.5]", i, s)
				}
			}
		})
	}
}

func TestResampler_StereoChannelsStayApart(t *testing.T) {
	t.Parallel()

	src := newMockSource(44100, 2, 1000, func(_, channel int) float32 {
		if channel == 0 {
			return 0.3
		}
		return 0.7
	})

	out := drain(t, NewResampler(src, 8000), 64)
	if len(out) < 2 {
		t.Fatal("no frames produced")
	}

	for f := 0; f+1 < len(out); f += 2 {
		if math.Abs(float64(out[f]-0.3)) > 0.2 {
			t.Errorf("frame %d left = %v, want ≈0.3", f/2, out[f])
		}
		if math.Abs(float64(out[f+1]-0.7)) > 0.2 {
			t.Errorf("frame %d right = %v, want ≈0.7", f/2, out[f+1])
		}
	}
}

func TestResampler_EOFIsSticky(t *testing.T) {
	t.Parallel()

	r := NewResampler(newSilentSource(44100, 1, 100), 8000)
	drain(t, r, 256)

	n, err := r.ReadSamples(make([]float32, 256))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after EOF = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(newSilentSource(44100, 2, 1000), 8000)

	// 7 floats cannot hold whole stereo frames.
	if _, err := r.ReadSamples(make([]float32, 7)); err != ErrInvalidDstSize {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_VeryShortSource(t *testing.T) {
	t.Parallel()

	r := NewResampler(newSilentSource(44100, 1, 2), 8000)

	n, err := r.ReadSamples(make([]float32, 10))
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n < 0 {
		t.Errorf("ReadSamples() n = %d, want non-negative", n)
	}
}

func TestResampler_ConsecutiveReadsContinueStream(t *testing.T) {
	t.Parallel()

	r := NewResampler(newConstantSource(44100, 1, 44100, 0.5), 8000)

	n1, err := r.ReadSamples(make([]float32, 100))
	if err != nil && err != io.EOF {
		t.Fatalf("first ReadSamples() error = %v", err)
	}
	n2, err := r.ReadSamples(make([]float32, 100))
	if err != nil && err != io.EOF {
		t.Fatalf("second ReadSamples() error = %v", err)
	}

	if n1 == 0 || n2 == 0 {
		t.Errorf("reads returned (%d, %d) samples, want both non-zero", n1, n2)
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	src := newSineSource(44100, 2, 100000, 440.0)
	r := NewResampler(src, 8000)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		src.Reset()
		for {
			if _, err := r.ReadSamples(buf); err == io.EOF {
				break
			}
		}
	}
}
