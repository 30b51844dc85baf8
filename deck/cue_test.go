package deck

import (
	"math"
	"testing"
)

func TestCueList_AddDeduplicatesWithinTolerance(t *testing.T) {
	t.Parallel()

	var c CueList
	c.Add(5.0)
	c.Add(5.05) // within 0.1s: same mark
	c.Add(5.0)

	if got := c.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
	if got := c.Points()[0]; got != 5.0 {
		t.Errorf("Points()[0] = %v, want 5.0", got)
	}
}

func TestCueList_AddKeepsAscendingOrder(t *testing.T) {
	t.Parallel()

	var c CueList
	for _, v := range []float64{30, 10, 20} {
		c.Add(v)
	}

	got := c.Points()
	want := []float64{10, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Points() = %v, want %v", got, want)
		}
	}
}

func TestCueList_RemoveDeletesAllWithinTolerance(t *testing.T) {
	t.Parallel()

	var c CueList
	c.Add(1.0)
	c.Add(2.0)
	c.Add(3.0)

	c.Remove(2.04)

	got := c.Points()
	if len(got) != 2 || got[0] != 1.0 || got[1] != 3.0 {
		t.Errorf("Points() = %v, want [1 3]", got)
	}
}

func TestCueList_Next(t *testing.T) {
	t.Parallel()

	var c CueList
	for _, v := range []float64{10, 20, 30} {
		c.Add(v)
	}

	tests := []struct {
		name string
		at   float64
		want float64
	}{
		{"between cues", 25, 30},
		{"past last wraps to first", 35, 10},
		{"before first", 5, 10},
		{"exactly on a cue skips it", 20, 30},
		{"just before a cue within epsilon skips it", 19.97, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Next(tt.at); got != tt.want {
				t.Errorf("Next(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestCueList_NextEmpty(t *testing.T) {
	t.Parallel()

	var c CueList
	if got := c.Next(12); got != 0 {
		t.Errorf("Next() on empty list = %v, want 0", got)
	}
}

func TestDeck_JumpToNextCue(t *testing.T) {
	t.Parallel()

	d, _ := newTestDeck(t, 40.0)
	for _, v := range []float64{10, 20, 30} {
		d.AddCue(v)
	}

	d.Seek(25)
	d.JumpToNextCue()
	if got := d.CurrentTime(); got != 30 {
		t.Errorf("CurrentTime() = %v, want 30", got)
	}

	d.Seek(35)
	d.JumpToNextCue()
	if got := d.CurrentTime(); got != 10 {
		t.Errorf("CurrentTime() = %v, want 10 (wrap)", got)
	}
}

func TestDeck_JumpToNextCueNoCuesSeeksToStart(t *testing.T) {
	t.Parallel()

	d, _ := newTestDeck(t, 2.0)

	d.Seek(1.5)
	d.JumpToNextCue()

	if got := d.CurrentTime(); got != 0 {
		t.Errorf("CurrentTime() = %v, want 0", got)
	}
}

func TestDeck_JumpToNextCueStopsScratchFirst(t *testing.T) {
	t.Parallel()

	d, _ := newTestDeck(t, 10.0)
	d.AddCue(4.0)

	d.Seek(1.0)
	d.StartScratch()
	d.JumpToNextCue()

	if d.IsScratching() {
		t.Error("IsScratching() = true; jump must stop the scratch")
	}
	if got := d.CurrentTime(); math.Abs(got-4.0) > 1e-9 {
		t.Errorf("CurrentTime() = %v, want 4.0", got)
	}
}

func TestDeck_AddCueClampsToTrack(t *testing.T) {
	t.Parallel()

	d, _ := newTestDeck(t, 2.0)

	d.AddCue(100)
	got := d.Cues()
	if len(got) != 1 || got[0] != 2.0 {
		t.Errorf("Cues() = %v, want [2]", got)
	}
}
