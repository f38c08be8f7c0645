package effects

import (
	"math"
	"testing"

	"github.com/cbegin/easysynth-go/internal/buffer"
	"github.com/cbegin/easysynth-go/internal/driver"
)

var both = buffer.Routing{Left: true, Right: true}

func fill(b *buffer.Buffer, start, end int, v float64, scratch bool) {
	for x := start; x < end; x++ {
		b.Set(buffer.Left, x, v, scratch)
		b.Set(buffer.Right, x, v, scratch)
	}
}

func TestCircuitOvershootsStep(t *testing.T) {
	c := NewCircuit(driver.Constant(0.4), driver.Constant(0.2))
	if got := c.Process(0, 1000); math.Abs(got-600) > 1e-9 {
		t.Fatalf("first sample got %f, want 600", got)
	}
	if got := c.Process(1, 1000); math.Abs(got-1040) > 1e-9 {
		t.Fatalf("second sample got %f, want 1040", got)
	}
	c.Reset()
	if got := c.Process(0, 1000); math.Abs(got-600) > 1e-9 {
		t.Fatalf("after reset got %f, want 600", got)
	}
	if got := c.Process(1, 1e9); got != buffer.MaxValue {
		t.Fatalf("clip got %f, want %d", got, buffer.MaxValue)
	}
}

func TestMixWeightsByPeaks(t *testing.T) {
	b := buffer.New(1000, 0)
	fill(b, 0, 100, 16000, false)
	fill(b, 0, 100, 16000, true)
	b.Touch(100)
	Mix(b, Span{Start: 0, End: 100, Route: both}, 0.75)
	for _, ch := range []buffer.Channel{buffer.Left, buffer.Right} {
		if got := b.Get(ch, 50, false); got != 14000 {
			t.Fatalf("channel %d got %d, want 14000", ch, got)
		}
	}
}

func TestManualMixSums(t *testing.T) {
	b := buffer.New(1000, 0)
	fill(b, 0, 10, 1000, false)
	fill(b, 0, 10, 2000, true)
	Mix(b, Span{Start: 0, End: 10, Route: buffer.Routing{Left: true}}, -1)
	if got := b.Get(buffer.Left, 5, false); got != 3000 {
		t.Fatalf("left got %d, want 3000", got)
	}
	if got := b.Get(buffer.Right, 5, false); got != 1000 {
		t.Fatalf("right must be untouched, got %d", got)
	}
}

func TestMixSilenceIsNoop(t *testing.T) {
	b := buffer.New(1000, 0)
	Mix(b, Span{Start: 0, End: 10, Route: both}, 0.7)
	if got := b.Get(buffer.Left, 3, false); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestBoostStopsAtHighWaterMark(t *testing.T) {
	b := buffer.New(1000, 0)
	fill(b, 0, 20, 1000, false)
	b.Touch(10)
	Boost(b, Span{Start: 0, End: 20, Route: both}, driver.Constant(2))
	if got := b.Get(buffer.Left, 5, false); got != 2000 {
		t.Fatalf("inside got %d, want 2000", got)
	}
	if got := b.Get(buffer.Left, 15, false); got != 1000 {
		t.Fatalf("past high-water mark got %d, want 1000", got)
	}

	Boost(b, Span{Start: 0, End: 10, Route: both}, driver.Constant(1))
	if got := b.Get(buffer.Right, 5, false); got != 2000 {
		t.Fatalf("unit gain changed the signal: %d", got)
	}

	Boost(b, Span{Start: 0, End: 10, Route: both}, driver.Constant(-1))
	if got := b.Get(buffer.Right, 5, false); got != -2000 {
		t.Fatalf("inverted got %d, want -2000", got)
	}
}

func TestReverbEchoesForward(t *testing.T) {
	b := buffer.New(1000, 0)
	b.Set(buffer.Left, 0, 10000, false)
	b.Touch(20)
	Reverb(b, Span{Start: 0, End: 20, Route: buffer.Routing{Left: true}}, driver.Constant(0.5), driver.Constant(0.01))
	if got := b.Get(buffer.Left, 10, false); got != 5000 {
		t.Fatalf("first echo got %d, want 5000", got)
	}
	if got := b.Get(buffer.Left, 20, false); got != 2500 {
		t.Fatalf("second echo got %d, want 2500", got)
	}
	if got := b.Get(buffer.Left, 30, false); got != 0 {
		t.Fatalf("echo past the span got %d, want 0", got)
	}
}

func TestMixKeepsResultNearCeiling(t *testing.T) {
	b := buffer.New(1000, 0)
	fill(b, 0, 50, 9830, false)
	fill(b, 0, 50, 16383, true)
	b.Touch(50)
	Mix(b, Span{Start: 0, End: 50, Route: both}, 0.8)
	got := float64(b.Get(buffer.Left, 10, false))
	want := 0.5*16383 + 0.375*9830
	if math.Abs(got-want) > 2 {
		t.Fatalf("got %v, want about %v", got, want)
	}
	if got/buffer.MaxValue > 0.8 {
		t.Fatalf("mix peak %v exceeds the ceiling", got/buffer.MaxValue)
	}
}
