package synth

import (
	"math"
	"testing"

	"github.com/cbegin/easysynth-go/internal/buffer"
	"github.com/cbegin/easysynth-go/internal/driver"
	"github.com/cbegin/easysynth-go/internal/settings"
)

const sr = 1000

// flatContext is a 10 Hz square at the default volume with no fades.
func flatContext() *settings.Context {
	d := settings.NewDefaults()
	d.Freq = driver.Constant(10)
	d.Form = driver.Square
	d.FadeIn = 0
	return d.Context()
}

func full(vol float64) int16 {
	return int16(math.Trunc(1 * buffer.MaxValue * (vol * 1)))
}

func TestSquareLevels(t *testing.T) {
	b := buffer.New(sr, 0)
	New(sr).Render(b, flatContext(), 0, 300, false)
	if got := b.Get(buffer.Left, 10, false); got != full(0.7) {
		t.Fatalf("high half got %d, want %d", got, full(0.7))
	}
	if got := b.Get(buffer.Right, 60, false); got != -full(0.7) {
		t.Fatalf("low half got %d, want %d", got, -full(0.7))
	}
	if b.Len() != 300 {
		t.Fatalf("len got %d, want 300", b.Len())
	}
}

func TestFades(t *testing.T) {
	ctx := flatContext()
	ctx.FadeIn = 0.5
	ctx.FadeOut = 0.1
	b := buffer.New(sr, 0)
	New(sr).Render(b, ctx, 0, 1000, false)

	if got := b.Get(buffer.Left, 0, false); got != 0 {
		t.Fatalf("first sample got %d, want 0", got)
	}
	want := int16(math.Trunc(float64(25) / float64(500) * buffer.MaxValue * (0.7*1 + 0 + 0)))
	if got := b.Get(buffer.Left, 25, false); got != want {
		t.Fatalf("fade-in got %d, want %d", got, want)
	}
	want = int16(math.Trunc((1 - 25.0/99) * buffer.MaxValue * (0.7*1 + 0 + 0)))
	if got := b.Get(buffer.Left, 925, false); got != want {
		t.Fatalf("fade-out got %d, want %d", got, want)
	}
	if got := b.Get(buffer.Left, 900, false); got != full(0.7) {
		t.Fatalf("fade-out start got %d, want %d", got, full(0.7))
	}
	if got := b.Get(buffer.Left, 999, false); got != 0 {
		t.Fatalf("last sample got %d, want 0", got)
	}
	for x := 0; x < 1000; x++ {
		if v := b.Get(buffer.Left, x, false); math.Abs(float64(v)) > float64(full(0.7)) {
			t.Fatalf("x=%d: %d exceeds volume", x, v)
		}
	}
}

func TestBalanceAndRouting(t *testing.T) {
	tests := []struct {
		name        string
		bal         float64
		left, right bool
		wantL       int16
		wantR       int16
	}{
		{"centre", 0, true, true, full(0.7), full(0.7)},
		{"half right cut", 0.5, true, true, full(0.7), int16(float64(full(0.7)) * 0.5)},
		{"hard left cut", -1, true, true, 0, full(0.7)},
		{"left only", 0, true, false, full(0.7), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := flatContext()
			ctx.Bal = driver.Constant(tt.bal)
			ctx.Left, ctx.Right = tt.left, tt.right
			b := buffer.New(sr, 0)
			New(sr).Render(b, ctx, 0, 100, false)
			if got := b.Get(buffer.Left, 10, false); got != tt.wantL {
				t.Fatalf("left got %d, want %d", got, tt.wantL)
			}
			if got := b.Get(buffer.Right, 10, false); got != tt.wantR {
				t.Fatalf("right got %d, want %d", got, tt.wantR)
			}
		})
	}
}

func TestScratchLeavesMainAlone(t *testing.T) {
	b := buffer.New(sr, 0)
	New(sr).Render(b, flatContext(), 100, 100, true)
	if b.Len() != 0 {
		t.Fatalf("len got %d, want 0", b.Len())
	}
	if got := b.Get(buffer.Left, 110, false); got != 0 {
		t.Fatalf("main got %d, want 0", got)
	}
	if got := b.Get(buffer.Left, 110, true); got != full(0.7) {
		t.Fatalf("scratch got %d, want %d", got, full(0.7))
	}
}

func TestHarmonicOnly(t *testing.T) {
	ctx := flatContext()
	ctx.Vol = driver.Constant(0)
	ctx.Vol2 = driver.Constant(0.5)
	ctx.Freq2 = driver.Constant(250)
	b := buffer.New(sr, 0)
	New(sr).Render(b, ctx, 0, 10, false)
	want := int16(math.Trunc(buffer.MaxValue * (0.5 * math.Sin(twoPi*250*1/sr))))
	if got := b.Get(buffer.Left, 1, false); got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
	if got := b.Get(buffer.Left, 0, false); got != 0 {
		t.Fatalf("x=0 got %d, want 0", got)
	}
}

func TestTensPulseWidthFollowsVolume(t *testing.T) {
	ctx := flatContext()
	ctx.Form = settings.NewStack(driver.Tens)
	ctx.Vol = driver.Constant(1)
	ctx.Bal = driver.Constant(0)
	b := buffer.New(sr, 0)
	New(sr).Render(b, ctx, 0, 100, false)
	pulse := int16(math.Trunc(0.95 * buffer.MaxValue))
	for x, want := range map[int]int16{0: pulse, 19: pulse, 20: -pulse, 39: -pulse, 40: 0, 99: 0} {
		if got := b.Get(buffer.Left, x, false); got != want {
			t.Fatalf("x=%d got %d, want %d", x, got, want)
		}
	}
}

func TestNoiseHoldsForOnePeriod(t *testing.T) {
	ctx := flatContext()
	ctx.Form = settings.NewStack(driver.Noise)
	b := buffer.New(sr, 0)
	New(sr).Render(b, ctx, 0, 1000, false)
	for x := 0; x < 1000; x++ {
		v := b.Get(buffer.Left, x, false)
		if v != full(0.7) && v != -full(0.7) {
			t.Fatalf("x=%d got %d, want +/-%d", x, v, full(0.7))
		}
		if x%100 != 0 && v != b.Get(buffer.Left, x-1, false) {
			t.Fatalf("x=%d changed inside a period", x)
		}
	}
}

func TestCircuitShapesEdges(t *testing.T) {
	plain := buffer.New(sr, 0)
	New(sr).Render(plain, flatContext(), 0, 200, false)

	ctx := flatContext()
	ctx.Circuit = true
	shaped := buffer.New(sr, 0)
	New(sr).Render(shaped, ctx, 0, 200, false)

	if a, c := plain.Get(buffer.Left, 0, false), shaped.Get(buffer.Left, 0, false); a == c {
		t.Fatalf("circuit left the first edge unchanged: %d", a)
	}
	for x := 0; x < 200; x++ {
		if v := shaped.Get(buffer.Left, x, false); v == math.MinInt16 {
			t.Fatalf("x=%d clipped past the circuit limit", x)
		}
	}
}
