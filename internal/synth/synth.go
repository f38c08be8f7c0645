// Package synth renders one sound from a line context into the output
// buffer, sample by sample.
package synth

import (
	"math"

	"github.com/cbegin/easysynth-go/internal/buffer"
	"github.com/cbegin/easysynth-go/internal/driver"
	"github.com/cbegin/easysynth-go/internal/effects"
	"github.com/cbegin/easysynth-go/internal/settings"
)

const twoPi = math.Pi * 2

// tensWidth scales pulse width per unit of volume and period.
const tensWidth = 0.2

type Renderer struct {
	sampleRate float64
	noiseLFSR  uint16
}

func New(sampleRate int) *Renderer {
	return &Renderer{sampleRate: float64(sampleRate), noiseLFSR: 0xACE1}
}

// Render writes n samples starting at frame start. Sounds staged for a mix
// go to the scratch channels and leave the high-water mark alone.
func (r *Renderer) Render(b *buffer.Buffer, ctx *settings.Context, start, n int, scratch bool) {
	if n <= 0 {
		if !scratch {
			b.Touch(start)
		}
		return
	}
	freq := ctx.Freq.Top()
	phase := ctx.Phase.Top()
	duty := ctx.Duty.Top()
	form := ctx.Form.Top()
	for _, d := range []driver.Driver{freq, phase, duty, ctx.Freq2, ctx.Freq3, ctx.Vol, ctx.Vol2, ctx.Vol3, ctx.Bal, ctx.Shape} {
		d.Init(n)
	}

	var stage effects.Effector
	if ctx.Circuit {
		stage = effects.NewCircuit(ctx.CirP, ctx.CirI)
		stage.Reset()
	}

	cycle := driver.NewCycle(int(r.sampleRate))
	cycle.Reset(freq.Value(0))
	fadeIn := int(ctx.FadeIn * r.sampleRate)
	fadeSpan := int(ctx.FadeOut * r.sampleRate)
	fadeStart := n - fadeSpan
	chans := buffer.Routing{Left: ctx.Left, Right: ctx.Right}.Channels()
	noise := 1.0

	for x := 0; x < n; x++ {
		pos := cycle.Tick()
		ph := phase.Value(x)
		du := duty.Value(x)

		fin := 1.0
		if x < fadeIn {
			fin = float64(x) / float64(fadeIn)
		}
		fout := 1.0
		if fadeSpan > 0 && x >= fadeStart {
			fout = 0
			if fadeSpan > 1 {
				fout = 1 - float64(x-fadeStart)/float64(fadeSpan-1)
			}
		}
		volnet := fin * fout * ctx.Shape.Value(x)
		vol := math.Abs(ctx.Vol.Value(x))
		vol2 := math.Abs(ctx.Vol2.Value(x))
		vol3 := math.Abs(ctx.Vol3.Value(x))
		balL, balR := balance(ctx.Bal.Value(x))

		var out float64
		switch form {
		case driver.Tens:
			w := 0
			if f := cycle.Freq(); f > 0 {
				w = int(tensWidth * volnet * vol * r.sampleRate / f)
			}
			v := 0.0
			if pos < w {
				v = 0.95
			} else if pos < 2*w {
				v = -0.95
			}
			cycle.Follow(x, v, freq)
			out = v * buffer.MaxValue
		default:
			var v float64
			if form == driver.Noise {
				if pos == 0 {
					noise = r.nextNoise()
				}
				v = noise
			} else {
				v = cycle.Wave(form, x, pos, ph, du)
			}
			cycle.Follow(x, v, freq)

			h2, h3 := 0.0, 0.0
			if vol2 > 0 {
				h2 = vol2 * math.Sin(twoPi*math.Abs(ctx.Freq2.Value(x))*float64(x)/r.sampleRate)
			}
			if vol3 > 0 {
				h3 = vol3 * math.Sin(twoPi*math.Abs(ctx.Freq3.Value(x))*float64(x)/r.sampleRate)
			}
			out = math.Trunc(volnet * buffer.MaxValue * (vol*v + h2 + h3))
			if stage != nil {
				out = stage.Process(x, out)
			}
		}

		for _, ch := range chans {
			g := balL
			if ch == buffer.Right {
				g = balR
			}
			b.Set(ch, start+x, out*g, scratch)
		}
	}
	if !scratch {
		b.Touch(start + n)
	}
}

// balance maps b in [-1, 1] to left and right gains. Positive values
// attenuate the right channel, negative values the left.
func balance(b float64) (float64, float64) {
	l, r := 1.0, 1.0
	if b >= 0 {
		r = 1 - b
	} else {
		l = 1 + b
	}
	return clamp01(l), clamp01(r)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// nextNoise advances the 16-bit LFSR once per cycle.
func (r *Renderer) nextNoise() float64 {
	bit := (r.noiseLFSR ^ (r.noiseLFSR >> 1)) & 1
	r.noiseLFSR = (r.noiseLFSR >> 1) | (bit << 15)
	if r.noiseLFSR&1 == 1 {
		return 1
	}
	return -1
}
