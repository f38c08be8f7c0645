package effects

import (
	"github.com/cbegin/easysynth-go/internal/buffer"
	"github.com/cbegin/easysynth-go/internal/driver"
)

// Reverb feeds each sample of span forward by delay seconds, scaled by
// amount. The pass runs forward in time, so echoes landing inside the span
// echo again. Short delays give reverb, long ones a discrete echo.
func Reverb(b *buffer.Buffer, span Span, amount, delay driver.Driver) {
	span = span.limit(b)
	amount.Init(span.End - span.Start)
	delay.Init(span.End - span.Start)
	sr := float64(b.SampleRate())
	chans := span.Route.Channels()
	for x := span.Start; x < span.End; x++ {
		n := x - span.Start
		a := amount.Value(n)
		later := x + int(delay.Value(n)*sr)
		for _, ch := range chans {
			v := float64(int(float64(b.Get(ch, x, false)) * a))
			b.Set(ch, later, float64(b.Get(ch, later, false))+v, false)
		}
	}
}
