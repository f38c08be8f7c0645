package effects

import (
	"github.com/cbegin/easysynth-go/internal/buffer"
	"github.com/cbegin/easysynth-go/internal/driver"
)

// Boost scales the already written audio in span by gain, which may vary
// over the span. Gain above 1 amplifies, below 1 attenuates, negative
// inverts.
func Boost(b *buffer.Buffer, span Span, gain driver.Driver) {
	span = span.limit(b)
	if driver.IsConstant(gain, 1) {
		return
	}
	gain.Init(span.End - span.Start)
	chans := span.Route.Channels()
	for x := span.Start; x < span.End; x++ {
		m := gain.Value(x - span.Start)
		for _, ch := range chans {
			b.Set(ch, x, float64(b.Get(ch, x, false))*m, false)
		}
	}
}
