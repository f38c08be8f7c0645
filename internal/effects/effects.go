package effects

import (
	"github.com/cbegin/easysynth-go/internal/buffer"
)

// Effector shapes one sample of a running signal. x is the sample index
// within the current sound.
type Effector interface {
	Process(x int, v float64) float64
	Reset()
}

// Span is the region of the output buffer an after-effect works on.
type Span struct {
	Start int
	End   int
	Route buffer.Routing
}

// limit trims the span to the part of the buffer already written.
func (s Span) limit(b *buffer.Buffer) Span {
	if s.End > b.Len() {
		s.End = b.Len()
	}
	if s.Start < 0 {
		s.Start = 0
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
