package effects

import (
	"github.com/viterin/vek/vek32"

	"github.com/cbegin/easysynth-go/internal/buffer"
)

// Mix blends the sound staged in the scratch channels into the main
// channels over span. With a non-negative ceiling the two signals are
// weighted by their peaks so the result stays near ceiling; a negative
// ceiling sums them unchanged.
func Mix(b *buffer.Buffer, span Span, ceiling float64) {
	if span.End <= span.Start {
		return
	}
	chans := span.Route.Channels()
	olds := make([][]float32, len(chans))
	news := make([][]float32, len(chans))
	var peakOld, peakNew float32
	for i, ch := range chans {
		olds[i] = toFloat(b.Span(ch, span.Start, span.End, false))
		news[i] = toFloat(b.Span(ch, span.Start, span.End, true))
		peakOld = max(peakOld, peak(olds[i]))
		peakNew = max(peakNew, peak(news[i]))
	}

	wNew, wOld := float32(1), float32(1)
	if ceiling >= 0 {
		po := peakOld / buffer.MaxValue
		pn := peakNew / buffer.MaxValue
		if po+pn == 0 {
			return
		}
		wNew = float32(ceiling) * pn / (pn + po)
		wOld = po / (pn + po)
	}

	for i, ch := range chans {
		vek32.MulNumber_Inplace(news[i], wNew)
		vek32.MulNumber_Inplace(olds[i], wOld)
		vek32.Add_Inplace(olds[i], news[i])
		dst := b.Span(ch, span.Start, span.End, false)
		for j, v := range olds[i] {
			dst[j] = buffer.Clip(float64(v))
		}
	}
}

func toFloat(src []int16) []float32 {
	out := make([]float32, len(src))
	for i, v := range src {
		out[i] = float32(v)
	}
	return out
}

func peak(v []float32) float32 {
	if len(v) == 0 {
		return 0
	}
	abs := vek32.Abs(v)
	return vek32.Max(abs)
}
