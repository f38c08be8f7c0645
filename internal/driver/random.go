package driver

import "math/rand"

// RandomStepper holds a uniform random value in [min, max] and draws a new
// one each time the sample index passes the next update threshold.
type RandomStepper struct {
	min    float64
	span   float64
	period int
	next   int
	value  float64
	rng    *rand.Rand
}

func NewRandomStepper(min, max float64, period int, rng *rand.Rand) *RandomStepper {
	if min > max {
		min, max = max, min
	}
	if period < 1 {
		period = 1
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	r := &RandomStepper{min: min, span: max - min, period: period, rng: rng}
	r.Init(0)
	return r
}

func (r *RandomStepper) Init(int) {
	r.next = r.period
	r.draw()
}

func (r *RandomStepper) draw() {
	r.value = r.min + r.rng.Float64()*r.span
}

func (r *RandomStepper) Value(x int) float64 {
	if x >= r.next {
		for r.next <= x {
			r.next += r.period
		}
		r.draw()
	}
	return r.value
}
