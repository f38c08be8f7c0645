package driver

import "math"

// Cycle tracks the position inside one waveform period. Frequency changes
// are deferred until the output crosses from negative to non-negative, so a
// new period never starts mid-wave. Oscillator and the sound renderer share
// it so both behave the same.
type Cycle struct {
	sampleRate float64
	freq       float64
	period     int
	refX       int
	pos        int
	last       float64
}

func NewCycle(sampleRate int) Cycle {
	return Cycle{sampleRate: float64(sampleRate)}
}

// Reset starts a fresh cycle at sample 0 with the given frequency.
func (c *Cycle) Reset(freq float64) {
	c.setFreq(freq)
	c.refX = 0
	c.pos = 0
	c.last = 0
}

func (c *Cycle) setFreq(freq float64) {
	c.freq = freq
	c.period = PeriodSamples(c.sampleRate, freq)
}

func (c *Cycle) Freq() float64 { return c.freq }
func (c *Cycle) Period() int    { return c.period }

// PeriodSamples truncates sampleRate/freq and never returns less than one.
// A non-positive frequency has no period; it yields a very long one.
func PeriodSamples(sampleRate, freq float64) int {
	if freq <= 0 {
		return math.MaxInt32
	}
	p := int(sampleRate / freq)
	if p < 1 {
		p = 1
	}
	return p
}

// Tick returns the in-cycle position for the current sample and advances.
func (c *Cycle) Tick() int {
	pos := c.pos
	c.pos++
	if c.pos >= c.period {
		c.pos = 0
	}
	return pos
}

// Wave evaluates the unit waveform (range -1..1) at sample x, in-cycle
// position pos. Phase and duty are fractions of a period. Tens and Noise
// have no periodic shape here: Tens renders as Square, Noise as Sine.
func (c *Cycle) Wave(form Waveform, x, pos int, phase, duty float64) float64 {
	period := float64(c.period)
	phaseX := int(math.Round(phase * period))
	switch form {
	case Square, Tens:
		dutyX := int(math.Round(duty * period))
		if pos < phaseX {
			return -1
		}
		if pos < phaseX+dutyX {
			return 1
		}
		return -1
	case Tri:
		adj := wrap(pos+phaseX, c.period)
		half := c.period / 2
		if half < 1 {
			return -1
		}
		if adj < half {
			return -1 + 2*float64(adj)/float64(half)
		}
		return 1 - 2*float64(adj-half)/float64(c.period-half)
	case Saw:
		adj := wrap(pos+phaseX, c.period)
		return -1 + 2*float64(adj)/period
	default:
		return math.Sin(2 * math.Pi * c.freq * float64(x-c.refX+phaseX) / c.sampleRate)
	}
}

// Follow records the sample just produced and, on a rising zero crossing,
// samples freq. A changed frequency moves the reference point to x and
// restarts the period count.
func (c *Cycle) Follow(x int, v float64, freq Driver) {
	if c.last < 0 && v >= 0 {
		if f := freq.Value(x); f != c.freq {
			c.setFreq(f)
			c.refX = x
			c.pos = 1 % c.period
		}
	}
	c.last = v
}

func wrap(v, n int) int {
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
