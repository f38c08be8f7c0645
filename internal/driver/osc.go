package driver

// Oscillator swings between min and max using a waveform whose frequency,
// phase and duty are themselves drivers.
type Oscillator struct {
	mid   float64
	amp   float64
	form  Waveform
	freq  Driver
	phase Driver
	duty  Driver
	cycle Cycle
	ready bool
}

func NewOscillator(sampleRate int, min, max float64, form Waveform, freq, phase, duty Driver) *Oscillator {
	if min > max {
		min, max = max, min
	}
	mid := (min + max) / 2
	return &Oscillator{
		mid:   mid,
		amp:   max - mid,
		form:  form,
		freq:  freq,
		phase: phase,
		duty:  duty,
		cycle: NewCycle(sampleRate),
	}
}

// Bounds returns the output range.
func (o *Oscillator) Bounds() (float64, float64) {
	return o.mid - o.amp, o.mid + o.amp
}

// Freq is the frequency currently in effect.
func (o *Oscillator) Freq() float64 { return o.cycle.Freq() }

func (o *Oscillator) Init(length int) {
	o.freq.Init(length)
	o.phase.Init(length)
	o.duty.Init(length)
	o.cycle.Reset(o.freq.Value(0))
	o.ready = true
}

func (o *Oscillator) Value(x int) float64 {
	if !o.ready {
		o.Init(0)
	}
	pos := o.cycle.Tick()
	v := o.cycle.Wave(o.form, x, pos, o.phase.Value(x), o.duty.Value(x))
	o.cycle.Follow(x, v, o.freq)
	return v*o.amp + o.mid
}
