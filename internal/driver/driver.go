// Package driver holds the value generators that feed synthesis parameters.
// Every driver returns one value per sample index. Stateful drivers must be
// called with non-decreasing indexes and restart when Init is called.
package driver

// Driver is the capability shared by the closed set of generators in this
// package: Constant, RepeatingRamp, Oscillator, StepSequencer,
// InterpolatedRampSequencer, RandomStepper and EnvelopeShape.
type Driver interface {
	// Value returns the driver output at sample index x.
	Value(x int) float64
	// Init prepares the driver for a run of length samples.
	Init(length int)
}

// Constant always returns the same value.
type Constant float64

func (c Constant) Value(int) float64 { return float64(c) }
func (c Constant) Init(int)          {}

// IsConstant reports whether d is a Constant equal to v.
func IsConstant(d Driver, v float64) bool {
	c, ok := d.(Constant)
	return ok && float64(c) == v
}

type Waveform int

const (
	Sine Waveform = iota
	Square
	Saw
	Tri
	Tens
	Noise
)

func (w Waveform) String() string {
	switch w {
	case Square:
		return "square"
	case Saw:
		return "saw"
	case Tri:
		return "tri"
	case Tens:
		return "tens"
	case Noise:
		return "noise"
	default:
		return "sine"
	}
}

// RepeatingRamp rises linearly from start to target over period samples and
// starts over. A negative period is resolved to the length given to the
// first Init with a positive length.
type RepeatingRamp struct {
	start  float64
	target float64
	period int
}

func NewRepeatingRamp(start, target float64, period int) *RepeatingRamp {
	return &RepeatingRamp{start: start, target: target, period: period}
}

func (r *RepeatingRamp) Init(length int) {
	if r.period < 0 && length > 0 {
		r.period = length
	}
}

// Period is the resolved period in samples, or -1 while unresolved.
func (r *RepeatingRamp) Period() int { return r.period }

func (r *RepeatingRamp) Value(x int) float64 {
	if r.period <= 0 {
		return r.start
	}
	if x < 0 {
		x = 0
	}
	rem := x % r.period
	return r.start + (r.target-r.start)*float64(rem)/float64(r.period)
}
