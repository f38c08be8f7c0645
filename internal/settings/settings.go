// Package settings holds the persistent defaults and the per-line context
// that overrides them.
package settings

import "github.com/cbegin/easysynth-go/internal/driver"

// ManualMix is the automix value meaning plain summing.
const ManualMix = -1.0

// Defaults persist from line to line.
type Defaults struct {
	Freq  driver.Driver
	Form  driver.Waveform
	Phase driver.Driver
	Duty  driver.Driver

	Freq2   driver.Driver
	Freq3   driver.Driver
	Vol     driver.Driver
	Vol2    driver.Driver
	Vol3    driver.Driver
	Bal     driver.Driver
	CirP    driver.Driver
	CirI    driver.Driver
	Shape   driver.Driver
	Automix float64
	FadeIn  float64
	FadeOut float64
	Left    bool
	Right   bool
	Circuit bool
}

func NewDefaults() *Defaults {
	return &Defaults{
		Freq:    driver.Constant(1000),
		Form:    driver.Sine,
		Phase:   driver.Constant(0),
		Duty:    driver.Constant(0.5),
		Freq2:   driver.Constant(2000),
		Freq3:   driver.Constant(3000),
		Vol:     driver.Constant(0.7),
		Vol2:    driver.Constant(0),
		Vol3:    driver.Constant(0),
		Bal:     driver.Constant(0),
		CirP:    driver.Constant(0.4),
		CirI:    driver.Constant(0.2),
		Shape:   driver.Constant(1),
		Automix: 0.7,
		FadeIn:  0.5,
		FadeOut: 0,
		Left:    true,
		Right:   true,
	}
}

// Context is the working copy for one line. Frequency, waveform, phase and
// duty are stacks so that an osc can consume the override written to its
// right while a sound further left still sees the line's base value.
type Context struct {
	Freq  Stack[driver.Driver]
	Form  Stack[driver.Waveform]
	Phase Stack[driver.Driver]
	Duty  Stack[driver.Driver]

	Freq2   driver.Driver
	Freq3   driver.Driver
	Vol     driver.Driver
	Vol2    driver.Driver
	Vol3    driver.Driver
	Bal     driver.Driver
	CirP    driver.Driver
	CirI    driver.Driver
	Shape   driver.Driver
	Automix float64
	FadeIn  float64
	FadeOut float64
	Left    bool
	Right   bool
	Circuit bool
}

// Context seeds a fresh line context from the defaults.
func (d *Defaults) Context() *Context {
	return &Context{
		Freq:    NewStack(d.Freq),
		Form:    NewStack(d.Form),
		Phase:   NewStack(d.Phase),
		Duty:    NewStack(d.Duty),
		Freq2:   d.Freq2,
		Freq3:   d.Freq3,
		Vol:     d.Vol,
		Vol2:    d.Vol2,
		Vol3:    d.Vol3,
		Bal:     d.Bal,
		CirP:    d.CirP,
		CirI:    d.CirI,
		Shape:   d.Shape,
		Automix: d.Automix,
		FadeIn:  d.FadeIn,
		FadeOut: d.FadeOut,
		Left:    d.Left,
		Right:   d.Right,
		Circuit: d.Circuit,
	}
}

// Commit copies the line's settings back into d. Shape only lives for the
// line that sets it.
func (c *Context) Commit(d *Defaults) {
	d.Freq = c.Freq.Take()
	d.Form = c.Form.Take()
	d.Phase = c.Phase.Take()
	d.Duty = c.Duty.Take()

	d.Freq2 = c.Freq2
	d.Freq3 = c.Freq3
	d.Vol = c.Vol
	d.Vol2 = c.Vol2
	d.Vol3 = c.Vol3
	d.Bal = c.Bal
	d.CirP = c.CirP
	d.CirI = c.CirI
	d.Automix = c.Automix
	d.FadeIn = c.FadeIn
	d.FadeOut = c.FadeOut
	d.Left = c.Left
	d.Right = c.Right
	d.Circuit = c.Circuit
}
