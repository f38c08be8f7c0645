package interp

import (
	"github.com/cbegin/easysynth-go/internal/buffer"
	"github.com/cbegin/easysynth-go/internal/driver"
	"github.com/cbegin/easysynth-go/internal/effects"
	"github.com/cbegin/easysynth-go/internal/logging"
	"github.com/cbegin/easysynth-go/internal/script"
	"github.com/cbegin/easysynth-go/internal/settings"
	"github.com/cbegin/easysynth-go/internal/vars"
)

// dispatch runs the line's commands from right to left, so drivers and
// overrides written to the right of a command exist before it reads them.
func (e *Engine) dispatch(st *lineState) error {
	line := st.line
	for i := len(line.Nodes) - 1; i >= 0 && !st.jumped; i-- {
		k := line.Nodes[i].Kind
		switch {
		case k == script.Inert || k == script.Number || k == script.Comma || k == script.To:
			continue
		case k.IsWaveform():
			st.ctx.Form.Push(driver.Waveform(k - script.Sine))
			continue
		case k.IsShape():
			if err := e.shape(st, i); err != nil {
				return err
			}
			continue
		}
		logging.Debugf(logging.LvlDebug, "line %d: %s", line.Number, k)
		if err := e.command(st, i); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) command(st *lineState, i int) error {
	line, ctx := st.line, st.ctx
	switch line.Nodes[i].Kind {
	case script.Freq:
		d, err := e.requireDriver(line, i, "No frequency specified.")
		if err != nil {
			return err
		}
		ctx.Freq.Push(d)
	case script.Phase:
		d, err := e.requireDriver(line, i, "No phase specified.")
		if err != nil {
			return err
		}
		ctx.Phase.Push(d)
	case script.Duty:
		d, err := e.requireDriver(line, i, "No duty specified.")
		if err != nil {
			return err
		}
		ctx.Duty.Push(d)
	case script.Freq2:
		return e.setDriver(line, i, &ctx.Freq2, "No frequency specified.")
	case script.Freq3:
		return e.setDriver(line, i, &ctx.Freq3, "No frequency specified.")
	case script.Vol:
		return e.setDriver(line, i, &ctx.Vol, "No volume specified.")
	case script.Vol2:
		return e.setDriver(line, i, &ctx.Vol2, "No volume specified.")
	case script.Vol3:
		return e.setDriver(line, i, &ctx.Vol3, "No volume specified.")
	case script.Bal:
		return e.setDriver(line, i, &ctx.Bal, "No bal specified.")
	case script.CirP:
		return e.setDriver(line, i, &ctx.CirP, "Need parameter for circuit modeling proportional term.")
	case script.CirI:
		return e.setDriver(line, i, &ctx.CirI, "Need parameter for circuit modeling integral term.")

	case script.Time:
		v, err := e.requireNumber(line, i, "Need a time in sec.")
		if err != nil {
			return err
		}
		e.time = max(v, 0)
		logging.Infof("line %d: time set to %.4fs", line.Number, e.time)
	case script.AddTime:
		v, err := e.requireNumber(line, i, "Need a time in sec.")
		if err != nil {
			return err
		}
		e.time = max(e.time+v, 0)
		logging.Infof("line %d: time moved to %.4fs", line.Number, e.time)
	case script.Rewind:
		return e.rewind(line, i)
	case script.Automix:
		v, err := e.requireNumber(line, i, "automix range is 0-1. manualmix turns it off.")
		if err != nil {
			return err
		}
		if v < 0 || v > 1 {
			return line.Errorf("automix range is 0-1. manualmix turns it off.")
		}
		ctx.Automix = v
	case script.ManualMix:
		ctx.Automix = settings.ManualMix
	case script.FadeIn:
		v, err := e.requireNumber(line, i, "fadein needs a time in sec.")
		if err != nil {
			return err
		}
		ctx.FadeIn = max(v, 0)
	case script.FadeOut:
		v, err := e.requireNumber(line, i, "fadeout needs a time in sec.")
		if err != nil {
			return err
		}
		ctx.FadeOut = max(v, 0)
	case script.Circuit:
		ctx.Circuit = true
	case script.NoCircuit:
		ctx.Circuit = false
	case script.Left:
		ctx.Left, ctx.Right = true, false
	case script.Right:
		ctx.Left, ctx.Right = false, true
	case script.Both:
		ctx.Left, ctx.Right = true, true

	case script.Ramp:
		return e.ramp(line, i)
	case script.Seq, script.Ramps:
		return e.table(line, i)
	case script.RandSeq:
		return e.randSeq(line, i)
	case script.Osc:
		return e.osc(st, i)

	case script.Sound, script.Mix, script.Silence, script.Boost, script.Reverb:
		return e.timed(st, i)

	case script.Loop:
		return e.loop(st, i)
	case script.Output:
		name, err := filenameRight(line, i, "output")
		if err != nil {
			return err
		}
		e.output = name
	case script.Include:
		name, err := filenameRight(line, i, "include")
		if err != nil {
			return err
		}
		if err := e.src.Include(name); err != nil {
			return line.Errorf("unable to include %s: %v", name, err)
		}
	case script.Exit:
		return ErrExit

	case script.String:
		logging.Debugf(logging.LvlDebug, "line %d: ignoring unknown word '%s'", line.Number, line.Nodes[i].Text)
	case script.Assign, script.AssignLHS:
		return line.Errorf("misplaced assignment")
	default:
		if line.Nodes[i].Kind.IsOperator() {
			return line.Errorf("operator '%s' was left over after arithmetic", line.Nodes[i].Kind)
		}
	}
	return nil
}

// numberRight returns the number right of i and its index, or -1 when the
// neighbor is not a number. An undefined name is an error.
func numberRight(line *script.Line, i int) (float64, int, error) {
	r := line.Right(i)
	if r < 0 {
		return 0, -1, nil
	}
	switch line.Nodes[r].Kind {
	case script.Number:
		return line.Nodes[r].Value, r, nil
	case script.String:
		return 0, -1, undefined(line, r)
	}
	return 0, -1, nil
}

func (e *Engine) requireNumber(line *script.Line, i int, msg string) (float64, error) {
	v, r, err := numberRight(line, i)
	if err != nil {
		return 0, err
	}
	if r < 0 {
		return 0, line.Errorf("%s", msg)
	}
	return v, nil
}

// driverRight turns the neighbor right of i into a driver: a number becomes
// a Constant and a driver node hands over the driver it built. Anything
// else yields nil.
func driverRight(line *script.Line, i int) (driver.Driver, error) {
	r := line.Right(i)
	if r < 0 {
		return nil, nil
	}
	n := line.Nodes[r]
	switch {
	case n.Kind == script.Number:
		return driver.Constant(n.Value), nil
	case n.Kind == script.String:
		return nil, undefined(line, r)
	case n.Kind.IsDriver():
		return n.Driver, nil
	}
	return nil, nil
}

func (e *Engine) requireDriver(line *script.Line, i int, msg string) (driver.Driver, error) {
	d, err := driverRight(line, i)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, line.Errorf("%s", msg)
	}
	return d, nil
}

func (e *Engine) setDriver(line *script.Line, i int, dst *driver.Driver, msg string) error {
	d, err := e.requireDriver(line, i, msg)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func filenameRight(line *script.Line, i int, what string) (string, error) {
	r := line.Right(i)
	if r < 0 || line.Nodes[r].Kind != script.Filename {
		return "", line.Errorf("%s needs a quoted filename", what)
	}
	return line.Nodes[r].Text, nil
}

// samples converts seconds to a sample count.
func (e *Engine) samples(sec float64) int {
	return int(sec * float64(e.sampleRate))
}

// optionalLength reads an optional length in seconds right of i; -1 means
// the driver takes the length of the sound that first uses it.
func (e *Engine) optionalLength(line *script.Line, i int) (int, error) {
	v, r, err := numberRight(line, i)
	if err != nil || r < 0 {
		return -1, err
	}
	return e.samples(v), nil
}

func (e *Engine) shape(st *lineState, i int) error {
	length, err := e.optionalLength(st.line, i)
	if err != nil {
		return err
	}
	d := driver.NewEnvelopeShape(driver.Preset(st.line.Nodes[i].Kind-script.Tease1), length)
	st.line.Nodes[i].Driver = d
	st.ctx.Shape = d
	return nil
}

func (e *Engine) ramp(line *script.Line, i int) error {
	start, a, err := numberRight(line, i)
	if err != nil {
		return err
	}
	if a < 0 {
		return line.Errorf("Need a start value for ramp.")
	}
	to := line.Right(a)
	if to < 0 || line.Nodes[to].Kind != script.To {
		return line.Errorf("Need the 'to' keyword in ramp.")
	}
	end, b, err := numberRight(line, to)
	if err != nil {
		return err
	}
	if b < 0 {
		return line.Errorf("Need an end value for ramp.")
	}
	length, err := e.optionalLength(line, b)
	if err != nil {
		return err
	}
	line.Nodes[i].Driver = driver.NewRepeatingRamp(start, end, length)
	return nil
}

// table reads value/time pairs while numbers follow.
func (e *Engine) table(line *script.Line, i int) error {
	var steps []driver.Step
	for j := line.Right(i); j >= 0; {
		if line.Nodes[j].Kind == script.String {
			return undefined(line, j)
		}
		if line.Nodes[j].Kind != script.Number {
			break
		}
		k := line.Right(j)
		if k >= 0 && line.Nodes[k].Kind == script.String {
			return undefined(line, k)
		}
		if k < 0 || line.Nodes[k].Kind != script.Number {
			return line.Errorf("Missing time for value in table (always need pairs of numbers).")
		}
		steps = append(steps, driver.Step{Value: line.Nodes[j].Value, Duration: e.samples(line.Nodes[k].Value)})
		j = line.Right(k)
	}

	var (
		d   driver.Driver
		err error
	)
	if line.Nodes[i].Kind == script.Seq {
		d, err = driver.NewStepSequencer(steps)
	} else {
		d, err = driver.NewInterpolatedRampSequencer(steps)
	}
	if err != nil {
		return line.Errorf("%v", err)
	}
	line.Nodes[i].Driver = d
	return nil
}

func (e *Engine) randSeq(line *script.Line, i int) error {
	lo, a, err := numberRight(line, i)
	if err != nil {
		return err
	}
	if a < 0 {
		return line.Errorf("randseq needs min, max and interval.")
	}
	if to := line.Right(a); to >= 0 && line.Nodes[to].Kind == script.To {
		a = to
	}
	hi, b, err := numberRight(line, a)
	if err != nil {
		return err
	}
	if b < 0 {
		return line.Errorf("randseq needs min, max and interval.")
	}
	interval, c, err := numberRight(line, b)
	if err != nil {
		return err
	}
	if c < 0 {
		return line.Errorf("randseq needs min, max and interval.")
	}
	line.Nodes[i].Driver = driver.NewRandomStepper(lo, hi, e.samples(interval), e.rng)
	return nil
}

// osc consumes the frequency, waveform, phase and duty overrides written to
// its right.
func (e *Engine) osc(st *lineState, i int) error {
	line := st.line
	lo, a, err := numberRight(line, i)
	if err != nil {
		return err
	}
	if a < 0 {
		return line.Errorf("osc needs a range: osc min to max.")
	}
	to := line.Right(a)
	if to < 0 || line.Nodes[to].Kind != script.To {
		return line.Errorf("Need the 'to' keyword in osc.")
	}
	hi, b, err := numberRight(line, to)
	if err != nil {
		return err
	}
	if b < 0 {
		return line.Errorf("osc needs a range: osc min to max.")
	}
	ctx := st.ctx
	line.Nodes[i].Driver = driver.NewOscillator(e.sampleRate, lo, hi,
		ctx.Form.Take(), ctx.Freq.Take(), ctx.Phase.Take(), ctx.Duty.Take())
	return nil
}

func (e *Engine) rewind(line *script.Line, i int) error {
	steps := 1
	v, r, err := numberRight(line, i)
	if err != nil {
		return err
	}
	if r >= 0 {
		if v < 1 {
			return line.Errorf("rewind needs a count of at least 1")
		}
		steps = int(v)
	}
	t := 0.0
	for k := 0; k < steps && len(e.history) > 1; k++ {
		t = e.history[len(e.history)-1]
		e.history = e.history[:len(e.history)-1]
	}
	e.time = t
	logging.Infof("line %d: rewound to %.4fs", line.Number, e.time)
	return nil
}

// timed runs sound, mix, silence, boost and reverb. Each one records the
// time cursor for rewind and then advances it by its length.
func (e *Engine) timed(st *lineState, i int) error {
	line, ctx := st.line, st.ctx
	kind := line.Nodes[i].Kind
	length, r, err := numberRight(line, i)
	if err != nil {
		return err
	}
	if r < 0 {
		return line.Errorf("A %s must have a length.", kind)
	}
	if length < 0 {
		return line.Errorf("A %s length must not be negative.", kind)
	}

	start := e.buf.Position(e.time)
	end := e.buf.Position(e.time + length)
	route := buffer.Routing{Left: ctx.Left, Right: ctx.Right}
	span := effects.Span{Start: start, End: end, Route: route}

	switch kind {
	case script.Sound:
		e.synth.Render(e.buf, ctx, start, end-start, false)
	case script.Mix:
		e.synth.Render(e.buf, ctx, start, end-start, true)
		effects.Mix(e.buf, span, ctx.Automix)
		e.buf.Touch(end)
	case script.Silence:
		for _, ch := range route.Channels() {
			for x := start; x < end; x++ {
				e.buf.Set(ch, x, 0, false)
			}
		}
		e.buf.Touch(end)
	case script.Boost:
		effects.Boost(e.buf, span, ctx.Vol)
	case script.Reverb:
		delay, err := driverRight(line, r)
		if err != nil {
			return err
		}
		if delay == nil {
			return line.Errorf("Reverb must have a time delay. Typically, .001s to .5s")
		}
		effects.Reverb(e.buf, span, ctx.Vol, delay)
	}

	e.history = append(e.history, e.time)
	e.time += length
	st.timed = true
	logging.Infof("line %d: %s %.4fs, time now %.4fs", line.Number, kind, length, e.time)
	return nil
}

// loop decrements the named counter and, while it stays at or above 1,
// resumes execution after the line that assigned it. The rest of the
// current line is skipped.
func (e *Engine) loop(st *lineState, i int) error {
	line := st.line
	name := line.Nodes[i].Text
	if name == "" {
		return line.Errorf("Looping to what label?")
	}
	ent, ok := e.vars.Lookup(name)
	if !ok || ent.Kind != vars.Numeric {
		return line.Errorf("loop counter '%s' is not a defined number", name)
	}
	if ent.Line == vars.NoLine {
		return line.Errorf("loop counter '%s' was not assigned in the script", name)
	}
	left := ent.Value - 1
	if left < 1 {
		return nil
	}
	e.vars.SetNumber(name, left, ent.Line)
	if err := e.src.Jump(ent.Line); err != nil {
		return line.Errorf("%v", err)
	}
	st.jumped = true
	return nil
}
