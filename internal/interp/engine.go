// Package interp executes script lines: it substitutes variables and
// macros, reduces arithmetic, applies settings and runs the timed actions
// that render into the output buffer.
package interp

import (
	"io"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/cbegin/easysynth-go/internal/buffer"
	"github.com/cbegin/easysynth-go/internal/logging"
	"github.com/cbegin/easysynth-go/internal/script"
	"github.com/cbegin/easysynth-go/internal/settings"
	"github.com/cbegin/easysynth-go/internal/synth"
	"github.com/cbegin/easysynth-go/internal/vars"
)

// ErrExit is returned when a script asks to stop. The caller finalizes
// output as if the script had ended.
var ErrExit = errors.New("exit requested")

// Source supplies script lines and honours the repositioning requests of
// loop and include.
type Source interface {
	Next() (*script.Line, error)
	Jump(line int) error
	Include(path string) error
}

type Config struct {
	SampleRate int
	Seed       int64
	// Capacity is the initial buffer size in frames; zero means one minute.
	Capacity int
}

// Engine owns all interpreter state for one render.
type Engine struct {
	sampleRate int
	vars       *vars.Table
	defaults   *settings.Defaults
	buf        *buffer.Buffer
	synth      *synth.Renderer
	rng        *rand.Rand
	src        Source

	time    float64
	history []float64
	output  string
}

func New(cfg Config, src Source) *Engine {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}
	table := vars.NewTable()
	table.LoadPresets()
	return &Engine{
		sampleRate: cfg.SampleRate,
		vars:       table,
		defaults:   settings.NewDefaults(),
		buf:        buffer.New(cfg.SampleRate, cfg.Capacity),
		synth:      synth.New(cfg.SampleRate),
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		src:        src,
		history:    []float64{0},
	}
}

func (e *Engine) Buffer() *buffer.Buffer      { return e.buf }
func (e *Engine) Vars() *vars.Table           { return e.vars }
func (e *Engine) Defaults() *settings.Defaults { return e.defaults }

// Time is the current position of the time cursor in seconds.
func (e *Engine) Time() float64 { return e.time }

// Finish returns the output path requested by the script, or "".
func (e *Engine) Finish() string { return e.output }

// Run executes lines until the source is exhausted. ErrExit is passed
// through so the caller can tell an early stop from a failure.
func (e *Engine) Run() error {
	for {
		line, err := e.src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := e.ExecLine(line); err != nil {
			return err
		}
	}
}

// lineState tracks what happened while one line was dispatched.
type lineState struct {
	line   *script.Line
	ctx    *settings.Context
	timed  bool
	jumped bool
}

// ExecLine runs one line through the whole pipeline. Settings changed by a
// line without a timed action become the new defaults.
func (e *Engine) ExecLine(line *script.Line) error {
	logging.Debugf(logging.LvlTrace, "line %d: %v", line.Number, line.Kinds())
	markAssignments(line)
	if err := e.substitute(line); err != nil {
		return err
	}
	if err := resolveTimestamps(line); err != nil {
		return err
	}
	if err := reduce(line); err != nil {
		return err
	}
	if err := e.assign(line); err != nil {
		return err
	}

	st := &lineState{line: line, ctx: e.defaults.Context()}
	times, err := takeRepeat(line)
	if err != nil {
		return err
	}
	for i := 0; i < times && !st.jumped; i++ {
		if err := e.dispatch(st); err != nil {
			return err
		}
	}
	if !st.timed {
		st.ctx.Commit(e.defaults)
	}
	return nil
}

// takeRepeat removes the first repeat command and its count from the line.
// A count of 0 still runs the line once.
func takeRepeat(line *script.Line) (int, error) {
	for i := range line.Nodes {
		if line.Nodes[i].Kind != script.Repeat {
			continue
		}
		times := 1
		r := line.Right(i)
		if r >= 0 {
			switch line.Nodes[r].Kind {
			case script.Number:
				times = int(line.Nodes[r].Value)
				line.Disable(r)
			case script.String:
				return 0, undefined(line, r)
			}
		}
		line.Disable(i)
		if times < 0 {
			return 0, line.Errorf("repeat count must not be negative")
		}
		return max(times, 1), nil
	}
	return 1, nil
}

func undefined(line *script.Line, i int) error {
	return line.Errorf("the string '%s' wasn't defined so can't be used as a number", line.Nodes[i].Text)
}
