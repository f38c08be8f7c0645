package interp

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/Knetic/govaluate"

	"github.com/cbegin/easysynth-go/internal/driver"
	"github.com/cbegin/easysynth-go/internal/script"
	"github.com/cbegin/easysynth-go/internal/settings"
)

const testRate = 1000

func run(t *testing.T, text string) (*Engine, error) {
	t.Helper()
	e := New(Config{SampleRate: testRate, Seed: 1}, script.NewStringSource("test.e2", text))
	return e, e.Run()
}

func mustRun(t *testing.T, text string) *Engine {
	t.Helper()
	e, err := run(t, text)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return e
}

func number(t *testing.T, e *Engine, name string) float64 {
	t.Helper()
	ent, ok := e.Vars().Lookup(name)
	if !ok {
		t.Fatalf("variable %s not defined", name)
	}
	return ent.Value
}

func TestNumericVariableSubstitution(t *testing.T) {
	e := mustRun(t, "x = 5\nfreq x * 2 + 1\n")
	if !driver.IsConstant(e.Defaults().Freq, 11) {
		t.Fatalf("freq got %v, want Constant(11)", e.Defaults().Freq)
	}
	if ent, _ := e.Vars().Lookup("x"); ent.Line != 1 {
		t.Fatalf("x assigned on line %d, want 1", ent.Line)
	}
}

func TestReducerMatchesExpressionEvaluator(t *testing.T) {
	exprs := []string{
		"1 + 2 * 3",
		"10 / 4 - 1",
		"-3 * 2 + 8",
		"2 * -3",
		"7 % 3 + 1",
		"1 - 2 - 3",
		"100 / 10 / 5",
		"2 * 3 * 4 - 10 / 4",
		"4 - -2",
	}
	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			want, err := govaluate.NewEvaluableExpression(expr)
			if err != nil {
				t.Fatalf("oracle parse: %v", err)
			}
			v, err := want.Evaluate(nil)
			if err != nil {
				t.Fatalf("oracle eval: %v", err)
			}
			e := mustRun(t, "x = "+expr)
			if got := number(t, e, "x"); math.Abs(got-v.(float64)) > 1e-12 {
				t.Fatalf("got %v, want %v", got, v)
			}
		})
	}
}

func TestArithmeticErrorsAreFatal(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"divide by zero", "sound .1\nfreq 1 / 0", "division by zero"},
		{"modulus by zero", "freq 5 % 0", "modulus by zero"},
		{"undefined variable", "vol foo", "'foo' wasn't defined"},
		{"undefined operand", "freq bar + 1", "'bar' wasn't defined"},
		{"dangling operator", "freq 2 *", "needs numbers on both sides"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, tc.src)
			var serr *script.Error
			if !errors.As(err, &serr) {
				t.Fatalf("got %v, want a script error", err)
			}
			if !strings.Contains(serr.Msg, tc.want) {
				t.Fatalf("message %q does not mention %q", serr.Msg, tc.want)
			}
		})
	}
}

func TestErrorCarriesLineNumber(t *testing.T) {
	_, err := run(t, "sound .1\n\nfreq 1 / 0\n")
	var serr *script.Error
	if !errors.As(err, &serr) || serr.Line != 3 {
		t.Fatalf("got %v, want error on line 3", err)
	}
}

func TestMacroExpandsInPlace(t *testing.T) {
	e := mustRun(t, "note = sound .25 freq 220\nnote\nnote\n")
	if got := e.Time(); got != 0.5 {
		t.Fatalf("time got %v, want 0.5", got)
	}
	if got := e.Buffer().Len(); got != 500 {
		t.Fatalf("buffer length got %d, want 500", got)
	}
	if !driver.IsConstant(e.Defaults().Freq, 1000) {
		t.Fatalf("timed line changed the default frequency to %v", e.Defaults().Freq)
	}
}

func TestMacroDefinitionDoesNotRun(t *testing.T) {
	e := mustRun(t, "note = sound 1\n")
	if e.Time() != 0 || e.Buffer().Len() != 0 {
		t.Fatalf("definition rendered audio: time %v len %d", e.Time(), e.Buffer().Len())
	}
}

func TestRecursiveMacroIsBounded(t *testing.T) {
	_, err := run(t, "m = m\nm\n")
	if err == nil || !strings.Contains(err.Error(), "too deep") {
		t.Fatalf("got %v, want expansion depth error", err)
	}
}

func TestSettingsPersistOnlyWithoutTimedAction(t *testing.T) {
	e := mustRun(t, "vol .3\nsound .1 vol .2\n")
	if !driver.IsConstant(e.Defaults().Vol, 0.3) {
		t.Fatalf("vol got %v, want Constant(0.3)", e.Defaults().Vol)
	}
}

func TestOscTakesOverridesToItsRight(t *testing.T) {
	e := mustRun(t, "freq osc 100 to 200 freq 5 square\n")
	osc, ok := e.Defaults().Freq.(*driver.Oscillator)
	if !ok {
		t.Fatalf("freq got %T, want *driver.Oscillator", e.Defaults().Freq)
	}
	if lo, hi := osc.Bounds(); lo != 100 || hi != 200 {
		t.Fatalf("bounds got (%v, %v), want (100, 200)", lo, hi)
	}
	if e.Defaults().Form != driver.Sine {
		t.Fatalf("waveform consumed by osc leaked into defaults: %v", e.Defaults().Form)
	}
}

func TestShapeLivesForOneLine(t *testing.T) {
	e := mustRun(t, "adsr1\nsound .1 wedge1 .05\n")
	if !driver.IsConstant(e.Defaults().Shape, 1) {
		t.Fatalf("shape got %v, want Constant(1)", e.Defaults().Shape)
	}
}

func TestRepeatRunsTheLineAgain(t *testing.T) {
	e := mustRun(t, "repeat 4 sound .25\n")
	if got := e.Time(); got != 1 {
		t.Fatalf("time got %v, want 1", got)
	}
}

func TestRepeatZeroRunsOnce(t *testing.T) {
	e := mustRun(t, "repeat 0 sound .25\n")
	if got := e.Time(); got != 0.25 {
		t.Fatalf("time got %v, want 0.25", got)
	}
}

func TestTimedActionsPastInitialCapacity(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		frames int
	}{
		{"zero silence", "time 120\nsilence 0", 120000},
		{"zero mix", "time 120\nmix 0", 120000},
		{"zero sound", "time 120\nsound 0", 120000},
		{"silence", "time 61\nsilence .5", 61500},
		{"mix", "time 61\nmix .5", 61500},
		{"sound", "time 61\nsound .5", 61500},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := mustRun(t, tc.src)
			b := e.Buffer()
			if b.Len() != tc.frames {
				t.Fatalf("len got %d, want %d", b.Len(), tc.frames)
			}
			if b.Cap() < b.Len() {
				t.Fatalf("cap %d below len %d", b.Cap(), b.Len())
			}
			if got := len(b.Interleaved()); got != 2*tc.frames {
				t.Fatalf("interleaved got %d samples, want %d", got, 2*tc.frames)
			}
		})
	}
}

func TestLoopResumesAfterAssignment(t *testing.T) {
	e := mustRun(t, "n = 3\nsound .1\nloop n\nsound .5\n")
	if got := e.Time(); math.Abs(got-0.8) > 1e-9 {
		t.Fatalf("time got %v, want 0.8", got)
	}
	if got := number(t, e, "n"); got != 1 {
		t.Fatalf("counter got %v, want 1", got)
	}
}

func TestLoopNeedsAssignedCounter(t *testing.T) {
	if _, err := run(t, "loop missing\n"); err == nil {
		t.Fatalf("expected an error for an unknown counter")
	}
	if _, err := run(t, "loop _A4\n"); err == nil {
		t.Fatalf("expected an error for a preset used as counter")
	}
}

func TestTimeCommands(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want float64
	}{
		{"time", "time 2", 2},
		{"timestamp", "time 1:30", 90},
		{"timestamp arithmetic", "time 1:00 + 30", 90},
		{"timestamp sign", "time 2:00\naddtime -0:30", 90},
		{"addtime", "time 1\naddtime .5", 1.5},
		{"addtime clamps", "addtime -3", 0},
		{"rewind one", "sound 1\nsound 1\nrewind", 1},
		{"rewind many", "sound 1\nsound 1\nsound 1\nrewind 2", 1},
		{"rewind past start", "sound 1\nrewind 9", 0},
		{"rewind empty history", "time 4\nrewind", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := mustRun(t, tc.src)
			if got := e.Time(); got != tc.want {
				t.Fatalf("time got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAutomixRange(t *testing.T) {
	if _, err := run(t, "automix 1.5"); err == nil {
		t.Fatalf("expected automix range error")
	}
	e := mustRun(t, "automix .4")
	if e.Defaults().Automix != 0.4 {
		t.Fatalf("automix got %v, want 0.4", e.Defaults().Automix)
	}
	e = mustRun(t, "manualmix")
	if e.Defaults().Automix != settings.ManualMix {
		t.Fatalf("manualmix got %v, want %v", e.Defaults().Automix, settings.ManualMix)
	}
}

func TestMissingArguments(t *testing.T) {
	for _, src := range []string{
		"freq", "vol", "bal", "sound", "time", "ramp 1 2", "osc 1 2",
		"seq", "seq 1", "seq 1 0", "randseq 1 2", "reverb 1", "output",
	} {
		if _, err := run(t, src); err == nil {
			t.Errorf("%q: expected an error", src)
		}
	}
}

func TestOutputAndExit(t *testing.T) {
	e, err := run(t, "output \"song.wav\"\nsound .1\nexit\nsound 1\n")
	if err != ErrExit {
		t.Fatalf("got %v, want ErrExit", err)
	}
	if e.Finish() != "song.wav" {
		t.Fatalf("output got %q, want song.wav", e.Finish())
	}
	if e.Time() != 0.1 {
		t.Fatalf("time got %v, want 0.1", e.Time())
	}
}

func TestMixAndSilenceExtendOutput(t *testing.T) {
	e := mustRun(t, "sound .2\nrewind\nmix .5\nsilence .25\n")
	if got := e.Buffer().Len(); got != 750 {
		t.Fatalf("buffer length got %d, want 750", got)
	}
}

func TestSequencersFromTables(t *testing.T) {
	e := mustRun(t, "freq seq 100 .1 200 .1\nvol ramps 0 .5 1 .5\nbal randseq -1 to 1 .2\n")
	if _, ok := e.Defaults().Freq.(*driver.StepSequencer); !ok {
		t.Fatalf("freq got %T", e.Defaults().Freq)
	}
	if _, ok := e.Defaults().Vol.(*driver.InterpolatedRampSequencer); !ok {
		t.Fatalf("vol got %T", e.Defaults().Vol)
	}
	if _, ok := e.Defaults().Bal.(*driver.RandomStepper); !ok {
		t.Fatalf("bal got %T", e.Defaults().Bal)
	}
}
