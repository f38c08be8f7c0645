package driver

import "errors"

// Step is one (value, duration) entry of a sequencer table, duration in
// samples.
type Step struct {
	Value    float64
	Duration int
}

var ErrEmptyTable = errors.New("sequence table needs at least one value and time pair")
var ErrZeroFirst = errors.New("first time in a sequence table must not be 0")

func checkTable(steps []Step) error {
	if len(steps) == 0 {
		return ErrEmptyTable
	}
	if steps[0].Duration <= 0 {
		return ErrZeroFirst
	}
	return nil
}

// StepSequencer holds each value for its duration, counted from the sample
// deltas between calls. An entry with zero duration is held for one sample
// and then loops back to the first entry; a table without one freezes on
// its last value.
type StepSequencer struct {
	steps []Step
	idx   int
	count int
	lastX int
}

func NewStepSequencer(steps []Step) (*StepSequencer, error) {
	if err := checkTable(steps); err != nil {
		return nil, err
	}
	return &StepSequencer{steps: append([]Step(nil), steps...)}, nil
}

func (s *StepSequencer) Init(int) {
	s.idx = 0
	s.count = 0
	s.lastX = 0
}

func (s *StepSequencer) Value(x int) float64 {
	if d := x - s.lastX; d > 0 {
		s.count += d
	}
	s.lastX = x
	for {
		cur := s.steps[s.idx]
		hold := max(cur.Duration, 1)
		if s.count < hold {
			break
		}
		if cur.Duration <= 0 {
			s.count -= hold
			s.idx = 0
			continue
		}
		if s.idx+1 >= len(s.steps) {
			s.count = hold
			break
		}
		s.count -= hold
		s.idx++
	}
	return s.steps[s.idx].Value
}

// InterpolatedRampSequencer slews toward each entry's value, arriving at the
// entry's time (samples from the start of the cycle). Each call moves the
// output by the remaining gap divided by the remaining samples, so sparse
// calls lag behind a straight line. The table always loops.
type InterpolatedRampSequencer struct {
	steps []Step
	idx   int
	count int
	lastX int
	last  float64
}

func NewInterpolatedRampSequencer(steps []Step) (*InterpolatedRampSequencer, error) {
	if err := checkTable(steps); err != nil {
		return nil, err
	}
	r := &InterpolatedRampSequencer{steps: append([]Step(nil), steps...)}
	r.Init(0)
	return r, nil
}

func (r *InterpolatedRampSequencer) Init(int) {
	r.idx = 0
	r.count = 0
	r.lastX = 0
	r.last = r.steps[0].Value
}

func (r *InterpolatedRampSequencer) Value(x int) float64 {
	if d := x - r.lastX; d > 0 {
		r.count += d
	}
	r.lastX = x
	for r.count >= r.steps[r.idx].Duration {
		r.idx++
		if r.idx == len(r.steps) {
			r.idx = 0
			r.count = 0
		}
	}
	target := r.steps[r.idx]
	remaining := target.Duration - r.count
	if remaining == 0 {
		r.last = target.Value
	} else {
		r.last += (target.Value - r.last) / float64(remaining)
	}
	return r.last
}
