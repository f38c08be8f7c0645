package driver

// Preset names a built-in envelope table.
type Preset int

const (
	Tease1 Preset = iota
	Tease2
	Tease3
	Pulse1
	Pulse2
	Pulse3
	Kick1
	Kick2
	Kick3
	Notch1
	Notch2
	Notch3
	ADSR1
	ADSR2
	ADSR3
	Rev1
	Rev2
	Rev3
	Wedge1
	Wedge2
	Gap1
	Gap2
)

// shapeTable times and values are fractions of the shape length and of
// full volume.
type shapeTable struct {
	times  []float64
	values []float64
}

var tenths = []float64{0, .1, .2, .3, .4, .5, .6, .7, .8, .9, .95}

var presets = map[Preset]shapeTable{
	Tease1: {tenths, []float64{.8, .9, 1, .75, .8, .85, .8, .75, .84, .95, 1}},
	Tease2: {tenths, []float64{.8, .7, .75, .85, .9, .95, .99, .99, .99, .75, .85}},
	Tease3: {tenths, []float64{.99, .95, .9, .95, .85, .95, .9, .99, .99, .9, .85}},
	Pulse1: {tenths, []float64{0, .5, .6, .75, .8, .99, .8, .75, .6, .5, .2}},
	Pulse2: {tenths, []float64{.5, .7, .8, .9, .95, .99, .95, .9, .8, .7, .5}},
	Pulse3: {tenths, []float64{0, .4, .5, .65, .85, .95, .99, .95, .8, .6, .3}},
	Kick1:  {tenths, []float64{.5, .5, .5, .75, .9, .99, .99, .9, .75, .5, .5}},
	Kick2:  {tenths, []float64{.8, .8, .8, .8, .95, .99, .95, .8, .8, .8, .8}},
	Kick3:  {tenths, []float64{.3, .3, .3, .3, .8, .95, .99, .99, .8, .3, .3}},
	Notch1: {[]float64{0, .1, .15, .2, .3, .9}, []float64{.99, .6, .3, .6, .9, .99}},
	Notch2: {[]float64{0, .1, .2, .3, .5}, []float64{.99, .1, .4, .8, .99}},
	Notch3: {[]float64{0, .1, .13, .2, .3}, []float64{.99, .6, .3, .6, .99}},
	ADSR1:  {tenths, []float64{.75, .99, .99, .75, .7, .7, .7, .7, .6, .4, .3}},
	ADSR2:  {tenths, []float64{.5, .8, .99, .99, .99, .7, .6, .5, .4, .3, .1}},
	ADSR3:  {tenths, []float64{.75, .99, .99, .99, .7, .6, .4, .4, .3, .2, .1}},
	Rev1:   {tenths, []float64{.4, .5, .6, .7, .8, .9, .99, .99, .99, .8, .6}},
	Rev2:   {tenths, []float64{.65, .7, .85, .88, .9, .93, .96, .98, .99, .99, .99}},
	Rev3:   {tenths, []float64{.2, .4, .6, .7, .8, .9, .99, .99, .99, .99, .8}},
	Wedge1: {[]float64{0, .4, .7, .95}, []float64{.001, .001, .99, .99}},
	Wedge2: {[]float64{0, .2, .5, .95}, []float64{.001, .001, .99, .99}},
	Gap1:   {[]float64{0, .9, .91, .99}, []float64{.991, .99, .001, .99}},
	Gap2:   {[]float64{0, .15, .8, .81, .99}, []float64{.001, .99, .99, .001, .99}},
}

// EnvelopeShape interpolates a preset table scaled to length samples and
// loops once the length is reached. A negative length takes the length
// passed to the first Init.
type EnvelopeShape struct {
	preset Preset
	length int
	times  []int
	values []float64
	cursor int
}

func NewEnvelopeShape(p Preset, length int) *EnvelopeShape {
	if _, ok := presets[p]; !ok {
		p = ADSR1
	}
	return &EnvelopeShape{preset: p, length: length}
}

func (s *EnvelopeShape) Preset() Preset { return s.preset }
func (s *EnvelopeShape) Length() int    { return s.length }

func (s *EnvelopeShape) Init(length int) {
	if s.length < 0 && length > 0 {
		s.length = length
	}
	scale := max(s.length, 0)
	table := presets[s.preset]
	n := len(table.times)
	s.times = make([]int, n+1)
	s.values = make([]float64, n+1)
	for i := 0; i < n; i++ {
		s.times[i] = int(table.times[i] * float64(scale))
		s.values[i] = table.values[i]
	}
	s.times[n] = scale
	s.values[n] = table.values[0]
	s.cursor = 0
}

func (s *EnvelopeShape) Value(x int) float64 {
	if s.times == nil {
		s.Init(0)
	}
	if s.length <= 0 {
		return s.values[0]
	}
	p := wrap(x, s.length)
	if p < s.times[s.cursor] {
		s.cursor = 0
	}
	for s.cursor < len(s.times)-2 && p >= s.times[s.cursor+1] {
		s.cursor++
	}
	ta, tb := s.times[s.cursor], s.times[s.cursor+1]
	va, vb := s.values[s.cursor], s.values[s.cursor+1]
	if tb <= ta {
		return vb
	}
	return va + (vb-va)*float64(p-ta)/float64(tb-ta)
}
