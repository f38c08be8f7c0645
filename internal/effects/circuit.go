package effects

import (
	"github.com/cbegin/easysynth-go/internal/buffer"
	"github.com/cbegin/easysynth-go/internal/driver"
)

// Circuit models a proportional-integral stage chasing the demanded
// sample, which adds overshoot and ringing to hard edges.
type Circuit struct {
	prop     driver.Driver
	integ    driver.Driver
	integral float64
	last     float64
}

func NewCircuit(prop, integ driver.Driver) *Circuit {
	return &Circuit{prop: prop, integ: integ}
}

func (c *Circuit) Process(x int, demanded float64) float64 {
	delta := demanded - c.last
	c.integral += delta
	out := c.prop.Value(x)*delta + c.integ.Value(x)*c.integral + c.last
	out = clamp(out, -buffer.MaxValue, buffer.MaxValue)
	c.last = out
	return out
}

func (c *Circuit) Reset() {
	c.integral = 0
	c.last = 0
}
