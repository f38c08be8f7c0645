package script

import "github.com/cbegin/easysynth-go/internal/driver"

type Node struct {
	Kind   Kind
	Value  float64
	Text   string
	Filled bool
	Driver driver.Driver
}

// Line is the node arena for one script line. Consumed nodes are retagged
// Inert instead of being removed, so indexes stay valid for a whole pass.
type Line struct {
	File   string
	Number int
	Nodes  []Node
}

func (l *Line) Len() int { return len(l.Nodes) }

func (l *Line) Empty() bool {
	for i := range l.Nodes {
		if l.Nodes[i].Kind != Inert {
			return false
		}
	}
	return true
}

// Disable marks a node as consumed.
func (l *Line) Disable(i int) {
	l.Nodes[i] = Node{Kind: Inert}
}

func skippable(k Kind) bool { return k == Inert || k == Comma }

// Left returns the index of the nearest node left of i that is neither
// inert nor a comma, or -1.
func (l *Line) Left(i int) int {
	for j := i - 1; j >= 0; j-- {
		if !skippable(l.Nodes[j].Kind) {
			return j
		}
	}
	return -1
}

// Right is the mirror of Left.
func (l *Line) Right(i int) int {
	if i < -1 {
		return -1
	}
	for j := i + 1; j < len(l.Nodes); j++ {
		if !skippable(l.Nodes[j].Kind) {
			return j
		}
	}
	return -1
}

// LeftActive skips inert nodes only; a comma is returned as a neighbor.
func (l *Line) LeftActive(i int) int {
	for j := i - 1; j >= 0; j-- {
		if l.Nodes[j].Kind != Inert {
			return j
		}
	}
	return -1
}

// Splice replaces node i with a copy of nodes. Drivers are not copied.
func (l *Line) Splice(i int, nodes []Node) {
	out := make([]Node, 0, len(l.Nodes)-1+len(nodes))
	out = append(out, l.Nodes[:i]...)
	for _, n := range nodes {
		n.Driver = nil
		out = append(out, n)
	}
	out = append(out, l.Nodes[i+1:]...)
	l.Nodes = out
}

// Tail copies the active nodes right of i, for storing a macro body.
func (l *Line) Tail(i int) []Node {
	var out []Node
	for j := i + 1; j < len(l.Nodes); j++ {
		if l.Nodes[j].Kind == Inert {
			continue
		}
		n := l.Nodes[j]
		n.Driver = nil
		out = append(out, n)
	}
	return out
}

// Kinds lists the active node kinds, mostly for diagnostics and tests.
func (l *Line) Kinds() []Kind {
	out := make([]Kind, 0, len(l.Nodes))
	for _, n := range l.Nodes {
		if n.Kind != Inert {
			out = append(out, n.Kind)
		}
	}
	return out
}
