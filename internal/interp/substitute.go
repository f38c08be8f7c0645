package interp

import (
	"github.com/cbegin/easysynth-go/internal/script"
	"github.com/cbegin/easysynth-go/internal/vars"
)

const maxSplices = 1024

// markAssignments turns "name =" into an assignment target so the name is
// not substituted when it is being redefined.
func markAssignments(line *script.Line) {
	for i := 0; i+1 < len(line.Nodes); i++ {
		if line.Nodes[i].Kind == script.String && line.Nodes[i+1].Kind == script.Assign {
			line.Nodes[i].Kind = script.AssignLHS
			line.Nodes[i+1].Text = line.Nodes[i].Text
		}
	}
}

// substitute resolves names right to left until nothing changes. Numeric
// variables are retyped in place; macros are spliced and the scan restarts.
// Unknown names stay as strings.
func (e *Engine) substitute(line *script.Line) error {
	splices := 0
	for changed := true; changed; {
		changed = false
		for i := len(line.Nodes) - 1; i >= 0; i-- {
			n := &line.Nodes[i]
			if n.Kind != script.String {
				continue
			}
			ent, ok := e.vars.Lookup(n.Text)
			if !ok {
				continue
			}
			if ent.Kind == vars.Numeric {
				n.Kind = script.Number
				n.Value = ent.Value
				n.Filled = true
				continue
			}
			splices++
			if splices > maxSplices {
				return line.Errorf("macro expansion too deep while expanding '%s'", n.Text)
			}
			line.Splice(i, ent.Nodes)
			changed = true
			break
		}
	}
	return nil
}

// assign stores every assignment on the line. A number on the right makes
// a numeric variable; anything else makes a macro of the rest of the line,
// which is then disabled so the body does not run at definition.
func (e *Engine) assign(line *script.Line) error {
	for i := range line.Nodes {
		n := line.Nodes[i]
		if n.Kind != script.Assign {
			continue
		}
		if n.Text == "" {
			return line.Errorf("assignment needs a name on the left")
		}
		r := line.Right(i)
		if r < 0 {
			return line.Errorf("missing right hand side of assignment to '%s'", n.Text)
		}
		if l := line.LeftActive(i); l >= 0 && line.Nodes[l].Kind == script.AssignLHS {
			line.Disable(l)
		}
		if line.Nodes[r].Kind == script.Number {
			e.vars.SetNumber(n.Text, line.Nodes[r].Value, line.Number)
			line.Disable(i)
			line.Disable(r)
			continue
		}
		e.vars.SetMacro(n.Text, line.Tail(i), line.Number)
		for j := i; j < len(line.Nodes); j++ {
			line.Disable(j)
		}
		return nil
	}
	return nil
}
