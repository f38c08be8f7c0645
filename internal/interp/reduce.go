package interp

import (
	"github.com/cbegin/easysynth-go/internal/script"
)

// reduce folds arithmetic in three left to right passes: unary signs,
// then * / %, then + -. Each operator collapses into its left operand's
// slot and the operator and right operand become inert.
func reduce(line *script.Line) error {
	if err := reduceSigns(line); err != nil {
		return err
	}
	if err := reducePass(line, script.Mult, script.Div, script.Mod); err != nil {
		return err
	}
	return reducePass(line, script.Plus, script.Minus)
}

// reduceSigns treats + and - as signs when nothing numeric stands to their
// left. A comma counts as a separator here.
func reduceSigns(line *script.Line) error {
	for i := range line.Nodes {
		k := line.Nodes[i].Kind
		if k != script.Plus && k != script.Minus {
			continue
		}
		if l := line.LeftActive(i); l >= 0 && line.Nodes[l].Kind.IsNumeric() {
			continue
		}
		r := line.Right(i)
		if r < 0 || !line.Nodes[r].Kind.IsNumeric() {
			return line.Errorf("sign '%s' needs a number on its right", k)
		}
		if line.Nodes[r].Kind == script.String {
			return undefined(line, r)
		}
		if k == script.Minus {
			line.Nodes[r].Value = -line.Nodes[r].Value
		}
		line.Disable(i)
	}
	return nil
}

func reducePass(line *script.Line, ops ...script.Kind) error {
	for i := range line.Nodes {
		k := line.Nodes[i].Kind
		if !isOneOf(k, ops) {
			continue
		}
		l, r := line.Left(i), line.Right(i)
		if l < 0 || r < 0 || !line.Nodes[l].Kind.IsNumeric() || !line.Nodes[r].Kind.IsNumeric() {
			return line.Errorf("operator '%s' needs numbers on both sides", k)
		}
		if line.Nodes[l].Kind == script.String {
			return undefined(line, l)
		}
		if line.Nodes[r].Kind == script.String {
			return undefined(line, r)
		}
		a, b := line.Nodes[l].Value, line.Nodes[r].Value
		var v float64
		switch k {
		case script.Mult:
			v = a * b
		case script.Div:
			if b == 0 {
				return line.Errorf("division by zero")
			}
			v = a / b
		case script.Mod:
			if int(b) == 0 {
				return line.Errorf("modulus by zero")
			}
			v = float64(int(a) % int(b))
		case script.Plus:
			v = a + b
		case script.Minus:
			v = a - b
		}
		line.Nodes[l] = script.Node{Kind: script.Number, Value: v, Filled: true}
		line.Disable(i)
		line.Disable(r)
	}
	return nil
}

// resolveTimestamps turns m:ss timestamps into seconds so they take part in
// arithmetic like any other number.
func resolveTimestamps(line *script.Line) error {
	for i := range line.Nodes {
		if line.Nodes[i].Kind != script.Timestamp {
			continue
		}
		sec, err := script.TimestampSeconds(line.Nodes[i].Text)
		if err != nil {
			return line.Errorf("%v", err)
		}
		line.Nodes[i] = script.Node{Kind: script.Number, Value: sec, Filled: true}
	}
	return nil
}

func isOneOf(k script.Kind, set []script.Kind) bool {
	for _, s := range set {
		if k == s {
			return true
		}
	}
	return false
}
