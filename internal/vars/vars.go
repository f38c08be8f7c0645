// Package vars holds the variable table shared by every line of a script.
package vars

import (
	"fmt"
	"math"

	"github.com/cbegin/easysynth-go/internal/script"
)

// NoLine marks entries that were never assigned by a script line.
const NoLine = -1

type Kind int

const (
	Numeric Kind = iota
	Macro
)

// Entry is a numeric value or a macro body, plus the line that last
// assigned it.
type Entry struct {
	Kind  Kind
	Value float64
	Nodes []script.Node
	Line  int
}

type Table struct {
	entries map[string]*Entry
}

func NewTable() *Table {
	return &Table{entries: make(map[string]*Entry)}
}

// SetNumber creates or overwrites name as a numeric variable.
func (t *Table) SetNumber(name string, v float64, line int) {
	t.entries[name] = &Entry{Kind: Numeric, Value: v, Line: line}
}

// SetMacro stores a copy of nodes as the body of name.
func (t *Table) SetMacro(name string, nodes []script.Node, line int) {
	body := make([]script.Node, len(nodes))
	copy(body, nodes)
	t.entries[name] = &Entry{Kind: Macro, Nodes: body, Line: line}
}

func (t *Table) Lookup(name string) (*Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

func (t *Table) Len() int { return len(t.entries) }

var noteNames = []string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// NoteFreq is the equal-tempered frequency of a MIDI note, A4 = 440 Hz,
// rounded to hundredths of a hertz.
func NoteFreq(note int) float64 {
	f := 440 * math.Pow(2, float64(note-69)/12)
	return math.Round(f*100) / 100
}

// LoadPresets defines _M21.._M127 and the note names _A0.._C8.
func (t *Table) LoadPresets() {
	for n := 21; n <= 127; n++ {
		t.SetNumber(fmt.Sprintf("_M%d", n), NoteFreq(n), NoLine)
	}
	for n := 21; n <= 108; n++ {
		name := fmt.Sprintf("_%s%d", noteNames[n%12], n/12-1)
		t.SetNumber(name, NoteFreq(n), NoLine)
	}
}
