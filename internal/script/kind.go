package script

import "strings"

type Kind int

const (
	Inert Kind = iota
	Number
	String
	Filename
	Timestamp
	Comma
	To
	Assign
	AssignLHS

	Plus
	Minus
	Mult
	Div
	Mod

	Exit
	Freq
	Freq2
	Freq3
	Vol
	Vol2
	Vol3
	Bal
	Phase
	Duty
	CirP
	CirI
	Time
	AddTime
	Automix
	ManualMix
	Rewind
	FadeIn
	FadeOut
	Circuit
	NoCircuit
	Left
	Right
	Both

	Sine
	Square
	Saw
	Tri
	Tens
	Noise

	Ramp
	Seq
	Ramps
	RandSeq
	Osc

	Sound
	Mix
	Silence
	Boost
	Reverb

	Repeat
	Loop
	Output
	Include

	Tease1
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

var keywords = map[string]Kind{
	"to":        To,
	"exit":      Exit,
	"freq":      Freq,
	"freq2":     Freq2,
	"freq3":     Freq3,
	"vol":       Vol,
	"vol2":      Vol2,
	"vol3":      Vol3,
	"bal":       Bal,
	"phase":     Phase,
	"duty":      Duty,
	"cirp":      CirP,
	"ciri":      CirI,
	"time":      Time,
	"addtime":   AddTime,
	"automix":   Automix,
	"manualmix": ManualMix,
	"rewind":    Rewind,
	"fadein":    FadeIn,
	"fadeout":   FadeOut,
	"circuit":   Circuit,
	"nocircuit": NoCircuit,
	"left":      Left,
	"right":     Right,
	"both":      Both,
	"sine":      Sine,
	"square":    Square,
	"saw":       Saw,
	"tri":       Tri,
	"tens":      Tens,
	"noise":     Noise,
	"ramp":      Ramp,
	"seq":       Seq,
	"ramps":     Ramps,
	"randseq":   RandSeq,
	"osc":       Osc,
	"sound":     Sound,
	"mix":       Mix,
	"silence":   Silence,
	"boost":     Boost,
	"reverb":    Reverb,
	"repeat":    Repeat,
	"loop":      Loop,
	"output":    Output,
	"include":   Include,
	"tease1":    Tease1,
	"tease2":    Tease2,
	"tease3":    Tease3,
	"pulse1":    Pulse1,
	"pulse2":    Pulse2,
	"pulse3":    Pulse3,
	"kick1":     Kick1,
	"kick2":     Kick2,
	"kick3":     Kick3,
	"notch1":    Notch1,
	"notch2":    Notch2,
	"notch3":    Notch3,
	"adsr1":     ADSR1,
	"adsr2":     ADSR2,
	"adsr3":     ADSR3,
	"rev1":      Rev1,
	"rev2":      Rev2,
	"rev3":      Rev3,
	"wedge1":    Wedge1,
	"wedge2":    Wedge2,
	"gap1":      Gap1,
	"gap2":      Gap2,
}

var kindNames = map[Kind]string{
	Inert:     "inert",
	Number:    "number",
	String:    "string",
	Filename:  "filename",
	Timestamp: "timestamp",
	Comma:     ",",
	Assign:    "=",
	AssignLHS: "assign-target",
	Plus:      "+",
	Minus:     "-",
	Mult:      "*",
	Div:       "/",
	Mod:       "%",
}

// Keyword looks up a reserved word, ignoring case.
func Keyword(word string) (Kind, bool) {
	k, ok := keywords[strings.ToLower(word)]
	return k, ok
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	for word, kw := range keywords {
		if kw == k {
			return word
		}
	}
	return "unknown"
}

func (k Kind) IsWaveform() bool { return k >= Sine && k <= Noise }
func (k Kind) IsShape() bool    { return k >= Tease1 && k <= Gap2 }
func (k Kind) IsOperator() bool { return k >= Plus && k <= Mod }

// IsDriver reports whether a node of this kind carries a constructed driver.
func (k Kind) IsDriver() bool {
	return (k >= Ramp && k <= Osc) || k.IsShape()
}

// IsNumeric reports whether the node can stand as an arithmetic operand.
// Unresolved strings count so that the reducer can report them by name.
func (k Kind) IsNumeric() bool { return k == Number || k == String }
