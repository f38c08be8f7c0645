// Package buffer holds the rendered output: a growable stereo int16 track
// plus a scratch pair used to stage sounds before they are mixed in.
package buffer

import (
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// MaxValue is the full-scale sample magnitude.
const MaxValue = 32767

type Channel int

const (
	Left Channel = iota
	Right
)

// Routing selects the channels an operation writes to.
type Routing struct {
	Left  bool
	Right bool
}

// Channels lists the enabled channels in order.
func (r Routing) Channels() []Channel {
	out := make([]Channel, 0, 2)
	if r.Left {
		out = append(out, Left)
	}
	if r.Right {
		out = append(out, Right)
	}
	return out
}

type Buffer struct {
	sampleRate int
	main       [2][]int16
	scratch    [2][]int16
	maxPos     int
}

// New allocates a buffer holding capacity frames; it grows on demand.
func New(sampleRate, capacity int) *Buffer {
	if capacity <= 0 {
		capacity = sampleRate * 60
	}
	b := &Buffer{sampleRate: sampleRate}
	for ch := range b.main {
		b.main[ch] = make([]int16, capacity)
		b.scratch[ch] = make([]int16, capacity)
	}
	return b
}

func (b *Buffer) SampleRate() int { return b.sampleRate }

// Len is the high-water mark: one past the last frame written by a sound
// or silence.
func (b *Buffer) Len() int { return b.maxPos }

// Cap is the number of frames currently allocated.
func (b *Buffer) Cap() int { return len(b.main[0]) }

// Position converts seconds to a frame index.
func (b *Buffer) Position(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	return int(math.Floor(seconds * float64(b.sampleRate)))
}

// Touch raises the high-water mark to end, allocating up to it.
func (b *Buffer) Touch(end int) {
	if end > b.maxPos {
		b.grow(end - 1)
		b.maxPos = end
	}
}

func (b *Buffer) grow(pos int) {
	n := len(b.main[0])
	if pos < n {
		return
	}
	if n == 0 {
		n = max(b.sampleRate, 1)
	}
	for n <= pos {
		n *= 2
	}
	for ch := range b.main {
		b.main[ch] = append(b.main[ch], make([]int16, n-len(b.main[ch]))...)
		b.scratch[ch] = append(b.scratch[ch], make([]int16, n-len(b.scratch[ch]))...)
	}
}

func (b *Buffer) track(ch Channel, scratch bool) []int16 {
	if scratch {
		return b.scratch[ch]
	}
	return b.main[ch]
}

// Set stores v truncated toward zero and clipped to the int16 range.
func (b *Buffer) Set(ch Channel, pos int, v float64, scratch bool) {
	if pos < 0 {
		return
	}
	b.grow(pos)
	b.track(ch, scratch)[pos] = Clip(v)
}

// Get returns 0 outside the allocated range.
func (b *Buffer) Get(ch Channel, pos int, scratch bool) int16 {
	t := b.track(ch, scratch)
	if pos < 0 || pos >= len(t) {
		return 0
	}
	return t[pos]
}

// Span returns the frames [start, end) of one track, growing it if needed.
// The slice aliases the buffer.
func (b *Buffer) Span(ch Channel, start, end int, scratch bool) []int16 {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return nil
	}
	b.grow(end - 1)
	return b.track(ch, scratch)[start:end]
}

// Clip converts a sample value to int16 with saturation.
func Clip(v float64) int16 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Trunc(v)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// Interleaved returns the main track up to the high-water mark as L/R
// frames.
func (b *Buffer) Interleaved() []int16 {
	out := make([]int16, b.maxPos*2)
	for i := 0; i < b.maxPos; i++ {
		out[i*2] = b.main[Left][i]
		out[i*2+1] = b.main[Right][i]
	}
	return out
}

// WriteWAV encodes the main track as 16-bit stereo PCM.
func (b *Buffer) WriteWAV(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, b.sampleRate, 16, 2, 1)
	frames := b.Interleaved()
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  b.sampleRate,
		},
		Data:           make([]int, len(frames)),
		SourceBitDepth: 16,
	}
	for i, s := range frames {
		buf.Data[i] = int(s)
	}
	if err := enc.Write(buf); err != nil {
		return errors.Wrap(err, "write wav frames")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "finish wav")
	}
	return nil
}
