package easysynth

import (
	"encoding/binary"
)

// RenderSamples renders script text with a fixed seed and returns the
// interleaved stereo samples.
func RenderSamples(src string, sampleRate int) ([]int16, error) {
	r, err := New(WithSampleRate(sampleRate), WithSeed(1))
	if err != nil {
		return nil, err
	}
	buf, err := r.RenderString("inline.e2", src)
	if err != nil {
		return nil, err
	}
	return buf.Interleaved(), nil
}

// EncodeWAV16LE builds a 16-bit PCM WAV image in memory.
func EncodeWAV16LE(samples []int16, sampleRate, channels int) []byte {
	dataSize := len(samples) * 2
	blockAlign := channels * 2
	out := make([]byte, 44+dataSize)
	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(36+dataSize))
	copy(out[8:], "WAVE")
	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 1)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 16)
	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[44+i*2:], uint16(s))
	}
	return out
}
