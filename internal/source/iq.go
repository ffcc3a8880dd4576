// Package source converts raw rtl_tcp sample bytes into the complex
// baseband float32 rails the dsp package's Demodulator consumes. It
// plays the role the source specification treats as an external
// collaborator: file/hardware sample acquisition is outside the DQPSK
// core.
package source

// rail is a lookup table mapping an unsigned 8-bit rtl_tcp sample byte to
// its centered, normalized rail value, precomputed once rather than
// divided out per sample.
var rail [256]float32

func init() {
	for idx := range rail {
		rail[idx] = (127.5 - float32(idx)) / 127.5
	}
}

// Unpack splits an interleaved I/Q byte stream (as delivered by rtl_tcp:
// unsigned 8-bit samples, I then Q, DC offset at 127.5) into separate
// I and Q float32 rails. len(raw) must be even; i and q must each have
// capacity for len(raw)/2 samples.
func Unpack(raw []byte, i, q []float32) {
	n := len(raw) / 2
	for idx := 0; idx < n; idx++ {
		i[idx] = rail[raw[idx<<1]]
		q[idx] = rail[raw[idx<<1+1]]
	}
}
