// Package testsignal synthesizes complex-baseband DQPSK sample streams
// from a known dibit sequence, for exercising the dsp package's
// Demodulator without recorded radio captures. It adapts the rtlamr
// teacher's synthetic-oscillator generators (gen.CmplxOscillatorF64 and
// friends) from byte-level FSK/Manchester test signals to continuous
// complex DQPSK waveforms.
package testsignal

import (
	"math"

	"github.com/fufurobot/dmrdemod/dsp"
)

// DQPSK synthesizes a complex baseband waveform carrying dibits via
// differential phase encoding at samplesPerSymbol samples per symbol.
// The absolute phase is held constant across each symbol's samples and
// steps by the symbol's ideal phase at each symbol boundary, so a
// differential demodulator comparing samples exactly one symbol period
// apart recovers dibits[i].IdealPhase() once clear of any edge affected
// by interpolation or filter startup.
func DQPSK(dibits []dsp.Dibit, samplesPerSymbol float64) (i, q []float32) {
	n := len(dibits)
	total := int(math.Round(float64(n) * samplesPerSymbol))

	i = make([]float32, total)
	q = make([]float32, total)

	cumulative := make([]float64, n+1)
	for k, d := range dibits {
		cumulative[k+1] = cumulative[k] + float64(d.IdealPhase())
	}

	for s := 0; s < total; s++ {
		symbolIndex := int(float64(s) / samplesPerSymbol)
		if symbolIndex >= n {
			symbolIndex = n - 1
		}

		sinv, cosv := math.Sincos(cumulative[symbolIndex+1])
		i[s] = float32(cosv)
		q[s] = float32(sinv)
	}

	return i, q
}

// Prepend returns count symbols of uniformly-rotating filler dibits
// ahead of pattern, cycling through all four constellation points, used
// to give a timing loop room to settle before the pattern of interest
// arrives.
func Prepend(count int, pattern []dsp.Dibit) []dsp.Dibit {
	out := make([]dsp.Dibit, 0, count+len(pattern))
	values := [4]dsp.Dibit{dsp.D00Plus1, dsp.D01Plus3, dsp.D10Minus1, dsp.D11Minus3}
	for k := 0; k < count; k++ {
		out = append(out, values[k%4])
	}
	return append(out, pattern...)
}
