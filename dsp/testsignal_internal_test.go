package dsp

import "math"

// testsignalDQPSK and testsignalPrepend mirror
// internal/testsignal.DQPSK and .Prepend. That package cannot be
// imported from dsp's in-package tests: it imports dsp itself, and an
// in-package ("white box") test file is compiled as part of package
// dsp, which would make the import cycle back to dsp.

func testsignalDQPSK(dibits []Dibit, samplesPerSymbol float64) (i, q []float32) {
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

func testsignalPrepend(count int, pattern []Dibit) []Dibit {
	out := make([]Dibit, 0, count+len(pattern))
	values := [4]Dibit{D00Plus1, D01Plus3, D10Minus1, D11Minus3}
	for k := 0; k < count; k++ {
		out = append(out, values[k%4])
	}
	return append(out, pattern...)
}
