package dsp

import "math"

// DifferentialDemodulator multiplies each current complex sample by the
// complex conjugate of a sample one symbol period earlier, yielding a
// differential phasor whose angle encodes the transmitted symbol. The
// "current" sample is produced by fractional-delay interpolation so the
// differential comparison always spans exactly one symbol period even
// when that period is not an integer number of samples.
type DifferentialDemodulator struct {
	interpolator Interpolator
}

// NewDifferentialDemodulator constructs a differential demodulator using
// the build-selected Interpolator implementation.
func NewDifferentialDemodulator() *DifferentialDemodulator {
	return &DifferentialDemodulator{interpolator: NewInterpolator()}
}

// Execute computes one differential phase sample per index in
// [xStart, xEnd) from the I/Q rails, where rail index 0 is exactly one
// nominal symbol period before rail index "overlap". interpolationOffset
// and mu position the fractional-delay interpolation used to produce the
// "current" sample one symbol period after the "previous" sample at
// rail index x. Results are written into phases[xStart:xEnd].
func (d *DifferentialDemodulator) Execute(i, q []float32, xStart, xEnd, interpolationOffset int, mu float32, phases []float32) {
	for x := xStart; x < xEnd; x++ {
		prevI := i[x]
		prevQ := q[x]

		index := interpolationOffset + x
		curI := d.interpolator.Filter(i, index, mu)
		curQ := d.interpolator.Filter(q, index, mu)

		// current * conjugate(previous)
		dI := prevI*curI + prevQ*curQ
		dQ := prevI*curQ - curI*prevQ

		phases[x] = float32(math.Atan2(float64(dQ), float64(dI)))
	}
}
