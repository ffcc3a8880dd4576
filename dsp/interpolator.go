package dsp

import "math"

// interpolationTaps is the 128-phase x 8-tap fractional-delay FIR table.
// Row mu*128 holds the 8 coefficients of a windowed-sinc kernel centered
// between sample indices 3 and 4, normalized to sum to 1, so that
// Filter(samples, offset, 0) reproduces samples[offset+3] exactly and
// Filter(samples, offset, 0.5) is the symmetric midpoint kernel. Computed
// once at init rather than carried as a literal blob: the reference
// implementation's exact tap values are not available to this port (see
// DESIGN.md), so this table is this port's own deterministic, symmetric
// pulse-shaping prototype.
var interpolationTaps [interpolatorPhases][interpolatorTapCount]float32

const (
	interpolatorPhases   = 128
	interpolatorTapCount = 8
	interpolatorCenter   = 3.0 // taps[3] is the mu=0 sampling instant
)

func init() {
	for row := 0; row < interpolatorPhases; row++ {
		mu := float64(row) / float64(interpolatorPhases)
		center := interpolatorCenter + mu

		var sum float64
		var taps [interpolatorTapCount]float64
		for k := 0; k < interpolatorTapCount; k++ {
			d := float64(k) - center
			taps[k] = sincKernel(d)
			sum += taps[k]
		}

		for k := 0; k < interpolatorTapCount; k++ {
			interpolationTaps[row][k] = float32(taps[k] / sum)
		}
	}
}

// sincKernel evaluates a Hann-windowed sinc pulse over the 8-tap support,
// symmetric about d=0 and zero at every nonzero integer d.
func sincKernel(d float64) float64 {
	const halfWidth = 4.0

	if d <= -halfWidth || d >= halfWidth {
		return 0
	}

	window := 0.5 * (1 + math.Cos(math.Pi*d/halfWidth))

	if d == 0 {
		return window
	}

	return window * math.Sin(math.Pi*d) / (math.Pi * d)
}

// Interpolator computes fractional-delay interpolation over a real sample
// window. Implementations have no side effects and no error paths; the
// caller is responsible for ensuring samples[offset:offset+8] is in
// bounds and 0 <= mu < 1.
type Interpolator interface {
	Filter(samples []float32, offset int, mu float32) float32
}

// NewInterpolator returns the Interpolator implementation selected at
// build time: the scalar implementation by default, or the unrolled
// portable variant when built with the "simd" build tag. Both honor the
// identical contract and share the same tap table; their results differ
// at most by the rounding of their different summation orders.
func NewInterpolator() Interpolator {
	return newInterpolator()
}

// ScalarInterpolator is a plain loop-based implementation of the 8-tap
// polyphase fractional-delay filter.
type ScalarInterpolator struct{}

// Filter returns the inner product of samples[offset:offset+8] with the
// tap row selected by mu.
func (ScalarInterpolator) Filter(samples []float32, offset int, mu float32) float32 {
	row := tapRow(mu)
	taps := &interpolationTaps[row]

	var sum float32
	for i := 0; i < interpolatorTapCount; i++ {
		sum += samples[offset+i] * taps[i]
	}
	return sum
}

func tapRow(mu float32) int {
	row := int(mu * float32(interpolatorPhases))
	if row < 0 {
		return 0
	}
	if row >= interpolatorPhases {
		return interpolatorPhases - 1
	}
	return row
}
