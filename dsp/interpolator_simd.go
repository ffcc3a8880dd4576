//go:build simd

package dsp

// newInterpolator selects the unrolled, lane-wise interpolator built
// under the "simd" tag.
func newInterpolator() Interpolator {
	return UnrolledInterpolator{}
}

// UnrolledInterpolator is the portable stand-in for a hardware-SIMD
// implementation: it computes the same 8-tap inner product as
// ScalarInterpolator lane-wise with a final horizontal add, unrolled so
// the compiler can autovectorize it on platforms that support it. It
// must be bitwise equal to, or within 1 ULP of, ScalarInterpolator for
// identical taps and inputs; there is no SIMD-specific rounding path.
type UnrolledInterpolator struct{}

func (UnrolledInterpolator) Filter(samples []float32, offset int, mu float32) float32 {
	row := tapRow(mu)
	taps := &interpolationTaps[row]
	s := samples[offset : offset+interpolatorTapCount : offset+interpolatorTapCount]

	p0 := s[0] * taps[0]
	p1 := s[1] * taps[1]
	p2 := s[2] * taps[2]
	p3 := s[3] * taps[3]
	p4 := s[4] * taps[4]
	p5 := s[5] * taps[5]
	p6 := s[6] * taps[6]
	p7 := s[7] * taps[7]

	return ((p0 + p1) + (p2 + p3)) + ((p4 + p5) + (p6 + p7))
}
