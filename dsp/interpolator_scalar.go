//go:build !simd

package dsp

// newInterpolator selects the plain scalar interpolator. Build with
// -tags simd to select the unrolled variant instead.
func newInterpolator() Interpolator {
	return ScalarInterpolator{}
}
