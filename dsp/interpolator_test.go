package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestInterpolatorIdentity verifies testable property 1: at mu=0 the
// interpolator returns samples[offset+3] exactly, since the center tap
// is constructed to be 1 and every other tap 0 at mu=0.
func TestInterpolatorIdentity(t *testing.T) {
	samples := []float32{1, 2, 3, 4, 5, 6, 7, 8}

	interp := NewInterpolator()
	got := interp.Filter(samples, 0, 0)

	assert.InDelta(t, float64(samples[3]), float64(got), 1e-5)
}

// TestInterpolatorSymmetry verifies testable property 2: interpolating a
// symmetric input around the 8-tap window at mu=0.5 gives the symmetric
// midpoint, here the average of the two center samples.
func TestInterpolatorSymmetry(t *testing.T) {
	samples := []float32{1, 2, 3, 4, 5, 6, 7, 8}

	interp := NewInterpolator()
	got := interp.Filter(samples, 0, 0.5)

	want := float64(samples[3]+samples[4]) / 2
	assert.InDelta(t, want, float64(got), 1e-3)
}

// TestInterpolatorTapRowClamp exercises out-of-range mu, which a correct
// caller never passes, but tapRow must not panic or index out of bounds.
func TestInterpolatorTapRowClamp(t *testing.T) {
	assert.Equal(t, 0, tapRow(-1))
	assert.Equal(t, interpolatorPhases-1, tapRow(1))
	assert.Equal(t, interpolatorPhases-1, tapRow(2))
}

// S3: mu=0 interpolation of [1..8] at offset 0 returns the 4th-tap-
// centered constant (samples[3] = 4) within 1 ULP-scale tolerance;
// mu=0.5 returns approximately 4.5 for the symmetric tap prototype.
func TestScenarioS3(t *testing.T) {
	samples := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	interp := NewInterpolator()

	assert.InDelta(t, 4.0, float64(interp.Filter(samples, 0, 0)), 1e-4)
	assert.InDelta(t, 4.5, float64(interp.Filter(samples, 0, 0.5)), 1e-2)
}
