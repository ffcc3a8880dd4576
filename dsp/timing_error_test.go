package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTimingErrorZeroAtIdeal verifies testable property 5: with
// preceding = ideal-delta, this = ideal, following = ideal+delta, the
// calculator returns 0.
func TestTimingErrorZeroAtIdeal(t *testing.T) {
	ideal := D00Plus1.IdealPhase()
	delta := float32(0.05)

	got := TimingError(D00Plus1, ideal-delta, ideal, ideal+delta)

	assert.InDelta(t, 0, float64(got), 1e-6)
}

// TestTimingErrorSign verifies testable property 6: with this = ideal -
// delta and preceding < following, the calculator returns
// +min(delta, pi/8); inverting preceding/following inverts the sign.
func TestTimingErrorSign(t *testing.T) {
	ideal := D00Plus1.IdealPhase()
	delta := float32(0.1)

	preceding := ideal - 1
	following := ideal + 1

	got := TimingError(D00Plus1, preceding, ideal-delta, following)
	assert.InDelta(t, float64(delta), float64(got), 1e-6)

	inverted := TimingError(D00Plus1, following, ideal-delta, preceding)
	assert.InDelta(t, -float64(delta), float64(inverted), 1e-6)
}

func TestTimingErrorClamp(t *testing.T) {
	ideal := D00Plus1.IdealPhase()

	got := TimingError(D00Plus1, ideal-1, ideal-float32(math.Pi), ideal+1)

	assert.LessOrEqual(t, math.Abs(float64(got)), float64(maxTimingError)+1e-6)
}
