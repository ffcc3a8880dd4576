package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDifferentialInvariance verifies testable property 3: for a
// constant per-sample rotation k, the differential output phase is a
// constant equal to k*samplesPerSymbol*2pi, modulo unwrapping to
// (-pi, pi].
func TestDifferentialInvariance(t *testing.T) {
	const n = 200
	const samplesPerSymbol = 10.0
	const k = 0.01 // rotations per sample

	i := make([]float32, n)
	q := make([]float32, n)
	for x := 0; x < n; x++ {
		angle := 2 * math.Pi * k * float64(x)
		i[x] = float32(math.Cos(angle))
		q[x] = float32(math.Sin(angle))
	}

	wantAngle := wrapPi(2 * math.Pi * k * samplesPerSymbol)

	d := NewDifferentialDemodulator()
	phases := make([]float32, n)

	// interpolationOffset chosen so offset+7 stays in bounds across the
	// swept range, mu=0 isolates the rotation from interpolation error.
	interpolationOffset := int(samplesPerSymbol) - interpolatorCenter
	xStart, xEnd := 10, 60

	d.Execute(i, q, xStart, xEnd, interpolationOffset, 0, phases)

	for x := xStart; x < xEnd; x++ {
		assert.InDelta(t, wantAngle, float64(phases[x]), 0.05, "x=%d", x)
	}
}

func wrapPi(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func TestDifferentialAtan2ZeroAtOrigin(t *testing.T) {
	i := make([]float32, 20)
	q := make([]float32, 20)

	d := NewDifferentialDemodulator()
	phases := make([]float32, 20)

	d.Execute(i, q, 8, 12, 0, 0, phases)

	for x := 8; x < 12; x++ {
		assert.Equal(t, float32(0), phases[x])
	}
}
