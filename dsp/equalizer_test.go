package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualizerUnityAtConstruction(t *testing.T) {
	e := NewEqualizer(2, 0.1)

	assert.Equal(t, float32(1.0), e.q[e.length/2])
	for i, tap := range e.q {
		if i == e.length/2 {
			continue
		}
		assert.Equal(t, float32(0), tap)
	}
}

// TestEqualizerIdentityWhenDecisionMatchesPhase verifies that feeding a
// phase identical to its own hard decision's ideal phase produces a
// zero residual: z and a are identical at every tap, so every term of
// the filtered sum vanishes regardless of tap values.
func TestEqualizerIdentityWhenDecisionMatchesPhase(t *testing.T) {
	e := NewEqualizer(2, 0.1)

	for i := 0; i < 20; i++ {
		y := e.Process(D00Plus1, D00Plus1.IdealPhase())
		assert.Equal(t, float32(0), y)
	}

	// Since z-a is zero at every tap on every iteration, the LMS update
	// term (proportional to z-a) never moves the taps away from their
	// constructed unity-center starting point.
	assert.Equal(t, float32(1.0), e.q[e.length/2])
}

// TestEqualizerConvergesUnderConstantBias verifies the LMS filter
// reaches a fixed point (taps stop changing) under a sustained,
// constant phase distortion, rather than diverging.
func TestEqualizerConvergesUnderConstantBias(t *testing.T) {
	e := NewEqualizer(2, 0.1)
	const bias = float32(0.3)

	for i := 0; i < 500; i++ {
		e.Process(D00Plus1, D00Plus1.IdealPhase()+bias)
	}

	before := append([]float32(nil), e.q...)
	for i := 0; i < 50; i++ {
		e.Process(D00Plus1, D00Plus1.IdealPhase()+bias)
	}

	for i, tap := range e.q {
		assert.InDelta(t, float64(before[i]), float64(tap), 1e-3)
		assert.False(t, isNonFinite(tap))
	}
}

func TestEqualizerProcessNoUpdateLeavesTapsUnchanged(t *testing.T) {
	e := NewEqualizer(2, 0.1)

	before := append([]float32(nil), e.q...)
	e.ProcessNoUpdate(D01Plus3, 0.4)

	assert.Equal(t, before, e.q)
}

func TestEqualizerGuardsNonFiniteOutput(t *testing.T) {
	assert.Equal(t, float32(0), guardFinite(float32(math.NaN())))
	assert.Equal(t, float32(0), guardFinite(float32(math.Inf(1))))
	assert.Equal(t, float32(1.5), guardFinite(1.5))
}

func TestEqualizerSyncRetuneDisabledByDefault(t *testing.T) {
	e := NewEqualizer(12, 0.1)
	before := append([]float32(nil), e.q...)

	e.SyncDetected(BaseStationDataDibits[:])

	assert.Equal(t, before, e.q)
}

func TestEqualizerSyncRetuneWhenEnabled(t *testing.T) {
	e := NewEqualizer(12, 0.1, WithSyncRetune(true))

	// Seed the history with a phase offset from the pattern's ideal
	// phases so tap_error is nonzero at every off-center position.
	for i := 0; i < 30; i++ {
		e.ProcessNoUpdate(D00Plus1, D00Plus1.IdealPhase()+0.2)
	}

	before := append([]float32(nil), e.q...)
	e.SyncDetected(BaseStationDataDibits[:])

	assert.NotEqual(t, before, e.q)
	assert.Equal(t, float32(1.0), e.q[e.length/2], "center tap is never touched by retuning")
	for _, tap := range e.q {
		assert.False(t, isNonFinite(tap))
	}
}

func TestEqualizerReset(t *testing.T) {
	e := NewEqualizer(2, 0.1)
	e.Process(D00Plus1, 0.5)
	e.Process(D01Plus3, 1.5)

	e.Reset()

	assert.Equal(t, float32(1.0), e.q[e.length/2])
	assert.Equal(t, 0, e.pointer)
	for i, tap := range e.q {
		if i == e.length/2 {
			continue
		}
		assert.Equal(t, float32(0), tap)
	}
	for _, v := range e.z {
		assert.Equal(t, float32(0), v)
	}
}
