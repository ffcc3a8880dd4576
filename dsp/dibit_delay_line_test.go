package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDibitDelayLineFillAndLatency(t *testing.T) {
	line := NewDibitDelayLine(24)

	for i := 0; i < 24; i++ {
		out := line.Insert(D01Plus3)
		assert.Equal(t, D00Plus1, out, "position %d should still emit the boot-time fill value", i)
	}

	out := line.Insert(D10Minus1)
	assert.Equal(t, D01Plus3, out, "25th insert should emit the 1st inserted value")
}

func TestDibitDelayLineUpdate(t *testing.T) {
	line := NewDibitDelayLine(24)

	line.Update(BaseStationDataDibits[:])

	assert.Equal(t, 0, line.pointer, "a full-length update should return the pointer to where it started")
	for i, want := range BaseStationDataDibits {
		assert.Equal(t, want, line.line[i])
	}
}

func TestDibitDelayLineReset(t *testing.T) {
	line := NewDibitDelayLine(24)
	line.Insert(D01Plus3)
	line.Insert(D10Minus1)

	line.Reset()

	assert.Equal(t, 0, line.pointer)
	for _, d := range line.line {
		assert.Equal(t, D00Plus1, d)
	}
}
