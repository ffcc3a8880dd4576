package dsp

import "math"

// maxTimingError bounds the magnitude of the timing error signal fed to
// the tracking loop, one half of the quadrant-1 ideal phase.
var maxTimingError = float32(math.Pi / 4.0 / 2.0)

// TimingError is the stateless decision-directed timing-error detector.
// It maps a symbol decision and its three surrounding interpolated
// phases to a signed radian error that the symbol processor's tracking
// loop uses to correct sample timing.
//
// preceding and following are read from the phase delay line immediately
// before and after the interpolated sampling instant; their relative
// order indicates the sense of phasor rotation across the symbol
// instant, which determines the sign of the returned error.
func TimingError(symbol Dibit, preceding, symbolPhase, following float32) float32 {
	err := symbol.IdealPhase() - symbolPhase

	if err > 0 {
		if err > maxTimingError {
			err = maxTimingError
		}
	} else if err < -maxTimingError {
		err = -maxTimingError
	}

	if preceding < following {
		return err
	}
	return -err
}
