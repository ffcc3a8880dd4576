package dsp

// SyncDetector correlates the stream of soft symbol phases (the symbol
// processor feeds it the pre-equalization interpolated phase) against
// the ideal phase sequence of the DMR base-station data
// sync pattern. It holds a duplicated 48-entry ring so the correlation
// sum can read 24 contiguous entries without a modulo in the inner loop.
type SyncDetector struct {
	symbols [48]float32
	pointer int
	ref     [24]float32
}

// NewSyncDetector constructs a detector against the DMR base-station
// data pattern.
func NewSyncDetector() *SyncDetector {
	d := &SyncDetector{}
	d.ref = BaseStationDataPhases
	return d
}

// Process inserts the given soft symbol phase, clamped to the pattern's
// extreme constellation phases to limit the influence of noisy samples,
// and returns the correlation score against the trailing 24 symbols.
func (d *SyncDetector) Process(phase float32) float32 {
	if phase > D01Plus3.IdealPhase() {
		phase = D01Plus3.IdealPhase()
	} else if phase < D11Minus3.IdealPhase() {
		phase = D11Minus3.IdealPhase()
	}

	d.symbols[d.pointer] = phase
	d.symbols[d.pointer+24] = phase
	d.pointer++
	d.pointer %= 24

	var score float32
	for i := 0; i < 24; i++ {
		score += d.ref[i] * d.symbols[d.pointer+i]
	}
	return score
}

// Reset clears the correlator's history.
func (d *SyncDetector) Reset() {
	d.symbols = [48]float32{}
	d.pointer = 0
}
