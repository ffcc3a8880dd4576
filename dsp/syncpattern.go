package dsp

// BaseStationDataPattern is the 48-bit (24-dibit) DMR "base station data"
// sync pattern. The core correlates against this pattern to align the
// emitted symbol stream.
const BaseStationDataPattern uint64 = 0x755FD7DFD57D

// BaseStationDataDibits and BaseStationDataPhases are the pattern expanded
// into its 24 constituent dibits and their ideal phase angles, most
// significant pair first. Computed once at package init from
// BaseStationDataPattern so the three representations can never drift out
// of sync with one another.
var (
	BaseStationDataDibits  [24]Dibit
	BaseStationDataPhases  [24]float32
)

func init() {
	for i := 0; i < 24; i++ {
		shift := uint(46 - 2*i)
		dibit := Dibit((BaseStationDataPattern >> shift) & 0x3)
		BaseStationDataDibits[i] = dibit
		BaseStationDataPhases[i] = dibit.IdealPhase()
	}
}
