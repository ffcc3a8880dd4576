package dsp

// Equalizer is a real-valued LMS adaptive filter over soft-symbol phases
// with a fixed unity center tap. It tracks the residual channel distortion
// between the interpolated symbol phase and the ideal phase of the
// interim hard decision, and can correct the interpolated phase before a
// final hard decision is made.
//
// The history rings z and a are each duplicated (length 2L) so the inner
// loops can read L contiguous entries starting at the current pointer
// without a modulo.
type Equalizer struct {
	length int // L = 2*taps+1

	z []float32 // recent soft-symbol phases, duplicated ring
	a []float32 // corresponding ideal-phase decisions, duplicated ring
	q []float32 // filter taps

	pointer int
	step    float32

	// experimentalSyncRetune enables the closed-form tap retuning
	// performed by SyncDetected. It is aggressive and unproven outside
	// of decision-directed steady state; see DESIGN.md.
	experimentalSyncRetune bool
}

// EqualizerOption configures an Equalizer at construction.
type EqualizerOption func(*Equalizer)

// WithSyncRetune enables or disables the experimental closed-form tap
// retuning triggered by a confirmed sync pattern. Disabled by default.
func WithSyncRetune(enabled bool) EqualizerOption {
	return func(e *Equalizer) { e.experimentalSyncRetune = enabled }
}

// NewEqualizer constructs an equalizer with 2*taps+1 total taps and the
// given LMS step size. DMR uses taps=12 for a length-25 filter.
func NewEqualizer(taps int, step float32, opts ...EqualizerOption) *Equalizer {
	length := 2*taps + 1

	e := &Equalizer{
		length: length,
		z:      make([]float32, length*2),
		a:      make([]float32, length*2),
		q:      make([]float32, length),
		step:   step,
	}

	e.q[length/2] = 1.0

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func guardFinite(v float32) float32 {
	if isNonFinite(v) {
		return 0
	}
	return v
}

func (e *Equalizer) insert(decision Dibit, phase float32) {
	e.z[e.pointer] = phase
	e.z[e.pointer+e.length] = phase
	e.a[e.pointer] = decision.IdealPhase()
	e.a[e.pointer+e.length] = decision.IdealPhase()
	e.pointer++
	e.pointer %= e.length
}

// Process inserts a new soft-symbol phase and interim decision, adapts
// the tap vector by the normalized-error LMS rule, and returns the
// equalized phase.
func (e *Equalizer) Process(decision Dibit, phase float32) float32 {
	e.insert(decision, phase)

	center := e.length / 2

	var y float32
	for l := 0; l < e.length; l++ {
		y += (e.z[l+e.pointer] - e.a[l+e.pointer]) * e.q[l]
	}
	y = guardFinite(y)

	err := e.a[center+e.pointer] - y

	for l := 0; l < e.length; l++ {
		if l == center {
			continue
		}
		e.q[l] = guardFinite(e.q[l] + 2*e.step*err*(e.z[l+e.pointer]-e.a[l+e.pointer]))
	}

	return y
}

// ProcessNoUpdate advances the equalizer's history rings without
// touching the tap vector, used while the symbol processor has flagged
// the current symbol as noisy.
func (e *Equalizer) ProcessNoUpdate(decision Dibit, phase float32) {
	e.insert(decision, phase)
}

// SyncDetected retunes the tap vector from a confirmed 24-dibit sync
// pattern by a one-shot closed-form correction, when enabled via
// WithSyncRetune. It overwrites the 24 most recent ideal-phase entries
// with the pattern's known-good phases, then sets each off-center tap so
// its contribution corrects the residual error observed at the center
// tap, split evenly across the pattern length. This is not an LMS
// update and is intentionally aggressive; the decision-directed loop is
// expected to settle the taps again afterward.
func (e *Equalizer) SyncDetected(dibits []Dibit) {
	if !e.experimentalSyncRetune {
		return
	}

	pointer := e.pointer
	tapError := make([]float32, e.length)
	tapError[0] = e.z[pointer] - e.a[pointer]

	pointer++
	for x := 0; x < len(dibits); x++ {
		pointer %= e.length
		ideal := dibits[x].IdealPhase()
		e.a[pointer] = ideal
		e.a[pointer+e.length] = ideal
		tapError[x+1] = e.z[pointer] - e.a[pointer]
		pointer++
	}

	center := e.length / 2
	mainTapError := tapError[center]

	for x := range e.q {
		if x == center {
			continue
		}
		if tapError[x] == 0 {
			continue
		}
		e.q[x] = guardFinite(-mainTapError / 24 / tapError[x])
	}
}

// Reset re-initializes the equalizer to its boot-time state: zeroed
// history and a unity center tap.
func (e *Equalizer) Reset() {
	for i := range e.z {
		e.z[i] = 0
	}
	for i := range e.a {
		e.a[i] = 0
	}
	for i := range e.q {
		e.q[i] = 0
	}
	e.q[e.length/2] = 1.0
	e.pointer = 0
}
