package dsp

import (
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// ComplexSamples is an immutable batch of complex baseband samples: equal
// length I and Q rails plus a monotonically non-decreasing timestamp.
type ComplexSamples struct {
	I, Q      []float32
	Timestamp int64 // nanoseconds
}

// SymbolListener receives each batch of dibits recovered from a Receive
// call. The slice may be empty but is never nil.
type SymbolListener func([]Dibit)

// Demodulator is the DQPSK demodulator facade. It owns the residual
// sample overlap buffer, drives differential demodulation over each
// arriving batch, and forwards the resulting differential phases to a
// SymbolProcessor. It is strictly single-threaded: Receive must be
// called serially by one owning goroutine.
type Demodulator struct {
	cfg Config

	samplesPerSymbol    float32
	mu                  float32
	interpolationOffset int
	overlap             int

	bufferI, bufferQ []float32
	phases           []float32

	demod     *DifferentialDemodulator
	processor *SymbolProcessor

	listener SymbolListener
	log      *logrus.Entry
}

// NewDemodulator constructs a Demodulator from cfg, or returns a
// configuration error (see Config) with no partial state created.
func NewDemodulator(cfg Config, opts ...SymbolProcessorOption) (*Demodulator, error) {
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = 8
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	m := &Demodulator{
		cfg:  cfg,
		demod: NewDifferentialDemodulator(),
		log:  logrus.NewEntry(logrus.StandardLogger()),
	}

	m.processor = NewSymbolProcessor(cfg.SampleRate/float32(cfg.SymbolRate), opts...)

	m.applySampleRate(cfg.SampleRate)
	return m, nil
}

// SetSymbolListener registers the listener to receive decoded symbol
// batches broadcast after each Receive call. A nil listener disables
// broadcasting; Receive's return value is unaffected.
func (m *Demodulator) SetSymbolListener(listener SymbolListener) {
	m.listener = listener
}

// SetSampleRate changes the incoming sample rate mid-session, which
// implies a full Reset of the tracking loop, equalizer, sync detector
// and dibit delay line.
func (m *Demodulator) SetSampleRate(sampleRate float32) error {
	cfg := m.cfg
	cfg.SampleRate = sampleRate
	if err := cfg.validate(); err != nil {
		return err
	}
	m.cfg = cfg
	m.applySampleRate(sampleRate)
	m.processor.SetSamplesPerSymbol(m.samplesPerSymbol)
	m.processor.Reset()
	m.bufferI = nil
	m.bufferQ = nil
	return nil
}

func (m *Demodulator) applySampleRate(sampleRate float32) {
	m.samplesPerSymbol = sampleRate / float32(m.cfg.SymbolRate)
	m.updateObserved(m.samplesPerSymbol)
}

// updateObserved refreshes the fractional interpolation position and
// buffer overlap from the symbol processor's latest tracked period.
func (m *Demodulator) updateObserved(samplesPerSymbol float32) {
	floor := float32(math.Floor(float64(samplesPerSymbol)))
	m.mu = samplesPerSymbol - floor
	m.interpolationOffset = int(floor) - 4
	m.overlap = int(floor) + 4
}

// Reset idempotently returns the demodulator to its boot-time state:
// the residual overlap buffer is discarded and the symbol processor,
// equalizer, sync detector and dibit delay line are reinitialized.
// Configuration (symbol rate, sample rate) is unaffected.
func (m *Demodulator) Reset() {
	m.processor.Reset()
	m.bufferI = nil
	m.bufferQ = nil
	m.updateObserved(m.samplesPerSymbol)
}

// Receive accepts one batch of complex samples, demodulates and tracks
// symbol timing over it, and returns the dibits recovered -- possibly
// empty, never nil. If a listener is registered via SetSymbolListener,
// it is also invoked with the same batch.
func (m *Demodulator) Receive(batch ComplexSamples) ([]Dibit, error) {
	n := len(batch.I)
	if n != len(batch.Q) {
		return nil, xerrors.Errorf("dsp: I/Q rail length mismatch: %d != %d", n, len(batch.Q))
	}

	m.shiftAndAppend(batch.I, batch.Q)

	if cap(m.phases) < n {
		m.phases = make([]float32, n)
	}
	phases := m.phases[:n]

	blockSize := m.cfg.BlockSize
	for start := 0; start < n; start += blockSize {
		end := start + blockSize
		if end > n {
			end = n
		}

		m.demod.Execute(m.bufferI, m.bufferQ, start, end, m.interpolationOffset, m.mu, phases)
		m.processor.Process(phases[start:end])
		m.updateObserved(m.processor.ObservedSamplesPerSymbol())
	}

	symbols := m.processor.SymbolsAndClear()

	if m.listener != nil {
		m.listener(symbols)
	}

	return symbols, nil
}

// shiftAndAppend copies the trailing overlap samples of the stored I/Q
// arrays to their heads, resizing only when the required length
// changes, and appends the new batch at offset overlap.
func (m *Demodulator) shiftAndAppend(i, q []float32) {
	overlap := m.overlap
	required := len(i) + overlap

	if len(m.bufferI) != required {
		newI := make([]float32, required)
		newQ := make([]float32, required)
		copy(newI, lastN(m.bufferI, overlap))
		copy(newQ, lastN(m.bufferQ, overlap))
		m.bufferI, m.bufferQ = newI, newQ
	} else {
		copy(m.bufferI, m.bufferI[len(i):])
		copy(m.bufferQ, m.bufferQ[len(i):])
	}

	copy(m.bufferI[overlap:], i)
	copy(m.bufferQ[overlap:], q)
}

func lastN(s []float32, n int) []float32 {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
