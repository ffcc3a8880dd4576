package dsp

import (
	"math"

	"github.com/sirupsen/logrus"
)

const (
	// maxSamplesPerSymbolDeviation bounds how far the tracking loop may
	// pull the observed symbol period from its nominal value, as a
	// fraction of the nominal period.
	maxSamplesPerSymbolDeviation = 5e-4

	// sampleCounterGain biases the sample countdown directly by the
	// instantaneous timing error each symbol.
	sampleCounterGain = 0.070

	// observedSamplesPerSymbolGain is the slower loop gain that nudges
	// the tracked symbol period itself.
	observedSamplesPerSymbolGain = 0.05 * sampleCounterGain * sampleCounterGain

	// noiseThresholdMultiplier scales the nominal per-sample phase
	// advance to a noise gate; empirically chosen and treated as tunable.
	noiseThresholdMultiplier = 1.2

	// syncThreshold is the correlation score above which the sync
	// detector's pattern match is trusted.
	syncThreshold float32 = 80

	interpolationDelayLineLength = interpolatorTapCount * 2

	twoPi = float32(2 * math.Pi)

	equalizerTaps = 12
	equalizerStep = 0.1

	dibitDelayLineLength = 24
)

// SymbolProcessor is the closed-loop heart of the DQPSK core. It consumes
// a stream of differentially-decoded phase samples and produces a
// 24-dibit-delayed stream of symbol decisions, tracking the sample-per-
// symbol period with a decision-directed timing loop, correcting soft
// symbols with an LMS equalizer, and realigning on a confirmed sync
// pattern.
type SymbolProcessor struct {
	interpolator Interpolator

	nominalSamplesPerSymbol  float32
	observedSamplesPerSymbol float32
	maxSamplesPerSymbol      float32
	minSamplesPerSymbol      float32

	samplePoint    float32
	previousPhase  float32
	noiseThreshold float32
	noisy          bool

	delayLine        [interpolationDelayLineLength]float32
	delayLinePointer int

	// syncShiftRegister mirrors the reference's mSyncEvaluate: a rolling
	// record of recent pre-equalization decisions, diagnostic-only and
	// never consulted by the sync decision itself.
	syncShiftRegister uint64

	symbols []Dibit

	equalizer      *Equalizer
	syncDetector   *SyncDetector
	dibitDelayLine *DibitDelayLine

	log *logrus.Entry
}

// SymbolProcessorOption configures a SymbolProcessor at construction.
type SymbolProcessorOption func(*SymbolProcessor)

// WithEqualizerOptions forwards options to the internal LMS equalizer.
func WithEqualizerOptions(opts ...EqualizerOption) SymbolProcessorOption {
	return func(p *SymbolProcessor) {
		p.equalizer = NewEqualizer(equalizerTaps, equalizerStep, opts...)
	}
}

// WithLogger attaches a structured logger used to report sync-pattern
// detections. Defaults to an entry on logrus.StandardLogger().
func WithLogger(log *logrus.Entry) SymbolProcessorOption {
	return func(p *SymbolProcessor) { p.log = log }
}

// NewSymbolProcessor constructs a symbol processor for the given nominal
// samples-per-symbol rate (sample_rate / symbol_rate).
func NewSymbolProcessor(samplesPerSymbol float32, opts ...SymbolProcessorOption) *SymbolProcessor {
	p := &SymbolProcessor{
		interpolator:   NewInterpolator(),
		equalizer:      NewEqualizer(equalizerTaps, equalizerStep),
		syncDetector:   NewSyncDetector(),
		dibitDelayLine: NewDibitDelayLine(dibitDelayLineLength),
		log:            logrus.NewEntry(logrus.StandardLogger()),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.SetSamplesPerSymbol(samplesPerSymbol)
	return p
}

// ObservedSamplesPerSymbol returns the tracking loop's current estimate
// of the symbol period, for feedback into upstream differential
// demodulation.
func (p *SymbolProcessor) ObservedSamplesPerSymbol() float32 {
	return p.observedSamplesPerSymbol
}

// SymbolsAndClear returns the symbols accumulated since the last call and
// clears the internal buffer.
func (p *SymbolProcessor) SymbolsAndClear() []Dibit {
	symbols := make([]Dibit, len(p.symbols))
	copy(symbols, p.symbols)
	p.symbols = p.symbols[:0]
	return symbols
}

// SetSamplesPerSymbol sets the nominal symbol period and reinitializes
// the tracking loop's bounds and noise gate around it. Also used at
// construction.
func (p *SymbolProcessor) SetSamplesPerSymbol(samplesPerSymbol float32) {
	p.nominalSamplesPerSymbol = samplesPerSymbol
	p.observedSamplesPerSymbol = samplesPerSymbol
	p.samplePoint = samplesPerSymbol
	p.maxSamplesPerSymbol = samplesPerSymbol * (1.0 + maxSamplesPerSymbolDeviation)
	p.minSamplesPerSymbol = samplesPerSymbol * (1.0 - maxSamplesPerSymbolDeviation)
	p.noiseThreshold = twoPi / samplesPerSymbol * noiseThresholdMultiplier
}

// Reset re-initializes all loop state to boot-time defaults except the
// nominal samples-per-symbol rate, and resets the equalizer, sync
// detector and dibit delay line.
func (p *SymbolProcessor) Reset() {
	p.SetSamplesPerSymbol(p.nominalSamplesPerSymbol)
	p.previousPhase = 0
	p.noisy = false
	p.delayLine = [interpolationDelayLineLength]float32{}
	p.delayLinePointer = 0
	p.syncShiftRegister = 0
	p.symbols = p.symbols[:0]
	p.equalizer.Reset()
	p.syncDetector.Reset()
	p.dibitDelayLine.Reset()
}

// Process consumes a block of differentially-decoded phase samples,
// tracking symbol timing and emitting decisions into the internal
// symbol buffer retrieved by SymbolsAndClear.
func (p *SymbolProcessor) Process(samples []float32) {
	previousPhase := p.previousPhase
	samplePoint := p.samplePoint
	delayLinePointer := p.delayLinePointer
	noiseThreshold := p.noiseThreshold
	noisy := p.noisy

	for _, sample := range samples {
		samplePoint--
		currentPhase := sample

		// Unwrap a discontinuity crossing the +/-pi branch cut.
		if abs32(currentPhase-previousPhase) > math.Pi {
			if currentPhase > 0 && currentPhase < math.Pi && previousPhase < 0 {
				currentPhase -= twoPi
			} else if currentPhase < 0 && currentPhase > -math.Pi && previousPhase > 0 {
				currentPhase += twoPi
			}
		}

		if abs32(currentPhase-previousPhase) > noiseThreshold {
			noisy = true
		}

		p.delayLine[delayLinePointer] = currentPhase
		p.delayLine[delayLinePointer+interpolatorTapCount] = currentPhase
		delayLinePointer++
		delayLinePointer %= interpolatorTapCount

		if samplePoint < 1.0 {
			p.decideSymbol(samplePoint, delayLinePointer, noisy)
			noisy = false
			samplePoint = p.samplePoint
		}

		previousPhase = currentPhase
	}

	p.previousPhase = previousPhase
	p.samplePoint = samplePoint
	p.delayLinePointer = delayLinePointer
	p.noisy = noisy
}

// decideSymbol runs one iteration of DECIDE -> UPDATE_LOOP -> CORRELATE ->
// EQUALIZE -> EMIT for the symbol instant that just arrived, and
// re-arms p.samplePoint for the next one.
func (p *SymbolProcessor) decideSymbol(samplePoint float32, delayLinePointer int, noisy bool) {
	interpolated := p.interpolator.Filter(p.delayLine[:], delayLinePointer, samplePoint)
	// The delay line holds unwrapped phases; fold the interpolated value
	// back into [-pi, pi] before the hard decision and sync correlation.
	if interpolated > math.Pi {
		interpolated -= twoPi
	} else if interpolated < -math.Pi {
		interpolated += twoPi
	}
	symbol := ToDibit(interpolated)

	var timingError float32
	if !noisy {
		timingError = TimingError(symbol, p.delayLine[delayLinePointer+3], interpolated, p.delayLine[delayLinePointer+4])
	}

	p.observedSamplesPerSymbol += timingError * observedSamplesPerSymbolGain
	if isNonFinite(p.observedSamplesPerSymbol) {
		p.observedSamplesPerSymbol = p.nominalSamplesPerSymbol
	}
	if p.observedSamplesPerSymbol > p.maxSamplesPerSymbol {
		p.observedSamplesPerSymbol = p.maxSamplesPerSymbol
	}
	if p.observedSamplesPerSymbol < p.minSamplesPerSymbol {
		p.observedSamplesPerSymbol = p.minSamplesPerSymbol
	}

	p.samplePoint = samplePoint + p.observedSamplesPerSymbol + timingError*sampleCounterGain

	// Sync correlation and the diagnostic shift register both read the
	// pre-equalization sample and decision, matching the reference: the
	// correlator must keep working before the equalizer has converged.
	syncScore := p.syncDetector.Process(interpolated)
	p.syncShiftRegister = (p.syncShiftRegister<<2 | uint64(symbol.Value())) & 0xFFFFFFFFFFFF

	if noisy {
		p.equalizer.ProcessNoUpdate(symbol, interpolated)
	} else {
		equalizedPhase := p.equalizer.Process(symbol, interpolated)
		symbol = ToDibit(equalizedPhase)
	}

	if syncScore > syncThreshold {
		p.dibitDelayLine.Update(BaseStationDataDibits[:])
		p.symbols = append(p.symbols, BaseStationDataDibits[0])
		p.equalizer.SyncDetected(BaseStationDataDibits[:])

		if p.log != nil {
			p.log.WithField("score", syncScore).Debug("dmr base-station data sync detected")
		}
	} else {
		p.symbols = append(p.symbols, p.dibitDelayLine.Insert(symbol))
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
