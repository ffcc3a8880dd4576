package dsp

import (
	"math"

	"golang.org/x/xerrors"
)

// Config holds the immutable-per-session configuration of a Demodulator.
type Config struct {
	// SymbolRate is the channel's symbol rate, in symbols per second.
	// DMR is 4800.
	SymbolRate int
	// SampleRate is the incoming complex-sample stream's rate, in
	// samples per second.
	SampleRate float32
	// BlockSize is the fixed-width block size differential demodulation
	// is chunked into before refreshing the tracking loop's fractional
	// offset; the "W" of the source specification's SIMD lane count,
	// defaulted to a scalar-fallback-friendly value when zero.
	BlockSize int
}

// DefaultConfig returns the DMR physical layer's nominal configuration:
// 4800 symbols/second at a 50kHz channel sample rate.
func DefaultConfig() Config {
	return Config{
		SymbolRate: 4800,
		SampleRate: 50000,
		BlockSize:  8,
	}
}

func (c Config) validate() error {
	if c.SymbolRate <= 0 {
		return xerrors.Errorf("dsp: symbol rate must be positive, got %d", c.SymbolRate)
	}
	if math.IsNaN(float64(c.SampleRate)) || math.IsInf(float64(c.SampleRate), 0) {
		return xerrors.Errorf("dsp: sample rate must be finite, got %v", c.SampleRate)
	}
	if c.SampleRate <= float32(c.SymbolRate)*2 {
		return xerrors.Errorf("dsp: sample rate %v must exceed twice the symbol rate %d", c.SampleRate, c.SymbolRate)
	}
	return nil
}
