package dsp

import "math"

// isNonFinite reports whether v is NaN or +/-Inf. The core substitutes 0
// for non-finite intermediate values rather than propagating them, per
// the numeric-degeneracy handling described in DESIGN.md.
func isNonFinite(v float32) bool {
	f := float64(v)
	return math.IsNaN(f) || math.IsInf(f, 0)
}
