// RTLAMR - An rtl-sdr receiver for smart meters operating in the 900MHz ISM band.
// Copyright (C) 2015 Douglas Hall
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package dsp implements the DQPSK synchronous demodulation and symbol
// recovery pipeline used by the DMR physical layer: fractional-delay
// interpolation, differential demodulation, decision-directed timing
// recovery, LMS channel equalization and sync-pattern correlation.
package dsp

import "math"

// Dibit is a two-bit DQPSK symbol decision. The four values correspond to
// the four constellation points of the DMR physical layer.
type Dibit uint8

const (
	D00Plus1  Dibit = 0 // 00, ideal phase +pi/4
	D01Plus3  Dibit = 1 // 01, ideal phase +3pi/4
	D10Minus1 Dibit = 2 // 10, ideal phase -pi/4
	D11Minus3 Dibit = 3 // 11, ideal phase -3pi/4
)

var quarterPi = float32(math.Pi / 4.0)

// idealPhase holds the constellation phase angle, in radians, for each of
// the four Dibit values, indexed by Dibit value.
var idealPhase = [4]float32{
	D00Plus1:  quarterPi,
	D01Plus3:  3 * quarterPi,
	D10Minus1: -quarterPi,
	D11Minus3: -3 * quarterPi,
}

var idealIQ = [4][2]float32{
	D00Plus1:  {float32(math.Cos(math.Pi / 4.0)), float32(math.Sin(math.Pi / 4.0))},
	D01Plus3:  {float32(math.Cos(3 * math.Pi / 4.0)), float32(math.Sin(3 * math.Pi / 4.0))},
	D10Minus1: {float32(math.Cos(-math.Pi / 4.0)), float32(math.Sin(-math.Pi / 4.0))},
	D11Minus3: {float32(math.Cos(-3 * math.Pi / 4.0)), float32(math.Sin(-3 * math.Pi / 4.0))},
}

// Value returns the two-bit integer value of the dibit.
func (d Dibit) Value() uint8 { return uint8(d) }

// IdealPhase returns the ideal constellation phase angle, in radians.
func (d Dibit) IdealPhase() float32 { return idealPhase[d&0x3] }

// IdealI returns the ideal I-rail component of the constellation point.
func (d Dibit) IdealI() float32 { return idealIQ[d&0x3][0] }

// IdealQ returns the ideal Q-rail component of the constellation point.
func (d Dibit) IdealQ() float32 { return idealIQ[d&0x3][1] }

func (d Dibit) String() string {
	switch d & 0x3 {
	case D00Plus1:
		return "00[+1]"
	case D01Plus3:
		return "01[+3]"
	case D10Minus1:
		return "10[-1]"
	default:
		return "11[-3]"
	}
}

// ToDibit maps a differential phase sample, in radians, to a hard symbol
// decision per the DQPSK quadrant boundaries used throughout the core:
// (pi/2, pi] -> D01Plus3, (0, pi/2] -> D00Plus1, [-pi/2, 0] -> D10Minus1,
// [-pi, -pi/2) -> D11Minus3.
func ToDibit(phase float32) Dibit {
	decisionBoundary := float32(math.Pi / 2.0)

	if phase > 0 {
		if phase > decisionBoundary {
			return D01Plus3
		}
		return D00Plus1
	}

	if phase < -decisionBoundary {
		return D11Minus3
	}
	return D10Minus1
}
