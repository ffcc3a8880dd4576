// DMRDEMOD - A DQPSK symbol recovery front end for DMR land-mobile radio.
// Copyright (C) 2024 dmrdemod contributors
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

// Command dmrdemod connects to an rtl_tcp spectrum server, feeds the raw
// sample stream through the dsp package's DQPSK demodulator, and logs the
// recovered dibit stream. It exercises the dsp package's external
// interface the way a DMR frame assembler would, without implementing
// framing itself.
package main

import (
	"flag"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bemasher/rtltcp"

	"github.com/fufurobot/dmrdemod/dsp"
	"github.com/fufurobot/dmrdemod/internal/source"
)

const defaultCenterFreq = 851_000_000

var log = logrus.StandardLogger()

type receiver struct {
	rtltcp.SDR
	demod *dsp.Demodulator

	symbolRate int
	sampleRate float64
	centerFreq uint
	csvPath    string
}

func (r *receiver) registerFlags() {
	r.SDR.RegisterFlags()
	flag.IntVar(&r.symbolRate, "symbolrate", 4800, "DMR symbol rate in symbols/second")
	flag.Float64Var(&r.sampleRate, "samplerate", 50000, "channel sample rate in samples/second")
	flag.UintVar(&r.centerFreq, "centerfreq", defaultCenterFreq, "center frequency to receive on")
	flag.StringVar(&r.csvPath, "dibitcsv", "", "optional path to write a CSV trace of recovered dibits")
}

func (r *receiver) connect() error {
	if err := r.Connect(nil); err != nil {
		return errors.Wrap(err, "connecting to rtl_tcp server")
	}

	r.SetCenterFreq(uint32(r.centerFreq))
	r.SetSampleRate(uint32(r.sampleRate))
	r.SetGainMode(true)

	cfg := dsp.Config{
		SymbolRate: r.symbolRate,
		SampleRate: float32(r.sampleRate),
		BlockSize:  8,
	}

	demod, err := dsp.NewDemodulator(cfg)
	if err != nil {
		return errors.Wrap(err, "configuring demodulator")
	}
	r.demod = demod

	return nil
}

func (r *receiver) run(stop <-chan os.Signal) error {
	var trace *dibitTrace
	if r.csvPath != "" {
		t, err := newDibitTrace(r.csvPath)
		if err != nil {
			return errors.Wrap(err, "opening dibit trace file")
		}
		defer t.Close()
		trace = t
	}

	blockSamples := 16384
	raw := make([]byte, blockSamples*2)
	i := make([]float32, blockSamples)
	q := make([]float32, blockSamples)

	var sampleIndex int64

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		n, err := r.Read(raw)
		if err != nil {
			return errors.Wrap(err, "reading samples")
		}

		samples := n / 2
		source.Unpack(raw[:n], i[:samples], q[:samples])

		dibits, err := r.demod.Receive(dsp.ComplexSamples{
			I:         i[:samples],
			Q:         q[:samples],
			Timestamp: sampleIndex,
		})
		if err != nil {
			return errors.Wrap(err, "demodulating sample block")
		}
		sampleIndex += int64(samples)

		if len(dibits) > 0 {
			log.WithField("count", len(dibits)).Debug("recovered dibits")
			if trace != nil {
				if err := trace.Write(dibits); err != nil {
					return errors.Wrap(err, "writing dibit trace")
				}
			}
		}
	}
}

func main() {
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var rcvr receiver
	rcvr.registerFlags()
	flag.Parse()

	if err := rcvr.connect(); err != nil {
		log.WithError(err).Fatal("failed to start receiver")
	}
	defer rcvr.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	if err := rcvr.run(stop); err != nil {
		log.WithError(err).Fatal("receiver stopped")
	}
}
