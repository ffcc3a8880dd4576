package main

import (
	"fmt"
	"os"

	"github.com/fufurobot/dmrdemod/csv"
	"github.com/fufurobot/dmrdemod/dsp"
)

// dibitRecord adapts one recovered Dibit into a csv.Recorder.
type dibitRecord struct {
	index int
	dibit dsp.Dibit
}

func (r dibitRecord) Record() []string {
	return []string{
		fmt.Sprintf("%d", r.index),
		fmt.Sprintf("%d", r.dibit.Value()),
		fmt.Sprintf("%.5f", r.dibit.IdealPhase()),
	}
}

// dibitTrace writes a running CSV trace of every dibit the demodulator
// emits, for offline inspection alongside a downstream DMR frame
// assembler's output.
type dibitTrace struct {
	file  *os.File
	enc   *csv.Encoder
	count int
}

func newDibitTrace(path string) (*dibitTrace, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &dibitTrace{file: file, enc: csv.NewEncoder(file)}, nil
}

func (t *dibitTrace) Write(dibits []dsp.Dibit) error {
	for _, d := range dibits {
		if err := t.enc.Encode(dibitRecord{index: t.count, dibit: d}); err != nil {
			return err
		}
		t.count++
	}
	return nil
}

func (t *dibitTrace) Close() error {
	return t.file.Close()
}
