// Package trace implements the debug and exit observers spec.md §7
// describes: on HALT, report the instruction count and dump data
// memory; on ERROR, report the failing PC, mnemonic, and decoded
// arguments.
//
// Grounded on rcornwell-S370's util/logger wrapper around log/slog:
// GraphX doesn't need a custom slog.Handler, so Recorder just owns a
// *slog.Logger in the same "wrap the stdlib logging type, don't
// replace it" spirit, rather than hand-rolling a trace format.
package trace

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/graphx-vm/graphx/pkg/isa"
	"github.com/graphx-vm/graphx/pkg/vm"
)

// GridSize is the data memory dump's row and column count. spec.md §7
// notes the reference implementation renders its 65536-word memory as a
// 256x256 float grid, reflecting its primary use for PageRank-like
// algorithms; 256*256 equals register.MemSize exactly.
const GridSize = 256

// Recorder is a vm.Observer that logs a trace of execution through a
// *slog.Logger and, on a clean halt, dumps data memory as a float grid
// to Dump.
type Recorder struct {
	Log   *slog.Logger
	Dump  io.Writer // memory dump destination on HALT; nil disables the dump
	Debug bool      // when true, OnDebug logs every executed instruction
}

// NewRecorder builds a Recorder. dump may be nil to skip the memory
// dump entirely (e.g. when only ERROR reporting matters to the caller).
func NewRecorder(log *slog.Logger, dump io.Writer, debug bool) *Recorder {
	return &Recorder{Log: log, Dump: dump, Debug: debug}
}

// OnDebug implements vm.Observer. It logs nothing unless Debug is set,
// matching the teacher's -v/verbose flag gating its per-step trace.
func (r *Recorder) OnDebug(v *vm.VM, ins isa.Instruction) {
	if !r.Debug {
		return
	}
	r.Log.Debug("step",
		"pc", v.LastPC(),
		"op", ins.Op,
		"clock", v.Regs.Clock,
	)
}

// OnExit implements vm.Observer, rendering the HALT/ERROR reports
// spec.md §7 mandates.
func (r *Recorder) OnExit(v *vm.VM, status vm.Status, err error) {
	switch status {
	case vm.Halted:
		r.Log.Info("halt", "instructions", v.Regs.Clock)
		r.dumpMemory(v)
	case vm.Errored:
		r.Log.Error("error",
			"pc", v.LastPC(),
			"ins", v.DisassembleLast(),
			"err", err,
		)
	}
}

// dumpMemory writes data memory as a GridSize x GridSize grid of
// float32 values (each memory cell reinterpreted as IEEE-754 bits,
// matching VLD/VST's float reinterpretation convention).
func (r *Recorder) dumpMemory(v *vm.VM) {
	if r.Dump == nil {
		return
	}
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			addr := uint32(row*GridSize + col)
			raw, err := v.Regs.LoadMem(addr)
			if err != nil {
				return
			}
			fmt.Fprintf(r.Dump, "%g ", math.Float32frombits(uint32(raw)))
		}
		fmt.Fprintln(r.Dump)
	}
}

var _ vm.Observer = (*Recorder)(nil)
