package vm

import "github.com/graphx-vm/graphx/pkg/isa"

// Observer abstracts the debug and exit hooks spec.md §4.F and §9
// describe as raw callbacks in the reference implementation. GraphX
// replaces them with a small interface with a no-op default so tests
// can supply a recording implementation instead of a global callback,
// per spec.md §9's note on this exact pattern.
type Observer interface {
	// OnDebug fires after every executed instruction, including one
	// that halts or faults the pipeline (but not after a word that fails
	// to decode), mirroring the teacher's verbose-mode trace print in
	// cmd/interp.
	OnDebug(v *VM, ins isa.Instruction)

	// OnExit fires exactly once when the pipeline leaves RUNNING,
	// whether by HALT (err == nil) or by ERROR (err != nil).
	OnExit(v *VM, status Status, err error)
}

// NoopObserver implements Observer by doing nothing. It is the default
// Observer a VM constructed with New carries, matching the teacher's
// cmd/vm running with verbose/debug both unset.
type NoopObserver struct{}

func (NoopObserver) OnDebug(*VM, isa.Instruction) {}
func (NoopObserver) OnExit(*VM, Status, error)    {}

var _ Observer = NoopObserver{}
