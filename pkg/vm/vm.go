// Package vm implements the GraphX executor and pipeline (spec.md §2
// components E and F): opcode dispatch over the register file,
// compressed-sparse-row graph, and frontier pair, driven by a
// fetch-decode-execute loop with clock counting, reset, and pluggable
// debug/exit observers.
//
// Grounded on the teacher's pkg/vm.VM: a single struct holding all
// machine state, a Fetch method that bounds-checks PC against program
// memory, and an Execute method dispatching on a decoded opcode.
package vm

import (
	"fmt"

	"github.com/graphx-vm/graphx/pkg/csrgraph"
	"github.com/graphx-vm/graphx/pkg/frontier"
	"github.com/graphx-vm/graphx/pkg/isa"
	"github.com/graphx-vm/graphx/pkg/register"
)

// ProgramCapacity is the fixed program memory size in 64-bit words
// (spec.md §3).
const ProgramCapacity = 8192

// Status is the pipeline's state machine (spec.md §4.F).
type Status int

const (
	Running Status = iota
	Halted
	Errored
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Halted:
		return "HALTED"
	case Errored:
		return "ERRORED"
	default:
		return "UNKNOWN"
	}
}

// VM is a single GraphX virtual machine instance. Per spec.md §5, a VM
// is not safe for concurrent use by multiple goroutines; separate VM
// instances (each owning their own graph, frontiers, memory, and
// registers) may run in parallel in separate goroutines.
type VM struct {
	Regs      register.Bank
	Graph     *csrgraph.Graph
	Frontiers frontier.Pair

	Program    [ProgramCapacity]uint64
	ProgramLen int

	Status   Status
	Observer Observer

	lastPC  uint32
	lastIns isa.Instruction
}

// New constructs a VM bound to graph, with an empty program and both
// frontiers initialized to the QUEUE kind. graph may be nil for tests
// that only exercise non-graph opcodes.
func New(graph *csrgraph.Graph) *VM {
	v := &VM{Graph: graph, Observer: NoopObserver{}}
	v.Frontiers.Init(frontier.Queue)
	return v
}

// LoadProgram copies words into program memory, replacing whatever was
// there. It rejects programs larger than ProgramCapacity, matching the
// loader's "code_len > 8192" rejection rule (spec.md §6), so that a
// directly-constructed VM enforces the same invariant a file-loaded one
// would.
func (v *VM) LoadProgram(words []uint64) error {
	if len(words) > ProgramCapacity {
		return fmt.Errorf("%w: program has %d words, capacity is %d",
			ErrOutOfRange, len(words), ProgramCapacity)
	}
	v.Program = [ProgramCapacity]uint64{}
	copy(v.Program[:], words)
	v.ProgramLen = len(words)
	v.Status = Running
	return nil
}

// Reset clears registers, FLAGS, PC, iterators, and data memory, and
// reinitializes both frontiers to empty of their current kind. Program
// memory and the graph are left intact (spec.md §3's lifecycle, §8's
// reset-idempotence property).
func (v *VM) Reset() {
	kind := v.Frontiers.Current().Kind()
	v.Regs.Reset()
	v.Frontiers.Init(kind)
	v.Status = Running
}

// Run drives Step until the pipeline leaves the RUNNING state, then
// returns the terminating error: nil on a graceful HALT, non-nil on
// ERROR. The Observer's exit hook has already fired by the time Run
// returns.
func (v *VM) Run() error {
	for v.Status == Running {
		if err := v.Step(); err != nil {
			return err
		}
	}
	return nil
}
