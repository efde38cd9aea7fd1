package vm

import (
	"fmt"

	"github.com/graphx-vm/graphx/pkg/isa"
)

// Step runs one fetch-decode-execute cycle (spec.md §4.F):
//
//	word = program[PC]; PC += 1
//	if word decodes cleanly:
//	    status = execute(decoded)
//	    clock += 1
//	    if debug_hook set: invoke it
//	    if status != CONTINUE: transition and stop
//	else:
//	    status = ERROR
//
// Step returns nil after a graceful HALT (v.Status becomes Halted) and
// the causing error after a fault (v.Status becomes Errored); Run loops
// Step until v.Status leaves Running.
func (v *VM) Step() error {
	if v.Status != Running {
		return nil
	}
	if v.Regs.PC >= uint32(v.ProgramLen) {
		v.Status = Halted
		v.fireExit(nil)
		return nil
	}

	pc := v.Regs.PC
	word := v.Program[pc]
	v.Regs.PC++

	ins, err := isa.Decode(word)
	if err != nil {
		v.Status = Errored
		v.lastPC = pc
		v.fireExit(err)
		return err
	}

	v.Regs.ISA = uint8(ins.Op)
	v.Regs.A0 = ins.Dest
	v.Regs.A1 = ins.Src1
	v.Regs.A2 = ins.Src2OrImm
	v.Regs.FA = ins.FImm
	v.lastPC = pc
	v.lastIns = ins

	execErr := v.execute(ins)
	v.Regs.Clock++
	v.fireDebug(ins)

	switch {
	case execErr == nil:
		return nil
	case isHalt(execErr):
		v.Status = Halted
		v.fireExit(nil)
		return nil
	default:
		v.Status = Errored
		v.fireExit(execErr)
		return execErr
	}
}

// LastPC returns the PC of the most recently fetched instruction (the
// "PC - 1" an observer reports on error, since PC has already advanced
// past the failed fetch by the time execute runs, per spec.md §4.E).
func (v *VM) LastPC() uint32 {
	return v.lastPC
}

// LastInstruction returns the most recently decoded instruction, kept
// only for debug/exit reporting (spec.md §4.D).
func (v *VM) LastInstruction() isa.Instruction {
	return v.lastIns
}

func isHalt(err error) bool {
	return err == ErrHalt
}

func (v *VM) fireDebug(ins isa.Instruction) {
	if v.Observer != nil {
		v.Observer.OnDebug(v, ins)
	}
}

func (v *VM) fireExit(err error) {
	if v.Observer != nil {
		v.Observer.OnExit(v, v.Status, err)
	}
}

// DisassembleLast renders the last decoded instruction as a mnemonic
// line, used by observers reporting an error (spec.md §7).
func (v *VM) DisassembleLast() string {
	ins := v.lastIns
	return fmt.Sprintf("%s dest=%d src1=%d src2OrImm=%d imm=%v float=%v",
		ins.Op, ins.Dest, ins.Src1, ins.Src2OrImm, ins.Immediate, ins.Float)
}
