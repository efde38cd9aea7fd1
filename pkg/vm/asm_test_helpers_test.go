package vm

import (
	"testing"

	"github.com/graphx-vm/graphx/pkg/isa"
)

// line is a tiny label-resolving test fixture, not a general assembler
// (spec.md §1 keeps the textual assembler out of scope): it lets the
// end-to-end scenario tests below read close to spec.md §8's pseudo-
// assembly instead of hand-computing jump offsets.
type line struct {
	label  string
	ins    isa.Instruction
	jumpTo string // if set, ins.Immediate is forced true and Src2OrImm is resolved to the label's PC
}

func assemble(t *testing.T, lines []line) []uint64 {
	t.Helper()
	labels := make(map[string]uint32, len(lines))
	for i, l := range lines {
		if l.label != "" {
			labels[l.label] = uint32(i)
		}
	}
	words := make([]uint64, len(lines))
	for i, l := range lines {
		ins := l.ins
		if l.jumpTo != "" {
			target, ok := labels[l.jumpTo]
			if !ok {
				t.Fatalf("line %d: unknown label %q", i, l.jumpTo)
			}
			ins.Immediate = true
			ins.Src2OrImm = target
		}
		words[i] = isa.Encode(ins)
	}
	return words
}
