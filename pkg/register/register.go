// Package register implements the GraphX register file and data memory
// described in spec.md §4.C: three register banks (integer, float,
// vector), the scalar control state (FLAGS, PC, ISA, A0-A2, FA, clock),
// the graph-iteration cursors (niter, eiter), and the 65536-word data
// memory.
//
// spec.md §9 flags the teacher corpus's pattern of an anonymous union
// of named fields overlaid on an indexed array as something to avoid.
// Bank is a single indexed array plus a constant name table instead:
// tests never depend on in-memory layout coincidence.
package register

import "fmt"

// Register bank sizes (spec.md §3).
const (
	NumInt    = 24
	NumFloat  = 18
	NumVector = 16
	VectorLen = 4
	MemSize   = 65536
)

// Symbolic integer register aliases. Rtmp1..Rtmp16 plus the four named
// scratch registers and Rzero/Rcore account for 22 of the 24 integer
// registers; the remaining two (22, 23) have no symbolic alias and are
// addressed only by raw index.
const (
	Rnode uint8 = iota
	Rnbr
	Rval
	Racc
	Rtmp1
	Rtmp2
	Rtmp3
	Rtmp4
	Rtmp5
	Rtmp6
	Rtmp7
	Rtmp8
	Rtmp9
	Rtmp10
	Rtmp11
	Rtmp12
	Rtmp13
	Rtmp14
	Rtmp15
	Rtmp16
	Rzero
	Rcore
)

// Symbolic float register aliases.
const (
	Facc uint8 = iota
	Ftmp1
	Ftmp2
	Ftmp3
	Ftmp4
	Ftmp5
	Ftmp6
	Ftmp7
	Ftmp8
	Ftmp9
	Ftmp10
	Ftmp11
	Ftmp12
	Ftmp13
	Ftmp14
	Ftmp15
	Ftmp16
	Fzero
)

// FLAGS bits (spec.md §3): mutually exclusive after CMP/CMPF.
const (
	FlagZero     = 1 << 0
	FlagNegative = 1 << 1
	FlagPositive = 1 << 2
)

// Bank is the GraphX register file plus data memory. The zero value is
// ready to use: every bank starts zeroed, matching Reset's contract.
type Bank struct {
	Int   [NumInt]int32
	Float [NumFloat]float32
	VecI  [NumVector][VectorLen]int32
	VecF  [NumVector][VectorLen]float32

	FLAGS uint8
	PC    uint32
	ISA   uint8
	A0    uint8
	A1    uint8
	A2    uint32
	FA    float32
	Clock uint64

	Niter [4]uint32
	Eiter uint32

	Mem [MemSize]int32
}

// ReadInt returns R[i], reading Rzero as 0 regardless of what was last
// written there (spec.md §3: "enforce on read, not on write").
func (b *Bank) ReadInt(i uint8) int32 {
	if i == Rzero {
		return 0
	}
	return b.Int[i]
}

// WriteInt writes v into R[i]. Writes to Rzero are accepted but never
// observable on a subsequent ReadInt.
func (b *Bank) WriteInt(i uint8, v int32) {
	b.Int[i] = v
}

// ReadFloat returns F[i], reading Fzero as 0 the same way ReadInt does
// for Rzero.
func (b *Bank) ReadFloat(i uint8) float32 {
	if i == Fzero {
		return 0
	}
	return b.Float[i]
}

// WriteFloat writes v into F[i].
func (b *Bank) WriteFloat(i uint8, v float32) {
	b.Float[i] = v
}

// ReadVecI returns a copy of the 4 lanes of integer vector register i.
func (b *Bank) ReadVecI(i uint8) [VectorLen]int32 {
	return b.VecI[i]
}

// WriteVecI overwrites the 4 lanes of integer vector register i.
func (b *Bank) WriteVecI(i uint8, v [VectorLen]int32) {
	b.VecI[i] = v
}

// ReadVecF returns a copy of the 4 lanes of float vector register i.
func (b *Bank) ReadVecF(i uint8) [VectorLen]float32 {
	return b.VecF[i]
}

// WriteVecF overwrites the 4 lanes of float vector register i.
func (b *Bank) WriteVecF(i uint8, v [VectorLen]float32) {
	b.VecF[i] = v
}

// LoadMem reads data memory cell addr, bounds-checked against MemSize
// (spec.md §4.C).
func (b *Bank) LoadMem(addr uint32) (int32, error) {
	if addr >= MemSize {
		return 0, fmt.Errorf("%w: address %d", ErrOutOfRange, addr)
	}
	return b.Mem[addr], nil
}

// StoreMem writes v into data memory cell addr, bounds-checked against
// MemSize.
func (b *Bank) StoreMem(addr uint32, v int32) error {
	if addr >= MemSize {
		return fmt.Errorf("%w: address %d", ErrOutOfRange, addr)
	}
	b.Mem[addr] = v
	return nil
}

// SetFlagsFromCompare sets exactly one of the three FLAGS bits from the
// sign of diff, per spec.md §4.C's CMP/CMPF rule.
func (b *Bank) SetFlagsFromCompare(diff float64) {
	b.FLAGS = 0
	switch {
	case diff == 0:
		b.FLAGS = FlagZero
	case diff < 0:
		b.FLAGS = FlagNegative
	default:
		b.FLAGS = FlagPositive
	}
}

// SetZeroFlag sets or clears FLAGS.zero without touching the other two
// bits, used by NNEXT/ENEXT/HASE/FEMPTY per spec.md §4.C.
func (b *Bank) SetZeroFlag(zero bool) {
	if zero {
		b.FLAGS |= FlagZero
	} else {
		b.FLAGS &^= FlagZero
	}
}

// Reset clears every register, flag, iterator, and data memory cell to
// zero, per spec.md §8's reset-idempotence property. Program memory and
// the graph are owned elsewhere and are untouched by this call.
func (b *Bank) Reset() {
	*b = Bank{}
}
