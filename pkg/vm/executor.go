package vm

import (
	"fmt"
	"math"

	"github.com/graphx-vm/graphx/pkg/isa"
	"github.com/graphx-vm/graphx/pkg/register"
)

// execute dispatches ins against the VM's register file, graph, and
// frontier pair (spec.md §4.E). It returns nil to continue, ErrHalt to
// stop gracefully, or any other error to fault the pipeline. The switch
// is written to be exhaustive over isa.Opcode: TestAllOpcodesHandled
// fails if a new opcode is added to pkg/isa without a case here.
func (v *VM) execute(ins isa.Instruction) error {
	switch ins.Op {

	// --- Control flow ---------------------------------------------

	case isa.HALT:
		return ErrHalt

	case isa.JMP:
		return v.branch(ins.Src2OrImm, true)

	case isa.BZ:
		return v.branch(ins.Src2OrImm, v.Regs.FLAGS&register.FlagZero != 0)

	case isa.BNZ:
		return v.branch(ins.Src2OrImm, v.Regs.FLAGS&register.FlagZero == 0)

	case isa.BLT:
		return v.branch(ins.Src2OrImm, v.Regs.FLAGS&register.FlagNegative != 0)

	case isa.BGE:
		return v.branch(ins.Src2OrImm, v.Regs.FLAGS&(register.FlagPositive|register.FlagZero) != 0)

	// --- Graph iteration --------------------------------------------

	case isa.NITER:
		i, err := iterIndex(ins.Src2OrImm)
		if err != nil {
			return err
		}
		v.Regs.Niter[i] = 0
		return nil

	case isa.NNEXT:
		return v.execNNext(ins)

	case isa.EITER:
		v.Regs.Eiter = 0
		v.Regs.WriteInt(register.Rnode, 0)
		return nil

	case isa.ENEXT:
		return v.execENext()

	case isa.HASE:
		u := v.Regs.ReadInt(register.Rnode)
		nb := v.Regs.ReadInt(register.Rnbr)
		if v.Graph != nil && (u < 0 || int(u) >= v.Graph.N()) {
			return fmt.Errorf("%w: HASE node %d", ErrOutOfRange, u)
		}
		exists := v.Graph != nil && v.Graph.HasEdge(u, nb)
		v.Regs.SetZeroFlag(!exists)
		return nil

	case isa.DEG:
		node := v.Regs.ReadInt(ins.Dest)
		if v.Graph == nil || node < 0 || int(node) >= v.Graph.N() {
			return fmt.Errorf("%w: DEG node %d", ErrOutOfRange, node)
		}
		v.Regs.WriteInt(register.Rval, v.Graph.Degree(node))
		return nil

	// --- Scalar arithmetic / data movement ---------------------------

	case isa.ADD:
		return v.scalarArith(ins, func(a, b int32) int32 { return a + b }, func(a, b float32) float32 { return a + b })
	case isa.SUB:
		return v.scalarArith(ins, func(a, b int32) int32 { return a - b }, func(a, b float32) float32 { return a - b })
	case isa.MUL:
		return v.scalarArith(ins, func(a, b int32) int32 { return a * b }, func(a, b float32) float32 { return a * b })
	case isa.DIV:
		return v.execDiv(ins)

	case isa.CMP:
		return v.execCmp(ins)

	case isa.MOV:
		return v.execMov(ins)

	case isa.MOVC:
		return v.execMovc(ins)

	// --- Memory -------------------------------------------------------

	case isa.LD:
		return v.execLoad(ins)

	case isa.ST:
		return v.execStore(ins)

	// --- Frontier control ----------------------------------------------

	case isa.FPUSH:
		val := v.Regs.ReadInt(ins.Dest)
		if err := v.Frontiers.Next().Push(val); err != nil {
			return err
		}
		return nil

	case isa.FPOP:
		val, err := v.Frontiers.Current().Pop()
		if err != nil {
			return err
		}
		v.Regs.WriteInt(ins.Dest, val)
		return nil

	case isa.FEMPTY:
		v.Regs.SetZeroFlag(v.Frontiers.Current().Empty())
		return nil

	case isa.FSWAP:
		v.Frontiers.Swap()
		return nil

	case isa.FFILL:
		if v.Graph == nil {
			return nil
		}
		return v.Frontiers.Current().Fill(int32(v.Graph.N()))

	// --- Vector lanes ---------------------------------------------------

	case isa.VADD:
		return v.vectorArith(ins, func(a, b int32) int32 { return a + b }, func(a, b float32) float32 { return a + b })
	case isa.VSUB:
		return v.vectorArith(ins, func(a, b int32) int32 { return a - b }, func(a, b float32) float32 { return a - b })
	case isa.VMUL:
		return v.vectorArith(ins, func(a, b int32) int32 { return a * b }, func(a, b float32) float32 { return a * b })
	case isa.VDIV:
		return v.vectorDiv(ins)

	case isa.VLD:
		return v.execVLoad(ins)

	case isa.VST:
		return v.execVStore(ins)

	case isa.VSET:
		return v.execVSet(ins)

	case isa.VSUM:
		return v.execVSum(ins)

	// --- Multicore (no-ops; see spec.md §4.E and §5) ---------------------

	case isa.PARALLEL, isa.BARRIER, isa.LOCK, isa.UNLOCK:
		return nil

	default:
		return fmt.Errorf("%w: %v", ErrUnhandledOpcode, ins.Op)
	}
}

// branch jumps to target when taken, bounds-checking target against
// the loaded program length (spec.md §4.E: "Error if A2 >= program_size").
func (v *VM) branch(target uint32, taken bool) error {
	if !taken {
		return nil
	}
	if target >= uint32(v.ProgramLen) {
		return fmt.Errorf("%w: branch target %d", ErrOutOfRange, target)
	}
	v.Regs.PC = target
	return nil
}

// iterIndex validates a niter index is in 0..3 (spec.md §4.E, §8 point 7).
func iterIndex(raw uint32) (int, error) {
	if raw > 3 {
		return 0, fmt.Errorf("%w: iterator index %d", ErrOutOfRange, raw)
	}
	return int(raw), nil
}

func (v *VM) execNNext(ins isa.Instruction) error {
	i, err := iterIndex(ins.Src2OrImm)
	if err != nil {
		return err
	}
	if v.Graph == nil {
		v.Regs.SetZeroFlag(true)
		return nil
	}
	node := v.Regs.ReadInt(register.Rnode)
	nb, w, ok := v.Graph.NeighborAt(node, int32(v.Regs.Niter[i]))
	if !ok {
		v.Regs.SetZeroFlag(true)
		return nil
	}
	v.Regs.WriteInt(register.Rnbr, nb)
	v.Regs.WriteInt(register.Rval, w)
	v.Regs.Niter[i]++
	v.Regs.SetZeroFlag(false)
	return nil
}

// execENext implements the global edge walk, looping past exhausted
// rows until it finds a populated one or runs off the graph, per
// spec.md §4.E and open question 2.
func (v *VM) execENext() error {
	if v.Graph == nil {
		v.Regs.SetZeroFlag(true)
		return nil
	}
	n := int32(v.Graph.N())
	for {
		node := v.Regs.ReadInt(register.Rnode)
		if node >= n {
			v.Regs.SetZeroFlag(true)
			return nil
		}
		nb, w, ok := v.Graph.NeighborAt(node, int32(v.Regs.Eiter))
		if ok {
			v.Regs.WriteInt(register.Rnbr, nb)
			v.Regs.WriteInt(register.Rval, w)
			v.Regs.Eiter++
			v.Regs.SetZeroFlag(false)
			return nil
		}
		v.Regs.WriteInt(register.Rnode, node+1)
		v.Regs.Eiter = 0
	}
}

// scalarSrc2Int resolves the integer right-hand operand of a two-source
// scalar instruction: the immediate when I is set, otherwise the
// register named by the low bits of Src2OrImm (spec.md §3).
func (v *VM) scalarSrc2Int(ins isa.Instruction) int32 {
	if ins.Immediate {
		return int32(ins.Src2OrImm)
	}
	return v.Regs.ReadInt(uint8(ins.Src2OrImm))
}

func (v *VM) scalarSrc2Float(ins isa.Instruction) float32 {
	if ins.Immediate {
		return ins.FImm
	}
	return v.Regs.ReadFloat(uint8(ins.Src2OrImm))
}

func (v *VM) scalarArith(ins isa.Instruction, iop func(a, b int32) int32, fop func(a, b float32) float32) error {
	if ins.Float {
		a := v.Regs.ReadFloat(ins.Src1)
		b := v.scalarSrc2Float(ins)
		v.Regs.WriteFloat(ins.Dest, fop(a, b))
		return nil
	}
	a := v.Regs.ReadInt(ins.Src1)
	b := v.scalarSrc2Int(ins)
	v.Regs.WriteInt(ins.Dest, iop(a, b))
	return nil
}

func (v *VM) execDiv(ins isa.Instruction) error {
	if ins.Float {
		a := v.Regs.ReadFloat(ins.Src1)
		b := v.scalarSrc2Float(ins)
		v.Regs.WriteFloat(ins.Dest, a/b) // host ±Inf/NaN semantics, per spec.md §4.E
		return nil
	}
	a := v.Regs.ReadInt(ins.Src1)
	b := v.scalarSrc2Int(ins)
	if b == 0 {
		return ErrDivideByZero
	}
	v.Regs.WriteInt(ins.Dest, a/b)
	return nil
}

func (v *VM) execCmp(ins isa.Instruction) error {
	if ins.Float {
		a := v.Regs.ReadFloat(ins.Src1)
		b := v.scalarSrc2Float(ins)
		v.Regs.SetFlagsFromCompare(float64(a) - float64(b))
		return nil
	}
	a := v.Regs.ReadInt(ins.Src1)
	b := v.scalarSrc2Int(ins)
	v.Regs.SetFlagsFromCompare(float64(a) - float64(b))
	return nil
}

func (v *VM) execMov(ins isa.Instruction) error {
	if ins.Float {
		v.Regs.WriteFloat(ins.Dest, v.scalarSrc2FloatFromSrc1(ins))
		return nil
	}
	v.Regs.WriteInt(ins.Dest, v.scalarSrc2IntFromSrc1(ins))
	return nil
}

// scalarSrc2IntFromSrc1 resolves MOV's single source operand: the
// immediate when I is set, otherwise R[src1] (MOV has no second
// register operand, unlike ADD/SUB/MUL/DIV).
func (v *VM) scalarSrc2IntFromSrc1(ins isa.Instruction) int32 {
	if ins.Immediate {
		return int32(ins.Src2OrImm)
	}
	return v.Regs.ReadInt(ins.Src1)
}

func (v *VM) scalarSrc2FloatFromSrc1(ins isa.Instruction) float32 {
	if ins.Immediate {
		return ins.FImm
	}
	return v.Regs.ReadFloat(ins.Src1)
}

// execMovc converts across the integer/float banks: F set converts
// int->float, F clear converts float->int with truncation (spec.md
// §4.E).
func (v *VM) execMovc(ins isa.Instruction) error {
	if ins.Float {
		var src int32
		if ins.Immediate {
			src = int32(ins.Src2OrImm)
		} else {
			src = v.Regs.ReadInt(ins.Src1)
		}
		v.Regs.WriteFloat(ins.Dest, float32(src))
		return nil
	}
	var src float32
	if ins.Immediate {
		src = math.Float32frombits(ins.Src2OrImm)
	} else {
		src = v.Regs.ReadFloat(ins.Src1)
	}
	v.Regs.WriteInt(ins.Dest, int32(src))
	return nil
}

// memAddress resolves the single address operand LD and ST share: the
// immediate when I is set, otherwise R[src1] (spec.md §4.E).
func (v *VM) memAddress(ins isa.Instruction) uint32 {
	if ins.Immediate {
		return ins.Src2OrImm
	}
	return uint32(v.Regs.ReadInt(ins.Src1))
}

func (v *VM) execLoad(ins isa.Instruction) error {
	addr := v.memAddress(ins)
	raw, err := v.Regs.LoadMem(addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	if ins.Float {
		v.Regs.WriteFloat(ins.Dest, math.Float32frombits(uint32(raw)))
		return nil
	}
	v.Regs.WriteInt(ins.Dest, raw)
	return nil
}

func (v *VM) execStore(ins isa.Instruction) error {
	addr := v.memAddress(ins)
	var raw int32
	if ins.Float {
		raw = int32(math.Float32bits(v.Regs.ReadFloat(ins.Dest)))
	} else {
		raw = v.Regs.ReadInt(ins.Dest)
	}
	if err := v.Regs.StoreMem(addr, raw); err != nil {
		return fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	return nil
}

func (v *VM) vectorArith(ins isa.Instruction, iop func(a, b int32) int32, fop func(a, b float32) float32) error {
	src2 := uint8(ins.Src2OrImm)
	if ins.Float {
		a := v.Regs.ReadVecF(ins.Src1)
		b := v.Regs.ReadVecF(src2)
		var out [register.VectorLen]float32
		for i := range out {
			out[i] = fop(a[i], b[i])
		}
		v.Regs.WriteVecF(ins.Dest, out)
		return nil
	}
	a := v.Regs.ReadVecI(ins.Src1)
	b := v.Regs.ReadVecI(src2)
	var out [register.VectorLen]int32
	for i := range out {
		out[i] = iop(a[i], b[i])
	}
	v.Regs.WriteVecI(ins.Dest, out)
	return nil
}

func (v *VM) vectorDiv(ins isa.Instruction) error {
	src2 := uint8(ins.Src2OrImm)
	if ins.Float {
		a := v.Regs.ReadVecF(ins.Src1)
		b := v.Regs.ReadVecF(src2)
		var out [register.VectorLen]float32
		for i := range out {
			out[i] = a[i] / b[i]
		}
		v.Regs.WriteVecF(ins.Dest, out)
		return nil
	}
	a := v.Regs.ReadVecI(ins.Src1)
	b := v.Regs.ReadVecI(src2)
	var out [register.VectorLen]int32
	for i := range out {
		if b[i] == 0 {
			return ErrDivideByZero
		}
		out[i] = a[i] / b[i]
	}
	v.Regs.WriteVecI(ins.Dest, out)
	return nil
}

func (v *VM) execVLoad(ins isa.Instruction) error {
	addr := v.memAddress(ins)
	if uint64(addr)+register.VectorLen > register.MemSize {
		return fmt.Errorf("%w: vector load base %d", ErrOutOfRange, addr)
	}
	if ins.Float {
		var out [register.VectorLen]float32
		for i := 0; i < register.VectorLen; i++ {
			raw, err := v.Regs.LoadMem(addr + uint32(i))
			if err != nil {
				return err
			}
			out[i] = math.Float32frombits(uint32(raw))
		}
		v.Regs.WriteVecF(ins.Dest, out)
		return nil
	}
	var out [register.VectorLen]int32
	for i := 0; i < register.VectorLen; i++ {
		raw, err := v.Regs.LoadMem(addr + uint32(i))
		if err != nil {
			return err
		}
		out[i] = raw
	}
	v.Regs.WriteVecI(ins.Dest, out)
	return nil
}

func (v *VM) execVStore(ins isa.Instruction) error {
	addr := v.memAddress(ins)
	if uint64(addr)+register.VectorLen > register.MemSize {
		return fmt.Errorf("%w: vector store base %d", ErrOutOfRange, addr)
	}
	if ins.Float {
		lanes := v.Regs.ReadVecF(ins.Dest)
		for i, f := range lanes {
			if err := v.Regs.StoreMem(addr+uint32(i), int32(math.Float32bits(f))); err != nil {
				return err
			}
		}
		return nil
	}
	lanes := v.Regs.ReadVecI(ins.Dest)
	for i, n := range lanes {
		if err := v.Regs.StoreMem(addr+uint32(i), n); err != nil {
			return err
		}
	}
	return nil
}

func (v *VM) execVSet(ins isa.Instruction) error {
	if ins.Float {
		val := v.scalarSrc2FloatFromSrc1(ins)
		v.Regs.WriteVecF(ins.Dest, [register.VectorLen]float32{val, val, val, val})
		return nil
	}
	val := v.scalarSrc2IntFromSrc1(ins)
	v.Regs.WriteVecI(ins.Dest, [register.VectorLen]int32{val, val, val, val})
	return nil
}

// execVSum accumulates the horizontal sum of the source vector register
// into the destination scalar register rather than overwriting it, per
// spec.md §4.E and open question 4.
func (v *VM) execVSum(ins isa.Instruction) error {
	if ins.Float {
		lanes := v.Regs.ReadVecF(ins.Src1)
		var sum float32
		for _, f := range lanes {
			sum += f
		}
		v.Regs.WriteFloat(ins.Dest, v.Regs.ReadFloat(ins.Dest)+sum)
		return nil
	}
	lanes := v.Regs.ReadVecI(ins.Src1)
	var sum int32
	for _, n := range lanes {
		sum += n
	}
	v.Regs.WriteInt(ins.Dest, v.Regs.ReadInt(ins.Dest)+sum)
	return nil
}
