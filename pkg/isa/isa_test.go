package isa

import (
	"errors"
	"math"
	"testing"
)

func TestDecodeRoundTrip(t *testing.T) {
	cases := []Instruction{
		{Op: ADD, Dest: 3, Src1: 4, Src2OrImm: 5},
		{Op: ADD, Immediate: true, Dest: 3, Src1: 4, Src2OrImm: 0xFFFFFFFF},
		{Op: ADD, Immediate: true, Float: true, Dest: 1, Src1: 2, FImm: 3.5},
		{Op: ADD, Immediate: true, Float: true, Dest: 1, Src1: 2, FImm: float32(math.NaN())},
		{Op: JMP, Immediate: true, Src2OrImm: 1024},
		{Op: HALT},
		{Op: UNLOCK, Dest: 255, Src1: 255, Src2OrImm: 0xDEADBEEF},
	}
	for _, want := range cases {
		word := Encode(want)
		got, err := Decode(word)
		if err != nil {
			t.Fatalf("Decode(%#x) returned error: %v", word, err)
		}
		if got.Op != want.Op || got.Immediate != want.Immediate || got.Float != want.Float ||
			got.Dest != want.Dest || got.Src1 != want.Src1 {
			t.Fatalf("round trip mismatch: want %+v got %+v", want, got)
		}
		if want.Immediate && want.Float {
			if math.Float32bits(got.FImm) != math.Float32bits(want.FImm) {
				t.Fatalf("float imm not bit-exact: want %#x got %#x",
					math.Float32bits(want.FImm), math.Float32bits(got.FImm))
			}
		} else if got.Src2OrImm != want.Src2OrImm {
			t.Fatalf("src2OrImm mismatch: want %#x got %#x", want.Src2OrImm, got.Src2OrImm)
		}
	}
}

func TestDecodeUnknownOpcode(t *testing.T) {
	word := uint64(0xFF) << 56 // 0xFF is above opcodeCount
	_, err := Decode(word)
	if !errors.Is(err, ErrUnknownOpcode) {
		t.Fatalf("expected ErrUnknownOpcode, got %v", err)
	}
}

func TestOpcodeStringKnownAndUnknown(t *testing.T) {
	if HALT.String() != "HALT" {
		t.Fatalf("expected HALT, got %q", HALT.String())
	}
	unknown := Opcode(0xFE)
	if unknown.Valid() {
		t.Fatalf("0xFE should not be valid")
	}
	if unknown.String() == "" {
		t.Fatalf("String() should not be empty for unknown opcode")
	}
}

func TestFieldLayoutOffsets(t *testing.T) {
	// bits 63..56 opcode, 55..48 flags, 47..40 dest, 39..32 src1, 31..0 src2/imm
	word := Encode(Instruction{Op: ADD, Immediate: true, Dest: 0x11, Src1: 0x22, Src2OrImm: 0x33445566})
	if op := Opcode(word >> 56); op != ADD {
		t.Fatalf("opcode field misplaced: got %v", op)
	}
	if flags := uint8(word >> 48); flags&FlagImmediate == 0 {
		t.Fatalf("immediate flag bit misplaced")
	}
	if dest := uint8(word >> 40); dest != 0x11 {
		t.Fatalf("dest field misplaced: got %#x", dest)
	}
	if src1 := uint8(word >> 32); src1 != 0x22 {
		t.Fatalf("src1 field misplaced: got %#x", src1)
	}
	if a2 := uint32(word); a2 != 0x33445566 {
		t.Fatalf("src2/imm field misplaced: got %#x", a2)
	}
}
