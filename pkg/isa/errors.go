package isa

import "errors"

// ErrUnknownOpcode indicates that a 64-bit word's top byte does not name
// a valid opcode (spec.md §4.D).
var ErrUnknownOpcode = errors.New("isa: unknown opcode")
