package register

import "errors"

// ErrOutOfRange indicates a data memory access addressed a cell outside
// [0, MemSize), per spec.md §4.C and §8's bounds property.
var ErrOutOfRange = errors.New("register: address out of range")
