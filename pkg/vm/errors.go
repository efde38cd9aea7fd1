package vm

import "errors"

// ErrHalt is returned by the executor for the HALT opcode and signals a
// graceful stop, analogous to the teacher's ErrHalted (spec.md §4.E,
// §4.F).
var ErrHalt = errors.New("vm: halted")

// ErrOutOfRange covers every bounds violation spec.md §4.E and §8
// promote to ERROR: branch targets outside program memory, data memory
// addresses outside [0, 65536), iterator indices outside 0..3, and node
// ids outside the graph for DEG and HASE. NNEXT and ENEXT do not fault
// on such a node: they treat it as having no edges left.
var ErrOutOfRange = errors.New("vm: out of range")

// ErrDivideByZero is returned for integer division by zero, per
// spec.md §4.E and open question 5 (float division instead produces the
// host's Inf/NaN and is not an error).
var ErrDivideByZero = errors.New("vm: integer divide by zero")

// ErrUnhandledOpcode indicates a valid isa.Opcode reached the executor's
// dispatch without a case handling it. This should be unreachable for
// any opcode isa.Opcode enumerates; TestAllOpcodesHandled in
// vm_test.go guards against regressions.
var ErrUnhandledOpcode = errors.New("vm: opcode recognized by decoder but not dispatched")
