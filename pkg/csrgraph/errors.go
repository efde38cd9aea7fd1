package csrgraph

import "errors"

// ErrInvalidGraph indicates the CSR arrays passed to New violate one of
// the invariants spec.md §3 requires (non-decreasing row_index, aligned
// lengths).
var ErrInvalidGraph = errors.New("csrgraph: invalid CSR arrays")
