// Package loader reads the packed binary program file format spec.md
// §6 defines: a little-endian header of five u32 length fields followed
// by the program word stream, the CSR graph arrays, and the initial
// data memory contents.
//
// Grounded on the teacher's pkg/vm.LoadBytecode(r io.Reader) shape (read
// from an io.Reader, return a ready-to-run value or an error) but
// generalized from its line-oriented text scanner to the spec's packed
// binary layout, in the style of IntuitionEngine's file_io.go reading a
// fixed binary header with encoding/binary before the variable-length
// body.
package loader

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/graphx-vm/graphx/pkg/csrgraph"
)

// Capacity limits the loader enforces before trusting any length field
// enough to allocate by it (spec.md §6).
const (
	MaxCodeLen = 8192
	MaxMemLen  = 65536
)

type header struct {
	CodeLen     uint32
	RowIndexLen uint32
	ColIndexLen uint32
	ValuesLen   uint32
	MemLen      uint32
}

// Program is the fully decoded contents of a binary program file: the
// instruction stream, the CSR graph it runs over, and the initial
// contents of data memory.
type Program struct {
	Words []uint64
	Graph *csrgraph.Graph
	Mem   []int32
}

// Load reads and validates a binary program file from r. Oversized
// code_len/mem_len fields are rejected before anything is allocated by
// them; every read failure is wrapped with the field it was reading, so
// a CLI caller can report a precise load error (spec.md §7's load-error
// taxonomy: "malformed header, size exceeds capacity, short read").
func Load(r io.Reader) (*Program, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, errors.Wrap(err, "loader: read header")
	}
	if h.CodeLen > MaxCodeLen {
		return nil, errors.Errorf("loader: code_len %d exceeds capacity %d", h.CodeLen, MaxCodeLen)
	}
	if h.MemLen > MaxMemLen {
		return nil, errors.Errorf("loader: mem_len %d exceeds capacity %d", h.MemLen, MaxMemLen)
	}

	words := make([]uint64, h.CodeLen)
	if err := binary.Read(r, binary.LittleEndian, words); err != nil {
		return nil, errors.Wrap(err, "loader: read program words")
	}

	rowIndex := make([]int32, h.RowIndexLen)
	if err := binary.Read(r, binary.LittleEndian, rowIndex); err != nil {
		return nil, errors.Wrap(err, "loader: read row_index")
	}
	colIndex := make([]int32, h.ColIndexLen)
	if err := binary.Read(r, binary.LittleEndian, colIndex); err != nil {
		return nil, errors.Wrap(err, "loader: read col_index")
	}
	values := make([]int32, h.ValuesLen)
	if err := binary.Read(r, binary.LittleEndian, values); err != nil {
		return nil, errors.Wrap(err, "loader: read values")
	}
	mem := make([]int32, h.MemLen)
	if err := binary.Read(r, binary.LittleEndian, mem); err != nil {
		return nil, errors.Wrap(err, "loader: read initial memory")
	}

	graph, err := csrgraph.New(rowIndex, colIndex, values)
	if err != nil {
		return nil, errors.Wrap(err, "loader: build graph")
	}

	return &Program{Words: words, Graph: graph, Mem: mem}, nil
}
