// Package csrgraph implements the immutable compressed-sparse-row
// adjacency store described in spec.md §4.A: read-only neighbor,
// degree, and edge-existence queries over three parallel arrays.
package csrgraph

import (
	"fmt"
	"sort"
)

// Graph is an immutable CSR adjacency store. The zero value is not
// usable; construct one with New.
//
// Invariants (spec.md §3), assumed to hold on construction and never
// mutated afterwards:
//   - RowIndex is non-decreasing and has length N+1.
//   - RowIndex[N] equals len(ColIndex).
//   - within each row, ColIndex is sorted ascending.
//   - Values is the same length as ColIndex and aligned with it.
type Graph struct {
	n        int
	rowIndex []int32
	colIndex []int32
	values   []int32
}

// New builds a Graph from the three CSR arrays. It does not copy them;
// callers must not mutate the slices afterwards. N is derived as
// len(rowIndex)-1, matching the loader's "graph.n = row_index_len - 1"
// rule (spec.md §6).
func New(rowIndex, colIndex, values []int32) (*Graph, error) {
	if len(rowIndex) == 0 {
		return nil, fmt.Errorf("%w: empty row index", ErrInvalidGraph)
	}
	n := len(rowIndex) - 1
	for i := 1; i < len(rowIndex); i++ {
		if rowIndex[i] < rowIndex[i-1] {
			return nil, fmt.Errorf("%w: row_index not non-decreasing at %d", ErrInvalidGraph, i)
		}
	}
	if int(rowIndex[n]) != len(colIndex) {
		return nil, fmt.Errorf("%w: row_index[n]=%d != len(col_index)=%d",
			ErrInvalidGraph, rowIndex[n], len(colIndex))
	}
	if len(values) != len(colIndex) {
		return nil, fmt.Errorf("%w: len(values)=%d != len(col_index)=%d",
			ErrInvalidGraph, len(values), len(colIndex))
	}
	return &Graph{n: n, rowIndex: rowIndex, colIndex: colIndex, values: values}, nil
}

// N returns the number of nodes.
func (g *Graph) N() int {
	return g.n
}

// Degree returns the out-degree of node u. The caller guarantees
// 0 <= u < N(), matching spec.md §4.A.
func (g *Graph) Degree(u int32) int32 {
	return g.rowIndex[u+1] - g.rowIndex[u]
}

// Neighbors returns the slice of destination ids for node u's edges,
// ordered ascending (spec.md §3's sorted-row invariant).
func (g *Graph) Neighbors(u int32) []int32 {
	return g.colIndex[g.rowIndex[u]:g.rowIndex[u+1]]
}

// NeighborWeights returns the weight slice aligned with Neighbors(u).
func (g *Graph) NeighborWeights(u int32) []int32 {
	return g.values[g.rowIndex[u]:g.rowIndex[u+1]]
}

// HasEdge reports whether edge u->v exists, via binary search over the
// sorted row (spec.md §4.A), average O(log deg(u)).
func (g *Graph) HasEdge(u, v int32) bool {
	_, ok := g.find(u, v)
	return ok
}

// NeighborAt returns the idx'th neighbor of node u (0-indexed within
// u's row) and its weight. It reports ok=false when u is outside
// [0, N()) or idx addresses past the end of u's row, which is exactly
// the "exhausted" condition the NNEXT/ENEXT opcodes test for
// (spec.md §4.E) — callers never need to call Degree first.
func (g *Graph) NeighborAt(u, idx int32) (v, w int32, ok bool) {
	if u < 0 || int(u) >= g.n || idx < 0 {
		return 0, 0, false
	}
	pos := g.rowIndex[u] + idx
	if pos >= g.rowIndex[u+1] {
		return 0, 0, false
	}
	return g.colIndex[pos], g.values[pos], true
}

// Weight returns the stored weight of edge u->v, or 0 if the edge is
// absent. Zero therefore doubles as "no edge" (spec.md §4.A, open
// question 3): callers that must distinguish a real zero-weight edge
// from a missing one should call HasEdge first.
func (g *Graph) Weight(u, v int32) int32 {
	if idx, ok := g.find(u, v); ok {
		return g.values[idx]
	}
	return 0
}

// find returns the CSR array index of edge u->v, if present.
func (g *Graph) find(u, v int32) (int32, bool) {
	lo := g.rowIndex[u]
	hi := g.rowIndex[u+1]
	row := g.colIndex[lo:hi]
	i := sort.Search(len(row), func(i int) bool { return row[i] >= v })
	if i < len(row) && row[i] == v {
		return lo + int32(i), true
	}
	return 0, false
}
