package csrgraph

import "testing"

// sixNode builds the 6-node graph used throughout spec.md §8's
// end-to-end scenarios: {0-1, 0-2, 0-5, 1-2, 1-3, 2-3, 2-5, 3-4, 4-5},
// stored both directions since BFS/SSSP traverse it as undirected.
func sixNode(t *testing.T) *Graph {
	t.Helper()
	rowIndex := []int32{0, 3, 6, 10, 13, 15, 18}
	colIndex := []int32{
		1, 2, 5, // node 0
		0, 2, 3, // node 1
		0, 1, 3, 5, // node 2
		1, 2, 4, // node 3
		3, 5, // node 4
		0, 2, 4, // node 5
	}
	values := []int32{
		7, 9, 11,
		7, 3, 13,
		9, 3, 15, 5,
		13, 15, 5,
		5, 9,
		11, 5, 9,
	}
	g, err := New(rowIndex, colIndex, values)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestDegree(t *testing.T) {
	g := sixNode(t)
	want := []int32{3, 3, 4, 3, 2, 3}
	for u, w := range want {
		if got := g.Degree(int32(u)); got != w {
			t.Errorf("Degree(%d) = %d, want %d", u, got, w)
		}
	}
}

func TestHasEdgeAgreesWithNeighbors(t *testing.T) {
	g := sixNode(t)
	for u := int32(0); u < int32(g.N()); u++ {
		neighbors := g.Neighbors(u)
		for v := int32(0); v < int32(g.N()); v++ {
			want := false
			for _, nb := range neighbors {
				if nb == v {
					want = true
					break
				}
			}
			if got := g.HasEdge(u, v); got != want {
				t.Errorf("HasEdge(%d,%d) = %v, want %v", u, v, got, want)
			}
		}
	}
}

func TestWeightMatchesColIndexAlignment(t *testing.T) {
	g := sixNode(t)
	if w := g.Weight(0, 5); w != 11 {
		t.Errorf("Weight(0,5) = %d, want 11", w)
	}
	if w := g.Weight(0, 4); w != 0 {
		t.Errorf("Weight(0,4) = %d, want 0 (no edge)", w)
	}
}

func TestWeightZeroVsMissingEdge(t *testing.T) {
	// A real zero-weight edge must still report HasEdge true, even
	// though Weight returns 0 just like a missing edge would.
	g, err := New([]int32{0, 1, 1}, []int32{1}, []int32{0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !g.HasEdge(0, 1) {
		t.Fatalf("zero-weight edge 0->1 should exist")
	}
	if g.Weight(0, 1) != 0 {
		t.Fatalf("zero-weight edge should report weight 0")
	}
	if g.HasEdge(0, 0) {
		t.Fatalf("0->0 should not exist in this fixture")
	}
}

func TestNeighborAt(t *testing.T) {
	g := sixNode(t)
	v, w, ok := g.NeighborAt(0, 0)
	if !ok || v != 1 || w != 7 {
		t.Fatalf("NeighborAt(0,0) = (%d,%d,%v), want (1,7,true)", v, w, ok)
	}
	if _, _, ok := g.NeighborAt(0, 3); ok {
		t.Fatalf("NeighborAt(0,3) should be exhausted (degree 3)")
	}
	if _, _, ok := g.NeighborAt(6, 0); ok {
		t.Fatalf("NeighborAt(6,...) should fail: node out of range")
	}
	if _, _, ok := g.NeighborAt(-1, 0); ok {
		t.Fatalf("NeighborAt(-1,...) should fail: node out of range")
	}
}

func TestNewRejectsInconsistentArrays(t *testing.T) {
	if _, err := New([]int32{0, 2, 5}, []int32{1, 2}, []int32{1, 2}); err == nil {
		t.Fatalf("expected error when row_index[n] != len(col_index)")
	}
	if _, err := New([]int32{0, 3, 1}, []int32{1, 2, 3}, []int32{0, 0, 0}); err == nil {
		t.Fatalf("expected error for non-decreasing row_index violation")
	}
}
