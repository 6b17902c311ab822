// Package csr implements the compressed-sparse-row grid spec.md §3 and
// §4.4 describe: a binary H×W grid of "interesting" pixels (Voronoi
// vertex or edge pixels) compacted into row_offset/column arrays so the
// edge tracer (package walkable) can do O(1)-ish neighbour lookups
// without scanning a dense W*H bitmap.
//
// Grounded on original_source/source/kernel_scan.cpp (row-major
// exclusive-scan construction of the reference implementation's CSR
// grid) and, for the pooled-parallel-arrays idiom in Go, on go-detour's
// detour/node.go NodePool (hash-bucketed parallel index arrays).
package csr

import "sort"

// Grid is a compressed-sparse-row encoding of a binary H×W grid
// (spec.md §3).
type Grid struct {
	Width, Height int32
	// RowOffset has Height+1 entries; RowOffset[r]..RowOffset[r+1] index
	// into Column for row r. Monotone non-decreasing by construction.
	RowOffset []int32
	// Column holds, for each non-zero cell, its column index within its
	// row, sorted ascending within each row.
	Column []int32
	// NumNZ is len(Column); also the sentinel value NZ returns for
	// a zero cell.
	NumNZ int32
}

// Build constructs a Grid of the given dimensions from nzLinear, the
// row-major linear indices (row*width+col) of the non-zero cells. The
// caller must pass nzLinear already sorted ascending (the feature
// classifier in package raster produces its vertex/edge pixel arrays in
// scanline order, so this holds without an extra sort in the common
// case); Build re-sorts defensively since the invariant spec.md §8
// property 5 requires ("row_offset is monotone; column[...] is strictly
// ascending") must hold regardless of caller order.
func Build(width, height int32, nzLinear []int32) *Grid {
	sorted := append([]int32(nil), nzLinear...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	g := &Grid{
		Width:     width,
		Height:    height,
		RowOffset: make([]int32, height+1),
		Column:    make([]int32, len(sorted)),
		NumNZ:     int32(len(sorted)),
	}

	row := int32(0)
	for i, lin := range sorted {
		r := lin / width
		c := lin % width
		for row <= r {
			g.RowOffset[row] = int32(i)
			row++
		}
		g.Column[i] = c
	}
	for row <= height {
		g.RowOffset[row] = g.NumNZ
		row++
	}
	return g
}

// NZ returns the dense index of cell (row, col) in Column, or g.NumNZ if
// the cell is zero (spec.md §3, "nz(r,c) returns the dense index ... or
// num_nz sentinel").
func (g *Grid) NZ(row, col int32) int32 {
	if row < 0 || row >= g.Height || col < 0 || col >= g.Width {
		return g.NumNZ
	}
	lo, hi := g.RowOffset[row], g.RowOffset[row+1]
	// Rows are short in practice (spec.md §4.4); linear scan is fine, but
	// a binary search is explicitly sanctioned and cheap to reach for
	// here since Column is sorted ascending within the row.
	idx := lo + int32(sort.Search(int(hi-lo), func(i int) bool {
		return g.Column[lo+int32(i)] >= col
	}))
	if idx < hi && g.Column[idx] == col {
		return idx
	}
	return g.NumNZ
}

// NZLinear is NZ addressed by row-major linear index.
func (g *Grid) NZLinear(linear int32) int32 {
	return g.NZ(linear/g.Width, linear%g.Width)
}

// Contains reports whether (row, col) is a non-zero cell.
func (g *Grid) Contains(row, col int32) bool {
	return g.NZ(row, col) < g.NumNZ
}

// Nei is one 4-connected neighbour of a non-zero cell that is itself
// non-zero.
type Nei struct {
	Row, Col int32
	NZIndex  int32
}

// cellNeiOffsets are the 4-connected offsets spec.md §4.4 specifies,
// in the order the reference implementation enumerates them.
var cellNeiOffsets = [4][2]int32{
	{-1, 0}, {0, -1}, {0, 1}, {1, 0},
}

// Neis returns up to 4 4-connected neighbours of (row, col) that are
// themselves non-zero cells in the grid. Out-of-bounds neighbours are
// skipped.
func (g *Grid) Neis(row, col int32) []Nei {
	neis := make([]Nei, 0, 4)
	for _, off := range cellNeiOffsets {
		r, c := row+off[0], col+off[1]
		if r < 0 || r >= g.Height || c < 0 || c >= g.Width {
			continue
		}
		if idx := g.NZ(r, c); idx < g.NumNZ {
			neis = append(neis, Nei{Row: r, Col: c, NZIndex: idx})
		}
	}
	return neis
}

// NeisLinear is Neis addressed by row-major linear index.
func (g *Grid) NeisLinear(linear int32) []Nei {
	return g.Neis(linear/g.Width, linear%g.Width)
}

// RowCol decomposes a row-major linear index.
func (g *Grid) RowCol(linear int32) (row, col int32) {
	return linear / g.Width, linear % g.Width
}

// Linear composes a row-major linear index.
func (g *Grid) Linear(row, col int32) int32 {
	return row*g.Width + col
}
