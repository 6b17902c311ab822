package raster

// Features is the VoronoiFeatures spec.md §3 describes: sparse pixel
// sets of Voronoi vertices and edges, with enough obstacle-id context
// attached to each to drive the edge tracer (package walkable).
//
// Grounded on original_source/source/kernel_mark_features.cpp (2x2
// neighbourhood classification) and kernel_store_obstacle_ids.cpp (the
// left/right obstacle-id partition for edge pixels).
type Features struct {
	Width, Height int32

	// Verts holds linear pixel indices (row*Width+col) whose 2x2
	// upper-left neighbourhood contains >= 3 distinct obstacle ids.
	Verts []int32
	// Edges holds linear pixel indices whose 2x2 neighbourhood contains
	// exactly 2 distinct obstacle ids.
	Edges []int32
	// VertObstacleIDs holds, per vertex pixel, its four 2x2 colours (up
	// to 4 distinct obstacles), in (top-left, top-right, bottom-left,
	// bottom-right) order.
	VertObstacleIDs [][4]uint32
	// EdgeIDsLeft, EdgeIDsRight hold, per edge pixel, the two distinct
	// obstacle ids bordering it, partitioned so consecutive edge pixels
	// along the same Voronoi edge share the same (left, right) pair.
	EdgeIDsLeft, EdgeIDsRight []uint32
}

// Classify scans img's 2x2 pixel neighbourhoods and produces Features
// (spec.md §4.2). Pixels on the top or left border of the image (x==0 or
// y==0) cannot form a full 2x2 window and are never classified, matching
// the reference implementation which only ever inspects (x-1,y-1)..(x,y).
func Classify(img *Image) *Features {
	f := &Features{Width: img.Width, Height: img.Height}

	for y := int32(1); y < img.Height; y++ {
		for x := int32(1); x < img.Width; x++ {
			a := img.At(x-1, y-1) // top-left
			b := img.At(x, y-1)   // top-right
			c := img.At(x-1, y)   // bottom-left
			d := img.At(x, y)     // bottom-right

			distinct := countDistinct(a, b, c, d)
			linear := y*img.Width + x

			switch {
			case distinct >= 3:
				f.Verts = append(f.Verts, linear)
				f.VertObstacleIDs = append(f.VertObstacleIDs, [4]uint32{a, b, c, d})
			case distinct == 2:
				left, right := partitionLR(a, b, c, d)
				f.Edges = append(f.Edges, linear)
				f.EdgeIDsLeft = append(f.EdgeIDsLeft, left)
				f.EdgeIDsRight = append(f.EdgeIDsRight, right)
			}
		}
	}
	return f
}

// countDistinct returns the number of distinct values among a, b, c, d.
func countDistinct(a, b, c, d uint32) int {
	vals := [4]uint32{a, b, c, d}
	n := 0
	for i := 0; i < 4; i++ {
		seen := false
		for j := 0; j < i; j++ {
			if vals[j] == vals[i] {
				seen = true
				break
			}
		}
		if !seen {
			n++
		}
	}
	return n
}

// partitionLR identifies the two distinct obstacle ids bordering a 2x2
// edge-pixel neighbourhood and assigns left/right consistently along a
// chain of edge pixels (spec.md §4.2): L is the colour shared across the
// top edge (a==b) or the left edge (a==c); R is the remaining colour.
// This partition is stable along a Voronoi edge because consecutive 2x2
// windows sliding along a straight boundary keep sharing the same
// top-or-left pairing.
func partitionLR(a, b, c, d uint32) (left, right uint32) {
	switch {
	case a == b:
		left = a
		if c != a {
			right = c
		} else {
			right = d
		}
	case a == c:
		left = a
		if b != a {
			right = b
		} else {
			right = d
		}
	default:
		// a appears in neither the top nor left edge: fall back to
		// whichever of b, c, d differs from a to still produce a
		// deterministic pair.
		left = a
		switch {
		case b != a:
			right = b
		case c != a:
			right = c
		default:
			right = d
		}
	}
	return left, right
}
