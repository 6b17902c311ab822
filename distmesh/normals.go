package distmesh

import "github.com/corridormap/ecm/geom2"

// Normals holds, for each obstacle polygon, the outward unit normal of
// each polygon edge (spec.md §3, "FootprintNormals"), plus the
// precomputed mid-direction between each normal and its successor. The
// mid-direction table is a supplemented feature grounded on
// original_source/source/kernel_mark_poi.cpp, which precomputes exactly
// this per-vertex bisector once rather than recomputing it per edge
// pixel during normal assignment (see Assign).
type Normals struct {
	// N holds, per polygon, one outward normal per edge (edge j runs
	// from vertex j to vertex j+1).
	N [][]geom2.Vec2
	// Mid holds, per polygon, the normalized bisector of normals[j-1]
	// and normals[j] — the "vector space" splitting direction used by
	// Assign and spec.md §4.3.
	Mid [][]geom2.Vec2
}

// BuildNormals computes the outward edge normals of every polygon in f
// (spec.md §4.3).
func BuildNormals(f *Footprint) *Normals {
	out := &Normals{
		N:   make([][]geom2.Vec2, f.NumPolys()),
		Mid: make([][]geom2.Vec2, f.NumPolys()),
	}
	for p := int32(0); p < f.NumPolys(); p++ {
		n := f.NumPolyVerts[p]
		ns := make([]geom2.Vec2, n)
		for j := int32(0); j < n; j++ {
			a := f.Vertex(p, j)
			b := f.Vertex(p, j+1)
			ns[j] = edgeNormal(a, b)
		}
		mids := make([]geom2.Vec2, n)
		for j := int32(0); j < n; j++ {
			prev := ns[((j-1)+n)%n]
			mids[j] = prev.Add(ns[j]).Normalized()
		}
		out.N[p] = ns
		out.Mid[p] = mids
	}
	return out
}

// Assign returns the normal index a pixel in direction dir from a vertex
// of polygon p should be attributed to (spec.md §4.3): the pixel is "in
// vector space" of normal i iff dot(dir, mid_i) >= dot(n_i, mid_i),
// where mid_i bisects n_{i-1} and n_i; matching normal index i+1 (0 means
// "no match", i.e. the vertex site itself).
func (nm *Normals) Assign(p int32, dir geom2.Vec2) int32 {
	ns := nm.N[p]
	mids := nm.Mid[p]
	n := int32(len(ns))
	for i := int32(0); i < n; i++ {
		threshold := ns[i].Dot(mids[i])
		if dir.Dot(mids[i]) >= threshold {
			return i + 1
		}
	}
	return 0
}
