package distmesh

import (
	"fmt"

	"github.com/arl/gobj"
)

// LoadFootprint reads a Footprint from a Wavefront .obj file at path: one
// polygonal face per obstacle, vertices taken CCW in XY (Z dropped)
// (spec.md §6, "Footprint input format"). Faces with fewer than 3
// vertices are rejected.
//
// Grounded on the teacher's inputgeom.go, which loaded a sample scene's
// triangle soup through gobj.Load for recast.Config's voxelization step;
// here the same loader instead yields one convex polygon per face, the
// unit this package's cone/tent construction consumes.
func LoadFootprint(path string) (*Footprint, error) {
	of, err := gobj.Load(path)
	if err != nil {
		return nil, fmt.Errorf("distmesh: load %q: %w", path, err)
	}

	f := &Footprint{}
	for i, poly := range of.Polys() {
		if len(poly) < 3 {
			return nil, fmt.Errorf("distmesh: face %d has %d verts, need >= 3", i, len(poly))
		}
		for _, v := range poly {
			f.X = append(f.X, float32(v.X()))
			f.Y = append(f.Y, float32(v.Y()))
		}
		f.NumPolyVerts = append(f.NumPolyVerts, int32(len(poly)))
	}
	return f, nil
}
