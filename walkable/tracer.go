package walkable

import (
	"github.com/corridormap/ecm/csr"
	"github.com/corridormap/ecm/distmesh"
	"github.com/corridormap/ecm/geom2"
	"github.com/corridormap/ecm/raster"
)

// MaxGridNeis bounds how many neighbour pixels a single trace step dedups
// against (spec.md §9, Open Question: "max_grid_neis is hard-capped at 4
// ... possibly a latent bug truncating high-valence junctions"). Kept at
// the original's value rather than rescaled: the cap only bites on
// pathological footprints (many collinear obstacles meeting at one
// pixel), and widening it silently would change traced topology in a way
// nothing downstream expects. TraceEdges logs through Logger.Warningf
// whenever it is hit, turning a silent truncation into a visible one.
const MaxGridNeis = 4

// Logger is the minimal logging capability TraceEdges needs; package
// ecm's Context satisfies it (mirroring go-detour's rccontext.go
// BuildContext, which likewise threads a Warningf-shaped logger through
// build stages rather than a full *log.Logger).
type Logger interface {
	Warningf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Warningf(string, ...interface{}) {}

// ToWorld maps a pixel's row/col to the world-space point its center
// represents, the inverse of the ortho projection package raster's
// CPURenderer.Draw applies.
type ToWorld func(row, col int32) geom2.Vec2

// TraceEdges walks the classified Voronoi feature pixels feats (package
// raster) over grid (package csr) and builds the WalkableSpace half-edge
// mesh (spec.md §4.5). foot supplies the obstacle contact geometry
// (spec.md §4.3's "obstacle_l/obstacle_r" analogue) used to classify
// each event and vertex side as edge- or vertex-anchored.
//
// Grounded on original_source/source/build.cpp's trace_edges (vertex-pixel
// seeded BFS splitting edge-pixel chains at colour-pair transitions) and,
// for the Go BFS-over-a-grid idiom itself, on go-detour's recast/region.go
// watershed expansion (frontier slices walked to a fixed point, 4-connected
// neighbour enumeration via a shared helper).
func TraceEdges(feats *raster.Features, grid *csr.Grid, toWorld ToWorld, foot *distmesh.Footprint, logger Logger) *Space {
	if logger == nil {
		logger = nopLogger{}
	}

	// Conservative upper bounds: one mesh vertex per vertex pixel plus one
	// per dead-end edge-pixel chain; one half-edge pair per edge pixel
	// (a serious over-estimate, but pools only cost unused backing
	// memory, never correctness, per spec.md §7).
	maxVerts := int32(len(feats.Verts)) + int32(len(feats.Edges)) + 1
	maxHalfEdges := int32(len(feats.Edges))*2 + 2
	maxEvents := maxHalfEdges

	space := NewSpace(maxVerts, maxHalfEdges, maxEvents)

	vertexAt := make(map[int32]int32, len(feats.Verts)) // pixel linear idx -> Space vertex idx
	for i, lin := range feats.Verts {
		row, col := grid.RowCol(lin)
		v, ok := space.CreateVertex(toWorld(row, col))
		if !ok {
			logger.Warningf("walkable: vertex pool exhausted tracing pixel %d", lin)
			continue
		}
		space.Verts.At(v).NumSides = 0
		for _, id := range feats.VertObstacleIDs[i] {
			p, atVertex := nearestOnObstacle(foot, id, space.Verts.At(v).Pos)
			space.AddVertexSide(v, p, atVertex)
		}
		vertexAt[lin] = v
	}

	edgeColorAt := make(map[int32]int)
	for i, lin := range feats.Edges {
		edgeColorAt[lin] = i
	}

	traced := make(map[int32]bool, len(feats.Edges))

	// traceChain walks the edge-pixel chain starting at the first pixel
	// adjacent to a vertex pixel, until it reaches another vertex pixel
	// (or a dead end, where a new degree-1 vertex is synthesized),
	// recording one event per colour-pair transition.
	traceChain := func(startVertexPixel, firstEdgePixel int32) {
		if traced[firstEdgePixel] {
			return
		}

		type step struct {
			lin         int32
			left, right uint32
		}
		var chain []step
		prev := startVertexPixel
		cur := firstEdgePixel
		for {
			ci := edgeColorAt[cur]
			chain = append(chain, step{lin: cur, left: feats.EdgeIDsLeft[ci], right: feats.EdgeIDsRight[ci]})
			traced[cur] = true

			neis := grid.NeisLinear(cur)
			if len(neis) > MaxGridNeis {
				logger.Warningf("walkable: pixel %d has %d grid neighbours, truncating to %d", cur, len(neis), MaxGridNeis)
				neis = neis[:MaxGridNeis]
			}

			var next int32 = -1
			for _, n := range neis {
				lin := grid.Linear(n.Row, n.Col)
				if lin == prev {
					continue
				}
				if _, isVert := vertexAt[lin]; isVert {
					next = lin
					break
				}
				if _, isEdge := edgeColorAt[lin]; isEdge && !traced[lin] {
					next = lin
				}
			}
			if next == -1 {
				break // dead end
			}
			if _, isVert := vertexAt[next]; isVert {
				chain = append(chain, step{lin: next})
				prev, cur = cur, next
				break
			}
			prev, cur = cur, next
		}

		if len(chain) == 0 {
			return
		}

		endPixel := chain[len(chain)-1].lin
		endVertex, isVert := vertexAt[endPixel]
		if !isVert {
			// Dead end: synthesize a degree-1 vertex (spec.md §9 glossary,
			// "reflex arc wraps a degree-1 Voronoi vertex").
			row, col := grid.RowCol(endPixel)
			ev, ok := space.CreateVertex(toWorld(row, col))
			if !ok {
				logger.Warningf("walkable: vertex pool exhausted at dead end pixel %d", endPixel)
				return
			}
			endVertex = ev
			vertexAt[endPixel] = ev
		}
		startVertex := vertexAt[startVertexPixel]

		h, ok := space.CreateEdge(startVertex, endVertex)
		if !ok {
			logger.Warningf("walkable: half-edge pool exhausted tracing from pixel %d", startVertexPixel)
			return
		}

		var prevColor *step
		for i := range chain {
			s := &chain[i]
			if s.left == 0 && s.right == 0 && i == len(chain)-1 && isVert {
				continue // terminal vertex-pixel entry carries no colour pair
			}
			if prevColor != nil && prevColor.left == s.left && prevColor.right == s.right {
				continue
			}
			row, col := grid.RowCol(s.lin)
			pos := toWorld(row, col)
			leftPt, leftArc := nearestOnObstacle(foot, s.left, pos)
			rightPt, rightArc := nearestOnObstacle(foot, s.right, pos)
			e, ok := space.CreateEvent(h, pos)
			if !ok {
				logger.Warningf("walkable: event pool exhausted tracing from pixel %d", startVertexPixel)
				break
			}
			space.SetEventSides(e, leftPt, rightPt, leftArc, rightArc)
			prevColor = s
		}
	}

	for _, lin := range feats.Verts {
		row, col := grid.RowCol(lin)
		for _, n := range grid.Neis(row, col) {
			nlin := grid.Linear(n.Row, n.Col)
			if _, isEdge := edgeColorAt[nlin]; isEdge {
				traceChain(lin, nlin)
			}
		}
	}

	return space
}

// nearestOnObstacle returns the closest point to p on obstacle id's
// footprint polygon and whether that point is anchored at a polygon
// vertex (true) or strictly inside an edge (false). id values beyond
// foot's polygon count (the four synthetic border segments, spec.md's
// distmesh border tents) are treated as a single point contact at p
// itself, since the render-target border carries no polygon geometry to
// project onto.
func nearestOnObstacle(foot *distmesh.Footprint, id uint32, p geom2.Vec2) (geom2.Vec2, bool) {
	poly := int32(id)
	if poly < 0 || poly >= foot.NumPolys() {
		return p, false
	}
	n := foot.NumPolyVerts[poly]
	if n == 0 {
		return p, false
	}

	best := foot.Vertex(poly, 0)
	bestDist := best.DistSqr(p)
	bestAtVertex := true

	for j := int32(0); j < n; j++ {
		a := foot.Vertex(poly, j)
		b := foot.Vertex(poly, (j+1)%n)
		proj, t := closestOnSegment(a, b, p)
		d := proj.DistSqr(p)
		if d < bestDist {
			bestDist = d
			best = proj
			bestAtVertex = t <= 0 || t >= 1
		}
	}
	return best, bestAtVertex
}

// closestOnSegment returns the closest point on segment ab to p and the
// unclamped projection parameter t (t<=0 or t>=1 signals the closest
// point is really the segment's endpoint, i.e. an obstacle vertex).
func closestOnSegment(a, b, p geom2.Vec2) (geom2.Vec2, float32) {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom == 0 {
		return a, 0
	}
	t := ab.Dot(p.Sub(a)) / denom
	clamped := geom2.Clamp(t, 0, 1)
	return a.Add(ab.Scale(clamped)), t
}
