package ecm

import (
	"container/heap"
	"fmt"

	"github.com/corridormap/ecm/corridor"
	"github.com/corridormap/ecm/funnel"
	"github.com/corridormap/ecm/geom2"
	"github.com/corridormap/ecm/mem"
	"github.com/corridormap/ecm/walkable"
)

// NearestVertex returns the WalkableSpace vertex closest to p whose
// recorded clearance is at least minClearance, for snapping a query's
// start/end points onto the mesh (spec.md §4.7's "query points are
// projected onto the corridor map before solving").
func NearestVertex(space *walkable.Space, p geom2.Vec2, minClearance float32) (int32, bool) {
	best := mem.NullIndex
	bestDist := float32(0)
	for i := int32(0); i < space.Verts.Len(); i++ {
		pos := space.VertexPos(i)
		if d := pos.DistSqr(p); best == mem.NullIndex || d < bestDist {
			if vertexClearanceAtLeast(space, i, minClearance) {
				best, bestDist = i, d
			}
		}
	}
	if best == mem.NullIndex {
		return mem.NullIndex, false
	}
	return best, true
}

func vertexClearanceAtLeast(space *walkable.Space, v int32, min float32) bool {
	sides := space.VertexSides(v)
	if len(sides) == 0 {
		return min <= 0
	}
	pos := space.VertexPos(v)
	for _, s := range sides {
		if pos.Dist(s) < min {
			return false
		}
	}
	return true
}

// vertexHeapItem is one entry of the Dijkstra frontier.
type vertexHeapItem struct {
	vertex int32
	dist   float32
	index  int
}

type vertexHeap []*vertexHeapItem

func (h vertexHeap) Len() int            { return len(h) }
func (h vertexHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h vertexHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index, h[j].index = i, j }
func (h *vertexHeap) Push(x interface{}) { *h = append(*h, x.(*vertexHeapItem)) }
func (h *vertexHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// FindRoute searches the WalkableSpace for the shortest sequence of
// half-edges from vertex `from` to vertex `to`, rejecting any half-edge
// whose MinClearance is narrower than clearance (spec.md §4.6/§4.7: a
// route must be feasible for the agent before the funnel solver ever
// runs on it).
//
// Grounded on the teacher's node-pool-backed A* in detour/query.go
// (FindPath) for the general "priority queue over pool-indexed nodes"
// shape; simplified to Dijkstra (no heuristic) via the standard
// container/heap, since the ECM doesn't carry the detour NodePool this
// package deliberately dropped in favour of mem.Arena — justified in
// DESIGN.md as the one place a stdlib container serves better than
// porting a bespoke priority queue.
func FindRoute(space *walkable.Space, from, to int32, clearance float32) ([]int32, error) {
	if from == to {
		return nil, nil
	}

	dist := map[int32]float32{from: 0}
	viaEdge := map[int32]int32{}
	visited := map[int32]bool{}

	pq := &vertexHeap{{vertex: from, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*vertexHeapItem)
		v := cur.vertex
		if visited[v] {
			continue
		}
		visited[v] = true
		if v == to {
			break
		}

		first := space.FirstHalfEdgeOf(v)
		if first == mem.NullIndex {
			continue
		}
		for h := first; ; {
			if space.MinClearance(h) >= clearance {
				nv := space.Target(h)
				w := space.VertexPos(v).Dist(space.VertexPos(nv))
				nd := dist[v] + w
				if d, ok := dist[nv]; !ok || nd < d {
					dist[nv] = nd
					viaEdge[nv] = h
					heap.Push(pq, &vertexHeapItem{vertex: nv, dist: nd})
				}
			}
			h = space.Next(h)
			if h == first {
				break
			}
		}
	}

	if _, ok := dist[to]; !ok {
		return nil, fmt.Errorf("ecm: no feasible route at clearance %.4f", clearance)
	}

	var route []int32
	for v := to; v != from; {
		h := viaEdge[v]
		route = append([]int32{h}, route...)
		v = space.Source(h)
	}
	return route, nil
}

// Query snaps start and end onto space (via NearestVertex), searches for
// a feasible route (via FindRoute), extracts its Corridor and solves it
// with the funnel algorithm — the three post-Build stages spec.md §4.6
// and §4.7 describe, composed into the one call a library caller (or
// cmd/ecm's `query` subcommand) actually wants.
func Query(ctx *Context, space *walkable.Space, start, end geom2.Vec2, clearance float32) ([]funnel.PathElement, Status) {
	from, ok := NearestVertex(space, start, clearance)
	if !ok {
		ctx.Errorf("query: no vertex near %v with clearance %.4f", start, clearance)
		return nil, StatusFailure | StatusInvalidParam
	}
	to, ok := NearestVertex(space, end, clearance)
	if !ok {
		ctx.Errorf("query: no vertex near %v with clearance %.4f", end, clearance)
		return nil, StatusFailure | StatusInvalidParam
	}

	ctx.StartTimer(TimerBuildCorridor)
	route, err := FindRoute(space, from, to, clearance)
	if err != nil {
		ctx.StopTimer(TimerBuildCorridor)
		ctx.Errorf("query: %v", err)
		return nil, StatusFailure | StatusInvalidParam
	}
	if len(route) == 0 {
		ctx.StopTimer(TimerBuildCorridor)
		return []funnel.PathElement{{Type: funnel.ElementLine, P0: start, P1: end}}, StatusSuccess
	}
	cor, err := corridor.Extract(space, route, clearance)
	ctx.StopTimer(TimerBuildCorridor)
	if err != nil {
		ctx.Errorf("query: %v", err)
		return nil, StatusFailure | StatusInvalidParam
	}

	ctx.StartTimer(TimerFunnel)
	solver := funnel.NewSolver(clearance)
	path, err := solver.Solve(cor)
	ctx.StopTimer(TimerFunnel)
	if err != nil {
		ctx.Errorf("query: %v", err)
		return nil, StatusFailure | StatusInvalidParam
	}

	return path, StatusSuccess
}
