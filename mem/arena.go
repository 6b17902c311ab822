package mem

// NullIndex marks an absent slot reference, the generic equivalent of
// go-detour's nullIdx (detour/node.go) and the reference implementation's
// free_list::first_free sentinel (-1 in both, since 0 is a valid slot
// index and no sentinel value is reserved inside T itself).
const NullIndex int32 = -1

// Arena is a fixed-capacity, freelist-backed pool of records of type T,
// addressed by stable int32 index rather than pointer. It is the generic
// form of go-detour's rcSpanPool (recast/heightfield.go) and NodePool
// (detour/node.go): records never move once allocated, so half-edge,
// vertex and event cross-references (spec.md §3's WalkableSpace) stay
// valid for the arena's whole lifetime.
//
// Exceeding Cap is a pool-exhaustion build failure (spec.md §7), reported
// via Alloc's second return value rather than growing the slice; ECM
// pools are sized up front from conservative upper bounds derived from
// input polygon/vertex/pixel counts (spec.md §3, "Lifecycle").
type Arena[T any] struct {
	items []T
	free  []int32 // stack of free slot indices
	used  int32
}

// NewArena allocates an Arena with room for cap records.
func NewArena[T any](cap int32) *Arena[T] {
	return &Arena[T]{
		items: make([]T, cap),
		free:  make([]int32, 0, cap),
	}
}

// Cap returns the arena's fixed capacity.
func (a *Arena[T]) Cap() int32 { return int32(len(a.items)) }

// Len returns the number of records currently allocated.
func (a *Arena[T]) Len() int32 { return a.used }

// Alloc reserves a slot and returns its index and a pointer to its zero
// value. ok is false if the arena is exhausted and no slot previously
// freed is available (pool exhaustion, spec.md §7).
func (a *Arena[T]) Alloc() (idx int32, ptr *T, ok bool) {
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
		a.used++
		var zero T
		a.items[idx] = zero
		return idx, &a.items[idx], true
	}
	if a.used >= int32(len(a.items)) {
		return NullIndex, nil, false
	}
	idx = a.used
	a.used++
	return idx, &a.items[idx], true
}

// Free returns idx to the freelist. The slot may be reused by a later
// Alloc; existing references to it become invalid.
func (a *Arena[T]) Free(idx int32) {
	a.free = append(a.free, idx)
	a.used--
}

// At returns a pointer to the record at idx.
func (a *Arena[T]) At(idx int32) *T {
	return &a.items[idx]
}

// Valid reports whether idx is within the arena's capacity range. It
// does not check whether the slot is currently allocated or freed.
func (a *Arena[T]) Valid(idx int32) bool {
	return idx >= 0 && idx < int32(len(a.items))
}
