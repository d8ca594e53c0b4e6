package dagmc

import (
	"container/heap"

	"github.com/eepeterson/godagmc/internal/meshdb"
)

// UnsetID is the sentinel for "no explicit ID". Assigning it to an entity, or
// creating an entity without an ID, takes max(used)+1 rather than the smallest
// free gap returned by Allocate. The asymmetry is deliberate: it matches the
// historical reassignment behavior callers depend on.
const UnsetID = 0

// Registry enforces (category, ID) uniqueness for one Model. It tracks the
// used-ID table per category, a free list of released IDs for smallest-gap
// allocation, and the canonical-handle table that makes merged groups resolve
// to their surviving set.
type Registry struct {
	used  map[Category]map[int]meshdb.Handle
	freed map[Category]*intHeap
	next  map[Category]int

	canon map[meshdb.Handle]meshdb.Handle
}

func newRegistry() *Registry {
	r := &Registry{
		used:  make(map[Category]map[int]meshdb.Handle),
		freed: make(map[Category]*intHeap),
		next:  make(map[Category]int),
		canon: make(map[meshdb.Handle]meshdb.Handle),
	}
	for _, c := range categories {
		r.used[c] = make(map[int]meshdb.Handle)
		r.freed[c] = &intHeap{}
		r.next[c] = 1
	}
	return r
}

// Allocate returns the smallest positive integer not currently in use for the
// category. It does not reserve the ID; pair it with Reserve.
func (r *Registry) Allocate(category Category) int {
	f := r.freed[category]
	for f.Len() > 0 {
		id := (*f)[0]
		if _, taken := r.used[category][id]; !taken {
			return id
		}
		heap.Pop(f)
	}
	n := r.next[category]
	for {
		if _, taken := r.used[category][n]; !taken {
			return n
		}
		n++
	}
}

// NextAfterMax returns max(used)+1 for the category, or 1 when no ID is in
// use. This is the unset-ID reassignment policy (see UnsetID).
func (r *Registry) NextAfterMax(category Category) int {
	max := 0
	for id := range r.used[category] {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// Reserve records an ID as held by the given entity set handle. Reserving an
// ID already held by a different handle fails with DuplicateIDError;
// re-reserving for the same handle is a no-op.
func (r *Registry) Reserve(category Category, id int, h meshdb.Handle) error {
	if id < 1 {
		return &ValidationError{Handle: h, Reason: "entity IDs must be positive"}
	}
	if existing, taken := r.used[category][id]; taken && existing != h {
		return &DuplicateIDError{Category: category, ID: id}
	}
	r.used[category][id] = h
	if id == r.next[category] {
		r.next[category] = id + 1
	}
	return nil
}

// Release frees an ID for reuse by a later Allocate.
func (r *Registry) Release(category Category, id int) {
	if _, taken := r.used[category][id]; !taken {
		return
	}
	delete(r.used[category], id)
	if id < r.next[category] {
		heap.Push(r.freed[category], id)
	}
}

// InUse reports whether an ID is currently held, and by which handle.
func (r *Registry) InUse(category Category, id int) (meshdb.Handle, bool) {
	h, ok := r.used[category][id]
	return h, ok
}

// IDs returns the number of IDs held for a category.
func (r *Registry) IDs(category Category) int {
	return len(r.used[category])
}

// resolve follows the canonical-handle table, compressing paths as it goes.
// Handles never merged resolve to themselves.
func (r *Registry) resolve(h meshdb.Handle) meshdb.Handle {
	root := h
	for {
		next, ok := r.canon[root]
		if !ok {
			break
		}
		root = next
	}
	for h != root {
		next := r.canon[h]
		r.canon[h] = root
		h = next
	}
	return root
}

// alias records `from` as merged into `to`: lookups and equality on `from`
// resolve to `to` from now on.
func (r *Registry) alias(from, to meshdb.Handle) {
	r.canon[from] = r.resolve(to)
}

// intHeap is a min-heap of released IDs.
type intHeap []int

func (h intHeap) Len() int            { return len(h) }
func (h intHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h intHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *intHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *intHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
