// Package meshdb implements the embedded mesh database underneath the model
// accessor layer: entity-set handles, sparse tags, set contents, parent/child
// topology, triangle connectivity, and surface sense records. Models persist
// as sqlite files whose schema is versioned with embedded migrations.
package meshdb

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Handle identifies an entity (set, vertex, or triangle) within one Database.
// Handles are opaque and only meaningful against the Database that issued them.
type Handle uint64

// Well-known tag names shared with the accessor layer.
const (
	TagCategory      = "CATEGORY"
	TagGeomDimension = "GEOM_DIMENSION"
	TagName          = "NAME"
	TagGlobalID      = "GLOBAL_ID"
)

// Database is an in-memory mesh database. It is not safe for concurrent use;
// callers own serialization, matching the single-threaded model contract.
type Database struct {
	nextHandle Handle

	sets      map[Handle]struct{}
	vertices  map[Handle]r3.Vec
	triangles map[Handle][3]Handle

	strTags map[string]map[Handle]string
	intTags map[string]map[Handle]int

	contents map[Handle]map[Handle]struct{} // set -> members
	children map[Handle]map[Handle]struct{} // parent set -> child sets
	parents  map[Handle]map[Handle]struct{} // child set -> parent sets

	senses map[Handle][2]Handle // surface set -> [forward, reverse] volume sets
}

// New creates an empty mesh database.
func New() *Database {
	return &Database{
		nextHandle: 1,
		sets:       make(map[Handle]struct{}),
		vertices:   make(map[Handle]r3.Vec),
		triangles:  make(map[Handle][3]Handle),
		strTags:    make(map[string]map[Handle]string),
		intTags:    make(map[string]map[Handle]int),
		contents:   make(map[Handle]map[Handle]struct{}),
		children:   make(map[Handle]map[Handle]struct{}),
		parents:    make(map[Handle]map[Handle]struct{}),
		senses:     make(map[Handle][2]Handle),
	}
}

func (db *Database) issue() Handle {
	h := db.nextHandle
	db.nextHandle++
	return h
}

// CreateMeshSet creates a new empty entity set and returns its handle.
func (db *Database) CreateMeshSet() Handle {
	h := db.issue()
	db.sets[h] = struct{}{}
	return h
}

// IsSet reports whether the handle refers to a live entity set.
func (db *Database) IsSet(h Handle) bool {
	_, ok := db.sets[h]
	return ok
}

// DeleteSet removes a set along with its tags, contents links, topology links,
// and sense records. Member entities themselves are not deleted.
func (db *Database) DeleteSet(h Handle) error {
	if _, ok := db.sets[h]; !ok {
		return fmt.Errorf("delete set: no such set %d", h)
	}
	delete(db.sets, h)
	for _, m := range db.strTags {
		delete(m, h)
	}
	for _, m := range db.intTags {
		delete(m, h)
	}
	delete(db.contents, h)
	for _, members := range db.contents {
		delete(members, h)
	}
	for c := range db.children[h] {
		delete(db.parents[c], h)
	}
	delete(db.children, h)
	for p := range db.parents[h] {
		delete(db.children[p], h)
	}
	delete(db.parents, h)
	delete(db.senses, h)
	// Clear senses that referenced the deleted set as a volume.
	for s, pair := range db.senses {
		if pair[0] == h {
			pair[0] = 0
		}
		if pair[1] == h {
			pair[1] = 0
		}
		db.senses[s] = pair
	}
	return nil
}

// SetTag assigns a string tag value to a handle.
func (db *Database) SetTag(h Handle, name, value string) {
	m, ok := db.strTags[name]
	if !ok {
		m = make(map[Handle]string)
		db.strTags[name] = m
	}
	m[h] = value
}

// GetTag returns the string tag value for a handle.
func (db *Database) GetTag(h Handle, name string) (string, bool) {
	v, ok := db.strTags[name][h]
	return v, ok
}

// SetIntTag assigns an integer tag value to a handle.
func (db *Database) SetIntTag(h Handle, name string, value int) {
	m, ok := db.intTags[name]
	if !ok {
		m = make(map[Handle]int)
		db.intTags[name] = m
	}
	m[h] = value
}

// GetIntTag returns the integer tag value for a handle.
func (db *Database) GetIntTag(h Handle, name string) (int, bool) {
	v, ok := db.intTags[name][h]
	return v, ok
}

// DeleteTag removes a tag value (string or integer) from a handle.
func (db *Database) DeleteTag(h Handle, name string) {
	delete(db.strTags[name], h)
	delete(db.intTags[name], h)
}

// SetsWithTagValue returns the handles of all sets whose string tag `name`
// equals `value`, in ascending handle order.
func (db *Database) SetsWithTagValue(name, value string) []Handle {
	var out []Handle
	for h, v := range db.strTags[name] {
		if v != value {
			continue
		}
		if _, ok := db.sets[h]; ok {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddToSet adds a member entity to a set. Adding an existing member is a no-op.
func (db *Database) AddToSet(set, member Handle) error {
	if _, ok := db.sets[set]; !ok {
		return fmt.Errorf("add to set: no such set %d", set)
	}
	m, ok := db.contents[set]
	if !ok {
		m = make(map[Handle]struct{})
		db.contents[set] = m
	}
	m[member] = struct{}{}
	return nil
}

// RemoveFromSet removes a member from a set. Removing an absent member is a no-op.
func (db *Database) RemoveFromSet(set, member Handle) error {
	if _, ok := db.sets[set]; !ok {
		return fmt.Errorf("remove from set: no such set %d", set)
	}
	delete(db.contents[set], member)
	return nil
}

// SetContains reports membership of an entity in a set.
func (db *Database) SetContains(set, member Handle) bool {
	_, ok := db.contents[set][member]
	return ok
}

// SetContents returns the members of a set in ascending handle order.
func (db *Database) SetContents(set Handle) []Handle {
	members := db.contents[set]
	out := make([]Handle, 0, len(members))
	for h := range members {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddParentChild records a topological parent/child link between two sets
// (volume -> surface in geometric models).
func (db *Database) AddParentChild(parent, child Handle) error {
	if _, ok := db.sets[parent]; !ok {
		return fmt.Errorf("add parent-child: no such set %d", parent)
	}
	if _, ok := db.sets[child]; !ok {
		return fmt.Errorf("add parent-child: no such set %d", child)
	}
	if db.children[parent] == nil {
		db.children[parent] = make(map[Handle]struct{})
	}
	if db.parents[child] == nil {
		db.parents[child] = make(map[Handle]struct{})
	}
	db.children[parent][child] = struct{}{}
	db.parents[child][parent] = struct{}{}
	return nil
}

// Children returns the child sets of a parent in ascending handle order.
func (db *Database) Children(parent Handle) []Handle {
	return sortedHandles(db.children[parent])
}

// Parents returns the parent sets of a child in ascending handle order.
func (db *Database) Parents(child Handle) []Handle {
	return sortedHandles(db.parents[child])
}

func sortedHandles(m map[Handle]struct{}) []Handle {
	out := make([]Handle, 0, len(m))
	for h := range m {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CreateVertex creates a vertex at the given coordinates.
func (db *Database) CreateVertex(v r3.Vec) Handle {
	h := db.issue()
	db.vertices[h] = v
	return h
}

// VertexCoords returns the coordinates of a vertex.
func (db *Database) VertexCoords(h Handle) (r3.Vec, bool) {
	v, ok := db.vertices[h]
	return v, ok
}

// CreateTriangle creates a triangle over three existing vertices.
func (db *Database) CreateTriangle(v0, v1, v2 Handle) (Handle, error) {
	for _, v := range []Handle{v0, v1, v2} {
		if _, ok := db.vertices[v]; !ok {
			return 0, fmt.Errorf("create triangle: no such vertex %d", v)
		}
	}
	h := db.issue()
	db.triangles[h] = [3]Handle{v0, v1, v2}
	return h, nil
}

// TriangleConnectivity returns the vertex handles of a triangle.
func (db *Database) TriangleConnectivity(h Handle) ([3]Handle, bool) {
	c, ok := db.triangles[h]
	return c, ok
}

// Triangles returns the triangle members of a set in ascending handle order.
func (db *Database) Triangles(set Handle) []Handle {
	var out []Handle
	for h := range db.contents[set] {
		if _, ok := db.triangles[h]; ok {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SetSense records the oriented (forward, reverse) volume pair of a surface.
// A zero handle marks an absent side.
func (db *Database) SetSense(surface, forward, reverse Handle) error {
	if _, ok := db.sets[surface]; !ok {
		return fmt.Errorf("set sense: no such surface set %d", surface)
	}
	db.senses[surface] = [2]Handle{forward, reverse}
	return nil
}

// Sense returns the (forward, reverse) volume pair of a surface. Absent sides
// are zero handles.
func (db *Database) Sense(surface Handle) (forward, reverse Handle) {
	pair := db.senses[surface]
	return pair[0], pair[1]
}

// NumSets returns the number of live entity sets.
func (db *Database) NumSets() int { return len(db.sets) }
