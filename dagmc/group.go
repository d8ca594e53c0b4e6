package dagmc

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/eepeterson/godagmc/internal/meshdb"
)

// Group is a named collection of volumes and surfaces.
type Group struct {
	*entitySet
}

// NewGroup wraps an entity set handle as a Group, validating its tags.
func NewGroup(m *Model, h meshdb.Handle) (*Group, error) {
	es, err := newEntitySet(m, h, CategoryGroup)
	if err != nil {
		return nil, err
	}
	g := &Group{entitySet: es}
	m.wrappers[h] = g
	return g, nil
}

// CreateGroup returns the live group with the given name, creating it with
// the next available ID if no such group exists. Creation is idempotent by
// name: calling it twice returns equal groups, and membership added through
// either handle is visible through the other.
func CreateGroup(m *Model, name string) (*Group, error) {
	if g, ok := m.GroupsByName()[name]; ok {
		return g, nil
	}
	h, err := m.createTagged(CategoryGroup, UnsetID)
	if err != nil {
		return nil, err
	}
	m.db.SetTag(h, meshdb.TagName, name)
	return NewGroup(m, h)
}

func (g *Group) String() string {
	name, err := g.Name()
	if err != nil {
		return fmt.Sprintf("Group %d", g.ID())
	}
	return fmt.Sprintf("Group %d: %s", g.ID(), name)
}

// Name returns the group's name tag.
func (g *Group) Name() (string, error) {
	if err := g.checkLive(); err != nil {
		return "", err
	}
	name, _ := g.model.db.GetTag(g.effectiveHandle(), meshdb.TagName)
	return name, nil
}

// SetName rewrites the group's name tag in place. Name-keyed lookups reflect
// the new name immediately; the old name no longer resolves.
func (g *Group) SetName(name string) error {
	if err := g.checkLive(); err != nil {
		return err
	}
	g.model.db.SetTag(g.effectiveHandle(), meshdb.TagName, name)
	return nil
}

// AddSet adds an entity to the group. Adding a member twice is a no-op.
func (g *Group) AddSet(e Entity) error {
	if err := g.checkLive(); err != nil {
		return err
	}
	if e.Model() != g.model {
		return fmt.Errorf("cannot add an entity from a different model")
	}
	return g.model.db.AddToSet(g.effectiveHandle(), e.base().effectiveHandle())
}

// RemoveSet removes an entity from the group. Removing an absent member is a
// no-op.
func (g *Group) RemoveSet(e Entity) error {
	if err := g.checkLive(); err != nil {
		return err
	}
	return g.model.db.RemoveFromSet(g.effectiveHandle(), e.base().effectiveHandle())
}

// Contains reports group membership.
func (g *Group) Contains(e Entity) (bool, error) {
	if err := g.checkLive(); err != nil {
		return false, err
	}
	return g.model.db.SetContains(g.effectiveHandle(), e.base().effectiveHandle()), nil
}

// Volumes returns the member volumes in ascending ID order.
func (g *Group) Volumes() ([]*Volume, error) {
	if err := g.checkLive(); err != nil {
		return nil, err
	}
	var out []*Volume
	for _, h := range g.model.db.SetContents(g.effectiveHandle()) {
		if v := g.model.volumeForHandle(h); v != nil {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// Surfaces returns the member surfaces in ascending ID order.
func (g *Group) Surfaces() ([]*Surface, error) {
	if err := g.checkLive(); err != nil {
		return nil, err
	}
	var out []*Surface
	for _, h := range g.model.db.SetContents(g.effectiveHandle()) {
		if s := g.model.surfaceForHandle(h); s != nil {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// VolumesByID returns the member volumes keyed by ID.
func (g *Group) VolumesByID() (map[int]*Volume, error) {
	vols, err := g.Volumes()
	if err != nil {
		return nil, err
	}
	out := make(map[int]*Volume, len(vols))
	for _, v := range vols {
		out[v.ID()] = v
	}
	return out, nil
}

// VolumeIDs returns the member volume IDs in ascending order.
func (g *Group) VolumeIDs() ([]int, error) {
	vols, err := g.Volumes()
	if err != nil {
		return nil, err
	}
	out := make([]int, len(vols))
	for i, v := range vols {
		out[i] = v.ID()
	}
	return out, nil
}

// SurfaceIDs returns the member surface IDs in ascending order.
func (g *Group) SurfaceIDs() ([]int, error) {
	surfs, err := g.Surfaces()
	if err != nil {
		return nil, err
	}
	out := make([]int, len(surfs))
	for i, s := range surfs {
		out[i] = s.ID()
	}
	return out, nil
}

// NumVolumes returns the number of member volumes.
func (g *Group) NumVolumes() (int, error) {
	vols, err := g.Volumes()
	if err != nil {
		return 0, err
	}
	return len(vols), nil
}

// NumSurfaces returns the number of member surfaces.
func (g *Group) NumSurfaces() (int, error) {
	surfs, err := g.Surfaces()
	if err != nil {
		return 0, err
	}
	return len(surfs), nil
}

// Merge unions other's membership into g, then makes other an alias of g:
// subsequent equality comparisons and name lookups resolve both wrappers to
// the single surviving group. Merging a group with itself is a no-op.
func (g *Group) Merge(other *Group) error {
	if err := g.checkLive(); err != nil {
		return err
	}
	if err := other.checkLive(); err != nil {
		return err
	}
	if other.model != g.model {
		return fmt.Errorf("cannot merge groups from different models")
	}
	if g.Key() == other.Key() {
		return nil
	}
	gh := g.effectiveHandle()
	oh := other.effectiveHandle()
	for _, member := range g.model.db.SetContents(oh) {
		if err := g.model.db.AddToSet(gh, member); err != nil {
			return err
		}
	}
	// The fallible database delete runs before any registry mutation so a
	// failure leaves other registered and un-aliased.
	otherID := other.ID()
	if err := g.model.db.DeleteSet(oh); err != nil {
		return err
	}
	g.model.registry.Release(CategoryGroup, otherID)
	delete(g.model.wrappers, oh)
	g.model.registry.alias(oh, gh)
	return nil
}

// TriangleHandles returns the triangles of all member volumes and surfaces.
func (g *Group) TriangleHandles() ([]meshdb.Handle, error) {
	vols, err := g.Volumes()
	if err != nil {
		return nil, err
	}
	var out []meshdb.Handle
	for _, v := range vols {
		tris, err := v.TriangleHandles()
		if err != nil {
			return nil, err
		}
		out = append(out, tris...)
	}
	surfs, err := g.Surfaces()
	if err != nil {
		return nil, err
	}
	for _, s := range surfs {
		tris, err := s.TriangleHandles()
		if err != nil {
			return nil, err
		}
		out = append(out, tris...)
	}
	return out, nil
}

// TriangleConnAndCoords returns the triangle connectivity and vertex
// coordinates over all member entities. See Surface.TriangleConnAndCoords.
func (g *Group) TriangleConnAndCoords(compress bool) ([][3]int, []r3.Vec, error) {
	tris, err := g.TriangleHandles()
	if err != nil {
		return nil, nil, err
	}
	return buildConnCoords(g.model.db, tris, compress)
}
