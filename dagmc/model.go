// Package dagmc provides a typed accessor layer over DAGMC-style geometric
// models: Volumes, Surfaces, and Groups wrapped over entity sets in a mesh
// database, with strict per-category ID uniqueness, group membership and
// merge semantics, and file round-trip persistence.
package dagmc

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/eepeterson/godagmc/internal/fsutil"
	"github.com/eepeterson/godagmc/internal/meshdb"
)

// Model owns a mesh database and the registry enforcing (category, ID)
// uniqueness across the entities wrapped over it. Two Models opened on the
// same file are distinct instances: their entities never compare equal.
type Model struct {
	db       *meshdb.Database
	token    uuid.UUID
	registry *Registry
	wrappers map[meshdb.Handle]Entity

	// FS is the filesystem used by export helpers. Tests may replace it with
	// an in-memory implementation.
	FS fsutil.FileSystem
}

// OpenModel loads a model from a mesh file.
func OpenModel(path string) (*Model, error) {
	db, err := meshdb.Open(path)
	if err != nil {
		return nil, err
	}
	return NewModel(db)
}

// NewModel wraps an existing mesh database. All sets carrying a recognized
// category tag are wrapped and their IDs reserved; sets without category
// tags are left alone until wrapped explicitly.
func NewModel(db *meshdb.Database) (*Model, error) {
	m := &Model{
		db:       db,
		token:    uuid.New(),
		registry: newRegistry(),
		wrappers: make(map[meshdb.Handle]Entity),
		FS:       fsutil.OSFileSystem{},
	}
	for _, h := range db.SetsWithTagValue(meshdb.TagCategory, string(CategoryVolume)) {
		if _, err := NewVolume(m, h); err != nil {
			return nil, fmt.Errorf("wrapping volume set %d: %w", h, err)
		}
	}
	for _, h := range db.SetsWithTagValue(meshdb.TagCategory, string(CategorySurface)) {
		if _, err := NewSurface(m, h); err != nil {
			return nil, fmt.Errorf("wrapping surface set %d: %w", h, err)
		}
	}
	for _, h := range db.SetsWithTagValue(meshdb.TagCategory, string(CategoryGroup)) {
		if _, err := NewGroup(m, h); err != nil {
			return nil, fmt.Errorf("wrapping group set %d: %w", h, err)
		}
	}
	return m, nil
}

// Database exposes the underlying mesh database.
func (m *Model) Database() *meshdb.Database { return m.db }

// WriteFile serializes the model, delegating to the database serializer.
// Custom IDs survive the round trip.
func (m *Model) WriteFile(path string) error {
	return m.db.WriteFile(path)
}

func (m *Model) String() string {
	return fmt.Sprintf("Model: %d Volumes, %d Surfaces, %d Groups",
		m.registry.IDs(CategoryVolume), m.registry.IDs(CategorySurface), m.registry.IDs(CategoryGroup))
}

// Volumes returns the model's volumes in ascending ID order.
func (m *Model) Volumes() []*Volume {
	out := make([]*Volume, 0, m.registry.IDs(CategoryVolume))
	for _, h := range m.registry.used[CategoryVolume] {
		if v, ok := m.wrappers[h].(*Volume); ok {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Surfaces returns the model's surfaces in ascending ID order.
func (m *Model) Surfaces() []*Surface {
	out := make([]*Surface, 0, m.registry.IDs(CategorySurface))
	for _, h := range m.registry.used[CategorySurface] {
		if s, ok := m.wrappers[h].(*Surface); ok {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Groups returns the model's groups in ascending ID order.
func (m *Model) Groups() []*Group {
	out := make([]*Group, 0, m.registry.IDs(CategoryGroup))
	for _, h := range m.registry.used[CategoryGroup] {
		if g, ok := m.wrappers[h].(*Group); ok {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// VolumesByID returns the current ID-to-volume table.
func (m *Model) VolumesByID() map[int]*Volume {
	out := make(map[int]*Volume)
	for _, v := range m.Volumes() {
		out[v.ID()] = v
	}
	return out
}

// SurfacesByID returns the current ID-to-surface table.
func (m *Model) SurfacesByID() map[int]*Surface {
	out := make(map[int]*Surface)
	for _, s := range m.Surfaces() {
		out[s.ID()] = s
	}
	return out
}

// GroupsByID returns the current ID-to-group table.
func (m *Model) GroupsByID() map[int]*Group {
	out := make(map[int]*Group)
	for _, g := range m.Groups() {
		out[g.ID()] = g
	}
	return out
}

// GroupsByName returns the current name-to-group table. Lookups through it
// reflect renames and merges immediately, because the table is derived from
// the live name tags.
func (m *Model) GroupsByName() map[string]*Group {
	out := make(map[string]*Group)
	for _, g := range m.Groups() {
		name, err := g.Name()
		if err != nil {
			continue
		}
		out[name] = g
	}
	return out
}

// CreateVolume creates a new volume with the given ID. Pass UnsetID to assign
// the next ID after the current maximum.
func (m *Model) CreateVolume(id int) (*Volume, error) {
	h, err := m.createTagged(CategoryVolume, id)
	if err != nil {
		return nil, err
	}
	return NewVolume(m, h)
}

// CreateSurface creates a new surface with the given ID. Pass UnsetID to
// assign the next ID after the current maximum.
func (m *Model) CreateSurface(id int) (*Surface, error) {
	h, err := m.createTagged(CategorySurface, id)
	if err != nil {
		return nil, err
	}
	return NewSurface(m, h)
}

// CreateGroup returns the live group with the given name, creating it if no
// such group exists. Creation is idempotent by name.
func (m *Model) CreateGroup(name string) (*Group, error) {
	return CreateGroup(m, name)
}

// createTagged creates a fully tagged entity set, checking explicit IDs for
// collisions before any mutation.
func (m *Model) createTagged(category Category, id int) (meshdb.Handle, error) {
	if id != UnsetID {
		if _, taken := m.registry.InUse(category, id); taken {
			return 0, &DuplicateIDError{Category: category, ID: id}
		}
	}
	h := m.db.CreateMeshSet()
	m.db.SetTag(h, meshdb.TagCategory, string(category))
	m.db.SetIntTag(h, meshdb.TagGeomDimension, category.GeomDimension())
	if id != UnsetID {
		m.db.SetIntTag(h, meshdb.TagGlobalID, id)
	}
	return h, nil
}

// GroupKey names one group in an AddGroups request.
type GroupKey struct {
	Name string
	ID   int
}

// AddGroups bulk-creates groups. Each key creates (or reuses) one group,
// assigns its ID, and adds the referenced members: raw integer IDs resolve
// against the volume table first and then the surface table; Entity values
// are added directly.
func (m *Model) AddGroups(groups map[GroupKey][]any) error {
	for key, members := range groups {
		g, err := m.CreateGroup(key.Name)
		if err != nil {
			return err
		}
		if key.ID != UnsetID {
			if err := g.SetID(key.ID); err != nil {
				return err
			}
		}
		volumes := m.VolumesByID()
		surfaces := m.SurfacesByID()
		for _, member := range members {
			switch v := member.(type) {
			case int:
				if vol, ok := volumes[v]; ok {
					err = g.AddSet(vol)
				} else if surf, ok := surfaces[v]; ok {
					err = g.AddSet(surf)
				} else {
					err = fmt.Errorf("group %q: no volume or surface with ID %d", key.Name, v)
				}
			case Entity:
				err = g.AddSet(v)
			default:
				err = fmt.Errorf("group %q: unsupported member %T", key.Name, member)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// volumeForHandle returns the wrapper for a volume set handle, nil for a zero
// or unknown handle.
func (m *Model) volumeForHandle(h meshdb.Handle) *Volume {
	if h == 0 {
		return nil
	}
	v, _ := m.wrappers[m.registry.resolve(h)].(*Volume)
	return v
}

// surfaceForHandle returns the wrapper for a surface set handle.
func (m *Model) surfaceForHandle(h meshdb.Handle) *Surface {
	if h == 0 {
		return nil
	}
	s, _ := m.wrappers[m.registry.resolve(h)].(*Surface)
	return s
}
