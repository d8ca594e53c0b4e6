package dagmc

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/eepeterson/godagmc/internal/meshdb"
	"github.com/eepeterson/godagmc/internal/monitoring"
)

// Entity is a typed wrapper (Volume, Surface, or Group) over an opaque
// entity-set handle in a Model's mesh database.
type Entity interface {
	// Handle returns the wrapped entity-set handle.
	Handle() meshdb.Handle
	// Category returns the entity's category.
	Category() Category
	// ID returns the entity's global ID, or UnsetID once the entity has been
	// deleted.
	ID() int
	// Key returns the composite identity key (model instance + canonical
	// handle). Two entities are the same iff their keys are equal; the key is
	// comparable and usable directly as a map key. Deleted entities return
	// the zero key.
	Key() EntityKey
	// Model returns the owning model.
	Model() *Model

	base() *entitySet
}

// EntityKey is the composite identity of an entity: the owning Model's
// instance token plus the canonical set handle. Entities from two Models over
// the same file never compare equal because the tokens differ.
type EntityKey struct {
	Model  uuid.UUID
	Handle meshdb.Handle
}

// entitySet carries the state shared by all entity wrappers.
type entitySet struct {
	model    *Model
	handle   meshdb.Handle
	category Category
	id       int
	deleted  bool
}

// newEntitySet wraps handle as an entity of the wanted category, validating
// the category and geometric-dimension tags. A missing tag is materialized
// from the wanted category with a warning; a mismatched tag, or both tags
// missing, is a validation error. The entity's ID is reserved in the registry
// (assigned max+1 if the set carries no GLOBAL_ID tag).
func newEntitySet(m *Model, h meshdb.Handle, want Category) (*entitySet, error) {
	db := m.db
	if !db.IsSet(h) {
		return nil, &ValidationError{Handle: h, Reason: "not an entity set"}
	}

	cat, hasCat := db.GetTag(h, meshdb.TagCategory)
	dim, hasDim := db.GetIntTag(h, meshdb.TagGeomDimension)

	if !hasCat && !hasDim {
		return nil, &ValidationError{Handle: h, Reason: "no category or geometric dimension tag to infer the entity type from"}
	}
	if hasCat && Category(cat) != want {
		return nil, &ValidationError{Handle: h, Reason: fmt.Sprintf("category tag %q does not match %s", cat, want)}
	}
	if hasDim && dim != want.GeomDimension() {
		return nil, &ValidationError{Handle: h, Reason: fmt.Sprintf("geometric dimension tag %d does not match %s", dim, want)}
	}
	if !hasCat {
		monitoring.Logf("warning: entity set %d has no category tag; assuming %s", h, want)
		db.SetTag(h, meshdb.TagCategory, string(want))
	}
	if !hasDim {
		monitoring.Logf("warning: entity set %d has no geometric dimension tag; assuming %d", h, want.GeomDimension())
		db.SetIntTag(h, meshdb.TagGeomDimension, want.GeomDimension())
	}

	id, hasID := db.GetIntTag(h, meshdb.TagGlobalID)
	if !hasID {
		id = m.registry.NextAfterMax(want)
		db.SetIntTag(h, meshdb.TagGlobalID, id)
	}
	if err := m.registry.Reserve(want, id, h); err != nil {
		return nil, err
	}

	return &entitySet{model: m, handle: h, category: want, id: id}, nil
}

func (e *entitySet) base() *entitySet { return e }

// Model returns the owning model.
func (e *entitySet) Model() *Model { return e.model }

// Handle returns the wrapped handle as issued, before merge aliasing.
func (e *entitySet) Handle() meshdb.Handle { return e.handle }

// Category returns the entity's category.
func (e *entitySet) Category() Category { return e.category }

// effectiveHandle resolves merge aliasing: operations on a merged-away
// wrapper act on the surviving set.
func (e *entitySet) effectiveHandle() meshdb.Handle {
	return e.model.registry.resolve(e.handle)
}

// Key returns the composite identity key, or the zero key once the entity has
// been deleted.
func (e *entitySet) Key() EntityKey {
	if e.deleted {
		return EntityKey{}
	}
	return EntityKey{Model: e.model.token, Handle: e.effectiveHandle()}
}

// Equal reports whether two wrappers denote the same entity in the same Model
// instance. A deleted wrapper equals nothing, itself included.
func (e *entitySet) Equal(other Entity) bool {
	if other == nil || e.deleted || other.base().deleted {
		return false
	}
	return e.Key() == other.Key()
}

// ID returns the entity's global ID. A deleted wrapper returns UnsetID rather
// than the stale tag value: the freed ID may already belong to another entity.
func (e *entitySet) ID() int {
	if e.deleted {
		return UnsetID
	}
	if id, ok := e.model.db.GetIntTag(e.effectiveHandle(), meshdb.TagGlobalID); ok {
		return id
	}
	return e.id
}

// SetID reassigns the entity's global ID. Assigning an ID held by a different
// live entity of the same category fails with DuplicateIDError; assigning the
// current ID is a no-op; assigning UnsetID takes max(used)+1.
func (e *entitySet) SetID(id int) error {
	if err := e.checkLive(); err != nil {
		return err
	}
	if id == UnsetID {
		id = e.model.registry.NextAfterMax(e.category)
	}
	cur := e.ID()
	if id == cur {
		return nil
	}
	h := e.effectiveHandle()
	if err := e.model.registry.Reserve(e.category, id, h); err != nil {
		return err
	}
	e.model.registry.Release(e.category, cur)
	e.model.db.SetIntTag(h, meshdb.TagGlobalID, id)
	e.id = id
	return nil
}

// ClearID reassigns the entity the next ID after the current maximum, freeing
// its old ID (the unset-ID policy).
func (e *entitySet) ClearID() error {
	return e.SetID(UnsetID)
}

// Delete removes the entity set from the model and invalidates the wrapper:
// every later operation fails with StaleEntityError. The fallible database
// delete runs first so a failure leaves the registry and indexes untouched.
func (e *entitySet) Delete() error {
	if err := e.checkLive(); err != nil {
		return err
	}
	h := e.effectiveHandle()
	id := e.ID()
	if err := e.model.db.DeleteSet(h); err != nil {
		return err
	}
	e.model.registry.Release(e.category, id)
	delete(e.model.wrappers, h)
	e.deleted = true
	return nil
}

func (e *entitySet) checkLive() error {
	if e.deleted {
		return &StaleEntityError{Category: e.category, ID: e.id}
	}
	return nil
}
