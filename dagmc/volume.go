package dagmc

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/eepeterson/godagmc/internal/meshdb"
)

// matPrefix is the group-name prefix encoding material assignments.
const matPrefix = "mat:"

// Volume is a 3-dimensional entity bounded by surfaces.
type Volume struct {
	*entitySet
}

// NewVolume wraps an entity set handle as a Volume, validating its tags.
func NewVolume(m *Model, h meshdb.Handle) (*Volume, error) {
	es, err := newEntitySet(m, h, CategoryVolume)
	if err != nil {
		return nil, err
	}
	v := &Volume{entitySet: es}
	m.wrappers[h] = v
	return v, nil
}

// CreateVolume creates a new volume in the model. Pass UnsetID to take the
// next ID after the current maximum.
func CreateVolume(m *Model, id int) (*Volume, error) {
	return m.CreateVolume(id)
}

func (v *Volume) String() string {
	return fmt.Sprintf("Volume %d", v.ID())
}

// Surfaces returns the volume's bounding surfaces in ascending ID order.
func (v *Volume) Surfaces() ([]*Surface, error) {
	if err := v.checkLive(); err != nil {
		return nil, err
	}
	var out []*Surface
	for _, h := range v.model.db.Children(v.effectiveHandle()) {
		if s := v.model.surfaceForHandle(h); s != nil {
			out = append(out, s)
		}
	}
	return out, nil
}

// Groups returns the groups this volume is a member of.
func (v *Volume) Groups() ([]*Group, error) {
	if err := v.checkLive(); err != nil {
		return nil, err
	}
	var out []*Group
	for _, g := range v.model.Groups() {
		ok, err := g.Contains(v)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, g)
		}
	}
	return out, nil
}

// Material returns the material assigned to this volume through `mat:` group
// membership, or the empty string when unassigned.
func (v *Volume) Material() (string, error) {
	groups, err := v.Groups()
	if err != nil {
		return "", err
	}
	for _, g := range groups {
		name, err := g.Name()
		if err != nil {
			return "", err
		}
		if strings.HasPrefix(name, matPrefix) {
			return strings.TrimPrefix(name, matPrefix), nil
		}
	}
	return "", nil
}

// SetMaterial moves the volume into the `mat:<name>` group, creating the
// group if needed and leaving any previous material group.
func (v *Volume) SetMaterial(name string) error {
	if err := v.checkLive(); err != nil {
		return err
	}
	groups, err := v.Groups()
	if err != nil {
		return err
	}
	for _, g := range groups {
		gname, err := g.Name()
		if err != nil {
			return err
		}
		if strings.HasPrefix(gname, matPrefix) {
			if err := g.RemoveSet(v); err != nil {
				return err
			}
		}
	}
	g, err := v.model.CreateGroup(matPrefix + name)
	if err != nil {
		return err
	}
	return g.AddSet(v)
}

// Volume returns the volume enclosed by the bounding surfaces, using each
// surface's sense to orient its contribution.
func (v *Volume) Volume() (float64, error) {
	if err := v.checkLive(); err != nil {
		return 0, err
	}
	return v.model.db.EnclosedVolume(v.effectiveHandle())
}

// TriangleHandles returns the triangles of all bounding surfaces.
func (v *Volume) TriangleHandles() ([]meshdb.Handle, error) {
	surfaces, err := v.Surfaces()
	if err != nil {
		return nil, err
	}
	var out []meshdb.Handle
	for _, s := range surfaces {
		tris, err := s.TriangleHandles()
		if err != nil {
			return nil, err
		}
		out = append(out, tris...)
	}
	return out, nil
}

// NumTriangles returns the number of triangles over all bounding surfaces.
func (v *Volume) NumTriangles() (int, error) {
	tris, err := v.TriangleHandles()
	if err != nil {
		return 0, err
	}
	return len(tris), nil
}

// TriangleConnAndCoords returns the triangle connectivity and vertex
// coordinates of the volume's bounding mesh. See
// Surface.TriangleConnAndCoords for the compression contract.
func (v *Volume) TriangleConnAndCoords(compress bool) ([][3]int, []r3.Vec, error) {
	tris, err := v.TriangleHandles()
	if err != nil {
		return nil, nil, err
	}
	return buildConnCoords(v.model.db, tris, compress)
}

// TriangleCoordinateMapping returns a per-triangle mapping into a shared
// coordinate array for the volume's bounding mesh.
func (v *Volume) TriangleCoordinateMapping() (map[meshdb.Handle][3]int, []r3.Vec, error) {
	tris, err := v.TriangleHandles()
	if err != nil {
		return nil, nil, err
	}
	return buildCoordinateMapping(v.model.db, tris)
}
