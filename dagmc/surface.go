package dagmc

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/eepeterson/godagmc/internal/meshdb"
)

// Surface is a 2-dimensional entity with an oriented (forward, reverse)
// adjacent volume pair, at most one side of which may be absent.
type Surface struct {
	*entitySet
}

// NewSurface wraps an entity set handle as a Surface, validating its tags.
func NewSurface(m *Model, h meshdb.Handle) (*Surface, error) {
	es, err := newEntitySet(m, h, CategorySurface)
	if err != nil {
		return nil, err
	}
	s := &Surface{entitySet: es}
	m.wrappers[h] = s
	return s, nil
}

// CreateSurface creates a new surface in the model. Pass UnsetID to take the
// next ID after the current maximum.
func CreateSurface(m *Model, id int) (*Surface, error) {
	return m.CreateSurface(id)
}

func (s *Surface) String() string {
	return fmt.Sprintf("Surface %d", s.ID())
}

// SurfSense returns the oriented [forward, reverse] volume pair. An absent
// side is nil.
func (s *Surface) SurfSense() ([2]*Volume, error) {
	if err := s.checkLive(); err != nil {
		return [2]*Volume{}, err
	}
	fwd, rev := s.model.db.Sense(s.effectiveHandle())
	return [2]*Volume{s.model.volumeForHandle(fwd), s.model.volumeForHandle(rev)}, nil
}

// ForwardVolume returns the volume on the forward side, or nil.
func (s *Surface) ForwardVolume() (*Volume, error) {
	sense, err := s.SurfSense()
	if err != nil {
		return nil, err
	}
	return sense[0], nil
}

// ReverseVolume returns the volume on the reverse side, or nil.
func (s *Surface) ReverseVolume() (*Volume, error) {
	sense, err := s.SurfSense()
	if err != nil {
		return nil, err
	}
	return sense[1], nil
}

// SetForwardVolume rewrites the forward side of the sense pair without
// disturbing the reverse side.
func (s *Surface) SetForwardVolume(v *Volume) error {
	return s.setSenseSide(v, true)
}

// SetReverseVolume rewrites the reverse side of the sense pair without
// disturbing the forward side.
func (s *Surface) SetReverseVolume(v *Volume) error {
	return s.setSenseSide(v, false)
}

func (s *Surface) setSenseSide(v *Volume, forward bool) error {
	if err := s.checkLive(); err != nil {
		return err
	}
	h := s.effectiveHandle()
	fwd, rev := s.model.db.Sense(h)

	var vh meshdb.Handle
	if v != nil {
		if v.model != s.model {
			return fmt.Errorf("sense volume belongs to a different model")
		}
		vh = v.effectiveHandle()
	}
	if forward {
		fwd = vh
	} else {
		rev = vh
	}
	if fwd == 0 && rev == 0 {
		return fmt.Errorf("surface %d: at most one sense side may be absent", s.ID())
	}
	if fwd != 0 && fwd == rev {
		return fmt.Errorf("surface %d: forward and reverse volumes must differ", s.ID())
	}
	if err := s.model.db.SetSense(h, fwd, rev); err != nil {
		return err
	}
	if v != nil {
		// Keep the volume->surface topology consistent with the sense record.
		if err := s.model.db.AddParentChild(vh, h); err != nil {
			return err
		}
	}
	return nil
}

// Volumes returns the adjacent volumes as [forward, reverse], omitting absent
// sides.
func (s *Surface) Volumes() ([]*Volume, error) {
	sense, err := s.SurfSense()
	if err != nil {
		return nil, err
	}
	var out []*Volume
	for _, v := range sense {
		if v != nil {
			out = append(out, v)
		}
	}
	return out, nil
}

// Area returns the total area of the surface's triangles.
func (s *Surface) Area() (float64, error) {
	if err := s.checkLive(); err != nil {
		return 0, err
	}
	return s.model.db.Area(s.effectiveHandle())
}

// TriangleHandles returns the surface's triangle handles.
func (s *Surface) TriangleHandles() ([]meshdb.Handle, error) {
	if err := s.checkLive(); err != nil {
		return nil, err
	}
	return s.model.db.Triangles(s.effectiveHandle()), nil
}

// NumTriangles returns the surface's triangle count.
func (s *Surface) NumTriangles() (int, error) {
	tris, err := s.TriangleHandles()
	if err != nil {
		return 0, err
	}
	return len(tris), nil
}

// TriangleConnAndCoords returns the surface's triangle connectivity and
// vertex coordinates. Without compression every triangle carries its own
// three coordinate entries; with compression shared vertices appear once and
// the connectivity indexes into the deduplicated array. Either way,
// coords[conn[i][k]] is vertex k of triangle i.
func (s *Surface) TriangleConnAndCoords(compress bool) ([][3]int, []r3.Vec, error) {
	tris, err := s.TriangleHandles()
	if err != nil {
		return nil, nil, err
	}
	return buildConnCoords(s.model.db, tris, compress)
}

// TriangleCoordinateMapping returns a per-triangle-handle mapping into a
// shared coordinate array.
func (s *Surface) TriangleCoordinateMapping() (map[meshdb.Handle][3]int, []r3.Vec, error) {
	tris, err := s.TriangleHandles()
	if err != nil {
		return nil, nil, err
	}
	return buildCoordinateMapping(s.model.db, tris)
}
