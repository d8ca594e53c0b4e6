package dagmc

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/eepeterson/godagmc/internal/vtk"
)

// meshSource is any entity that can resolve its triangle mesh.
type meshSource interface {
	TriangleConnAndCoords(compress bool) ([][3]int, []r3.Vec, error)
}

func writeVTK(m *Model, src meshSource, path, title string) error {
	conn, coords, err := src.TriangleConnAndCoords(true)
	if err != nil {
		return err
	}
	return vtk.Write(m.FS, path, title, vtk.Mesh{Points: coords, Triangles: conn})
}

// ToVTK writes the group's resolved triangle mesh as a legacy ASCII VTK file.
func (g *Group) ToVTK(path string) error {
	return writeVTK(g.model, g, path, g.String())
}

// ToVTK writes the volume's bounding mesh as a legacy ASCII VTK file.
func (v *Volume) ToVTK(path string) error {
	return writeVTK(v.model, v, path, v.String())
}

// ToVTK writes the surface's triangle mesh as a legacy ASCII VTK file.
func (s *Surface) ToVTK(path string) error {
	return writeVTK(s.model, s, path, s.String())
}
