// Package vtk writes triangle meshes in the legacy ASCII VTK format.
package vtk

import (
	"bufio"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/eepeterson/godagmc/internal/fsutil"
)

// triangle is the VTK cell type identifier for linear triangles.
const triangleCellType = 5

// Mesh is a triangle mesh ready for export: connectivity indexes into Points.
type Mesh struct {
	Points    []r3.Vec
	Triangles [][3]int
}

// Write emits the mesh to path as a legacy ASCII VTK unstructured grid.
func Write(fsys fsutil.FileSystem, path, title string, mesh Mesh) error {
	for i, tri := range mesh.Triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= len(mesh.Points) {
				return fmt.Errorf("vtk: triangle %d references point %d of %d", i, idx, len(mesh.Points))
			}
		}
	}

	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("vtk: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# vtk DataFile Version 3.0")
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "ASCII")
	fmt.Fprintln(w, "DATASET UNSTRUCTURED_GRID")

	fmt.Fprintf(w, "POINTS %d double\n", len(mesh.Points))
	for _, p := range mesh.Points {
		fmt.Fprintf(w, "%g %g %g\n", p.X, p.Y, p.Z)
	}

	fmt.Fprintf(w, "CELLS %d %d\n", len(mesh.Triangles), 4*len(mesh.Triangles))
	for _, tri := range mesh.Triangles {
		fmt.Fprintf(w, "3 %d %d %d\n", tri[0], tri[1], tri[2])
	}

	fmt.Fprintf(w, "CELL_TYPES %d\n", len(mesh.Triangles))
	for range mesh.Triangles {
		fmt.Fprintln(w, triangleCellType)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("vtk: writing %s: %w", path, err)
	}
	return nil
}
