package meshdb

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// triangleArea returns the area of the triangle spanned by three points.
func triangleArea(a, b, c r3.Vec) float64 {
	return 0.5 * r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a)))
}

// signedTriangleVolume returns the signed volume of the tetrahedron formed by
// the triangle and the origin. Summed over a closed, outward-oriented surface
// this yields the enclosed volume (divergence theorem).
func signedTriangleVolume(a, b, c r3.Vec) float64 {
	return r3.Dot(a, r3.Cross(b, c)) / 6.0
}

// Area returns the total area of the triangles contained in a surface set.
func (db *Database) Area(surface Handle) (float64, error) {
	if _, ok := db.sets[surface]; !ok {
		return 0, fmt.Errorf("area: no such set %d", surface)
	}
	var area float64
	for _, tri := range db.Triangles(surface) {
		a, b, c, err := db.triangleCoords(tri)
		if err != nil {
			return 0, err
		}
		area += triangleArea(a, b, c)
	}
	return area, nil
}

// EnclosedVolume returns the volume enclosed by the child surfaces of a volume
// set. Each surface contributes with a sign taken from its sense record: +1
// when the volume is the forward side, -1 when it is the reverse side.
func (db *Database) EnclosedVolume(volume Handle) (float64, error) {
	if _, ok := db.sets[volume]; !ok {
		return 0, fmt.Errorf("enclosed volume: no such set %d", volume)
	}
	var total float64
	for _, surf := range db.Children(volume) {
		fwd, rev := db.Sense(surf)
		sign := 0.0
		switch volume {
		case fwd:
			sign = 1.0
		case rev:
			sign = -1.0
		default:
			return 0, fmt.Errorf("enclosed volume: surface %d has no sense for volume %d", surf, volume)
		}
		for _, tri := range db.Triangles(surf) {
			a, b, c, err := db.triangleCoords(tri)
			if err != nil {
				return 0, err
			}
			total += sign * signedTriangleVolume(a, b, c)
		}
	}
	return total, nil
}

func (db *Database) triangleCoords(tri Handle) (a, b, c r3.Vec, err error) {
	conn, ok := db.triangles[tri]
	if !ok {
		return a, b, c, fmt.Errorf("no such triangle %d", tri)
	}
	for i, v := range conn {
		p, ok := db.vertices[v]
		if !ok {
			return a, b, c, fmt.Errorf("triangle %d references missing vertex %d", tri, v)
		}
		switch i {
		case 0:
			a = p
		case 1:
			b = p
		case 2:
			c = p
		}
	}
	return a, b, c, nil
}
