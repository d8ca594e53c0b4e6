package dagmc

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/eepeterson/godagmc/internal/meshdb"
)

// buildConnCoords assembles triangle connectivity and vertex coordinates for
// a set of triangle handles. Without compression each triangle gets its own
// three coordinate entries; with compression vertices shared between
// triangles are stored once.
func buildConnCoords(db *meshdb.Database, tris []meshdb.Handle, compress bool) ([][3]int, []r3.Vec, error) {
	conn := make([][3]int, 0, len(tris))
	var coords []r3.Vec
	index := make(map[meshdb.Handle]int)

	for _, tri := range tris {
		verts, ok := db.TriangleConnectivity(tri)
		if !ok {
			return nil, nil, fmt.Errorf("no such triangle %d", tri)
		}
		var entry [3]int
		for i, vh := range verts {
			if compress {
				idx, seen := index[vh]
				if !seen {
					p, ok := db.VertexCoords(vh)
					if !ok {
						return nil, nil, fmt.Errorf("triangle %d references missing vertex %d", tri, vh)
					}
					idx = len(coords)
					coords = append(coords, p)
					index[vh] = idx
				}
				entry[i] = idx
			} else {
				p, ok := db.VertexCoords(vh)
				if !ok {
					return nil, nil, fmt.Errorf("triangle %d references missing vertex %d", tri, vh)
				}
				entry[i] = len(coords)
				coords = append(coords, p)
			}
		}
		conn = append(conn, entry)
	}
	return conn, coords, nil
}

// buildCoordinateMapping maps each triangle handle to the indices of its
// vertices in a shared, deduplicated coordinate array.
func buildCoordinateMapping(db *meshdb.Database, tris []meshdb.Handle) (map[meshdb.Handle][3]int, []r3.Vec, error) {
	conn, coords, err := buildConnCoords(db, tris, true)
	if err != nil {
		return nil, nil, err
	}
	mapping := make(map[meshdb.Handle][3]int, len(tris))
	for i, tri := range tris {
		mapping[tri] = conn[i]
	}
	return mapping, coords, nil
}
