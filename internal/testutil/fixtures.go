// Package testutil builds synthetic mesh databases for tests: a fuel-pin
// model mirroring the sample file's observable structure, and a unit cube
// with exact geometric measures.
package testutil

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/eepeterson/godagmc/internal/meshdb"
)

// Fuel pin fixture structure: volume IDs and the surfaces bounding each.
var fuelPinVolumes = map[int][]int{
	1: {1, 2, 3},
	2: {1, 4, 5, 6, 7},
	3: {8, 9, 10, 11, 12},
	6: {13, 14, 15, 16, 24, 25, 27, 28, 29},
}

// fuelPinGroups maps group names to (volume IDs, surface IDs) memberships.
var fuelPinGroups = map[string]struct {
	Volumes  []int
	Surfaces []int
}{
	"mat:fuel":        {Volumes: []int{1}},
	"mat:water":       {Volumes: []int{2}},
	"mat:41":          {Volumes: []int{3}},
	"mat:Graveyard":   {Volumes: []int{6}},
	"boundary:Vacuum": {Surfaces: []int{24, 25}},
}

// newGeomSet creates an entity set tagged with category, dimension, and ID.
func newGeomSet(db *meshdb.Database, category string, dim, id int) meshdb.Handle {
	h := db.CreateMeshSet()
	db.SetTag(h, meshdb.TagCategory, category)
	db.SetIntTag(h, meshdb.TagGeomDimension, dim)
	db.SetIntTag(h, meshdb.TagGlobalID, id)
	return h
}

// FuelPin builds the synthetic fuel-pin model: 4 volumes (IDs 1, 2, 3, 6),
// 21 surfaces (IDs 1-16, 24, 25, 27, 28, 29), and 5 groups. Surface 1 sits
// between volumes 1 and 2 (forward volume 1) and carries a two-triangle patch
// so connectivity queries have data to return.
func FuelPin() *meshdb.Database {
	db := meshdb.New()

	volumes := make(map[int]meshdb.Handle)
	surfaces := make(map[int]meshdb.Handle)

	for _, vid := range []int{1, 2, 3, 6} {
		volumes[vid] = newGeomSet(db, "Volume", 3, vid)
	}
	// Volumes in ascending ID order so shared surfaces get a deterministic
	// sense: the lower-ID volume is the forward side.
	for _, vid := range []int{1, 2, 3, 6} {
		for _, sid := range fuelPinVolumes[vid] {
			if _, ok := surfaces[sid]; !ok {
				surfaces[sid] = newGeomSet(db, "Surface", 2, sid)
			}
		}
	}
	for _, vid := range []int{1, 2, 3, 6} {
		for _, sid := range fuelPinVolumes[vid] {
			db.AddParentChild(volumes[vid], surfaces[sid])
			fwd, rev := db.Sense(surfaces[sid])
			if fwd == 0 {
				db.SetSense(surfaces[sid], volumes[vid], rev)
			} else if fwd != volumes[vid] {
				db.SetSense(surfaces[sid], fwd, volumes[vid])
			}
		}
	}

	// A small triangle patch on surface 1: a unit square split along the
	// diagonal, sharing two vertices.
	a := db.CreateVertex(r3.Vec{X: 0, Y: 0, Z: 0})
	b := db.CreateVertex(r3.Vec{X: 1, Y: 0, Z: 0})
	c := db.CreateVertex(r3.Vec{X: 1, Y: 1, Z: 0})
	d := db.CreateVertex(r3.Vec{X: 0, Y: 1, Z: 0})
	t0, _ := db.CreateTriangle(a, b, c)
	t1, _ := db.CreateTriangle(a, c, d)
	db.AddToSet(surfaces[1], t0)
	db.AddToSet(surfaces[1], t1)

	nextGroupID := 1
	for _, name := range []string{"mat:fuel", "mat:water", "mat:41", "mat:Graveyard", "boundary:Vacuum"} {
		members := fuelPinGroups[name]
		g := newGeomSet(db, "Group", 4, nextGroupID)
		nextGroupID++
		db.SetTag(g, meshdb.TagName, name)
		for _, vid := range members.Volumes {
			db.AddToSet(g, volumes[vid])
		}
		for _, sid := range members.Surfaces {
			db.AddToSet(g, surfaces[sid])
		}
	}

	return db
}

// cubeFace lists the two outward-oriented triangles of one unit-cube face,
// as indices into the cube vertex list.
type cubeFace [2][3]int

// UnitCube builds a model of a single unit cube: volume ID 1 bounded by six
// surfaces (IDs 1-6) of two outward-oriented triangles each. The enclosed
// volume is exactly 1 and every face area is exactly 1.
func UnitCube() *meshdb.Database {
	db := meshdb.New()

	points := []r3.Vec{
		{X: 0, Y: 0, Z: 0}, // 0
		{X: 1, Y: 0, Z: 0}, // 1
		{X: 1, Y: 1, Z: 0}, // 2
		{X: 0, Y: 1, Z: 0}, // 3
		{X: 0, Y: 0, Z: 1}, // 4
		{X: 1, Y: 0, Z: 1}, // 5
		{X: 1, Y: 1, Z: 1}, // 6
		{X: 0, Y: 1, Z: 1}, // 7
	}
	verts := make([]meshdb.Handle, len(points))
	for i, p := range points {
		verts[i] = db.CreateVertex(p)
	}

	faces := []cubeFace{
		{{0, 2, 1}, {0, 3, 2}}, // bottom, normal -z
		{{4, 5, 6}, {4, 6, 7}}, // top, normal +z
		{{0, 1, 5}, {0, 5, 4}}, // front, normal -y
		{{3, 6, 2}, {3, 7, 6}}, // back, normal +y
		{{0, 4, 7}, {0, 7, 3}}, // left, normal -x
		{{1, 2, 6}, {1, 6, 5}}, // right, normal +x
	}

	vol := newGeomSet(db, "Volume", 3, 1)
	for i, face := range faces {
		surf := newGeomSet(db, "Surface", 2, i+1)
		for _, tri := range face {
			t, _ := db.CreateTriangle(verts[tri[0]], verts[tri[1]], verts[tri[2]])
			db.AddToSet(surf, t)
		}
		db.AddParentChild(vol, surf)
		db.SetSense(surf, vol, 0)
	}

	return db
}
