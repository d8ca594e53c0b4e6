package meshdb

import (
	"database/sql"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	_ "modernc.org/sqlite"
)

// Open loads a mesh model file. Files written by older schema versions are
// migrated forward before loading.
func Open(path string) (*Database, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open mesh file %s: %w", path, err)
	}
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open mesh file %s: %w", path, err)
	}
	defer sqldb.Close()

	if err := migrateUp(sqldb); err != nil {
		return nil, err
	}

	db := New()
	if err := db.load(sqldb); err != nil {
		return nil, fmt.Errorf("load mesh file %s: %w", path, err)
	}
	return db, nil
}

// WriteFile serializes the database to a mesh model file at path, replacing
// any existing file.
func (db *Database) WriteFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("write mesh file %s: %w", path, err)
		}
	}
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("write mesh file %s: %w", path, err)
	}
	defer sqldb.Close()

	if err := migrateUp(sqldb); err != nil {
		return err
	}
	if err := db.dump(sqldb); err != nil {
		return fmt.Errorf("write mesh file %s: %w", path, err)
	}
	return nil
}

func (db *Database) load(sqldb *sql.DB) error {
	maxHandle := Handle(0)
	note := func(h Handle) {
		if h > maxHandle {
			maxHandle = h
		}
	}

	rows, err := sqldb.Query("SELECT handle FROM entity_sets")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var h Handle
		if err := rows.Scan(&h); err != nil {
			return err
		}
		db.sets[h] = struct{}{}
		note(h)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	strRows, err := sqldb.Query("SELECT name, handle, value FROM tags_str")
	if err != nil {
		return err
	}
	defer strRows.Close()
	for strRows.Next() {
		var name, value string
		var h Handle
		if err := strRows.Scan(&name, &h, &value); err != nil {
			return err
		}
		db.SetTag(h, name, value)
		note(h)
	}
	if err := strRows.Err(); err != nil {
		return err
	}

	intRows, err := sqldb.Query("SELECT name, handle, value FROM tags_int")
	if err != nil {
		return err
	}
	defer intRows.Close()
	for intRows.Next() {
		var name string
		var h Handle
		var value int
		if err := intRows.Scan(&name, &h, &value); err != nil {
			return err
		}
		db.SetIntTag(h, name, value)
		note(h)
	}
	if err := intRows.Err(); err != nil {
		return err
	}

	vertRows, err := sqldb.Query("SELECT handle, x, y, z FROM vertices")
	if err != nil {
		return err
	}
	defer vertRows.Close()
	for vertRows.Next() {
		var h Handle
		var x, y, z float64
		if err := vertRows.Scan(&h, &x, &y, &z); err != nil {
			return err
		}
		db.vertices[h] = r3.Vec{X: x, Y: y, Z: z}
		note(h)
	}
	if err := vertRows.Err(); err != nil {
		return err
	}

	triRows, err := sqldb.Query("SELECT handle, v0, v1, v2 FROM triangles")
	if err != nil {
		return err
	}
	defer triRows.Close()
	for triRows.Next() {
		var h, v0, v1, v2 Handle
		if err := triRows.Scan(&h, &v0, &v1, &v2); err != nil {
			return err
		}
		db.triangles[h] = [3]Handle{v0, v1, v2}
		note(h)
	}
	if err := triRows.Err(); err != nil {
		return err
	}

	contRows, err := sqldb.Query("SELECT set_handle, member_handle FROM set_contents")
	if err != nil {
		return err
	}
	defer contRows.Close()
	for contRows.Next() {
		var set, member Handle
		if err := contRows.Scan(&set, &member); err != nil {
			return err
		}
		if db.contents[set] == nil {
			db.contents[set] = make(map[Handle]struct{})
		}
		db.contents[set][member] = struct{}{}
	}
	if err := contRows.Err(); err != nil {
		return err
	}

	topoRows, err := sqldb.Query("SELECT parent_handle, child_handle FROM topology")
	if err != nil {
		return err
	}
	defer topoRows.Close()
	for topoRows.Next() {
		var parent, child Handle
		if err := topoRows.Scan(&parent, &child); err != nil {
			return err
		}
		if db.children[parent] == nil {
			db.children[parent] = make(map[Handle]struct{})
		}
		if db.parents[child] == nil {
			db.parents[child] = make(map[Handle]struct{})
		}
		db.children[parent][child] = struct{}{}
		db.parents[child][parent] = struct{}{}
	}
	if err := topoRows.Err(); err != nil {
		return err
	}

	senseRows, err := sqldb.Query("SELECT surface_handle, forward_handle, reverse_handle FROM surface_senses")
	if err != nil {
		return err
	}
	defer senseRows.Close()
	for senseRows.Next() {
		var surf, fwd, rev Handle
		if err := senseRows.Scan(&surf, &fwd, &rev); err != nil {
			return err
		}
		db.senses[surf] = [2]Handle{fwd, rev}
	}
	if err := senseRows.Err(); err != nil {
		return err
	}

	db.nextHandle = maxHandle + 1
	return nil
}

func (db *Database) dump(sqldb *sql.DB) error {
	tx, err := sqldb.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for h := range db.sets {
		if _, err := tx.Exec("INSERT INTO entity_sets (handle) VALUES (?)", h); err != nil {
			return err
		}
	}
	for name, values := range db.strTags {
		for h, v := range values {
			if _, err := tx.Exec("INSERT INTO tags_str (name, handle, value) VALUES (?, ?, ?)", name, h, v); err != nil {
				return err
			}
		}
	}
	for name, values := range db.intTags {
		for h, v := range values {
			if _, err := tx.Exec("INSERT INTO tags_int (name, handle, value) VALUES (?, ?, ?)", name, h, v); err != nil {
				return err
			}
		}
	}
	for h, v := range db.vertices {
		if _, err := tx.Exec("INSERT INTO vertices (handle, x, y, z) VALUES (?, ?, ?, ?)", h, v.X, v.Y, v.Z); err != nil {
			return err
		}
	}
	for h, conn := range db.triangles {
		if _, err := tx.Exec("INSERT INTO triangles (handle, v0, v1, v2) VALUES (?, ?, ?, ?)", h, conn[0], conn[1], conn[2]); err != nil {
			return err
		}
	}
	for set, members := range db.contents {
		for member := range members {
			if _, err := tx.Exec("INSERT INTO set_contents (set_handle, member_handle) VALUES (?, ?)", set, member); err != nil {
				return err
			}
		}
	}
	for parent, kids := range db.children {
		for child := range kids {
			if _, err := tx.Exec("INSERT INTO topology (parent_handle, child_handle) VALUES (?, ?)", parent, child); err != nil {
				return err
			}
		}
	}
	for surf, pair := range db.senses {
		if _, err := tx.Exec("INSERT INTO surface_senses (surface_handle, forward_handle, reverse_handle) VALUES (?, ?, ?)", surf, pair[0], pair[1]); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("INSERT INTO format_info (key, value) VALUES ('generator', 'godagmc')"); err != nil {
		return err
	}

	return tx.Commit()
}
