package mosaic

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// TileDB caches the average color of tiles keyed by the SHA-1 of their
// undecoded bytes, so unchanged tiles are not decoded again when a palette
// is rebuilt.
type TileDB struct {
	db *sql.DB
}

// NewTileDB opens or creates the sqlite database in file.
func NewTileDB(file string) (*TileDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS tile (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, r REAL NOT NULL, g REAL NOT NULL, b REAL NOT NULL, a REAL NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &TileDB{
		db: db,
	}, nil
}

func (db *TileDB) Close() error {
	return db.db.Close()
}

// FindColorBySHA1 returns the cached average for the tile with the given
// hash. The boolean is false if there is none.
func (db *TileDB) FindColorBySHA1(sha string) (Color, bool, error) {
	var r, g, b, a float64
	switch err := db.db.QueryRow("SELECT r, g, b, a FROM tile WHERE sha1 = ?", sha).Scan(&r, &g, &b, &a); err {
	case sql.ErrNoRows:
		return Color{}, false, nil
	case nil:
		return Color{float32(r), float32(g), float32(b), float32(a)}, true, nil
	default:
		return Color{}, false, err
	}
}

// AddColor stores the average for the tile with the given hash, replacing
// any previous value.
func (db *TileDB) AddColor(sha string, c Color) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO tile (sha1, r, g, b, a) VALUES (?, ?, ?, ?, ?)", sha, float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3])); err != nil {
		return err
	}
	return nil
}

// Length returns the number of cached tiles.
func (db *TileDB) Length() (int, error) {
	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM tile").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
