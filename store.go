package palettize

import (
	"database/sql"
	"fmt"
	"image/color"

	"github.com/bodgit/palettize/table"
	_ "github.com/mattn/go-sqlite3"
)

// Store is a SQLite database of per image color histograms.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the database in file.
func NewStore(file string) (*Store, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS histogram (image_id INTEGER NOT NULL, red INTEGER NOT NULL, green INTEGER NOT NULL, blue INTEGER NOT NULL, pixels INTEGER NOT NULL, UNIQUE(image_id, red, green, blue), FOREIGN KEY(image_id) REFERENCES image(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db: db,
	}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func addImage(tx *sql.Tx, name string) (int64, error) {
	var id int64
	switch err := tx.QueryRow("SELECT id FROM image WHERE name = ?", name).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := tx.Exec("INSERT INTO image (name) VALUES (?)", name)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// Import records the histogram of every image in t. An image that was
// imported before has its histogram replaced.
func (s *Store) Import(t *table.Table) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if err := importHistogram(tx, t.Histogram()); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func importHistogram(tx *sql.Tx, counts []table.Count) error {
	ids := make(map[string]int64)
	for _, c := range counts {
		id, ok := ids[c.Name]
		if !ok {
			var err error
			if id, err = addImage(tx, c.Name); err != nil {
				return err
			}
			if _, err = tx.Exec("DELETE FROM histogram WHERE image_id = ?", id); err != nil {
				return err
			}
			ids[c.Name] = id
		}

		if _, err := tx.Exec("INSERT INTO histogram (image_id, red, green, blue, pixels) VALUES (?, ?, ?, ?, ?)", id, c.Color.R, c.Color.G, c.Color.B, c.Pixels); err != nil {
			return err
		}
	}
	return nil
}

// Images returns the names of all imported images in import order.
func (s *Store) Images() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM image ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Histogram returns the stored histogram for the named image, most frequent
// color first. It returns nil if the image is unknown.
func (s *Store) Histogram(name string) ([]table.Count, error) {
	rows, err := s.db.Query("SELECT h.red, h.green, h.blue, h.pixels FROM histogram AS h JOIN image AS i ON h.image_id = i.id WHERE i.name = ? ORDER BY h.pixels DESC, h.rowid", name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []table.Count
	for rows.Next() {
		var r, g, b uint8
		var pixels int
		if err := rows.Scan(&r, &g, &b, &pixels); err != nil {
			return nil, err
		}
		counts = append(counts, table.Count{
			Name:   name,
			Color:  color.RGBA{r, g, b, 0xff},
			Pixels: pixels,
		})
	}
	return counts, rows.Err()
}
