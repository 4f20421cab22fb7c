// Package sqlite implements the corpus item store on SQLite.
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/ndrplz/eurlex-toolbox/pkg/eurlex/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db      *sql.DB
	entropy *ulid.MonotonicEntropy
}

// Open opens a SQLite database with WAL mode enabled and initializes the
// schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS items (
	id TEXT NOT NULL,
	path TEXT PRIMARY KEY,
	title TEXT,
	coll TEXT,
	com TEXT,
	legal_value TEXT,
	date TEXT,
	body_text TEXT
);

CREATE TABLE IF NOT EXISTS item_authors (
	item_path TEXT NOT NULL,
	pos INTEGER NOT NULL,
	author TEXT NOT NULL,
	PRIMARY KEY(item_path, pos),
	FOREIGN KEY(item_path) REFERENCES items(path) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS item_legal_bases (
	item_path TEXT NOT NULL,
	pos INTEGER NOT NULL,
	citation TEXT NOT NULL,
	PRIMARY KEY(item_path, pos),
	FOREIGN KEY(item_path) REFERENCES items(path) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS item_locations (
	item_path TEXT NOT NULL,
	name TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(item_path, name),
	FOREIGN KEY(item_path) REFERENCES items(path) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveItem inserts or updates an item keyed by its metadata path. The ULID
// assigned on first insert is preserved across updates.
func (s *sqliteStore) SaveItem(ctx context.Context, it store.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id := it.ID
	if id == "" {
		id = ulid.MustNew(ulid.Now(), s.entropy).String()
	}

	const stmt = `
INSERT INTO items (id, path, title, coll, com, legal_value, date, body_text)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
	title=excluded.title,
	coll=excluded.coll,
	com=excluded.com,
	legal_value=excluded.legal_value,
	date=excluded.date,
	body_text=excluded.body_text;
`

	if _, err := tx.ExecContext(ctx, stmt,
		id, it.Path, it.Title, it.Coll, it.Com, it.LegalValue, it.Date, it.Text,
	); err != nil {
		return err
	}

	if err := replaceAuthors(ctx, tx, it.Path, it.Authors); err != nil {
		return err
	}
	if err := replaceLegalBases(ctx, tx, it.Path, it.LegalBases); err != nil {
		return err
	}
	if err := replaceLocations(ctx, tx, it.Path, it.Locations); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceAuthors(ctx context.Context, tx *sql.Tx, path string, authors []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM item_authors WHERE item_path=?`, path); err != nil {
		return err
	}
	if len(authors) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO item_authors (item_path, pos, author) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, a := range authors {
		if _, err := stmt.ExecContext(ctx, path, i, a); err != nil {
			return err
		}
	}
	return nil
}

func replaceLegalBases(ctx context.Context, tx *sql.Tx, path string, bases []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM item_legal_bases WHERE item_path=?`, path); err != nil {
		return err
	}
	if len(bases) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO item_legal_bases (item_path, pos, citation) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, b := range bases {
		if _, err := stmt.ExecContext(ctx, path, i, b); err != nil {
			return err
		}
	}
	return nil
}

func replaceLocations(ctx context.Context, tx *sql.Tx, path string, locs map[string]int) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM item_locations WHERE item_path=?`, path); err != nil {
		return err
	}
	if len(locs) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO item_locations (item_path, name, count) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for name, count := range locs {
		if _, err := stmt.ExecContext(ctx, path, name, count); err != nil {
			return err
		}
	}
	return nil
}

// GetItemByPath looks an item up by its metadata path.
func (s *sqliteStore) GetItemByPath(ctx context.Context, path string) (store.Item, bool, error) {
	var it store.Item
	err := s.db.QueryRowContext(ctx, `
SELECT id, path, title, coll, com, legal_value, date, body_text
FROM items WHERE path=?`, path).Scan(
		&it.ID, &it.Path, &it.Title, &it.Coll, &it.Com, &it.LegalValue, &it.Date, &it.Text,
	)
	if err == sql.ErrNoRows {
		return store.Item{}, false, nil
	}
	if err != nil {
		return store.Item{}, false, err
	}
	if err := s.loadChildren(ctx, &it); err != nil {
		return store.Item{}, false, err
	}
	return it, true, nil
}

// ListItems returns all stored items ordered by metadata path.
func (s *sqliteStore) ListItems(ctx context.Context) ([]store.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, path, title, coll, com, legal_value, date, body_text
FROM items ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []store.Item
	for rows.Next() {
		var it store.Item
		if err := rows.Scan(
			&it.ID, &it.Path, &it.Title, &it.Coll, &it.Com, &it.LegalValue, &it.Date, &it.Text,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		if err := s.loadChildren(ctx, &items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// CountItems returns the number of stored items.
func (s *sqliteStore) CountItems(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n)
	return n, err
}

func (s *sqliteStore) loadChildren(ctx context.Context, it *store.Item) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT author FROM item_authors WHERE item_path=? ORDER BY pos`, it.Path)
	if err != nil {
		return err
	}
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			rows.Close()
			return err
		}
		it.Authors = append(it.Authors, a)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx,
		`SELECT citation FROM item_legal_bases WHERE item_path=? ORDER BY pos`, it.Path)
	if err != nil {
		return err
	}
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			rows.Close()
			return err
		}
		it.LegalBases = append(it.LegalBases, b)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx,
		`SELECT name, count FROM item_locations WHERE item_path=?`, it.Path)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return err
		}
		if it.Locations == nil {
			it.Locations = make(map[string]int)
		}
		it.Locations[name] = count
	}
	return rows.Err()
}
