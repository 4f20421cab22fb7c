// Package store defines persistence for assembled corpus items.
package store

import "context"

// Store persists corpus items for later analysis.
type Store interface {
	Close() error

	// SaveItem inserts or updates an item, keyed by its metadata path.
	SaveItem(ctx context.Context, it Item) error
	// GetItemByPath looks an item up by its metadata path.
	GetItemByPath(ctx context.Context, path string) (Item, bool, error)
	// ListItems returns all stored items ordered by metadata path.
	ListItems(ctx context.Context) ([]Item, error)
	// CountItems returns the number of stored items.
	CountItems(ctx context.Context) (int64, error)
}

// Item is the stored projection of one corpus item.
type Item struct {
	ID         string // assigned on first save
	Path       string // metadata document path, unique
	Title      string
	Coll       string
	Com        string
	LegalValue string
	Date       string // effective date, yyyy/mm/dd or the sentinel
	Text       string
	Authors    []string
	LegalBases []string
	Locations  map[string]int
}
