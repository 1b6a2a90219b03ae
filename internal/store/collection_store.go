package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Defaults applied when a collection is created without an icon or color.
const (
	DefaultCollectionIcon  = "folder"
	DefaultCollectionColor = "neutral"
)

// Collection represents a row in the collections table. Count is
// maintained by increment side effects, not recomputation, so it can
// drift from the true membership after deletes.
type Collection struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Icon  string `db:"icon"`
	Color string `db:"color"`
	Count int    `db:"count"`
}

// CollectionStore is the sqlx-backed implementation of CollectionStoreIface.
type CollectionStore struct {
	db *sqlx.DB
}

func NewCollectionStore(db *sqlx.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

// Create inserts a collection with a zero bookmark count.
func (s *CollectionStore) Create(ctx context.Context, name, icon, color string) (string, error) {
	if icon == "" {
		icon = DefaultCollectionIcon
	}
	if color == "" {
		color = DefaultCollectionColor
	}
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO collections (id, name, icon, color, count) VALUES (?, ?, ?, ?, 0)
	`), id, name, icon, color)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetByID returns the collection matching id, or ErrNotFound.
func (s *CollectionStore) GetByID(ctx context.Context, id string) (*Collection, error) {
	var c Collection
	err := s.db.GetContext(ctx, &c, s.db.Rebind(`SELECT * FROM collections WHERE id = ?`), id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListAll returns all collections ordered by name.
func (s *CollectionStore) ListAll(ctx context.Context) ([]*Collection, error) {
	var collections []*Collection
	err := s.db.SelectContext(ctx, &collections, `SELECT * FROM collections ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collections, nil
}

// IncrementCount bumps the denormalized bookmark count.
func (s *CollectionStore) IncrementCount(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE collections SET count = count + 1 WHERE id = ?`), id)
	return err
}
