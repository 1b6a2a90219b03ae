package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// DefaultTagColor is applied to tags created implicitly while saving a
// bookmark, and to explicit creates that omit a color.
const DefaultTagColor = "bg-gray-500/10 text-gray-500"

// Tag represents a row in the tags table. Count tracks how many bookmarks
// have ever referenced the tag; it is incremented on use and never
// decremented.
type Tag struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Color string `db:"color"`
	Count int    `db:"count"`
}

// TagStore is the sqlx-backed implementation of TagStoreIface.
type TagStore struct {
	db *sqlx.DB
}

func NewTagStore(db *sqlx.DB) *TagStore {
	return &TagStore{db: db}
}

// Create inserts a tag with a zero usage count.
func (s *TagStore) Create(ctx context.Context, name, color string) (string, error) {
	if color == "" {
		color = DefaultTagColor
	}
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO tags (id, name, color, count) VALUES (?, ?, ?, 0)
	`), id, name, color)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Ensure looks a tag up by name, creating it on first use. A new tag
// starts at count 1; an existing tag has its count incremented. Name
// uniqueness is only as strong as this lookup-or-create path.
func (s *TagStore) Ensure(ctx context.Context, name string) (*Tag, error) {
	var existing Tag
	err := s.db.GetContext(ctx, &existing, s.db.Rebind(`SELECT * FROM tags WHERE name = ?`), name)
	if err == nil {
		_, err = s.db.ExecContext(ctx, s.db.Rebind(`UPDATE tags SET count = count + 1 WHERE id = ?`), existing.ID)
		if err != nil {
			return nil, err
		}
		existing.Count++
		return &existing, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO tags (id, name, color, count) VALUES (?, ?, ?, 1)
	`), id, name, DefaultTagColor)
	if err != nil {
		return nil, err
	}
	return &Tag{ID: id, Name: name, Color: DefaultTagColor, Count: 1}, nil
}

// GetByID returns the tag matching id, or ErrNotFound.
func (s *TagStore) GetByID(ctx context.Context, id string) (*Tag, error) {
	var t Tag
	err := s.db.GetContext(ctx, &t, s.db.Rebind(`SELECT * FROM tags WHERE id = ?`), id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListAll returns all tags ordered by name.
func (s *TagStore) ListAll(ctx context.Context) ([]*Tag, error) {
	var tags []*Tag
	err := s.db.SelectContext(ctx, &tags, `SELECT * FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return tags, nil
}
