package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jspencer/markd/internal/favicon"
)

// Bookmark represents a row in the bookmarks table.
type Bookmark struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	URL          string         `db:"url"`
	Description  string         `db:"description"`
	Favicon      string         `db:"favicon"`
	CollectionID sql.NullString `db:"collection_id"`
	IsFavorite   bool           `db:"is_favorite"`
	HasDarkIcon  bool           `db:"has_dark_icon"`
	Status       string         `db:"status"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// TaggedBookmark is a Bookmark augmented with its aggregated tags.
// TagNames carries display names, TagIDs the identifiers the tag filter
// operates on; both are comma-joined and empty for untagged bookmarks.
type TaggedBookmark struct {
	Bookmark
	TagNames string `db:"tag_names"`
	TagIDs   string `db:"tag_ids"`
}

// TagNameList returns the tag names as a slice.
func (b *TaggedBookmark) TagNameList() []string {
	if b.TagNames == "" {
		return nil
	}
	return strings.Split(b.TagNames, ",")
}

// TagIDList returns the tag ids as a slice.
func (b *TaggedBookmark) TagIDList() []string {
	if b.TagIDs == "" {
		return nil
	}
	return strings.Split(b.TagIDs, ",")
}

// CreateBookmarkParams carries the fields accepted at creation. Absent
// fields are zero values; none are rejected.
type CreateBookmarkParams struct {
	Title        string
	URL          string
	Description  string
	Favicon      string
	CollectionID string
	Tags         []string
	IsFavorite   bool
	HasDarkIcon  bool
}

// UpdateBookmarkParams carries a partial update. Nil pointers leave the
// column unchanged.
type UpdateBookmarkParams struct {
	Title        *string
	URL          *string
	Description  *string
	Favicon      *string
	CollectionID *string
	IsFavorite   *bool
	HasDarkIcon  *bool
}

// BookmarkStore is the sqlx-backed implementation of BookmarkStoreIface.
type BookmarkStore struct {
	db          *sqlx.DB
	tags        *TagStore
	collections *CollectionStore
}

func NewBookmarkStore(db *sqlx.DB, tags *TagStore, collections *CollectionStore) *BookmarkStore {
	return &BookmarkStore{db: db, tags: tags, collections: collections}
}

// Create inserts a new bookmark with status "active", linking it to its
// tags (created on first use) and bumping the collection count. The steps
// are not wrapped in a transaction: a failure after the bookmark insert
// leaves the row in place without its tag links.
func (s *BookmarkStore) Create(ctx context.Context, p CreateBookmarkParams) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	fav := p.Favicon
	if fav == "" {
		fav = favicon.Derive(p.URL)
	}

	var collectionID any
	if p.CollectionID != "" {
		collectionID = p.CollectionID
	}

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO bookmarks (id, title, url, description, favicon, collection_id, is_favorite, has_dark_icon, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'active', ?, ?)
	`), id, p.Title, p.URL, p.Description, fav, collectionID, p.IsFavorite, p.HasDarkIcon, now, now)
	if err != nil {
		return "", err
	}

	for _, name := range p.Tags {
		tag, err := s.tags.Ensure(ctx, name)
		if err != nil {
			return "", err
		}
		_, err = s.db.ExecContext(ctx, s.db.Rebind(`
			INSERT INTO bookmark_tags (bookmark_id, tag_id) VALUES (?, ?)
		`), id, tag.ID)
		if err != nil {
			return "", err
		}
	}

	if p.CollectionID != "" {
		if err := s.collections.IncrementCount(ctx, p.CollectionID); err != nil {
			return "", err
		}
	}

	return id, nil
}

// List compiles the filter into one aggregation query and returns one row
// per matching bookmark, newest first. The tag predicate applies to the
// joined tag rows before GROUP BY; a bookmark whose only tags fall outside
// the requested set is excluded rather than surviving with its match
// aggregated away.
func (s *BookmarkStore) List(ctx context.Context, f Filter) ([]*TaggedBookmark, error) {
	where, args := f.where()
	query := `
		SELECT b.*,
			COALESCE(GROUP_CONCAT(DISTINCT t.name), '') AS tag_names,
			COALESCE(GROUP_CONCAT(DISTINCT t.id), '') AS tag_ids
		FROM bookmarks b
		LEFT JOIN bookmark_tags bt ON bt.bookmark_id = b.id
		LEFT JOIN tags t ON t.id = bt.tag_id
		WHERE ` + where + `
		GROUP BY b.id
		ORDER BY b.created_at DESC`

	query, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, err
	}

	var rows []*TaggedBookmark
	err = s.db.SelectContext(ctx, &rows, s.db.Rebind(query), expanded...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID returns a bookmark in any status partition, or ErrNotFound.
func (s *BookmarkStore) GetByID(ctx context.Context, id string) (*TaggedBookmark, error) {
	var b TaggedBookmark
	err := s.db.GetContext(ctx, &b, s.db.Rebind(`
		SELECT b.*,
			COALESCE(GROUP_CONCAT(DISTINCT t.name), '') AS tag_names,
			COALESCE(GROUP_CONCAT(DISTINCT t.id), '') AS tag_ids
		FROM bookmarks b
		LEFT JOIN bookmark_tags bt ON bt.bookmark_id = b.id
		LEFT JOIN tags t ON t.id = bt.tag_id
		WHERE b.id = ?
		GROUP BY b.id`), id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Update applies a partial field update. updated_at is always refreshed,
// even when no other field changed. The is_favorite value is applied
// verbatim; the server row is the source of truth for the favorite flag.
func (s *BookmarkStore) Update(ctx context.Context, id string, p UpdateBookmarkParams) error {
	var fields []string
	var values []any

	set := func(column string, v any) {
		fields = append(fields, column+" = ?")
		values = append(values, v)
	}

	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.URL != nil {
		set("url", *p.URL)
	}
	if p.Description != nil {
		set("description", *p.Description)
	}
	if p.Favicon != nil {
		set("favicon", *p.Favicon)
	}
	if p.CollectionID != nil {
		if *p.CollectionID == "" {
			set("collection_id", nil)
		} else {
			set("collection_id", *p.CollectionID)
		}
	}
	if p.IsFavorite != nil {
		set("is_favorite", *p.IsFavorite)
	}
	if p.HasDarkIcon != nil {
		set("has_dark_icon", *p.HasDarkIcon)
	}

	set("updated_at", time.Now().UTC())
	values = append(values, id)

	query := `UPDATE bookmarks SET ` + strings.Join(fields, ", ") + ` WHERE id = ?`
	_, err := s.db.ExecContext(ctx, s.db.Rebind(query), values...)
	return err
}

// Archive moves a bookmark to the archived partition. Archiving an
// already-archived bookmark changes nothing observable.
func (s *BookmarkStore) Archive(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, StatusArchived)
}

// Trash moves a bookmark to the trashed partition.
func (s *BookmarkStore) Trash(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, StatusTrashed)
}

// Restore returns a bookmark to the active partition. The same action
// serves both the archived and the trashed source states.
func (s *BookmarkStore) Restore(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, StatusActive)
}

func (s *BookmarkStore) setStatus(ctx context.Context, id, status string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE bookmarks SET status = ?, updated_at = ? WHERE id = ?
	`), status, time.Now().UTC(), id)
	return err
}

// Delete permanently removes a bookmark: association rows first, then the
// row itself. Tag and collection counts are left untouched, matching the
// increment-only accounting done at creation.
func (s *BookmarkStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM bookmark_tags WHERE bookmark_id = ?`), id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM bookmarks WHERE id = ?`), id)
	return err
}
