package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Bookmark status partitions. A bookmark is visible only through queries
// that request its current status.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
	StatusTrashed  = "trashed"
)

// BookmarkStoreIface exposes all bookmark data operations.
// No handler queries the DB directly; all access goes through this interface.
type BookmarkStoreIface interface {
	Create(ctx context.Context, p CreateBookmarkParams) (string, error)
	GetByID(ctx context.Context, id string) (*TaggedBookmark, error)
	List(ctx context.Context, f Filter) ([]*TaggedBookmark, error)
	Update(ctx context.Context, id string, p UpdateBookmarkParams) error
	Archive(ctx context.Context, id string) error
	Trash(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// CollectionStoreIface exposes collection operations.
type CollectionStoreIface interface {
	Create(ctx context.Context, name, icon, color string) (string, error)
	ListAll(ctx context.Context) ([]*Collection, error)
}

// TagStoreIface exposes tag operations.
type TagStoreIface interface {
	Create(ctx context.Context, name, color string) (string, error)
	Ensure(ctx context.Context, name string) (*Tag, error)
	ListAll(ctx context.Context) ([]*Tag, error)
}
