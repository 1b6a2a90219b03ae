// Package snapshot holds a client-side copy of fetched bookmarks and
// re-derives filtered, sorted views of it without a server round trip.
// The snapshot is a cache: it is only as fresh as the last Set call, and
// it never re-fetches on its own.
package snapshot

import (
	"sync"
	"time"

	"github.com/jspencer/markd/internal/store"
)

type SortBy string

const (
	SortDateNewest SortBy = "date-newest"
	SortDateOldest SortBy = "date-oldest"
	SortAlphaAZ    SortBy = "alpha-az"
	SortAlphaZA    SortBy = "alpha-za"
)

type FilterType string

const (
	FilterAll         FilterType = "all"
	FilterFavorites   FilterType = "favorites"
	FilterWithTags    FilterType = "with-tags"
	FilterWithoutTags FilterType = "without-tags"
)

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Bookmark is the client-side shape of a bookmark. Tags holds tag ids
// (the space the tag filter operates on), TagNames the display names.
type Bookmark struct {
	ID           string
	Title        string
	URL          string
	Description  string
	Favicon      string
	CollectionID string
	Tags         []string
	TagNames     []string
	CreatedAt    time.Time
	IsFavorite   bool
	HasDarkIcon  bool
}

// FromTagged converts fetched store rows into snapshot bookmarks.
func FromTagged(rows []*store.TaggedBookmark) []Bookmark {
	out := make([]Bookmark, 0, len(rows))
	for _, r := range rows {
		out = append(out, Bookmark{
			ID:           r.ID,
			Title:        r.Title,
			URL:          r.URL,
			Description:  r.Description,
			Favicon:      r.Favicon,
			CollectionID: r.CollectionID.String,
			Tags:         r.TagIDList(),
			TagNames:     r.TagNameList(),
			CreatedAt:    r.CreatedAt,
			IsFavorite:   r.IsFavorite,
			HasDarkIcon:  r.HasDarkIcon,
		})
	}
	return out
}

// Store is the shared, observable client state: one slice per status
// partition plus the current filter and sort selections. All mutation
// goes through named methods; views are derived on demand and never
// cached.
type Store struct {
	mu sync.RWMutex

	bookmarks []Bookmark // active partition
	archived  []Bookmark
	trashed   []Bookmark

	selectedCollection string
	selectedTags       []string
	searchQuery        string
	viewMode           ViewMode
	sortBy             SortBy
	filterType         FilterType
}

func NewStore() *Store {
	return &Store{
		selectedCollection: "all",
		viewMode:           ViewGrid,
		sortBy:             SortDateNewest,
		filterType:         FilterAll,
	}
}

// SetBookmarks replaces the active partition, typically after a fetch.
func (s *Store) SetBookmarks(bookmarks []Bookmark) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarks = bookmarks
}

// SetArchived replaces the archived partition.
func (s *Store) SetArchived(bookmarks []Bookmark) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archived = bookmarks
}

// SetTrashed replaces the trashed partition.
func (s *Store) SetTrashed(bookmarks []Bookmark) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trashed = bookmarks
}

// AddBookmark prepends a newly created bookmark to the active partition.
func (s *Store) AddBookmark(b Bookmark) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarks = append([]Bookmark{b}, s.bookmarks...)
}

func (s *Store) SelectCollection(collectionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCollection = collectionID
}

// ToggleTag adds tagID to the multi-select, or removes it if present.
func (s *Store) ToggleTag(tagID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.selectedTags {
		if t == tagID {
			s.selectedTags = append(s.selectedTags[:i], s.selectedTags[i+1:]...)
			return
		}
	}
	s.selectedTags = append(s.selectedTags, tagID)
}

func (s *Store) ClearTags() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedTags = nil
}

func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
}

func (s *Store) SetViewMode(mode ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewMode = mode
}

func (s *Store) SetSortBy(sortBy SortBy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortBy = sortBy
}

func (s *Store) SetFilterType(filterType FilterType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterType = filterType
}

func (s *Store) ViewModeState() ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewMode
}

// ToggleFavorite flips the local favorite flag and returns the new value,
// so the caller can send exactly that value to the server. The reported
// bool is false when the bookmark is not in the active partition.
func (s *Store) ToggleFavorite(id string) (newValue, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookmarks {
		if s.bookmarks[i].ID == id {
			s.bookmarks[i].IsFavorite = !s.bookmarks[i].IsFavorite
			return s.bookmarks[i].IsFavorite, true
		}
	}
	return false, false
}

// Archive moves a bookmark from the active to the archived partition.
func (s *Store) Archive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarks, s.archived = move(s.bookmarks, s.archived, id)
}

// RestoreFromArchive moves a bookmark back to the active partition.
func (s *Store) RestoreFromArchive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archived, s.bookmarks = move(s.archived, s.bookmarks, id)
}

// Trash moves a bookmark from the active to the trashed partition.
func (s *Store) Trash(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarks, s.trashed = move(s.bookmarks, s.trashed, id)
}

// RestoreFromTrash moves a bookmark back to the active partition.
func (s *Store) RestoreFromTrash(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trashed, s.bookmarks = move(s.trashed, s.bookmarks, id)
}

// PermanentlyDelete drops a bookmark from the trashed partition.
func (s *Store) PermanentlyDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trashed = remove(s.trashed, id)
}

// move transfers the bookmark with id from src to dst. When id is absent
// both slices come back unchanged.
func move(src, dst []Bookmark, id string) ([]Bookmark, []Bookmark) {
	for i, b := range src {
		if b.ID == id {
			out := make([]Bookmark, 0, len(src)-1)
			out = append(out, src[:i]...)
			out = append(out, src[i+1:]...)
			return out, append(dst, b)
		}
	}
	return src, dst
}

func remove(list []Bookmark, id string) []Bookmark {
	for i, b := range list {
		if b.ID == id {
			out := make([]Bookmark, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	return list
}
