package snapshot

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filtered derives the active-partition view for the current filter and
// sort state. The pipeline runs collection, tags, search, filterType,
// then sort; the snapshot itself is never mutated. The same semantics
// drive the server-side query compiler, so for identical inputs both
// paths select the same bookmarks.
func (s *Store) Filtered() []Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]Bookmark, len(s.bookmarks))
	copy(filtered, s.bookmarks)

	if s.selectedCollection != "all" {
		filtered = keep(filtered, func(b Bookmark) bool {
			return b.CollectionID == s.selectedCollection
		})
	}

	// Tag multi-select is OR within the set: any shared tag id matches.
	// An empty selection imposes no constraint.
	if len(s.selectedTags) > 0 {
		filtered = keep(filtered, func(b Bookmark) bool {
			return anyTagMatch(b.Tags, s.selectedTags)
		})
	}

	if s.searchQuery != "" {
		filtered = keep(filtered, matchesSearch(s.searchQuery))
	}

	switch s.filterType {
	case FilterFavorites:
		filtered = keep(filtered, func(b Bookmark) bool { return b.IsFavorite })
	case FilterWithTags:
		filtered = keep(filtered, func(b Bookmark) bool { return len(b.Tags) > 0 })
	case FilterWithoutTags:
		filtered = keep(filtered, func(b Bookmark) bool { return len(b.Tags) == 0 })
	}

	sortBookmarks(filtered, s.sortBy)
	return filtered
}

// Favorites derives the favorite view: favorites narrowed by the current
// search query, in the current sort order.
func (s *Store) Favorites() []Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := keep(append([]Bookmark(nil), s.bookmarks...), func(b Bookmark) bool {
		return b.IsFavorite
	})
	if s.searchQuery != "" {
		filtered = keep(filtered, matchesSearch(s.searchQuery))
	}
	sortBookmarks(filtered, s.sortBy)
	return filtered
}

// Archived derives the archived view, narrowed by the current search
// query only.
func (s *Store) Archived() []Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return searchOnly(s.archived, s.searchQuery)
}

// Trashed derives the trashed view, narrowed by the current search query
// only.
func (s *Store) Trashed() []Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return searchOnly(s.trashed, s.searchQuery)
}

func searchOnly(list []Bookmark, query string) []Bookmark {
	filtered := make([]Bookmark, len(list))
	copy(filtered, list)
	if query != "" {
		filtered = keep(filtered, matchesSearch(query))
	}
	return filtered
}

// matchesSearch reports whether a bookmark's title, description, or url
// contains the query, case-insensitively.
func matchesSearch(query string) func(Bookmark) bool {
	q := strings.ToLower(query)
	return func(b Bookmark) bool {
		return strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Description), q) ||
			strings.Contains(strings.ToLower(b.URL), q)
	}
}

func anyTagMatch(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func keep(list []Bookmark, pred func(Bookmark) bool) []Bookmark {
	out := list[:0]
	for _, b := range list {
		if pred(b) {
			out = append(out, b)
		}
	}
	return out
}

// sortBookmarks orders the view in place. Title orders use locale
// collation, so "apple" sorts before "Banana".
func sortBookmarks(list []Bookmark, by SortBy) {
	switch by {
	case SortDateOldest:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		})
	case SortAlphaAZ:
		c := collate.New(language.Und)
		sort.SliceStable(list, func(i, j int) bool {
			return c.CompareString(list[i].Title, list[j].Title) < 0
		})
	case SortAlphaZA:
		c := collate.New(language.Und)
		sort.SliceStable(list, func(i, j int) bool {
			return c.CompareString(list[i].Title, list[j].Title) > 0
		})
	default: // SortDateNewest
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		})
	}
}
