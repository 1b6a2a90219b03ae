package store

import "strings"

// Filter describes one bookmark fetch: the status partition to read and
// the optional constraints layered on top of it. Fields hold the raw
// query-string values; malformed input degrades to "no constraint" rather
// than an error.
type Filter struct {
	Status       string // "" selects the active partition
	CollectionID string // "" or the sentinel "all" imposes no constraint
	Favorite     string // only the literal "true" constrains
	Search       string // case-insensitive substring over title, description, url
	Tags         string // comma-separated tag ids; a bookmark matches on any of them
}

// Predicate is a single conjunctive WHERE clause with its bound values.
// Slice-valued args are IN lists and get expanded by sqlx.In at compile
// time.
type Predicate struct {
	Clause string
	Args   []any
}

// Predicates expands the filter into its clause list. The order is fixed
// (status, collection, favorite, search, tags); it only matters for
// parameter positions, the clauses are ANDed so result semantics are
// order-independent.
func (f Filter) Predicates() []Predicate {
	status := f.Status
	if status == "" {
		status = StatusActive
	}
	preds := []Predicate{{Clause: "b.status = ?", Args: []any{status}}}

	if f.CollectionID != "" && f.CollectionID != "all" {
		preds = append(preds, Predicate{Clause: "b.collection_id = ?", Args: []any{f.CollectionID}})
	}

	if f.Favorite == "true" {
		preds = append(preds, Predicate{Clause: "b.is_favorite = ?", Args: []any{true}})
	}

	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		preds = append(preds, Predicate{
			Clause: "(LOWER(b.title) LIKE ? OR LOWER(b.description) LIKE ? OR LOWER(b.url) LIKE ?)",
			Args:   []any{pattern, pattern, pattern},
		})
	}

	if ids := f.TagIDs(); len(ids) > 0 {
		preds = append(preds, Predicate{Clause: "t.id IN (?)", Args: []any{ids}})
	}

	return preds
}

// TagIDs parses the comma-separated tag list, dropping empty entries.
func (f Filter) TagIDs() []string {
	if f.Tags == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(f.Tags, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// where folds the predicate list into one WHERE body and a flat argument
// sequence.
func (f Filter) where() (string, []any) {
	var clauses []string
	var args []any
	for _, p := range f.Predicates() {
		clauses = append(clauses, p.Clause)
		args = append(args, p.Args...)
	}
	return strings.Join(clauses, " AND "), args
}
