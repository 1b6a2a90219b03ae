package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jspencer/markd/internal/store"
	"github.com/jspencer/markd/internal/testutil"
)

// testEnv holds the stores plus the raw handle for row-level assertions.
type testEnv struct {
	DB          *sqlx.DB
	Bookmarks   *store.BookmarkStore
	Tags        *store.TagStore
	Collections *store.CollectionStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	tags := store.NewTagStore(db)
	collections := store.NewCollectionStore(db)
	return &testEnv{
		DB:          db,
		Bookmarks:   store.NewBookmarkStore(db, tags, collections),
		Tags:        tags,
		Collections: collections,
	}
}

// seedBookmark creates a bookmark and pauses briefly so created_at values
// stay distinct for ordering assertions.
func seedBookmark(t *testing.T, env *testEnv, p store.CreateBookmarkParams) string {
	t.Helper()
	id, err := env.Bookmarks.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	return id
}

// tagIDByName resolves a tag id after implicit creation.
func tagIDByName(t *testing.T, env *testEnv, name string) string {
	t.Helper()
	tags, err := env.Tags.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll tags: %v", err)
	}
	for _, tag := range tags {
		if tag.Name == name {
			return tag.ID
		}
	}
	t.Fatalf("tag %q not found", name)
	return ""
}

func listIDs(t *testing.T, env *testEnv, f store.Filter) []string {
	t.Helper()
	rows, err := env.Bookmarks.List(context.Background(), f)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestBookmarkStore_CreateRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.Bookmarks.Create(ctx, store.CreateBookmarkParams{
		Title: "Example",
		URL:   "https://example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := env.Bookmarks.List(ctx, store.Filter{Status: "active"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len = %d, want 1", len(rows))
	}
	b := rows[0]
	if b.ID != id {
		t.Errorf("id = %q, want %q", b.ID, id)
	}
	if b.Title != "Example" {
		t.Errorf("title = %q", b.Title)
	}
	if b.Status != store.StatusActive {
		t.Errorf("status = %q, want active", b.Status)
	}
	if want := "https://www.google.com/s2/favicons?domain=example.com&sz=64"; b.Favicon != want {
		t.Errorf("favicon = %q, want %q", b.Favicon, want)
	}
	if got := b.TagNameList(); got != nil {
		t.Errorf("tags = %v, want none", got)
	}
}

func TestBookmarkStore_Create_KeepsSuppliedFavicon(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.Bookmarks.Create(ctx, store.CreateBookmarkParams{
		URL:     "https://example.com",
		Favicon: "https://example.com/icon.png",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := env.Bookmarks.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if b.Favicon != "https://example.com/icon.png" {
		t.Errorf("favicon = %q", b.Favicon)
	}
}

func TestBookmarkStore_Create_UnparsableURLEmptyFavicon(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.Bookmarks.Create(ctx, store.CreateBookmarkParams{URL: "://not-a-url"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := env.Bookmarks.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if b.Favicon != "" {
		t.Errorf("favicon = %q, want empty", b.Favicon)
	}
}

func TestBookmarkStore_Create_TagSideEffects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seedBookmark(t, env, store.CreateBookmarkParams{Title: "one", URL: "https://a.com", Tags: []string{"go"}})
	seedBookmark(t, env, store.CreateBookmarkParams{Title: "two", URL: "https://b.com", Tags: []string{"go", "web"}})

	tags, err := env.Tags.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	byName := map[string]*store.Tag{}
	for _, tag := range tags {
		byName[tag.Name] = tag
	}
	if byName["go"] == nil || byName["go"].Count != 2 {
		t.Errorf("go count = %+v, want 2", byName["go"])
	}
	if byName["web"] == nil || byName["web"].Count != 1 {
		t.Errorf("web count = %+v, want 1", byName["web"])
	}
	if byName["go"].Color != store.DefaultTagColor {
		t.Errorf("color = %q, want default", byName["go"].Color)
	}
}

func TestBookmarkStore_Create_CollectionCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	collID, err := env.Collections.Create(ctx, "Reading", "", "")
	if err != nil {
		t.Fatalf("Create collection: %v", err)
	}
	seedBookmark(t, env, store.CreateBookmarkParams{URL: "https://a.com", CollectionID: collID})
	seedBookmark(t, env, store.CreateBookmarkParams{URL: "https://b.com", CollectionID: collID})

	coll, err := env.Collections.GetByID(ctx, collID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if coll.Count != 2 {
		t.Errorf("count = %d, want 2", coll.Count)
	}
}

func TestBookmarkStore_List_NewestFirst(t *testing.T) {
	env := newTestEnv(t)

	first := seedBookmark(t, env, store.CreateBookmarkParams{Title: "first", URL: "https://1.com"})
	second := seedBookmark(t, env, store.CreateBookmarkParams{Title: "second", URL: "https://2.com"})
	third := seedBookmark(t, env, store.CreateBookmarkParams{Title: "third", URL: "https://3.com"})

	ids := listIDs(t, env, store.Filter{})
	want := []string{third, second, first}
	if len(ids) != 3 {
		t.Fatalf("len = %d, want 3", len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestBookmarkStore_List_SearchCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)

	match := seedBookmark(t, env, store.CreateBookmarkParams{Title: "Golang Weekly", URL: "https://golangweekly.com"})
	byURL := seedBookmark(t, env, store.CreateBookmarkParams{Title: "other", URL: "https://blog.GOLANG.org"})
	byDesc := seedBookmark(t, env, store.CreateBookmarkParams{Title: "another", URL: "https://x.com", Description: "notes on golang"})
	seedBookmark(t, env, store.CreateBookmarkParams{Title: "unrelated", URL: "https://y.com"})

	ids := listIDs(t, env, store.Filter{Search: "GoLang"})
	if len(ids) != 3 {
		t.Fatalf("len = %d, want 3 (%v)", len(ids), ids)
	}
	got := map[string]bool{}
	for _, id := range ids {
		got[id] = true
	}
	for _, id := range []string{match, byURL, byDesc} {
		if !got[id] {
			t.Errorf("missing %q in search results", id)
		}
	}
}

func TestBookmarkStore_List_CollectionAndFavorite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	collID, err := env.Collections.Create(ctx, "Work", "", "")
	if err != nil {
		t.Fatalf("Create collection: %v", err)
	}
	inColl := seedBookmark(t, env, store.CreateBookmarkParams{URL: "https://a.com", CollectionID: collID})
	fav := seedBookmark(t, env, store.CreateBookmarkParams{URL: "https://b.com", IsFavorite: true})

	if ids := listIDs(t, env, store.Filter{CollectionID: collID}); len(ids) != 1 || ids[0] != inColl {
		t.Errorf("collection filter = %v, want [%s]", ids, inColl)
	}
	if ids := listIDs(t, env, store.Filter{CollectionID: "all"}); len(ids) != 2 {
		t.Errorf("collection=all: len = %d, want 2", len(ids))
	}
	if ids := listIDs(t, env, store.Filter{Favorite: "true"}); len(ids) != 1 || ids[0] != fav {
		t.Errorf("favorite filter = %v, want [%s]", ids, fav)
	}
	if ids := listIDs(t, env, store.Filter{Favorite: "false"}); len(ids) != 2 {
		t.Errorf("favorite=false imposes no constraint: len = %d, want 2", len(ids))
	}
}

func TestBookmarkStore_List_TagOrSemantics(t *testing.T) {
	env := newTestEnv(t)

	ab := seedBookmark(t, env, store.CreateBookmarkParams{Title: "ab", URL: "https://ab.com", Tags: []string{"a", "b"}})
	seedBookmark(t, env, store.CreateBookmarkParams{Title: "c", URL: "https://c.com", Tags: []string{"c"}})
	seedBookmark(t, env, store.CreateBookmarkParams{Title: "untagged", URL: "https://u.com"})

	idA := tagIDByName(t, env, "a")
	idB := tagIDByName(t, env, "b")
	idC := tagIDByName(t, env, "c")

	// {a,b} intersects {b,c}: match.
	ids := listIDs(t, env, store.Filter{Tags: idB + "," + idC})
	found := false
	for _, id := range ids {
		if id == ab {
			found = true
		}
	}
	if !found {
		t.Errorf("tags={b,c}: %v should include %s", ids, ab)
	}

	// {a,b} does not intersect {c}: no match.
	for _, id := range listIDs(t, env, store.Filter{Tags: idC}) {
		if id == ab {
			t.Errorf("tags={c} must not include %s", ab)
		}
	}

	// Filtering by a single tag still returns the bookmark once.
	if ids := listIDs(t, env, store.Filter{Tags: idA}); len(ids) != 1 || ids[0] != ab {
		t.Errorf("tags={a} = %v, want [%s]", ids, ab)
	}
}

func TestBookmarkStore_ArchiveIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := seedBookmark(t, env, store.CreateBookmarkParams{URL: "https://a.com"})

	if err := env.Bookmarks.Archive(ctx, id); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if err := env.Bookmarks.Archive(ctx, id); err != nil {
		t.Fatalf("Archive again: %v", err)
	}

	if ids := listIDs(t, env, store.Filter{Status: "archived"}); len(ids) != 1 || ids[0] != id {
		t.Errorf("archived partition = %v, want [%s]", ids, id)
	}
	if ids := listIDs(t, env, store.Filter{Status: "active"}); len(ids) != 0 {
		t.Errorf("active partition = %v, want empty", ids)
	}
}

func TestBookmarkStore_TrashThenRestore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := seedBookmark(t, env, store.CreateBookmarkParams{URL: "https://a.com"})

	if err := env.Bookmarks.Trash(ctx, id); err != nil {
		t.Fatalf("Trash: %v", err)
	}
	if ids := listIDs(t, env, store.Filter{Status: "trashed"}); len(ids) != 1 {
		t.Fatalf("trashed partition = %v", ids)
	}

	if err := env.Bookmarks.Restore(ctx, id); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	b, err := env.Bookmarks.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if b.Status != store.StatusActive {
		t.Errorf("status = %q, want active", b.Status)
	}
	if ids := listIDs(t, env, store.Filter{Status: "trashed"}); len(ids) != 0 {
		t.Errorf("trashed partition = %v, want empty", ids)
	}
}

func TestBookmarkStore_Delete_RemovesEverywhere(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := seedBookmark(t, env, store.CreateBookmarkParams{URL: "https://a.com", Tags: []string{"go"}})

	if err := env.Bookmarks.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for _, status := range []string{"active", "archived", "trashed"} {
		if ids := listIDs(t, env, store.Filter{Status: status}); len(ids) != 0 {
			t.Errorf("%s partition = %v, want empty", status, ids)
		}
	}
	if _, err := env.Bookmarks.GetByID(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrNotFound", err)
	}

	var links int
	if err := env.DB.Get(&links, `SELECT COUNT(*) FROM bookmark_tags WHERE bookmark_id = ?`, id); err != nil {
		t.Fatalf("count links: %v", err)
	}
	if links != 0 {
		t.Errorf("bookmark_tags rows = %d, want 0", links)
	}
}

// Tag counts are increment-only; a delete leaves them untouched. This is
// the documented drift behavior, not an oversight.
func TestBookmarkStore_Delete_CountsNotDecremented(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := seedBookmark(t, env, store.CreateBookmarkParams{URL: "https://a.com", Tags: []string{"go"}})
	if err := env.Bookmarks.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	tagID := tagIDByName(t, env, "go")
	tag, err := env.Tags.GetByID(ctx, tagID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if tag.Count != 1 {
		t.Errorf("count = %d, want 1 (no decrement on delete)", tag.Count)
	}
}

func TestBookmarkStore_Update_Partial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := seedBookmark(t, env, store.CreateBookmarkParams{
		Title:       "before",
		URL:         "https://a.com",
		Description: "desc",
	})

	title := "after"
	if err := env.Bookmarks.Update(ctx, id, store.UpdateBookmarkParams{Title: &title}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	b, err := env.Bookmarks.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if b.Title != "after" {
		t.Errorf("title = %q, want after", b.Title)
	}
	if b.URL != "https://a.com" || b.Description != "desc" {
		t.Errorf("untouched fields changed: url=%q desc=%q", b.URL, b.Description)
	}
}

// The favorite flag is applied verbatim: the row always reflects the last
// value written, so toggling twice round-trips back to false.
func TestBookmarkStore_Update_FavoriteVerbatim(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := seedBookmark(t, env, store.CreateBookmarkParams{URL: "https://a.com"})

	for _, want := range []bool{true, false} {
		v := want
		if err := env.Bookmarks.Update(ctx, id, store.UpdateBookmarkParams{IsFavorite: &v}); err != nil {
			t.Fatalf("Update: %v", err)
		}
		b, err := env.Bookmarks.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if b.IsFavorite != want {
			t.Errorf("isFavorite = %v, want %v", b.IsFavorite, want)
		}
	}
}

func TestBookmarkStore_GetByID_NotFound(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.Bookmarks.GetByID(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
