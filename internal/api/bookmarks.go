package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jspencer/markd/internal/logger"
	"github.com/jspencer/markd/internal/store"
)

// bookmarksHandler provides the bookmark endpoints.
type bookmarksHandler struct {
	bookmarks *store.BookmarkStore
	log       logger.Logger
}

func registerBookmarkRoutes(r chi.Router, bookmarks *store.BookmarkStore, log logger.Logger) {
	h := &bookmarksHandler{bookmarks: bookmarks, log: log}
	r.Get("/bookmarks", h.List)
	r.Post("/bookmarks", h.Create)
	r.Put("/bookmarks", h.Update)
	r.Delete("/bookmarks", h.Action)
}

// List returns the bookmarks matching the query-string filter.
// GET /api/bookmarks?status&collectionId&isFavorite&search&tags
func (h *bookmarksHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := store.Filter{
		Status:       q.Get("status"),
		CollectionID: q.Get("collectionId"),
		Favorite:     q.Get("isFavorite"),
		Search:       q.Get("search"),
		Tags:         q.Get("tags"),
	}

	rows, err := h.bookmarks.List(r.Context(), f)
	if err != nil {
		h.log.Error("list bookmarks", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch bookmarks")
		return
	}

	resp := BookmarkListResponse{Bookmarks: make([]BookmarkResponse, 0, len(rows))}
	for _, row := range rows {
		resp.Bookmarks = append(resp.Bookmarks, toBookmarkResponse(row))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create saves a new bookmark. Missing fields default rather than fail;
// a missing favicon is derived from the URL's host.
// POST /api/bookmarks
func (h *bookmarksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("create bookmark", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create bookmark")
		return
	}

	id, err := h.bookmarks.Create(r.Context(), store.CreateBookmarkParams{
		Title:        req.Title,
		URL:          req.URL,
		Description:  req.Description,
		Favicon:      req.Favicon,
		CollectionID: req.CollectionID,
		Tags:         req.Tags,
		IsFavorite:   req.IsFavorite,
		HasDarkIcon:  req.HasDarkIcon,
	})
	if err != nil {
		h.log.Error("create bookmark", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create bookmark")
		return
	}

	writeJSON(w, http.StatusOK, CreateResponse{Success: true, ID: id})
}

// Update applies a partial field update.
// PUT /api/bookmarks
func (h *bookmarksHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("update bookmark", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to update bookmark")
		return
	}

	err := h.bookmarks.Update(r.Context(), req.ID, store.UpdateBookmarkParams{
		Title:        req.Title,
		URL:          req.URL,
		Description:  req.Description,
		Favicon:      req.Favicon,
		CollectionID: req.CollectionID,
		IsFavorite:   req.IsFavorite,
		HasDarkIcon:  req.HasDarkIcon,
	})
	if err != nil {
		h.log.Error("update bookmark", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to update bookmark")
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// Action applies a lifecycle action: delete (permanent, the default),
// archive, trash, or restore. Restore always lands on active, whichever
// partition the bookmark came from. Unknown actions succeed without
// effect.
// DELETE /api/bookmarks?id&action
func (h *bookmarksHandler) Action(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Bookmark ID is required")
		return
	}
	action := q.Get("action")
	if action == "" {
		action = "delete"
	}

	var err error
	switch action {
	case "delete":
		err = h.bookmarks.Delete(r.Context(), id)
	case "archive":
		err = h.bookmarks.Archive(r.Context(), id)
	case "trash":
		err = h.bookmarks.Trash(r.Context(), id)
	case "restore":
		err = h.bookmarks.Restore(r.Context(), id)
	}
	if err != nil {
		h.log.Error("bookmark action", logger.String("action", action), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to delete bookmark")
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func toBookmarkResponse(row *store.TaggedBookmark) BookmarkResponse {
	// Untagged bookmarks serialize as [], not null.
	tags := row.TagNameList()
	if tags == nil {
		tags = []string{}
	}
	tagIDs := row.TagIDList()
	if tagIDs == nil {
		tagIDs = []string{}
	}
	return BookmarkResponse{
		ID:           row.ID,
		Title:        row.Title,
		URL:          row.URL,
		Description:  row.Description,
		Favicon:      row.Favicon,
		CollectionID: row.CollectionID.String,
		Tags:         tags,
		TagIDs:       tagIDs,
		CreatedAt:    row.CreatedAt,
		IsFavorite:   row.IsFavorite,
		HasDarkIcon:  row.HasDarkIcon,
	}
}
