package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jspencer/markd/internal/logger"
	"github.com/jspencer/markd/internal/store"
)

// tagsHandler provides the tag endpoints: list and create only. Tags are
// also created implicitly by bookmark creation.
type tagsHandler struct {
	tags *store.TagStore
	log  logger.Logger
}

func registerTagRoutes(r chi.Router, tags *store.TagStore, log logger.Logger) {
	h := &tagsHandler{tags: tags, log: log}
	r.Get("/tags", h.List)
	r.Post("/tags", h.Create)
}

// List returns all tags ordered by name.
// GET /api/tags
func (h *tagsHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.tags.ListAll(r.Context())
	if err != nil {
		h.log.Error("list tags", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch tags")
		return
	}

	resp := TagListResponse{Tags: make([]TagResponse, 0, len(rows))}
	for _, t := range rows {
		resp.Tags = append(resp.Tags, TagResponse{
			ID:    t.ID,
			Name:  t.Name,
			Color: t.Color,
			Count: t.Count,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create inserts a tag with a zero usage count, defaulting the color when
// omitted.
// POST /api/tags
func (h *tagsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("create tag", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create tag")
		return
	}

	id, err := h.tags.Create(r.Context(), req.Name, req.Color)
	if err != nil {
		h.log.Error("create tag", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create tag")
		return
	}

	writeJSON(w, http.StatusOK, CreateResponse{Success: true, ID: id})
}
