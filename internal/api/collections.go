package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jspencer/markd/internal/logger"
	"github.com/jspencer/markd/internal/store"
)

// collectionsHandler provides the collection endpoints: list and create
// only.
type collectionsHandler struct {
	collections *store.CollectionStore
	log         logger.Logger
}

func registerCollectionRoutes(r chi.Router, collections *store.CollectionStore, log logger.Logger) {
	h := &collectionsHandler{collections: collections, log: log}
	r.Get("/collections", h.List)
	r.Post("/collections", h.Create)
}

// List returns all collections ordered by name.
// GET /api/collections
func (h *collectionsHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.collections.ListAll(r.Context())
	if err != nil {
		h.log.Error("list collections", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch collections")
		return
	}

	resp := CollectionListResponse{Collections: make([]CollectionResponse, 0, len(rows))}
	for _, c := range rows {
		resp.Collections = append(resp.Collections, CollectionResponse{
			ID:    c.ID,
			Name:  c.Name,
			Icon:  c.Icon,
			Color: c.Color,
			Count: c.Count,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create inserts a collection, defaulting icon and color when omitted.
// POST /api/collections
func (h *collectionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("create collection", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create collection")
		return
	}

	id, err := h.collections.Create(r.Context(), req.Name, req.Icon, req.Color)
	if err != nil {
		h.log.Error("create collection", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create collection")
		return
	}

	writeJSON(w, http.StatusOK, CreateResponse{Success: true, ID: id})
}
