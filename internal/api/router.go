package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jspencer/markd/internal/logger"
	"github.com/jspencer/markd/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Log         logger.Logger
	Bookmarks   *store.BookmarkStore
	Collections *store.CollectionStore
	Tags        *store.TagStore
}

// NewRouter assembles the chi router for the /api surface.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLog(deps.Log))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(jsonContentType)
		registerBookmarkRoutes(r, deps.Bookmarks, deps.Log)
		registerCollectionRoutes(r, deps.Collections, deps.Log)
		registerTagRoutes(r, deps.Tags, deps.Log)
	})

	return r
}

// jsonContentType sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
