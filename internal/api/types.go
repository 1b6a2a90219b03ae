package api

import "time"

// --- Bookmark types ---

// CreateBookmarkRequest is the request body for POST /api/bookmarks.
// Every field is optional; absent values coerce to safe defaults.
type CreateBookmarkRequest struct {
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	Description  string   `json:"description,omitempty"`
	Favicon      string   `json:"favicon,omitempty"`
	CollectionID string   `json:"collectionId,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	IsFavorite   bool     `json:"isFavorite,omitempty"`
	HasDarkIcon  bool     `json:"hasDarkIcon,omitempty"`
}

// UpdateBookmarkRequest is the request body for PUT /api/bookmarks.
// Pointer fields distinguish "absent" from "set to zero value".
type UpdateBookmarkRequest struct {
	ID           string  `json:"id"`
	Title        *string `json:"title,omitempty"`
	URL          *string `json:"url,omitempty"`
	Description  *string `json:"description,omitempty"`
	Favicon      *string `json:"favicon,omitempty"`
	CollectionID *string `json:"collectionId,omitempty"`
	IsFavorite   *bool   `json:"isFavorite,omitempty"`
	HasDarkIcon  *bool   `json:"hasDarkIcon,omitempty"`
}

// BookmarkResponse is the JSON representation of a single bookmark.
// Tags carries display names; TagIDs the identifiers used for tag
// filtering on both the server and the client.
type BookmarkResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	Description  string    `json:"description"`
	Favicon      string    `json:"favicon"`
	CollectionID string    `json:"collectionId"`
	Tags         []string  `json:"tags"`
	TagIDs       []string  `json:"tagIds"`
	CreatedAt    time.Time `json:"createdAt"`
	IsFavorite   bool      `json:"isFavorite"`
	HasDarkIcon  bool      `json:"hasDarkIcon"`
}

// BookmarkListResponse is the envelope for GET /api/bookmarks.
type BookmarkListResponse struct {
	Bookmarks []BookmarkResponse `json:"bookmarks"`
}

// --- Collection types ---

// CreateCollectionRequest is the request body for POST /api/collections.
type CreateCollectionRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// CollectionResponse is the JSON representation of a collection.
type CollectionResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// CollectionListResponse is the envelope for GET /api/collections.
type CollectionListResponse struct {
	Collections []CollectionResponse `json:"collections"`
}

// --- Tag types ---

// CreateTagRequest is the request body for POST /api/tags.
type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// TagResponse is the JSON representation of a tag.
type TagResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// TagListResponse is the envelope for GET /api/tags.
type TagListResponse struct {
	Tags []TagResponse `json:"tags"`
}

// --- Shared ---

// CreateResponse acknowledges a successful create with the new id.
type CreateResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// SuccessResponse acknowledges a successful mutation.
type SuccessResponse struct {
	Success bool `json:"success"`
}
