package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/storage"
)

func blogRoutes(slug string) []string {
	routes := []string{"/blog"}
	if slug != "" {
		routes = append(routes, "/blog/"+slug)
	}
	return routes
}

// ListPosts handles GET /api/v1/blog. Drafts are visible only to an admin
// caller passing ?all=true.
func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	includeAll := r.URL.Query().Get("all") == "true" && h.isAdmin(r)

	cacheable := len(r.URL.Query()) == 0
	if cacheable && h.serveCached(w, r, "/blog") {
		return
	}

	posts, err := h.store.ListPosts(r.Context(), storage.BlogFilter{
		PublishedOnly: !includeAll,
		Tag:           r.URL.Query().Get("tag"),
		Limit:         queryLimit(r),
	})
	if err != nil {
		h.serverError(w, "listing blog posts", err)
		return
	}

	if cacheable {
		h.storeCached(r, "/blog", posts)
	}
	writeJSON(w, http.StatusOK, posts)
}

// GetPost handles GET /api/v1/blog/{idOrSlug}. Every read increments the
// post's view counter, so this endpoint is never served from the page cache.
func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.store.GetPost(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		h.serverError(w, "getting blog post", err)
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "blog post not found")
		return
	}
	if !post.Published && !h.isAdmin(r) {
		writeError(w, http.StatusNotFound, "blog post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// CreatePost handles POST /api/v1/blog (ADMIN).
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var payload model.BlogPost
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	created, err := h.store.CreatePost(r.Context(), &payload)
	if err != nil {
		h.serverError(w, "creating blog post", err)
		return
	}

	h.invalidate(blogRoutes(created.Slug)...)
	writeJSON(w, http.StatusCreated, created)
}

type blogUpdateRequest struct {
	Title      *string   `json:"title"`
	Excerpt    *string   `json:"excerpt"`
	Body       *string   `json:"body"`
	CoverImage *string   `json:"cover_image"`
	Tags       *[]string `json:"tags"`
	Published  *bool     `json:"published"`
}

// UpdatePost handles PUT /api/v1/blog/{id} (ADMIN). The first transition to
// published stamps published_at; later edits never move it.
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var payload blogUpdateRequest
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.store.UpdatePost(r.Context(), id, storage.BlogUpdate{
		Title:      payload.Title,
		Excerpt:    payload.Excerpt,
		Body:       payload.Body,
		CoverImage: payload.CoverImage,
		Tags:       payload.Tags,
		Published:  payload.Published,
	})
	if err != nil {
		h.serverError(w, "updating blog post", err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "blog post not found")
		return
	}

	h.invalidate(blogRoutes(updated.Slug)...)
	writeJSON(w, http.StatusOK, updated)
}

// DeletePost handles DELETE /api/v1/blog/{id} (ADMIN).
func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	deleted, err := h.store.DeletePost(r.Context(), id)
	if err != nil {
		h.serverError(w, "deleting blog post", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "blog post not found")
		return
	}

	h.invalidate("/blog")
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
