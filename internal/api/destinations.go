package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/storage"
)

func destinationRoutes(id int, slug string) []string {
	routes := []string{"/destinations"}
	if slug != "" {
		routes = append(routes, "/destinations/"+slug)
	}
	if id > 0 {
		routes = append(routes, "/destinations/"+strconv.Itoa(id))
	}
	return routes
}

// ListDestinations handles GET /api/v1/destinations.
func (h *Handlers) ListDestinations(w http.ResponseWriter, r *http.Request) {
	filter := storage.DestinationFilter{
		Status:   r.URL.Query().Get("status"),
		Region:   r.URL.Query().Get("region"),
		Category: r.URL.Query().Get("category"),
		Featured: queryBool(r, "featured"),
		Limit:    queryLimit(r),
	}

	cacheable := len(r.URL.Query()) == 0
	if cacheable && h.serveCached(w, r, "/destinations") {
		return
	}

	destinations, err := h.store.ListDestinations(r.Context(), filter)
	if err != nil {
		h.serverError(w, "listing destinations", err)
		return
	}

	if cacheable {
		h.storeCached(r, "/destinations", destinations)
	}
	writeJSON(w, http.StatusOK, destinations)
}

// GetDestination handles GET /api/v1/destinations/{idOrSlug}.
func (h *Handlers) GetDestination(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")
	route := "/destinations/" + idOrSlug

	if h.serveCached(w, r, route) {
		return
	}

	dest, err := h.store.GetDestination(r.Context(), idOrSlug)
	if err != nil {
		h.serverError(w, "getting destination", err)
		return
	}
	if dest == nil {
		writeError(w, http.StatusNotFound, "destination not found")
		return
	}

	h.storeCached(r, route, dest)
	writeJSON(w, http.StatusOK, dest)
}

// CreateDestination handles POST /api/v1/destinations (ADMIN).
func (h *Handlers) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var payload model.Destination
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if payload.Status == "" {
		payload.Status = model.StatusActive
	}

	created, err := h.store.CreateDestination(r.Context(), &payload)
	if err != nil {
		h.serverError(w, "creating destination", err)
		return
	}

	h.invalidate(destinationRoutes(created.ID, created.Slug)...)
	writeJSON(w, http.StatusCreated, created)
}

type destinationUpdateRequest struct {
	Name      *string `json:"name"`
	Region    *string `json:"region"`
	Category  *string `json:"category"`
	Summary   *string `json:"summary"`
	HeroImage *string `json:"hero_image"`
	Featured  *bool   `json:"featured"`
	Status    *string `json:"status"`
}

// UpdateDestination handles PUT /api/v1/destinations/{id} (ADMIN).
func (h *Handlers) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var payload destinationUpdateRequest
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.store.UpdateDestination(r.Context(), id, storage.DestinationUpdate{
		Name:      payload.Name,
		Region:    payload.Region,
		Category:  payload.Category,
		Summary:   payload.Summary,
		HeroImage: payload.HeroImage,
		Featured:  payload.Featured,
		Status:    payload.Status,
	})
	if err != nil {
		h.serverError(w, "updating destination", err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "destination not found")
		return
	}

	h.invalidate(destinationRoutes(id, updated.Slug)...)
	writeJSON(w, http.StatusOK, updated)
}

// DeleteDestination handles DELETE /api/v1/destinations/{id} (ADMIN).
func (h *Handlers) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	slug, deleted, err := h.store.DeleteDestination(r.Context(), id)
	if err != nil {
		h.serverError(w, "deleting destination", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "destination not found")
		return
	}

	h.invalidate(destinationRoutes(id, slug)...)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
