package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/storage"
)

// packageRoutes returns the public routes a package mutation invalidates.
// The detail page is cached under whichever key the reader used, so both the
// slug and the id variant are dropped.
func packageRoutes(id int, slug string) []string {
	routes := []string{"/packages"}
	if slug != "" {
		routes = append(routes, "/packages/"+slug)
	}
	if id > 0 {
		routes = append(routes, "/packages/"+strconv.Itoa(id))
	}
	return routes
}

// ListPackages handles GET /api/v1/packages.
func (h *Handlers) ListPackages(w http.ResponseWriter, r *http.Request) {
	filter := storage.PackageFilter{
		Status:      r.URL.Query().Get("status"),
		Destination: r.URL.Query().Get("destination"),
		Featured:    queryBool(r, "featured"),
		MinPrice:    queryFloat(r, "minPrice"),
		MaxPrice:    queryFloat(r, "maxPrice"),
		Limit:       queryLimit(r),
	}

	// Only the unfiltered default listing is cached.
	cacheable := len(r.URL.Query()) == 0
	if cacheable && h.serveCached(w, r, "/packages") {
		return
	}

	packages, err := h.store.ListPackages(r.Context(), filter)
	if err != nil {
		h.serverError(w, "listing packages", err)
		return
	}

	if cacheable {
		h.storeCached(r, "/packages", packages)
	}
	writeJSON(w, http.StatusOK, packages)
}

// GetPackage handles GET /api/v1/packages/{idOrSlug}.
// Cache hit → return. DB hit → cache + return. Neither → 404.
func (h *Handlers) GetPackage(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")
	route := "/packages/" + idOrSlug

	if h.serveCached(w, r, route) {
		return
	}

	pkg, err := h.store.GetPackage(r.Context(), idOrSlug)
	if err != nil {
		h.serverError(w, "getting package", err)
		return
	}
	if pkg == nil {
		writeError(w, http.StatusNotFound, "package not found")
		return
	}

	h.storeCached(r, route, pkg)
	writeJSON(w, http.StatusOK, pkg)
}

// CreatePackage handles POST /api/v1/packages (ADMIN).
func (h *Handlers) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var payload model.Package
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if payload.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}
	if payload.Status == "" {
		payload.Status = model.StatusActive
	}
	if payload.Status != model.StatusActive && payload.Status != model.StatusInactive {
		writeError(w, http.StatusBadRequest, "status must be ACTIVE or INACTIVE")
		return
	}

	created, err := h.store.CreatePackage(r.Context(), &payload)
	if err != nil {
		h.serverError(w, "creating package", err)
		return
	}

	h.invalidate(packageRoutes(created.ID, created.Slug)...)
	writeJSON(w, http.StatusCreated, created)
}

// packageUpdateRequest is the wire shape of a package update.
type packageUpdateRequest struct {
	Name             *string               `json:"name"`
	Summary          *string               `json:"summary"`
	Description      *string               `json:"description"`
	DestinationID    *int                  `json:"destination_id"`
	DestinationName  *string               `json:"destination_name"`
	DurationDays     *int                  `json:"duration_days"`
	Price            *float64              `json:"price"`
	OriginalPrice    *float64              `json:"original_price"`
	Status           *string               `json:"status"`
	Featured         *bool                 `json:"featured"`
	HeroImage        *string               `json:"hero_image"`
	Gallery          *[]string             `json:"gallery"`
	Itinerary        *[]model.ItineraryDay `json:"itinerary"`
	FAQs             *[]model.FAQ          `json:"faqs"`
	Policies         *model.Policies       `json:"policies"`
	AccommodationIDs *[]int                `json:"accommodation_ids"`
}

// UpdatePackage handles PUT /api/v1/packages/{id} (ADMIN).
func (h *Handlers) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var payload packageUpdateRequest
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Status != nil && *payload.Status != model.StatusActive && *payload.Status != model.StatusInactive {
		writeError(w, http.StatusBadRequest, "status must be ACTIVE or INACTIVE")
		return
	}

	updated, err := h.store.UpdatePackage(r.Context(), id, storage.PackageUpdate{
		Name:             payload.Name,
		Summary:          payload.Summary,
		Description:      payload.Description,
		DestinationID:    payload.DestinationID,
		DestinationName:  payload.DestinationName,
		DurationDays:     payload.DurationDays,
		Price:            payload.Price,
		OriginalPrice:    payload.OriginalPrice,
		Status:           payload.Status,
		Featured:         payload.Featured,
		HeroImage:        payload.HeroImage,
		Gallery:          payload.Gallery,
		Itinerary:        payload.Itinerary,
		FAQs:             payload.FAQs,
		Policies:         payload.Policies,
		AccommodationIDs: payload.AccommodationIDs,
	})
	if err != nil {
		h.serverError(w, "updating package", err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "package not found")
		return
	}

	h.invalidate(packageRoutes(id, updated.Slug)...)
	writeJSON(w, http.StatusOK, updated)
}

// DeletePackage handles DELETE /api/v1/packages/{id} (ADMIN).
func (h *Handlers) DeletePackage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	slug, deleted, err := h.store.DeletePackage(r.Context(), id)
	if err != nil {
		h.serverError(w, "deleting package", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "package not found")
		return
	}

	h.invalidate(packageRoutes(id, slug)...)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// DuplicatePackage handles POST /api/v1/packages/{id}/duplicate (ADMIN).
// The clone always starts INACTIVE and unfeatured with a fresh slug.
func (h *Handlers) DuplicatePackage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	clone, err := h.store.DuplicatePackage(r.Context(), id)
	if err != nil {
		h.serverError(w, "duplicating package", err)
		return
	}
	if clone == nil {
		writeError(w, http.StatusNotFound, "package not found")
		return
	}

	h.invalidate(packageRoutes(clone.ID, clone.Slug)...)
	writeJSON(w, http.StatusCreated, clone)
}
