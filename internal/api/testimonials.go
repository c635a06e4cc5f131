package api

import (
	"net/http"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/storage"
)

// ListTestimonials handles GET /api/v1/testimonials.
// Public callers only ever see APPROVED rows; an admin passing ?all=true gets
// every status. The legacy ?status=ACTIVE value is an alias for APPROVED.
func (h *Handlers) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "ACTIVE" {
		status = model.TestimonialApproved
	}

	includeAll := r.URL.Query().Get("all") == "true" && h.isAdmin(r)
	if !includeAll {
		// Whatever the caller asked for, the public view is APPROVED only.
		status = model.TestimonialApproved
	}

	cacheable := len(r.URL.Query()) == 0
	if cacheable && h.serveCached(w, r, "/testimonials") {
		return
	}

	testimonials, err := h.store.ListTestimonials(r.Context(), storage.TestimonialFilter{
		Status:   status,
		Featured: queryBool(r, "featured"),
		Limit:    queryLimit(r),
	})
	if err != nil {
		h.serverError(w, "listing testimonials", err)
		return
	}

	if cacheable {
		h.storeCached(r, "/testimonials", testimonials)
	}
	writeJSON(w, http.StatusOK, testimonials)
}

// CreateTestimonial handles POST /api/v1/testimonials.
// Unauthenticated submissions are always stored PENDING and unfeatured, no
// matter what the payload claims. An admin may set status and featured
// directly; status defaults to APPROVED when an admin omits it.
func (h *Handlers) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var payload model.Testimonial
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.AuthorName == "" || payload.Quote == "" {
		writeError(w, http.StatusBadRequest, "author_name and quote are required")
		return
	}
	if payload.Rating < 1 || payload.Rating > 5 {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	if h.isAdmin(r) {
		if payload.Status == "" {
			payload.Status = model.TestimonialApproved
		}
		if !validTestimonialStatus(payload.Status) {
			writeError(w, http.StatusBadRequest, "status must be PENDING, APPROVED, or REJECTED")
			return
		}
	} else {
		payload.Status = model.TestimonialPending
		payload.Featured = false
	}

	created, err := h.store.CreateTestimonial(r.Context(), &payload)
	if err != nil {
		h.serverError(w, "creating testimonial", err)
		return
	}

	h.invalidate("/testimonials")
	writeJSON(w, http.StatusCreated, created)
}

type testimonialUpdateRequest struct {
	Status   *string `json:"status"`
	Featured *bool   `json:"featured"`
}

func validTestimonialStatus(s string) bool {
	switch s {
	case model.TestimonialPending, model.TestimonialApproved, model.TestimonialRejected:
		return true
	}
	return false
}

// UpdateTestimonial handles PUT /api/v1/testimonials/{id} (ADMIN).
// Only status transitions and the featured flag are editable.
func (h *Handlers) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var payload testimonialUpdateRequest
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Status != nil && !validTestimonialStatus(*payload.Status) {
		writeError(w, http.StatusBadRequest, "status must be PENDING, APPROVED, or REJECTED")
		return
	}

	updated, err := h.store.UpdateTestimonial(r.Context(), id, storage.TestimonialUpdate{
		Status:   payload.Status,
		Featured: payload.Featured,
	})
	if err != nil {
		h.serverError(w, "updating testimonial", err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "testimonial not found")
		return
	}

	h.invalidate("/testimonials")
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTestimonial handles DELETE /api/v1/testimonials/{id} (ADMIN).
func (h *Handlers) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	deleted, err := h.store.DeleteTestimonial(r.Context(), id)
	if err != nil {
		h.serverError(w, "deleting testimonial", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "testimonial not found")
		return
	}

	h.invalidate("/testimonials")
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
