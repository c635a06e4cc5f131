package api

import (
	"net/http"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/mail"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/storage"
)

// CreateContactInquiry handles POST /api/v1/contact (public).
// Validation and persistence are synchronous; the notification email is
// dispatched afterwards and its failure never changes the response.
func (h *Handlers) CreateContactInquiry(w http.ResponseWriter, r *http.Request) {
	var payload model.ContactInquiry
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" || payload.Message == "" {
		writeError(w, http.StatusBadRequest, "name and message are required")
		return
	}
	if !validEmail(payload.Email) {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	created, err := h.store.CreateContactInquiry(r.Context(), &payload)
	if err != nil {
		h.serverError(w, "creating contact inquiry", err)
		return
	}

	h.metrics.InquiriesSubmitted.Inc()
	h.notify(mail.ContactMessage(created))
	writeJSON(w, http.StatusCreated, created)
}

// CreatePackageEnquiry handles POST /api/v1/packages/enquiry (public).
func (h *Handlers) CreatePackageEnquiry(w http.ResponseWriter, r *http.Request) {
	var payload model.PackageEnquiry
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !validEmail(payload.Email) {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	created, err := h.store.CreatePackageEnquiry(r.Context(), &payload)
	if err != nil {
		h.serverError(w, "creating package enquiry", err)
		return
	}

	h.metrics.EnquiriesSubmitted.Inc()
	h.notify(mail.EnquiryMessage(created))
	writeJSON(w, http.StatusCreated, created)
}

// ListContactInquiries handles GET /api/v1/contact (ADMIN).
func (h *Handlers) ListContactInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.store.ListContactInquiries(r.Context(),
		r.URL.Query().Get("status"), queryLimit(r))
	if err != nil {
		h.serverError(w, "listing contact inquiries", err)
		return
	}
	writeJSON(w, http.StatusOK, inquiries)
}

// ListPackageEnquiries handles GET /api/v1/enquiries (ADMIN).
func (h *Handlers) ListPackageEnquiries(w http.ResponseWriter, r *http.Request) {
	enquiries, err := h.store.ListPackageEnquiries(r.Context(),
		r.URL.Query().Get("status"), queryLimit(r))
	if err != nil {
		h.serverError(w, "listing package enquiries", err)
		return
	}
	writeJSON(w, http.StatusOK, enquiries)
}

type inquiryUpdateRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdateContactInquiry handles PUT /api/v1/contact/{id} (ADMIN).
func (h *Handlers) UpdateContactInquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var payload inquiryUpdateRequest
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.store.UpdateContactInquiry(r.Context(), id, storage.InquiryUpdate{
		Status: payload.Status,
		Notes:  payload.Notes,
	})
	if err != nil {
		h.serverError(w, "updating contact inquiry", err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "contact inquiry not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// UpdatePackageEnquiry handles PUT /api/v1/enquiries/{id} (ADMIN).
func (h *Handlers) UpdatePackageEnquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var payload inquiryUpdateRequest
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.store.UpdatePackageEnquiry(r.Context(), id, storage.InquiryUpdate{
		Status: payload.Status,
		Notes:  payload.Notes,
	})
	if err != nil {
		h.serverError(w, "updating package enquiry", err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "package enquiry not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
