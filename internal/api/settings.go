package api

import (
	"net/http"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/storage"
)

// GetSettings handles GET /api/v1/settings (public). The singleton row is
// created with defaults on first read; concurrent first reads cannot
// duplicate it because the insert is conflict-guarded at the database.
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	if h.serveCached(w, r, "/settings") {
		return
	}

	settings, err := h.store.GetSettings(r.Context())
	if err != nil {
		h.serverError(w, "getting settings", err)
		return
	}

	h.storeCached(r, "/settings", settings)
	writeJSON(w, http.StatusOK, settings)
}

type settingsUpdateRequest struct {
	SiteName     *string            `json:"site_name"`
	Tagline      *string            `json:"tagline"`
	ContactEmail *string            `json:"contact_email"`
	ContactPhone *string            `json:"contact_phone"`
	Address      *string            `json:"address"`
	Social       *model.SocialLinks `json:"social"`
	Hero         *model.HeroContent `json:"hero"`
}

// UpdateSettings handles PUT /api/v1/settings (ADMIN).
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var payload settingsUpdateRequest
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.ContactEmail != nil && !validEmail(*payload.ContactEmail) {
		writeError(w, http.StatusBadRequest, "a valid contact email is required")
		return
	}

	updated, err := h.store.UpdateSettings(r.Context(), storage.SettingsUpdate{
		SiteName:     payload.SiteName,
		Tagline:      payload.Tagline,
		ContactEmail: payload.ContactEmail,
		ContactPhone: payload.ContactPhone,
		Address:      payload.Address,
		Social:       payload.Social,
		Hero:         payload.Hero,
	})
	if err != nil {
		h.serverError(w, "updating settings", err)
		return
	}

	h.invalidate("/settings")
	writeJSON(w, http.StatusOK, updated)
}
