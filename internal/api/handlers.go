package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/auth"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/mail"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/metrics"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	store    Store
	cache    PageCache
	mailer   mail.Sender
	media    MediaStore
	sessions *auth.Sessions
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(store Store, cache PageCache, mailer mail.Sender, media MediaStore,
	sessions *auth.Sessions, m *metrics.Metrics, log *slog.Logger) *Handlers {
	return &Handlers{
		store:    store,
		cache:    cache,
		mailer:   mailer,
		media:    media,
		sessions: sessions,
		metrics:  m,
		log:      log,
	}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validEmail reports whether s looks like a deliverable address.
func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the uniform {"error": ...} payload.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// serverError logs err and hides the detail behind a generic 500.
func (h *Handlers) serverError(w http.ResponseWriter, op string, err error) {
	h.log.Error(op, "err", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// decodeBody decodes the request body into v, rejecting unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// urlID parses the {id} route parameter, writing a 400 on failure.
func urlID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// queryLimit parses the optional ?limit= parameter; 0 means unlimited.
func queryLimit(r *http.Request) int {
	n, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if n < 0 {
		return 0
	}
	return n
}

// queryBool parses an optional boolean query parameter, nil when absent.
func queryBool(r *http.Request, name string) *bool {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// queryFloat parses an optional numeric query parameter, nil when absent.
func queryFloat(r *http.Request, name string) *float64 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

// serveCached writes the cached payload for route if one exists, reporting
// whether it did. Cache errors degrade to a normal DB read.
func (h *Handlers) serveCached(w http.ResponseWriter, r *http.Request, route string) bool {
	cached, err := h.cache.GetPage(r.Context(), route)
	if err != nil {
		h.log.Warn("cache get failed", "route", route, "err", err)
		return false
	}
	if cached == nil {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(cached)
	return true
}

// storeCached best-effort populates the cache for route.
func (h *Handlers) storeCached(r *http.Request, route string, payload any) {
	if err := h.cache.SetPage(r.Context(), route, payload); err != nil {
		h.log.Warn("cache set failed", "route", route, "err", err)
	}
}

// invalidate drops the cached payloads for routes. It runs detached from the
// request: a cache outage never fails the mutation that triggered it.
func (h *Handlers) invalidate(routes ...string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.cache.Invalidate(ctx, routes...); err != nil {
			h.log.Warn("cache invalidation failed", "routes", routes, "err", err)
			return
		}
		h.metrics.CacheInvalidations.Add(float64(len(routes)))
	}()
}

// notify dispatches a best-effort notification email. Failures are logged
// and counted, never surfaced to the caller.
func (h *Handlers) notify(subject, body string) {
	go func() {
		if err := h.mailer.Send(subject, body); err != nil {
			h.metrics.MailFailed.Inc()
			h.log.Warn("notification mail failed", "subject", subject, "err", err)
			return
		}
		h.metrics.MailSent.Inc()
	}()
}

// isAdmin reports whether the request carries a valid ADMIN session. Used by
// the endpoints that serve both public and admin callers.
func (h *Handlers) isAdmin(r *http.Request) bool {
	return h.sessions.FromRequest(r).IsAdmin()
}
