package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/metrics"
)

// dbPinger and redisPinger let the health check probe the collaborators
// without depending on their concrete clients.
type dbPinger interface {
	Ping(ctx context.Context) error
}

type redisPinger interface {
	Ping(ctx context.Context) error
}

// NewRouter builds the Chi router with all routes configured. Public reads
// and form submissions are open; everything mutating the catalog sits behind
// the ADMIN session gate. Rate limiting applies globally per IP.
func NewRouter(h *Handlers, db dbPinger, redisClient redisPinger, mediaDir string, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(httprate.LimitByIP(120, time.Minute))
	r.Use(instrument(h.metrics))

	r.Get("/api/v1/health", HealthHandlerFunc(db, redisClient, log))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Uploaded images.
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(mediaDir))))

	r.Route("/api/v1", func(r chi.Router) {
		// Public catalog reads.
		r.Get("/packages", h.ListPackages)
		r.Get("/packages/{idOrSlug}", h.GetPackage)
		r.Get("/destinations", h.ListDestinations)
		r.Get("/destinations/{idOrSlug}", h.GetDestination)
		r.Get("/blog", h.ListPosts)
		r.Get("/blog/{idOrSlug}", h.GetPost)
		r.Get("/testimonials", h.ListTestimonials)
		r.Get("/settings", h.GetSettings)

		// Public submissions.
		r.Post("/contact", h.CreateContactInquiry)
		r.Post("/packages/enquiry", h.CreatePackageEnquiry)
		r.Post("/testimonials", h.CreateTestimonial)
		r.Post("/auth/login", h.Login)
		r.Post("/seed", h.Seed)

		// Admin surface.
		r.Group(func(r chi.Router) {
			r.Use(h.sessions.RequireAdmin)

			r.Post("/packages", h.CreatePackage)
			r.Put("/packages/{id}", h.UpdatePackage)
			r.Delete("/packages/{id}", h.DeletePackage)
			r.Post("/packages/{id}/duplicate", h.DuplicatePackage)

			r.Post("/destinations", h.CreateDestination)
			r.Put("/destinations/{id}", h.UpdateDestination)
			r.Delete("/destinations/{id}", h.DeleteDestination)

			r.Post("/blog", h.CreatePost)
			r.Put("/blog/{id}", h.UpdatePost)
			r.Delete("/blog/{id}", h.DeletePost)

			r.Put("/testimonials/{id}", h.UpdateTestimonial)
			r.Delete("/testimonials/{id}", h.DeleteTestimonial)

			r.Get("/contact", h.ListContactInquiries)
			r.Put("/contact/{id}", h.UpdateContactInquiry)
			r.Get("/enquiries", h.ListPackageEnquiries)
			r.Put("/enquiries/{id}", h.UpdatePackageEnquiry)

			r.Put("/settings", h.UpdateSettings)

			r.Get("/auth/me", h.Me)

			r.Get("/admin/stats", h.GetStats)
			r.Get("/admin/search", h.GlobalSearch)
			r.Post("/admin/media", h.UploadMedia)
		})
	})

	return r
}

// instrument records request counts by status class and overall latency.
func instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			m.RequestDuration.Observe(time.Since(start).Seconds())
			// A handler that never calls WriteHeader still responds 200.
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.RequestsTotal.WithLabelValues(strconv.Itoa(status / 100 * 100)).Inc()
		})
	}
}

// HealthHandlerFunc returns an http.HandlerFunc that checks db and redis connectivity.
func HealthHandlerFunc(db dbPinger, redis redisPinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "ok"
		redisStatus := "ok"

		if err := db.Ping(ctx); err != nil {
			log.Error("health check: db ping failed", "err", err)
			dbStatus = "error"
			status = http.StatusServiceUnavailable
		}

		if err := redis.Ping(ctx); err != nil {
			log.Error("health check: redis ping failed", "err", err)
			redisStatus = "error"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}

		writeJSON(w, status, map[string]string{
			"status": overall,
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}
