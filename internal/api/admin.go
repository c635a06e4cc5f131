package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/auth"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/media"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/storage"
)

// searchHitLimit caps each entity type's contribution to the global search.
const searchHitLimit = 5

// statsResponse is the dashboard-statistics composite payload.
type statsResponse struct {
	ActivePackages      int                     `json:"active_packages"`
	ActiveDestinations  int                     `json:"active_destinations"`
	TotalEnquiries      int                     `json:"total_enquiries"`
	PublishedPosts      int                     `json:"published_posts"`
	NewEnquiries        int                     `json:"new_enquiries"`
	NewInquiries        int                     `json:"new_inquiries"`
	PendingTestimonials int                     `json:"pending_testimonials"`
	RecentEnquiries     []*model.PackageEnquiry `json:"recent_enquiries"`
	EnquiryHistogram    []storage.MonthlyCount  `json:"enquiry_histogram"`
}

// GetStats handles GET /api/v1/admin/stats (ADMIN). The sub-queries run in
// parallel; any failure fails the whole request, there is no partial payload.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	var stats statsResponse
	var contactTotal int

	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() (err error) {
		stats.ActivePackages, err = h.store.Count(ctx, "packages", model.StatusActive)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveDestinations, err = h.store.Count(ctx, "destinations", model.StatusActive)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalEnquiries, err = h.store.Count(ctx, "package_enquiries", "")
		return err
	})
	g.Go(func() (err error) {
		contactTotal, err = h.store.Count(ctx, "contact_inquiries", "")
		return err
	})
	g.Go(func() (err error) {
		stats.PublishedPosts, err = h.store.CountPublishedPosts(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.NewEnquiries, err = h.store.Count(ctx, "package_enquiries", model.InquiryNew)
		return err
	})
	g.Go(func() (err error) {
		stats.NewInquiries, err = h.store.Count(ctx, "contact_inquiries", model.InquiryNew)
		return err
	})
	g.Go(func() (err error) {
		stats.PendingTestimonials, err = h.store.Count(ctx, "testimonials", model.TestimonialPending)
		return err
	})
	g.Go(func() (err error) {
		stats.RecentEnquiries, err = h.store.ListPackageEnquiries(ctx, "", 5)
		return err
	})
	g.Go(func() (err error) {
		stats.EnquiryHistogram, err = h.store.EnquiryHistogram(ctx, 6)
		return err
	})

	if err := g.Wait(); err != nil {
		h.serverError(w, "collecting dashboard stats", err)
		return
	}

	stats.TotalEnquiries += contactTotal
	writeJSON(w, http.StatusOK, stats)
}

// searchHit is one tagged result in the global search.
type searchHit struct {
	Type     string `json:"type"`
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Link     string `json:"link"`
	Status   string `json:"status,omitempty"`
}

// searchResponse is the global-search composite payload.
type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchHit    `json:"results"`
	Counts  map[string]int `json:"counts"`
	Total   int            `json:"total"`
}

// GlobalSearch handles GET /api/v1/admin/search (ADMIN). Queries shorter
// than two characters return an empty result without touching the database.
// The six entity queries run in parallel; results keep entity-type
// enumeration order, not relevance order.
func (h *Handlers) GlobalSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	resp := searchResponse{Query: q, Results: []searchHit{}, Counts: map[string]int{}}
	if len([]rune(q)) < 2 {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	var (
		packages     []*model.Package
		destinations []*model.Destination
		posts        []*model.BlogPost
		testimonials []*model.Testimonial
		contacts     []*model.ContactInquiry
		enquiries    []*model.PackageEnquiry
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) { packages, err = h.store.SearchPackages(ctx, q, searchHitLimit); return err })
	g.Go(func() (err error) { destinations, err = h.store.SearchDestinations(ctx, q, searchHitLimit); return err })
	g.Go(func() (err error) { posts, err = h.store.SearchPosts(ctx, q, searchHitLimit); return err })
	g.Go(func() (err error) { testimonials, err = h.store.SearchTestimonials(ctx, q, searchHitLimit); return err })
	g.Go(func() (err error) { contacts, err = h.store.SearchContactInquiries(ctx, q, searchHitLimit); return err })
	g.Go(func() (err error) { enquiries, err = h.store.SearchPackageEnquiries(ctx, q, searchHitLimit); return err })

	if err := g.Wait(); err != nil {
		h.serverError(w, "running global search", err)
		return
	}

	for _, p := range packages {
		resp.Results = append(resp.Results, searchHit{
			Type: "package", ID: p.ID, Title: p.Name, Subtitle: p.DestinationName,
			Link: "/packages/" + p.Slug, Status: p.Status,
		})
	}
	for _, d := range destinations {
		resp.Results = append(resp.Results, searchHit{
			Type: "destination", ID: d.ID, Title: d.Name, Subtitle: d.Region,
			Link: "/destinations/" + d.Slug, Status: d.Status,
		})
	}
	for _, p := range posts {
		status := "draft"
		if p.Published {
			status = "published"
		}
		resp.Results = append(resp.Results, searchHit{
			Type: "blog", ID: p.ID, Title: p.Title, Subtitle: p.Excerpt,
			Link: "/blog/" + p.Slug, Status: status,
		})
	}
	for _, t := range testimonials {
		resp.Results = append(resp.Results, searchHit{
			Type: "testimonial", ID: t.ID, Title: t.AuthorName, Subtitle: t.PackageName,
			Link: fmt.Sprintf("/admin/testimonials/%d", t.ID), Status: t.Status,
		})
	}
	for _, c := range contacts {
		resp.Results = append(resp.Results, searchHit{
			Type: "contact", ID: c.ID, Title: c.Name, Subtitle: c.Subject,
			Link: fmt.Sprintf("/admin/contact/%d", c.ID), Status: c.Status,
		})
	}
	for _, e := range enquiries {
		resp.Results = append(resp.Results, searchHit{
			Type: "enquiry", ID: e.ID, Title: e.Name, Subtitle: e.PackageName,
			Link: fmt.Sprintf("/admin/enquiries/%d", e.ID), Status: e.Status,
		})
	}

	resp.Counts = map[string]int{
		"package":     len(packages),
		"destination": len(destinations),
		"blog":        len(posts),
		"testimonial": len(testimonials),
		"contact":     len(contacts),
		"enquiry":     len(enquiries),
	}
	resp.Total = len(resp.Results)

	writeJSON(w, http.StatusOK, resp)
}

// seedRequest optionally overrides the bootstrap admin credentials.
type seedRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Seed handles POST /api/v1/seed. It creates the first ADMIN user and the
// default settings row; rerunning it is a no-op once an admin exists.
func (h *Handlers) Seed(w http.ResponseWriter, r *http.Request) {
	admins, err := h.store.CountAdmins(r.Context())
	if err != nil {
		h.serverError(w, "counting admins", err)
		return
	}
	if admins > 0 {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Admin user already exists"})
		return
	}

	req := seedRequest{
		Email:    "admin@thapaholidays.com",
		Password: "changeme",
		Name:     "Administrator",
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if !validEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.serverError(w, "hashing seed password", err)
		return
	}

	user, err := h.store.CreateUser(r.Context(), &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		h.serverError(w, "creating seed admin", err)
		return
	}

	if _, err := h.store.GetSettings(r.Context()); err != nil {
		h.serverError(w, "seeding settings", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "seed complete",
		"user":    user,
	})
}

// loginRequest is the credentials payload for POST /api/v1/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login. A matching email and password yield
// a session token; anything else is a uniform 401.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		h.serverError(w, "looking up user", err)
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.sessions.Issue(user)
	if err != nil {
		h.serverError(w, "issuing session token", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

// Me handles GET /api/v1/auth/me (ADMIN). It returns the account behind the
// current session, or 401 when the account was deleted after the token was
// issued.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.store.GetUser(r.Context(), claims.UserID)
	if err != nil {
		h.serverError(w, "looking up session user", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// mediaUploadRequest carries a base64 (or data-URI) encoded image.
type mediaUploadRequest struct {
	Image string `json:"image"`
}

// UploadMedia handles POST /api/v1/admin/media (ADMIN). The body is either
// a JSON envelope with a base64 image or the raw image bytes.
func (h *Handlers) UploadMedia(w http.ResponseWriter, r *http.Request) {
	var data []byte

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req mediaUploadRequest
		if err := decodeBody(r, &req); err != nil || req.Image == "" {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		decoded, err := media.DecodeBase64(req.Image)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid base64 image")
			return
		}
		data = decoded
	} else {
		raw, err := io.ReadAll(io.LimitReader(r.Body, media.MaxImageSize+1))
		if err != nil {
			h.serverError(w, "reading upload body", err)
			return
		}
		data = raw
	}

	url, err := h.media.Save(data)
	if err != nil {
		if errors.Is(err, media.ErrBadImage) {
			writeError(w, http.StatusBadRequest, "unsupported or invalid image")
			return
		}
		h.serverError(w, "storing image", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
