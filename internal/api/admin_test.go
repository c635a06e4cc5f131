package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/auth"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/storage"
)

func TestGetStats_ComposesAllCounters(t *testing.T) {
	store := &mockStore{
		countFn: func(_ context.Context, table, status string) (int, error) {
			switch {
			case table == "packages" && status == model.StatusActive:
				return 12, nil
			case table == "destinations" && status == model.StatusActive:
				return 4, nil
			case table == "package_enquiries" && status == "":
				return 30, nil
			case table == "contact_inquiries" && status == "":
				return 10, nil
			case table == "package_enquiries" && status == model.InquiryNew:
				return 6, nil
			case table == "contact_inquiries" && status == model.InquiryNew:
				return 2, nil
			case table == "testimonials" && status == model.TestimonialPending:
				return 3, nil
			}
			t.Errorf("unexpected count query: table=%q status=%q", table, status)
			return 0, nil
		},
		countPublishedFn: func(_ context.Context) (int, error) { return 8, nil },
		listEnquiriesFn: func(_ context.Context, status string, limit int) ([]*model.PackageEnquiry, error) {
			assert.Equal(t, "", status)
			assert.Equal(t, 5, limit)
			return []*model.PackageEnquiry{{ID: 1, Name: "Maya Tamang"}}, nil
		},
		enquiryHistogramFn: func(_ context.Context, months int) ([]storage.MonthlyCount, error) {
			assert.Equal(t, 6, months)
			return []storage.MonthlyCount{
				{Month: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), Count: 9},
			}, nil
		},
	}
	srv := newTestServer(t, store, nil, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/admin/stats", adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
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
	decodeResponse(t, rec, &stats)

	assert.Equal(t, 12, stats.ActivePackages)
	assert.Equal(t, 4, stats.ActiveDestinations)
	assert.Equal(t, 40, stats.TotalEnquiries, "booking enquiries plus contact inquiries")
	assert.Equal(t, 8, stats.PublishedPosts)
	assert.Equal(t, 6, stats.NewEnquiries)
	assert.Equal(t, 2, stats.NewInquiries)
	assert.Equal(t, 3, stats.PendingTestimonials)
	require.Len(t, stats.RecentEnquiries, 1)
	require.Len(t, stats.EnquiryHistogram, 1)
	assert.Equal(t, 9, stats.EnquiryHistogram[0].Count)
}

func TestGetStats_AnySubQueryFailureFailsWhole(t *testing.T) {
	store := &mockStore{
		countPublishedFn: func(_ context.Context) (int, error) {
			return 0, context.DeadlineExceeded
		},
	}
	srv := newTestServer(t, store, nil, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/admin/stats", adminToken(t), nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code, "no partial stats payload")
}

func TestGlobalSearch_ShortQuerySkipsDatabase(t *testing.T) {
	store := &mockStore{
		searchPackagesFn: func(_ context.Context, _ string, _ int) ([]*model.Package, error) {
			t.Fatal("short query must not hit the database")
			return nil, nil
		},
	}
	srv := newTestServer(t, store, nil, nil)
	token := adminToken(t)

	for _, q := range []string{"", "x", "+a+"} {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/admin/search?q="+q, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Results []any `json:"results"`
			Total   int   `json:"total"`
		}
		decodeResponse(t, rec, &resp)
		assert.Empty(t, resp.Results)
		assert.Zero(t, resp.Total)
	}
}

func TestGlobalSearch_ResultsKeepEntityOrder(t *testing.T) {
	store := &mockStore{
		searchPackagesFn: func(_ context.Context, q string, limit int) ([]*model.Package, error) {
			assert.Equal(t, "everest", q)
			assert.Equal(t, 5, limit)
			return []*model.Package{{ID: 1, Name: "Everest Base Camp", Slug: "everest-base-camp", Status: model.StatusActive}}, nil
		},
		searchPostsFn: func(_ context.Context, _ string, _ int) ([]*model.BlogPost, error) {
			return []*model.BlogPost{{ID: 5, Title: "Everest in Winter", Slug: "everest-in-winter", Published: true}}, nil
		},
		searchEnquiriesFn: func(_ context.Context, _ string, _ int) ([]*model.PackageEnquiry, error) {
			return []*model.PackageEnquiry{{ID: 21, Name: "Maya Tamang", PackageName: "Everest Base Camp", Status: model.InquiryNew}}, nil
		},
	}
	srv := newTestServer(t, store, nil, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/admin/search?q=everest", adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Query   string `json:"query"`
		Results []struct {
			Type   string `json:"type"`
			ID     int    `json:"id"`
			Title  string `json:"title"`
			Link   string `json:"link"`
			Status string `json:"status"`
		} `json:"results"`
		Counts map[string]int `json:"counts"`
		Total  int            `json:"total"`
	}
	decodeResponse(t, rec, &resp)

	assert.Equal(t, "everest", resp.Query)
	require.Len(t, resp.Results, 3)

	// Packages before blog posts before enquiries, regardless of which query
	// finished first.
	assert.Equal(t, "package", resp.Results[0].Type)
	assert.Equal(t, "/packages/everest-base-camp", resp.Results[0].Link)
	assert.Equal(t, "blog", resp.Results[1].Type)
	assert.Equal(t, "published", resp.Results[1].Status)
	assert.Equal(t, "enquiry", resp.Results[2].Type)
	assert.Equal(t, "/admin/enquiries/21", resp.Results[2].Link)

	assert.Equal(t, 1, resp.Counts["package"])
	assert.Equal(t, 0, resp.Counts["destination"])
	assert.Equal(t, 3, resp.Total)
}

func TestSeed_CreatesDefaultAdminAndSettings(t *testing.T) {
	var created *model.User
	settingsRead := false
	store := &mockStore{
		createUserFn: func(_ context.Context, u *model.User) (*model.User, error) {
			created = u
			u.ID = 1
			return u, nil
		},
		getSettingsFn: func(_ context.Context) (*model.SiteSettings, error) {
			settingsRead = true
			return &model.SiteSettings{ID: 1}, nil
		},
	}
	srv := newTestServer(t, store, nil, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/seed", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, created)
	assert.Equal(t, "admin@thapaholidays.com", created.Email)
	assert.Equal(t, model.RoleAdmin, created.Role)
	assert.True(t, auth.CheckPassword(created.PasswordHash, "changeme"))
	assert.True(t, settingsRead, "seeding must materialize the settings row")
}

func TestSeed_IsNoopOnceAdminExists(t *testing.T) {
	store := &mockStore{
		countAdminsFn: func(_ context.Context) (int, error) { return 1, nil },
		createUserFn: func(_ context.Context, _ *model.User) (*model.User, error) {
			t.Fatal("second seed must not create another user")
			return nil, nil
		},
	}
	srv := newTestServer(t, store, nil, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/seed", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeResponse(t, rec, &body)
	assert.Equal(t, "Admin user already exists", body["message"])
}

func TestSeed_RejectsWeakOverrides(t *testing.T) {
	srv := newTestServer(t, &mockStore{}, nil, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/seed", "",
		map[string]any{"email": "boss@thapaholidays.com", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/seed", "",
		map[string]any{"email": "not-an-address", "password": "long-enough-secret"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe(t *testing.T) {
	store := &mockStore{
		getUserFn: func(_ context.Context, id int) (*model.User, error) {
			if id == 1 {
				return &model.User{ID: 1, Email: "admin@thapaholidays.com", Role: model.RoleAdmin}, nil
			}
			return nil, nil
		},
	}
	srv := newTestServer(t, store, nil, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/auth/me", adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user model.User
	decodeResponse(t, rec, &user)
	assert.Equal(t, "admin@thapaholidays.com", user.Email)
}

func TestMe_DeletedAccountIsUnauthorized(t *testing.T) {
	// Valid token, but the account behind it is gone.
	srv := newTestServer(t, &mockStore{}, nil, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/auth/me", adminToken(t), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse-battery")
	require.NoError(t, err)

	store := &mockStore{
		getUserByEmailFn: func(_ context.Context, email string) (*model.User, error) {
			if email == "admin@thapaholidays.com" {
				return &model.User{ID: 1, Email: email, PasswordHash: hash, Role: model.RoleAdmin}, nil
			}
			return nil, nil
		},
	}
	srv := newTestServer(t, store, nil, nil)

	t.Run("valid credentials yield a working session", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/auth/login", "",
			map[string]any{"email": "admin@thapaholidays.com", "password": "correct-horse-battery"})
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Token string     `json:"token"`
			User  model.User `json:"user"`
		}
		decodeResponse(t, rec, &body)
		require.NotEmpty(t, body.Token)
		assert.Equal(t, "admin@thapaholidays.com", body.User.Email)

		claims, err := testSessions().Parse(body.Token)
		require.NoError(t, err)
		assert.True(t, claims.IsAdmin())
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/auth/login", "",
			map[string]any{"email": "admin@thapaholidays.com", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email gets the same 401", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/v1/auth/login", "",
			map[string]any{"email": "ghost@example.com", "password": "whatever"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body map[string]string
		decodeResponse(t, rec, &body)
		assert.Equal(t, "invalid email or password", body["error"])
	})
}
