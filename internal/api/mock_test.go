package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/api"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/auth"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/metrics"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/storage"
)

const testSecret = "test-secret"

// ---- mock Store ----

// mockStore implements api.Store with function fields; methods whose field
// is nil return zero values so each test only wires what it exercises.
type mockStore struct {
	listPackagesFn     func(ctx context.Context, filter storage.PackageFilter) ([]*model.Package, error)
	getPackageFn       func(ctx context.Context, idOrSlug string) (*model.Package, error)
	createPackageFn    func(ctx context.Context, p *model.Package) (*model.Package, error)
	updatePackageFn    func(ctx context.Context, id int, u storage.PackageUpdate) (*model.Package, error)
	deletePackageFn    func(ctx context.Context, id int) (string, bool, error)
	duplicatePackageFn func(ctx context.Context, id int) (*model.Package, error)

	listDestinationsFn  func(ctx context.Context, filter storage.DestinationFilter) ([]*model.Destination, error)
	getDestinationFn    func(ctx context.Context, idOrSlug string) (*model.Destination, error)
	createDestinationFn func(ctx context.Context, d *model.Destination) (*model.Destination, error)
	updateDestinationFn func(ctx context.Context, id int, u storage.DestinationUpdate) (*model.Destination, error)
	deleteDestinationFn func(ctx context.Context, id int) (string, bool, error)

	listPostsFn  func(ctx context.Context, filter storage.BlogFilter) ([]*model.BlogPost, error)
	getPostFn    func(ctx context.Context, idOrSlug string) (*model.BlogPost, error)
	createPostFn func(ctx context.Context, p *model.BlogPost) (*model.BlogPost, error)
	updatePostFn func(ctx context.Context, id int, u storage.BlogUpdate) (*model.BlogPost, error)
	deletePostFn func(ctx context.Context, id int) (bool, error)

	listTestimonialsFn  func(ctx context.Context, filter storage.TestimonialFilter) ([]*model.Testimonial, error)
	createTestimonialFn func(ctx context.Context, t *model.Testimonial) (*model.Testimonial, error)
	updateTestimonialFn func(ctx context.Context, id int, u storage.TestimonialUpdate) (*model.Testimonial, error)
	deleteTestimonialFn func(ctx context.Context, id int) (bool, error)

	createContactFn     func(ctx context.Context, c *model.ContactInquiry) (*model.ContactInquiry, error)
	listContactsFn      func(ctx context.Context, status string, limit int) ([]*model.ContactInquiry, error)
	updateContactFn     func(ctx context.Context, id int, u storage.InquiryUpdate) (*model.ContactInquiry, error)
	createEnquiryFn     func(ctx context.Context, e *model.PackageEnquiry) (*model.PackageEnquiry, error)
	listEnquiriesFn     func(ctx context.Context, status string, limit int) ([]*model.PackageEnquiry, error)
	updateEnquiryFn     func(ctx context.Context, id int, u storage.InquiryUpdate) (*model.PackageEnquiry, error)
	enquiryHistogramFn  func(ctx context.Context, months int) ([]storage.MonthlyCount, error)
	countFn             func(ctx context.Context, table, status string) (int, error)
	countPublishedFn    func(ctx context.Context) (int, error)

	getSettingsFn    func(ctx context.Context) (*model.SiteSettings, error)
	updateSettingsFn func(ctx context.Context, u storage.SettingsUpdate) (*model.SiteSettings, error)

	getUserByEmailFn func(ctx context.Context, email string) (*model.User, error)
	getUserFn        func(ctx context.Context, id int) (*model.User, error)
	countAdminsFn    func(ctx context.Context) (int, error)
	createUserFn     func(ctx context.Context, u *model.User) (*model.User, error)

	searchPackagesFn     func(ctx context.Context, q string, limit int) ([]*model.Package, error)
	searchDestinationsFn func(ctx context.Context, q string, limit int) ([]*model.Destination, error)
	searchPostsFn        func(ctx context.Context, q string, limit int) ([]*model.BlogPost, error)
	searchTestimonialsFn func(ctx context.Context, q string, limit int) ([]*model.Testimonial, error)
	searchContactsFn     func(ctx context.Context, q string, limit int) ([]*model.ContactInquiry, error)
	searchEnquiriesFn    func(ctx context.Context, q string, limit int) ([]*model.PackageEnquiry, error)
}

func (m *mockStore) ListPackages(ctx context.Context, f storage.PackageFilter) ([]*model.Package, error) {
	if m.listPackagesFn == nil {
		return nil, nil
	}
	return m.listPackagesFn(ctx, f)
}
func (m *mockStore) GetPackage(ctx context.Context, s string) (*model.Package, error) {
	if m.getPackageFn == nil {
		return nil, nil
	}
	return m.getPackageFn(ctx, s)
}
func (m *mockStore) CreatePackage(ctx context.Context, p *model.Package) (*model.Package, error) {
	if m.createPackageFn == nil {
		return p, nil
	}
	return m.createPackageFn(ctx, p)
}
func (m *mockStore) UpdatePackage(ctx context.Context, id int, u storage.PackageUpdate) (*model.Package, error) {
	if m.updatePackageFn == nil {
		return nil, nil
	}
	return m.updatePackageFn(ctx, id, u)
}
func (m *mockStore) DeletePackage(ctx context.Context, id int) (string, bool, error) {
	if m.deletePackageFn == nil {
		return "", false, nil
	}
	return m.deletePackageFn(ctx, id)
}
func (m *mockStore) DuplicatePackage(ctx context.Context, id int) (*model.Package, error) {
	if m.duplicatePackageFn == nil {
		return nil, nil
	}
	return m.duplicatePackageFn(ctx, id)
}

func (m *mockStore) ListDestinations(ctx context.Context, f storage.DestinationFilter) ([]*model.Destination, error) {
	if m.listDestinationsFn == nil {
		return nil, nil
	}
	return m.listDestinationsFn(ctx, f)
}
func (m *mockStore) GetDestination(ctx context.Context, s string) (*model.Destination, error) {
	if m.getDestinationFn == nil {
		return nil, nil
	}
	return m.getDestinationFn(ctx, s)
}
func (m *mockStore) CreateDestination(ctx context.Context, d *model.Destination) (*model.Destination, error) {
	if m.createDestinationFn == nil {
		return d, nil
	}
	return m.createDestinationFn(ctx, d)
}
func (m *mockStore) UpdateDestination(ctx context.Context, id int, u storage.DestinationUpdate) (*model.Destination, error) {
	if m.updateDestinationFn == nil {
		return nil, nil
	}
	return m.updateDestinationFn(ctx, id, u)
}
func (m *mockStore) DeleteDestination(ctx context.Context, id int) (string, bool, error) {
	if m.deleteDestinationFn == nil {
		return "", false, nil
	}
	return m.deleteDestinationFn(ctx, id)
}

func (m *mockStore) ListPosts(ctx context.Context, f storage.BlogFilter) ([]*model.BlogPost, error) {
	if m.listPostsFn == nil {
		return nil, nil
	}
	return m.listPostsFn(ctx, f)
}
func (m *mockStore) GetPost(ctx context.Context, s string) (*model.BlogPost, error) {
	if m.getPostFn == nil {
		return nil, nil
	}
	return m.getPostFn(ctx, s)
}
func (m *mockStore) CreatePost(ctx context.Context, p *model.BlogPost) (*model.BlogPost, error) {
	if m.createPostFn == nil {
		return p, nil
	}
	return m.createPostFn(ctx, p)
}
func (m *mockStore) UpdatePost(ctx context.Context, id int, u storage.BlogUpdate) (*model.BlogPost, error) {
	if m.updatePostFn == nil {
		return nil, nil
	}
	return m.updatePostFn(ctx, id, u)
}
func (m *mockStore) DeletePost(ctx context.Context, id int) (bool, error) {
	if m.deletePostFn == nil {
		return false, nil
	}
	return m.deletePostFn(ctx, id)
}

func (m *mockStore) ListTestimonials(ctx context.Context, f storage.TestimonialFilter) ([]*model.Testimonial, error) {
	if m.listTestimonialsFn == nil {
		return nil, nil
	}
	return m.listTestimonialsFn(ctx, f)
}
func (m *mockStore) CreateTestimonial(ctx context.Context, t *model.Testimonial) (*model.Testimonial, error) {
	if m.createTestimonialFn == nil {
		return t, nil
	}
	return m.createTestimonialFn(ctx, t)
}
func (m *mockStore) UpdateTestimonial(ctx context.Context, id int, u storage.TestimonialUpdate) (*model.Testimonial, error) {
	if m.updateTestimonialFn == nil {
		return nil, nil
	}
	return m.updateTestimonialFn(ctx, id, u)
}
func (m *mockStore) DeleteTestimonial(ctx context.Context, id int) (bool, error) {
	if m.deleteTestimonialFn == nil {
		return false, nil
	}
	return m.deleteTestimonialFn(ctx, id)
}

func (m *mockStore) CreateContactInquiry(ctx context.Context, c *model.ContactInquiry) (*model.ContactInquiry, error) {
	if m.createContactFn == nil {
		return c, nil
	}
	return m.createContactFn(ctx, c)
}
func (m *mockStore) ListContactInquiries(ctx context.Context, status string, limit int) ([]*model.ContactInquiry, error) {
	if m.listContactsFn == nil {
		return nil, nil
	}
	return m.listContactsFn(ctx, status, limit)
}
func (m *mockStore) UpdateContactInquiry(ctx context.Context, id int, u storage.InquiryUpdate) (*model.ContactInquiry, error) {
	if m.updateContactFn == nil {
		return nil, nil
	}
	return m.updateContactFn(ctx, id, u)
}
func (m *mockStore) CreatePackageEnquiry(ctx context.Context, e *model.PackageEnquiry) (*model.PackageEnquiry, error) {
	if m.createEnquiryFn == nil {
		return e, nil
	}
	return m.createEnquiryFn(ctx, e)
}
func (m *mockStore) ListPackageEnquiries(ctx context.Context, status string, limit int) ([]*model.PackageEnquiry, error) {
	if m.listEnquiriesFn == nil {
		return nil, nil
	}
	return m.listEnquiriesFn(ctx, status, limit)
}
func (m *mockStore) UpdatePackageEnquiry(ctx context.Context, id int, u storage.InquiryUpdate) (*model.PackageEnquiry, error) {
	if m.updateEnquiryFn == nil {
		return nil, nil
	}
	return m.updateEnquiryFn(ctx, id, u)
}
func (m *mockStore) EnquiryHistogram(ctx context.Context, months int) ([]storage.MonthlyCount, error) {
	if m.enquiryHistogramFn == nil {
		return nil, nil
	}
	return m.enquiryHistogramFn(ctx, months)
}
func (m *mockStore) Count(ctx context.Context, table, status string) (int, error) {
	if m.countFn == nil {
		return 0, nil
	}
	return m.countFn(ctx, table, status)
}
func (m *mockStore) CountPublishedPosts(ctx context.Context) (int, error) {
	if m.countPublishedFn == nil {
		return 0, nil
	}
	return m.countPublishedFn(ctx)
}

func (m *mockStore) GetSettings(ctx context.Context) (*model.SiteSettings, error) {
	if m.getSettingsFn == nil {
		return &model.SiteSettings{ID: 1}, nil
	}
	return m.getSettingsFn(ctx)
}
func (m *mockStore) UpdateSettings(ctx context.Context, u storage.SettingsUpdate) (*model.SiteSettings, error) {
	if m.updateSettingsFn == nil {
		return &model.SiteSettings{ID: 1}, nil
	}
	return m.updateSettingsFn(ctx, u)
}

func (m *mockStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getUserByEmailFn == nil {
		return nil, nil
	}
	return m.getUserByEmailFn(ctx, email)
}
func (m *mockStore) GetUser(ctx context.Context, id int) (*model.User, error) {
	if m.getUserFn == nil {
		return nil, nil
	}
	return m.getUserFn(ctx, id)
}
func (m *mockStore) CountAdmins(ctx context.Context) (int, error) {
	if m.countAdminsFn == nil {
		return 0, nil
	}
	return m.countAdminsFn(ctx)
}
func (m *mockStore) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	if m.createUserFn == nil {
		return u, nil
	}
	return m.createUserFn(ctx, u)
}

func (m *mockStore) SearchPackages(ctx context.Context, q string, limit int) ([]*model.Package, error) {
	if m.searchPackagesFn == nil {
		return nil, nil
	}
	return m.searchPackagesFn(ctx, q, limit)
}
func (m *mockStore) SearchDestinations(ctx context.Context, q string, limit int) ([]*model.Destination, error) {
	if m.searchDestinationsFn == nil {
		return nil, nil
	}
	return m.searchDestinationsFn(ctx, q, limit)
}
func (m *mockStore) SearchPosts(ctx context.Context, q string, limit int) ([]*model.BlogPost, error) {
	if m.searchPostsFn == nil {
		return nil, nil
	}
	return m.searchPostsFn(ctx, q, limit)
}
func (m *mockStore) SearchTestimonials(ctx context.Context, q string, limit int) ([]*model.Testimonial, error) {
	if m.searchTestimonialsFn == nil {
		return nil, nil
	}
	return m.searchTestimonialsFn(ctx, q, limit)
}
func (m *mockStore) SearchContactInquiries(ctx context.Context, q string, limit int) ([]*model.ContactInquiry, error) {
	if m.searchContactsFn == nil {
		return nil, nil
	}
	return m.searchContactsFn(ctx, q, limit)
}
func (m *mockStore) SearchPackageEnquiries(ctx context.Context, q string, limit int) ([]*model.PackageEnquiry, error) {
	if m.searchEnquiriesFn == nil {
		return nil, nil
	}
	return m.searchEnquiriesFn(ctx, q, limit)
}

// ---- mock cache / mailer / media ----

// mockCache is a no-op page cache by default.
type mockCache struct {
	getPageFn    func(ctx context.Context, route string) (json.RawMessage, error)
	setPageFn    func(ctx context.Context, route string, payload any) error
	invalidateFn func(ctx context.Context, routes ...string) error
}

func (m *mockCache) GetPage(ctx context.Context, route string) (json.RawMessage, error) {
	if m.getPageFn == nil {
		return nil, nil
	}
	return m.getPageFn(ctx, route)
}
func (m *mockCache) SetPage(ctx context.Context, route string, payload any) error {
	if m.setPageFn == nil {
		return nil
	}
	return m.setPageFn(ctx, route, payload)
}
func (m *mockCache) Invalidate(ctx context.Context, routes ...string) error {
	if m.invalidateFn == nil {
		return nil
	}
	return m.invalidateFn(ctx, routes...)
}

type mockMailer struct {
	sendFn func(subject, body string) error
}

func (m *mockMailer) Send(subject, body string) error {
	if m.sendFn == nil {
		return nil
	}
	return m.sendFn(subject, body)
}

type mockMedia struct {
	saveFn func(data []byte) (string, error)
}

func (m *mockMedia) Save(data []byte) (string, error) {
	if m.saveFn == nil {
		return "/media/test.png", nil
	}
	return m.saveFn(data)
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// ---- construction helpers ----

func testSessions() *auth.Sessions {
	return auth.NewSessions(testSecret, time.Hour)
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := testSessions().Issue(&model.User{ID: 1, Email: "admin@thapaholidays.com", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("issuing admin token: %v", err)
	}
	return token
}

func newTestHandlers(store *mockStore, c *mockCache, mailer *mockMailer, med *mockMedia) *api.Handlers {
	if c == nil {
		c = &mockCache{}
	}
	if mailer == nil {
		mailer = &mockMailer{}
	}
	if med == nil {
		med = &mockMedia{}
	}
	log := slog.New(slog.NewTextHandler(testWriter{}, nil))
	m := metrics.New("test", prometheus.NewRegistry())
	return api.NewHandlers(store, c, mailer, med, testSessions(), m, log)
}

// newTestServer builds the full router around mocked collaborators so tests
// exercise real routing, middleware, and auth gating.
func newTestServer(t *testing.T, store *mockStore, c *mockCache, mailer *mockMailer) http.Handler {
	t.Helper()
	h := newTestHandlers(store, c, mailer, nil)
	log := slog.New(slog.NewTextHandler(testWriter{}, nil))
	return api.NewRouter(h, &mockPinger{}, &mockPinger{}, t.TempDir(), log)
}

// doRequest performs one request against handler; a non-empty token is sent
// as a bearer credential, a non-nil body is JSON encoded.
func doRequest(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// decodeResponse unmarshals rec's body into v.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response body %q: %v", rec.Body.String(), err)
	}
}

// testWriter swallows test log output.
type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }
