package api

import (
	"context"
	"encoding/json"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/storage"
)

// Store defines the storage operations needed by handlers.
// *storage.Repository satisfies this interface; tests inject a mock.
type Store interface {
	ListPackages(ctx context.Context, filter storage.PackageFilter) ([]*model.Package, error)
	GetPackage(ctx context.Context, idOrSlug string) (*model.Package, error)
	CreatePackage(ctx context.Context, p *model.Package) (*model.Package, error)
	UpdatePackage(ctx context.Context, id int, u storage.PackageUpdate) (*model.Package, error)
	DeletePackage(ctx context.Context, id int) (string, bool, error)
	DuplicatePackage(ctx context.Context, id int) (*model.Package, error)

	ListDestinations(ctx context.Context, filter storage.DestinationFilter) ([]*model.Destination, error)
	GetDestination(ctx context.Context, idOrSlug string) (*model.Destination, error)
	CreateDestination(ctx context.Context, d *model.Destination) (*model.Destination, error)
	UpdateDestination(ctx context.Context, id int, u storage.DestinationUpdate) (*model.Destination, error)
	DeleteDestination(ctx context.Context, id int) (string, bool, error)

	ListPosts(ctx context.Context, filter storage.BlogFilter) ([]*model.BlogPost, error)
	GetPost(ctx context.Context, idOrSlug string) (*model.BlogPost, error)
	CreatePost(ctx context.Context, p *model.BlogPost) (*model.BlogPost, error)
	UpdatePost(ctx context.Context, id int, u storage.BlogUpdate) (*model.BlogPost, error)
	DeletePost(ctx context.Context, id int) (bool, error)

	ListTestimonials(ctx context.Context, filter storage.TestimonialFilter) ([]*model.Testimonial, error)
	CreateTestimonial(ctx context.Context, t *model.Testimonial) (*model.Testimonial, error)
	UpdateTestimonial(ctx context.Context, id int, u storage.TestimonialUpdate) (*model.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id int) (bool, error)

	CreateContactInquiry(ctx context.Context, c *model.ContactInquiry) (*model.ContactInquiry, error)
	ListContactInquiries(ctx context.Context, status string, limit int) ([]*model.ContactInquiry, error)
	UpdateContactInquiry(ctx context.Context, id int, u storage.InquiryUpdate) (*model.ContactInquiry, error)
	CreatePackageEnquiry(ctx context.Context, e *model.PackageEnquiry) (*model.PackageEnquiry, error)
	ListPackageEnquiries(ctx context.Context, status string, limit int) ([]*model.PackageEnquiry, error)
	UpdatePackageEnquiry(ctx context.Context, id int, u storage.InquiryUpdate) (*model.PackageEnquiry, error)
	EnquiryHistogram(ctx context.Context, months int) ([]storage.MonthlyCount, error)
	Count(ctx context.Context, table, status string) (int, error)
	CountPublishedPosts(ctx context.Context) (int, error)

	GetSettings(ctx context.Context) (*model.SiteSettings, error)
	UpdateSettings(ctx context.Context, u storage.SettingsUpdate) (*model.SiteSettings, error)

	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUser(ctx context.Context, id int) (*model.User, error)
	CountAdmins(ctx context.Context) (int, error)
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)

	SearchPackages(ctx context.Context, q string, limit int) ([]*model.Package, error)
	SearchDestinations(ctx context.Context, q string, limit int) ([]*model.Destination, error)
	SearchPosts(ctx context.Context, q string, limit int) ([]*model.BlogPost, error)
	SearchTestimonials(ctx context.Context, q string, limit int) ([]*model.Testimonial, error)
	SearchContactInquiries(ctx context.Context, q string, limit int) ([]*model.ContactInquiry, error)
	SearchPackageEnquiries(ctx context.Context, q string, limit int) ([]*model.PackageEnquiry, error)
}

// PageCache defines the rendered-page cache operations needed by handlers.
type PageCache interface {
	GetPage(ctx context.Context, route string) (json.RawMessage, error)
	SetPage(ctx context.Context, route string, payload any) error
	Invalidate(ctx context.Context, routes ...string) error
}

// MediaStore accepts an image and returns its durable URL.
type MediaStore interface {
	Save(data []byte) (string, error)
}
