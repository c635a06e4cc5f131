// Package model defines the entities stored by the travel-agency backend
// and the status values they move through.
package model

import "time"

// Package and destination statuses.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Testimonial statuses.
const (
	TestimonialPending  = "PENDING"
	TestimonialApproved = "APPROVED"
	TestimonialRejected = "REJECTED"
)

// Inquiry and enquiry statuses.
const (
	InquiryNew       = "NEW"
	InquiryRead      = "READ"
	InquiryResolved  = "RESOLVED"
	EnquiryContacted = "CONTACTED"
	EnquiryClosed    = "CLOSED"
)

// User roles.
const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
)

// ItineraryDay is one day of a package itinerary.
type ItineraryDay struct {
	Day         int      `json:"day"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Meals       []string `json:"meals,omitempty"`
	Stay        string   `json:"stay,omitempty"`
}

// FAQ is a question/answer pair attached to a package.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Policies groups a package's booking and cancellation terms.
type Policies struct {
	Inclusions   []string `json:"inclusions,omitempty"`
	Exclusions   []string `json:"exclusions,omitempty"`
	Cancellation string   `json:"cancellation,omitempty"`
	Payment      string   `json:"payment,omitempty"`
}

// Package is a sellable travel package.
type Package struct {
	ID               int            `json:"id"`
	Slug             string         `json:"slug"`
	Name             string         `json:"name"`
	Summary          string         `json:"summary"`
	Description      string         `json:"description"`
	DestinationID    *int           `json:"destination_id,omitempty"`
	DestinationName  string         `json:"destination_name,omitempty"`
	DurationDays     int            `json:"duration_days"`
	Price            float64        `json:"price"`
	OriginalPrice    *float64       `json:"original_price,omitempty"`
	Status           string         `json:"status"`
	Featured         bool           `json:"featured"`
	HeroImage        string         `json:"hero_image,omitempty"`
	Gallery          []string       `json:"gallery,omitempty"`
	Itinerary        []ItineraryDay `json:"itinerary,omitempty"`
	FAQs             []FAQ          `json:"faqs,omitempty"`
	Policies         *Policies      `json:"policies,omitempty"`
	AccommodationIDs []int          `json:"accommodation_ids,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// Accommodation is a hotel or lodge referenced by packages.
type Accommodation struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Rating   float64 `json:"rating"`
}

// Destination is a travel region the agency sells packages for.
type Destination struct {
	ID        int       `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	Category  string    `json:"category"`
	Summary   string    `json:"summary"`
	HeroImage string    `json:"hero_image,omitempty"`
	Featured  bool      `json:"featured"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlogPost is a marketing blog article.
type BlogPost struct {
	ID          int        `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body"`
	CoverImage  string     `json:"cover_image,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Views       int        `json:"views"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Testimonial is a customer review. Public submissions start PENDING and are
// invisible until an admin approves them.
type Testimonial struct {
	ID             int       `json:"id"`
	AuthorName     string    `json:"author_name"`
	AuthorLocation string    `json:"author_location,omitempty"`
	Rating         int       `json:"rating"`
	Quote          string    `json:"quote"`
	PackageName    string    `json:"package_name,omitempty"`
	Status         string    `json:"status"`
	Featured       bool      `json:"featured"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ContactInquiry is a general contact-form submission.
type ContactInquiry struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PackageEnquiry is a booking enquiry for a specific package.
type PackageEnquiry struct {
	ID          int       `json:"id"`
	PackageID   *int      `json:"package_id,omitempty"`
	PackageName string    `json:"package_name,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	TravelDate  string    `json:"travel_date,omitempty"`
	Travelers   int       `json:"travelers,omitempty"`
	Message     string    `json:"message,omitempty"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SocialLinks holds the agency's social profile URLs.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	WhatsApp  string `json:"whatsapp,omitempty"`
}

// HeroContent is the landing-page hero section.
type HeroContent struct {
	Heading    string `json:"heading,omitempty"`
	Subheading string `json:"subheading,omitempty"`
	Image      string `json:"image,omitempty"`
}

// SiteSettings is the singleton row of site-wide configuration.
type SiteSettings struct {
	ID           int         `json:"id"`
	SiteName     string      `json:"site_name"`
	Tagline      string      `json:"tagline,omitempty"`
	ContactEmail string      `json:"contact_email"`
	ContactPhone string      `json:"contact_phone,omitempty"`
	Address      string      `json:"address,omitempty"`
	Social       SocialLinks `json:"social"`
	Hero         HeroContent `json:"hero"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// User is a dashboard account.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
