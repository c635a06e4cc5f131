package storage

import (
	"context"
	"fmt"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
)

// Search queries. Each is an independent case-insensitive substring match,
// capped by the caller; the admin search fans them out in parallel.

// SearchPackages matches name, summary, or destination name.
func (r *Repository) SearchPackages(ctx context.Context, q string, limit int) ([]*model.Package, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+packageColumns+` FROM packages
		WHERE name ILIKE $1 OR summary ILIKE $1 OR destination_name ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2`, likePattern(q), limit)
	if err != nil {
		return nil, fmt.Errorf("searching packages: %w", err)
	}
	defer rows.Close()

	var results []*model.Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning package hit: %w", err)
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// SearchDestinations matches name or region.
func (r *Repository) SearchDestinations(ctx context.Context, q string, limit int) ([]*model.Destination, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+destinationColumns+` FROM destinations
		WHERE name ILIKE $1 OR region ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2`, likePattern(q), limit)
	if err != nil {
		return nil, fmt.Errorf("searching destinations: %w", err)
	}
	defer rows.Close()

	var results []*model.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning destination hit: %w", err)
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

// SearchPosts matches title or excerpt.
func (r *Repository) SearchPosts(ctx context.Context, q string, limit int) ([]*model.BlogPost, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+blogColumns+` FROM blog_posts
		WHERE title ILIKE $1 OR excerpt ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2`, likePattern(q), limit)
	if err != nil {
		return nil, fmt.Errorf("searching blog posts: %w", err)
	}
	defer rows.Close()

	var results []*model.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning blog post hit: %w", err)
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// SearchTestimonials matches author name or quote.
func (r *Repository) SearchTestimonials(ctx context.Context, q string, limit int) ([]*model.Testimonial, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+testimonialColumns+` FROM testimonials
		WHERE author_name ILIKE $1 OR quote ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2`, likePattern(q), limit)
	if err != nil {
		return nil, fmt.Errorf("searching testimonials: %w", err)
	}
	defer rows.Close()

	var results []*model.Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning testimonial hit: %w", err)
		}
		results = append(results, t)
	}
	return results, rows.Err()
}

// SearchContactInquiries matches name, email, or subject.
func (r *Repository) SearchContactInquiries(ctx context.Context, q string, limit int) ([]*model.ContactInquiry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+contactColumns+` FROM contact_inquiries
		WHERE name ILIKE $1 OR email ILIKE $1 OR subject ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2`, likePattern(q), limit)
	if err != nil {
		return nil, fmt.Errorf("searching contact inquiries: %w", err)
	}
	defer rows.Close()

	var results []*model.ContactInquiry
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact inquiry hit: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// SearchPackageEnquiries matches name, email, or package name.
func (r *Repository) SearchPackageEnquiries(ctx context.Context, q string, limit int) ([]*model.PackageEnquiry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+enquiryColumns+` FROM package_enquiries
		WHERE name ILIKE $1 OR email ILIKE $1 OR package_name ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2`, likePattern(q), limit)
	if err != nil {
		return nil, fmt.Errorf("searching package enquiries: %w", err)
	}
	defer rows.Close()

	var results []*model.PackageEnquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning package enquiry hit: %w", err)
		}
		results = append(results, e)
	}
	return results, rows.Err()
}
