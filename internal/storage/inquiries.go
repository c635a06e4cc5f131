package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
)

const contactColumns = `id, name, email, phone, subject, message, status, notes, created_at, updated_at`

const enquiryColumns = `id, package_id, package_name, name, email, phone,
	travel_date, travelers, message, status, notes, created_at, updated_at`

// InquiryUpdate carries the admin-editable fields of a contact inquiry or
// package enquiry; nil means "keep".
type InquiryUpdate struct {
	Status *string
	Notes  *string
}

// MonthlyCount is one bucket of the enquiry histogram.
type MonthlyCount struct {
	Month time.Time `json:"month"`
	Count int       `json:"count"`
}

func scanContact(row pgx.Row) (*model.ContactInquiry, error) {
	var c model.ContactInquiry
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message,
		&c.Status, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanEnquiry(row pgx.Row) (*model.PackageEnquiry, error) {
	var e model.PackageEnquiry
	err := row.Scan(
		&e.ID, &e.PackageID, &e.PackageName, &e.Name, &e.Email, &e.Phone,
		&e.TravelDate, &e.Travelers, &e.Message, &e.Status, &e.Notes,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateContactInquiry persists a contact-form submission with status NEW.
func (r *Repository) CreateContactInquiry(ctx context.Context, c *model.ContactInquiry) (*model.ContactInquiry, error) {
	const q = `
		INSERT INTO contact_inquiries (name, email, phone, subject, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + contactColumns

	created, err := scanContact(r.q.QueryRow(ctx, q,
		c.Name, c.Email, c.Phone, c.Subject, c.Message, model.InquiryNew))
	if err != nil {
		return nil, fmt.Errorf("inserting contact inquiry: %w", err)
	}
	return created, nil
}

// ListContactInquiries returns contact inquiries, newest first, optionally
// filtered by status.
func (r *Repository) ListContactInquiries(ctx context.Context, status string, limit int) ([]*model.ContactInquiry, error) {
	q := `SELECT ` + contactColumns + ` FROM contact_inquiries`
	var args []any

	if status != "" {
		args = append(args, status)
		q += fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	q += " ORDER BY created_at DESC"
	if limit > 0 {
		args = append(args, limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying contact inquiries: %w", err)
	}
	defer rows.Close()

	var results []*model.ContactInquiry
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact inquiry row: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contact inquiry rows: %w", err)
	}

	return results, nil
}

// UpdateContactInquiry merges status/notes into the inquiry with the given
// id. Returns nil, nil when the id is absent.
func (r *Repository) UpdateContactInquiry(ctx context.Context, id int, u InquiryUpdate) (*model.ContactInquiry, error) {
	const q = `
		UPDATE contact_inquiries SET
			status     = COALESCE($2, status),
			notes      = COALESCE($3, notes),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + contactColumns

	c, err := scanContact(r.q.QueryRow(ctx, q, id, u.Status, u.Notes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("updating contact inquiry %d: %w", id, err)
	}
	return c, nil
}

// CreatePackageEnquiry persists a package booking enquiry with status NEW.
func (r *Repository) CreatePackageEnquiry(ctx context.Context, e *model.PackageEnquiry) (*model.PackageEnquiry, error) {
	const q = `
		INSERT INTO package_enquiries (package_id, package_name, name, email, phone,
			travel_date, travelers, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + enquiryColumns

	created, err := scanEnquiry(r.q.QueryRow(ctx, q,
		e.PackageID, e.PackageName, e.Name, e.Email, e.Phone,
		e.TravelDate, e.Travelers, e.Message, model.InquiryNew))
	if err != nil {
		return nil, fmt.Errorf("inserting package enquiry: %w", err)
	}
	return created, nil
}

// ListPackageEnquiries returns package enquiries, newest first, optionally
// filtered by status.
func (r *Repository) ListPackageEnquiries(ctx context.Context, status string, limit int) ([]*model.PackageEnquiry, error) {
	q := `SELECT ` + enquiryColumns + ` FROM package_enquiries`
	var args []any

	if status != "" {
		args = append(args, status)
		q += fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	q += " ORDER BY created_at DESC"
	if limit > 0 {
		args = append(args, limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying package enquiries: %w", err)
	}
	defer rows.Close()

	var results []*model.PackageEnquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning package enquiry row: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating package enquiry rows: %w", err)
	}

	return results, nil
}

// UpdatePackageEnquiry merges status/notes into the enquiry with the given
// id. Returns nil, nil when the id is absent.
func (r *Repository) UpdatePackageEnquiry(ctx context.Context, id int, u InquiryUpdate) (*model.PackageEnquiry, error) {
	const q = `
		UPDATE package_enquiries SET
			status     = COALESCE($2, status),
			notes      = COALESCE($3, notes),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + enquiryColumns

	e, err := scanEnquiry(r.q.QueryRow(ctx, q, id, u.Status, u.Notes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("updating package enquiry %d: %w", id, err)
	}
	return e, nil
}

// EnquiryHistogram returns per-month enquiry counts for the last `months`
// months, oldest bucket first.
func (r *Repository) EnquiryHistogram(ctx context.Context, months int) ([]MonthlyCount, error) {
	const q = `
		SELECT date_trunc('month', created_at) AS month, COUNT(*)
		FROM package_enquiries
		WHERE created_at >= date_trunc('month', NOW()) - ($1 || ' months')::interval
		GROUP BY month
		ORDER BY month
	`

	rows, err := r.q.Query(ctx, q, months)
	if err != nil {
		return nil, fmt.Errorf("querying enquiry histogram: %w", err)
	}
	defer rows.Close()

	var buckets []MonthlyCount
	for rows.Next() {
		var b MonthlyCount
		if err := rows.Scan(&b.Month, &b.Count); err != nil {
			return nil, fmt.Errorf("scanning histogram bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating histogram buckets: %w", err)
	}

	return buckets, nil
}

// Count runs a COUNT(*) over table with an optional status filter. The table
// name comes from a fixed set of call sites, never user input.
func (r *Repository) Count(ctx context.Context, table, status string) (int, error) {
	q := `SELECT COUNT(*) FROM ` + table
	var args []any
	if status != "" {
		args = append(args, status)
		q += " WHERE status = $1"
	}

	var n int
	if err := r.q.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}

// CountPublishedPosts returns the number of published blog posts.
func (r *Repository) CountPublishedPosts(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM blog_posts WHERE published = TRUE`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting published posts: %w", err)
	}
	return n, nil
}
