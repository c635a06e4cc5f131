package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
)

const testimonialColumns = `id, author_name, author_location, rating, quote,
	package_name, status, featured, created_at, updated_at`

// TestimonialFilter narrows ListTestimonials results.
type TestimonialFilter struct {
	// Status filters to a single status; empty returns every status.
	// Public callers always get APPROVED; the handler enforces that.
	Status   string
	Featured *bool
	Limit    int
}

// TestimonialUpdate carries the fields an admin may change; nil means "keep".
type TestimonialUpdate struct {
	Status   *string
	Featured *bool
}

func scanTestimonial(row pgx.Row) (*model.Testimonial, error) {
	var t model.Testimonial
	err := row.Scan(
		&t.ID, &t.AuthorName, &t.AuthorLocation, &t.Rating, &t.Quote,
		&t.PackageName, &t.Status, &t.Featured, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTestimonials returns testimonials matching filter, featured first,
// newest next.
func (r *Repository) ListTestimonials(ctx context.Context, filter TestimonialFilter) ([]*model.Testimonial, error) {
	q := `SELECT ` + testimonialColumns + ` FROM testimonials`
	var conds []string
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		conds = append(conds, fmt.Sprintf("featured = $%d", len(args)))
	}

	for i, c := range conds {
		if i == 0 {
			q += " WHERE " + c
		} else {
			q += " AND " + c
		}
	}
	q += " ORDER BY featured DESC, created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying testimonials: %w", err)
	}
	defer rows.Close()

	var results []*model.Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning testimonial row: %w", err)
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating testimonial rows: %w", err)
	}

	return results, nil
}

// CreateTestimonial inserts t with whatever status and featured flag the
// caller resolved. The handler decides those: public submissions are forced
// to PENDING before reaching here.
func (r *Repository) CreateTestimonial(ctx context.Context, t *model.Testimonial) (*model.Testimonial, error) {
	const q = `
		INSERT INTO testimonials (author_name, author_location, rating, quote, package_name, status, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + testimonialColumns

	created, err := scanTestimonial(r.q.QueryRow(ctx, q,
		t.AuthorName, t.AuthorLocation, t.Rating, t.Quote, t.PackageName, t.Status, t.Featured))
	if err != nil {
		return nil, fmt.Errorf("inserting testimonial: %w", err)
	}
	return created, nil
}

// UpdateTestimonial merges the provided fields into the testimonial with the
// given id. Returns nil, nil when the id is absent.
func (r *Repository) UpdateTestimonial(ctx context.Context, id int, u TestimonialUpdate) (*model.Testimonial, error) {
	const q = `
		UPDATE testimonials SET
			status     = COALESCE($2, status),
			featured   = COALESCE($3, featured),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + testimonialColumns

	t, err := scanTestimonial(r.q.QueryRow(ctx, q, id, u.Status, u.Featured))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("updating testimonial %d: %w", id, err)
	}
	return t, nil
}

// DeleteTestimonial removes the testimonial with the given id.
// Returns false when the id is absent.
func (r *Repository) DeleteTestimonial(ctx context.Context, id int) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting testimonial %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
