package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/slug"
)

const destinationColumns = `id, slug, name, region, category, summary, hero_image,
	featured, status, created_at, updated_at`

// DestinationFilter narrows ListDestinations results.
type DestinationFilter struct {
	Status   string
	Region   string
	Category string
	Featured *bool
	Limit    int
}

// DestinationUpdate carries the fields an update may change; nil means "keep".
type DestinationUpdate struct {
	Name      *string
	Region    *string
	Category  *string
	Summary   *string
	HeroImage *string
	Featured  *bool
	Status    *string
}

func scanDestination(row pgx.Row) (*model.Destination, error) {
	var d model.Destination
	err := row.Scan(
		&d.ID, &d.Slug, &d.Name, &d.Region, &d.Category, &d.Summary,
		&d.HeroImage, &d.Featured, &d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDestinations returns destinations matching filter, featured first.
func (r *Repository) ListDestinations(ctx context.Context, filter DestinationFilter) ([]*model.Destination, error) {
	q := `SELECT ` + destinationColumns + ` FROM destinations`
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.Region != "" {
		add("region = $%d", filter.Region)
	}
	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.Featured != nil {
		add("featured = $%d", *filter.Featured)
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
		return nil, fmt.Errorf("querying destinations: %w", err)
	}
	defer rows.Close()

	var results []*model.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning destination row: %w", err)
		}
		results = append(results, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating destination rows: %w", err)
	}

	return results, nil
}

// GetDestination looks a destination up by numeric id or slug.
// Returns nil, nil when nothing matches.
func (r *Repository) GetDestination(ctx context.Context, idOrSlug string) (*model.Destination, error) {
	id, _ := strconv.Atoi(idOrSlug)

	const q = `SELECT ` + destinationColumns + ` FROM destinations WHERE slug = $1 OR id = $2`

	d, err := scanDestination(r.q.QueryRow(ctx, q, idOrSlug, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying destination %q: %w", idOrSlug, err)
	}
	return d, nil
}

// CreateDestination inserts d with a slug derived from its name, retrying
// suffixed candidates on unique-index conflicts.
func (r *Repository) CreateDestination(ctx context.Context, d *model.Destination) (*model.Destination, error) {
	const q = `
		INSERT INTO destinations (slug, name, region, category, summary, hero_image, featured, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + destinationColumns

	base := slug.Make(d.Name)
	for attempt := 0; attempt < slugAttempts; attempt++ {
		candidate := slug.WithSuffix(base, attempt)

		created, err := scanDestination(r.q.QueryRow(ctx, q,
			candidate, d.Name, d.Region, d.Category, d.Summary, d.HeroImage, d.Featured, d.Status))
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return nil, fmt.Errorf("inserting destination: %w", err)
		}
		return created, nil
	}

	return nil, ErrSlugExhausted
}

// UpdateDestination merges the provided fields into the destination with the
// given id. Returns nil, nil when the id is absent.
func (r *Repository) UpdateDestination(ctx context.Context, id int, u DestinationUpdate) (*model.Destination, error) {
	const q = `
		UPDATE destinations SET
			name       = COALESCE($2, name),
			region     = COALESCE($3, region),
			category   = COALESCE($4, category),
			summary    = COALESCE($5, summary),
			hero_image = COALESCE($6, hero_image),
			featured   = COALESCE($7, featured),
			status     = COALESCE($8, status),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + destinationColumns

	d, err := scanDestination(r.q.QueryRow(ctx, q, id,
		u.Name, u.Region, u.Category, u.Summary, u.HeroImage, u.Featured, u.Status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("updating destination %d: %w", id, err)
	}
	return d, nil
}

// DeleteDestination removes the destination with the given id and returns its
// slug so the caller can drop the cached detail page. ok is false when the id
// is absent.
func (r *Repository) DeleteDestination(ctx context.Context, id int) (slug string, ok bool, err error) {
	err = r.q.QueryRow(ctx, `DELETE FROM destinations WHERE id = $1 RETURNING slug`, id).Scan(&slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("deleting destination %d: %w", id, err)
	}
	return slug, true, nil
}
