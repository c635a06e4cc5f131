package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
	"github.com/bibekthapa999/thapa-holidays-sub002/internal/slug"
)

const packageColumns = `id, slug, name, summary, description, destination_id, destination_name,
	duration_days, price, original_price, status, featured, hero_image,
	gallery, itinerary, faqs, policies, created_at, updated_at`

// PackageFilter narrows ListPackages results. Zero values mean "no filter".
type PackageFilter struct {
	Status      string
	Destination string // destination slug
	Featured    *bool
	MinPrice    *float64
	MaxPrice    *float64
	Limit       int
}

// PackageUpdate carries the fields an update may change; nil means "keep".
type PackageUpdate struct {
	Name             *string
	Summary          *string
	Description      *string
	DestinationID    *int
	DestinationName  *string
	DurationDays     *int
	Price            *float64
	OriginalPrice    *float64
	Status           *string
	Featured         *bool
	HeroImage        *string
	Gallery          *[]string
	Itinerary        *[]model.ItineraryDay
	FAQs             *[]model.FAQ
	Policies         *model.Policies
	AccommodationIDs *[]int
}

func scanPackage(row pgx.Row) (*model.Package, error) {
	var p model.Package
	var gallery, itinerary, faqs, policies []byte

	err := row.Scan(
		&p.ID, &p.Slug, &p.Name, &p.Summary, &p.Description,
		&p.DestinationID, &p.DestinationName, &p.DurationDays,
		&p.Price, &p.OriginalPrice, &p.Status, &p.Featured, &p.HeroImage,
		&gallery, &itinerary, &faqs, &policies,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, blob := range []struct {
		raw []byte
		dst any
	}{
		{gallery, &p.Gallery},
		{itinerary, &p.Itinerary},
		{faqs, &p.FAQs},
		{policies, &p.Policies},
	} {
		if len(blob.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(blob.raw, blob.dst); err != nil {
			return nil, fmt.Errorf("unmarshaling package jsonb: %w", err)
		}
	}

	return &p, nil
}

// ListPackages returns packages matching filter, featured first, newest next.
func (r *Repository) ListPackages(ctx context.Context, filter PackageFilter) ([]*model.Package, error) {
	q := `SELECT ` + packageColumns + ` FROM packages`
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.Destination != "" {
		add("destination_id = (SELECT id FROM destinations WHERE slug = $%d)", filter.Destination)
	}
	if filter.Featured != nil {
		add("featured = $%d", *filter.Featured)
	}
	if filter.MinPrice != nil {
		add("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("price <= $%d", *filter.MaxPrice)
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
		return nil, fmt.Errorf("querying packages: %w", err)
	}
	defer rows.Close()

	var results []*model.Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning package row: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating package rows: %w", err)
	}

	return results, nil
}

// GetPackage looks a package up by numeric id or slug in a single query.
// Returns nil, nil when nothing matches.
func (r *Repository) GetPackage(ctx context.Context, idOrSlug string) (*model.Package, error) {
	id, _ := strconv.Atoi(idOrSlug)

	const q = `SELECT ` + packageColumns + ` FROM packages WHERE slug = $1 OR id = $2`

	p, err := scanPackage(r.q.QueryRow(ctx, q, idOrSlug, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying package %q: %w", idOrSlug, err)
	}

	if p.AccommodationIDs, err = r.packageAccommodations(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repository) packageAccommodations(ctx context.Context, packageID int) ([]int, error) {
	rows, err := r.q.Query(ctx,
		`SELECT accommodation_id FROM package_accommodations WHERE package_id = $1 ORDER BY accommodation_id`,
		packageID)
	if err != nil {
		return nil, fmt.Errorf("querying package accommodations: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning accommodation id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CreatePackage inserts p with a slug derived from its name. Slug collisions
// are resolved by retrying with a numeric suffix; the unique index decides.
func (r *Repository) CreatePackage(ctx context.Context, p *model.Package) (*model.Package, error) {
	gallery, itinerary, faqs, policies, err := marshalPackageBlobs(p)
	if err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO packages (slug, name, summary, description, destination_id, destination_name,
			duration_days, price, original_price, status, featured, hero_image,
			gallery, itinerary, faqs, policies)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + packageColumns

	base := slug.Make(p.Name)
	for attempt := 0; attempt < slugAttempts; attempt++ {
		candidate := slug.WithSuffix(base, attempt)

		created, err := scanPackage(r.q.QueryRow(ctx, q,
			candidate, p.Name, p.Summary, p.Description, p.DestinationID, p.DestinationName,
			p.DurationDays, p.Price, p.OriginalPrice, p.Status, p.Featured, p.HeroImage,
			gallery, itinerary, faqs, policies,
		))
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return nil, fmt.Errorf("inserting package: %w", err)
		}

		if err := r.setPackageAccommodations(ctx, created.ID, p.AccommodationIDs); err != nil {
			return nil, err
		}
		created.AccommodationIDs = p.AccommodationIDs
		return created, nil
	}

	return nil, ErrSlugExhausted
}

func (r *Repository) setPackageAccommodations(ctx context.Context, packageID int, ids []int) error {
	if _, err := r.q.Exec(ctx,
		`DELETE FROM package_accommodations WHERE package_id = $1`, packageID); err != nil {
		return fmt.Errorf("clearing package accommodations: %w", err)
	}
	for _, id := range ids {
		if _, err := r.q.Exec(ctx,
			`INSERT INTO package_accommodations (package_id, accommodation_id) VALUES ($1, $2)`,
			packageID, id); err != nil {
			return fmt.Errorf("linking accommodation %d: %w", id, err)
		}
	}
	return nil
}

// UpdatePackage merges the provided fields into the package with the given
// id and refreshes updated_at. Returns nil, nil when the id is absent.
func (r *Repository) UpdatePackage(ctx context.Context, id int, u PackageUpdate) (*model.Package, error) {
	gallery, err := marshalOptional(u.Gallery)
	if err != nil {
		return nil, err
	}
	itinerary, err := marshalOptional(u.Itinerary)
	if err != nil {
		return nil, err
	}
	faqs, err := marshalOptional(u.FAQs)
	if err != nil {
		return nil, err
	}
	policies, err := marshalOptional(u.Policies)
	if err != nil {
		return nil, err
	}

	const q = `
		UPDATE packages SET
			name             = COALESCE($2, name),
			summary          = COALESCE($3, summary),
			description      = COALESCE($4, description),
			destination_id   = COALESCE($5, destination_id),
			destination_name = COALESCE($6, destination_name),
			duration_days    = COALESCE($7, duration_days),
			price            = COALESCE($8, price),
			original_price   = COALESCE($9, original_price),
			status           = COALESCE($10, status),
			featured         = COALESCE($11, featured),
			hero_image       = COALESCE($12, hero_image),
			gallery          = COALESCE($13::jsonb, gallery),
			itinerary        = COALESCE($14::jsonb, itinerary),
			faqs             = COALESCE($15::jsonb, faqs),
			policies         = COALESCE($16::jsonb, policies),
			updated_at       = NOW()
		WHERE id = $1
		RETURNING ` + packageColumns

	p, err := scanPackage(r.q.QueryRow(ctx, q, id,
		u.Name, u.Summary, u.Description, u.DestinationID, u.DestinationName,
		u.DurationDays, u.Price, u.OriginalPrice, u.Status, u.Featured, u.HeroImage,
		gallery, itinerary, faqs, policies,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("updating package %d: %w", id, err)
	}

	if u.AccommodationIDs != nil {
		if err := r.setPackageAccommodations(ctx, id, *u.AccommodationIDs); err != nil {
			return nil, err
		}
	}
	if p.AccommodationIDs, err = r.packageAccommodations(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePackage removes the package with the given id and returns its slug so
// the caller can drop the cached detail page. ok is false when the id is
// absent.
func (r *Repository) DeletePackage(ctx context.Context, id int) (slug string, ok bool, err error) {
	err = r.q.QueryRow(ctx, `DELETE FROM packages WHERE id = $1 RETURNING slug`, id).Scan(&slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("deleting package %d: %w", id, err)
	}
	return slug, true, nil
}

// DuplicatePackage clones the package with the given id. The clone always
// starts INACTIVE and unfeatured, with a "-copy" slug probed until free.
// Returns nil, nil when the source is absent.
func (r *Repository) DuplicatePackage(ctx context.Context, id int) (*model.Package, error) {
	src, err := r.GetPackage(ctx, strconv.Itoa(id))
	if err != nil || src == nil {
		return nil, err
	}

	gallery, itinerary, faqs, policies, err := marshalPackageBlobs(src)
	if err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO packages (slug, name, summary, description, destination_id, destination_name,
			duration_days, price, original_price, status, featured, hero_image,
			gallery, itinerary, faqs, policies)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + packageColumns

	for attempt := 0; attempt < slugAttempts; attempt++ {
		candidate := slug.CopySuffix(src.Slug, attempt)

		clone, err := scanPackage(r.q.QueryRow(ctx, q,
			candidate, src.Name, src.Summary, src.Description, src.DestinationID, src.DestinationName,
			src.DurationDays, src.Price, src.OriginalPrice, model.StatusInactive, false, src.HeroImage,
			gallery, itinerary, faqs, policies,
		))
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return nil, fmt.Errorf("inserting package copy: %w", err)
		}

		if _, err := r.q.Exec(ctx, `
			INSERT INTO package_accommodations (package_id, accommodation_id)
			SELECT $1, accommodation_id FROM package_accommodations WHERE package_id = $2`,
			clone.ID, src.ID); err != nil {
			return nil, fmt.Errorf("copying package accommodations: %w", err)
		}
		clone.AccommodationIDs = src.AccommodationIDs
		return clone, nil
	}

	return nil, ErrSlugExhausted
}

func marshalPackageBlobs(p *model.Package) (gallery, itinerary, faqs, policies []byte, err error) {
	for _, blob := range []struct {
		dst *[]byte
		src any
	}{
		{&gallery, p.Gallery},
		{&itinerary, p.Itinerary},
		{&faqs, p.FAQs},
		{&policies, p.Policies},
	} {
		if *blob.dst, err = json.Marshal(blob.src); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("marshaling package jsonb: %w", err)
		}
	}
	return gallery, itinerary, faqs, policies, nil
}

// marshalOptional returns nil (SQL NULL) when v is nil, otherwise JSON bytes.
func marshalOptional[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling jsonb field: %w", err)
	}
	return b, nil
}
