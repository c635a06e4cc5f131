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

const blogColumns = `id, slug, title, excerpt, body, cover_image, tags,
	published, published_at, views, created_at, updated_at`

// BlogFilter narrows ListPosts results.
type BlogFilter struct {
	// PublishedOnly hides drafts; the admin listing clears it.
	PublishedOnly bool
	Tag           string
	Limit         int
}

// BlogUpdate carries the fields an update may change; nil means "keep".
type BlogUpdate struct {
	Title      *string
	Excerpt    *string
	Body       *string
	CoverImage *string
	Tags       *[]string
	Published  *bool
}

func scanPost(row pgx.Row) (*model.BlogPost, error) {
	var p model.BlogPost
	var tags []byte

	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Body, &p.CoverImage, &tags,
		&p.Published, &p.PublishedAt, &p.Views, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return nil, fmt.Errorf("unmarshaling post tags: %w", err)
		}
	}
	return &p, nil
}

// ListPosts returns blog posts, newest first.
func (r *Repository) ListPosts(ctx context.Context, filter BlogFilter) ([]*model.BlogPost, error) {
	q := `SELECT ` + blogColumns + ` FROM blog_posts`
	var conds []string
	var args []any

	if filter.PublishedOnly {
		conds = append(conds, "published = TRUE")
	}
	if filter.Tag != "" {
		tagJSON, err := json.Marshal([]string{filter.Tag})
		if err != nil {
			return nil, fmt.Errorf("marshaling tag filter: %w", err)
		}
		args = append(args, string(tagJSON))
		conds = append(conds, fmt.Sprintf("tags @> $%d::jsonb", len(args)))
	}

	for i, c := range conds {
		if i == 0 {
			q += " WHERE " + c
		} else {
			q += " AND " + c
		}
	}
	q += " ORDER BY COALESCE(published_at, created_at) DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying blog posts: %w", err)
	}
	defer rows.Close()

	var results []*model.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning blog post row: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blog post rows: %w", err)
	}

	return results, nil
}

// GetPost looks a post up by numeric id or slug and increments its view
// counter atomically in the same statement. Returns nil, nil on a miss.
func (r *Repository) GetPost(ctx context.Context, idOrSlug string) (*model.BlogPost, error) {
	id, _ := strconv.Atoi(idOrSlug)

	const q = `
		UPDATE blog_posts SET views = views + 1
		WHERE slug = $1 OR id = $2
		RETURNING ` + blogColumns

	p, err := scanPost(r.q.QueryRow(ctx, q, idOrSlug, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying blog post %q: %w", idOrSlug, err)
	}
	return p, nil
}

// CreatePost inserts p with a slug derived from its title. A post created
// already published gets its published_at stamped immediately.
func (r *Repository) CreatePost(ctx context.Context, p *model.BlogPost) (*model.BlogPost, error) {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return nil, fmt.Errorf("marshaling post tags: %w", err)
	}

	const q = `
		INSERT INTO blog_posts (slug, title, excerpt, body, cover_image, tags, published, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CASE WHEN $7 THEN NOW() END)
		RETURNING ` + blogColumns

	base := slug.Make(p.Title)
	for attempt := 0; attempt < slugAttempts; attempt++ {
		candidate := slug.WithSuffix(base, attempt)

		created, err := scanPost(r.q.QueryRow(ctx, q,
			candidate, p.Title, p.Excerpt, p.Body, p.CoverImage, tags, p.Published))
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return nil, fmt.Errorf("inserting blog post: %w", err)
		}
		return created, nil
	}

	return nil, ErrSlugExhausted
}

// UpdatePost merges the provided fields into the post with the given id.
// published_at is stamped on the first transition to published and never
// touched again. Returns nil, nil when the id is absent.
func (r *Repository) UpdatePost(ctx context.Context, id int, u BlogUpdate) (*model.BlogPost, error) {
	tags, err := marshalOptional(u.Tags)
	if err != nil {
		return nil, err
	}

	const q = `
		UPDATE blog_posts SET
			title       = COALESCE($2, title),
			excerpt     = COALESCE($3, excerpt),
			body        = COALESCE($4, body),
			cover_image = COALESCE($5, cover_image),
			tags        = COALESCE($6::jsonb, tags),
			published   = COALESCE($7, published),
			published_at = CASE
				WHEN $7 IS TRUE AND published_at IS NULL THEN NOW()
				ELSE published_at
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + blogColumns

	p, err := scanPost(r.q.QueryRow(ctx, q, id,
		u.Title, u.Excerpt, u.Body, u.CoverImage, tags, u.Published))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("updating blog post %d: %w", id, err)
	}
	return p, nil
}

// DeletePost removes the post with the given id.
// Returns false when the id is absent.
func (r *Repository) DeletePost(ctx context.Context, id int) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting blog post %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
