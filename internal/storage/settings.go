package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bibekthapa999/thapa-holidays-sub002/internal/model"
)

const settingsColumns = `id, site_name, tagline, contact_email, contact_phone, address, social, hero, updated_at`

// defaultSettings is what a fresh install gets on the first settings read.
var defaultSettings = model.SiteSettings{
	SiteName:     "Thapa Holidays",
	Tagline:      "Journeys across the Himalayas",
	ContactEmail: "info@thapaholidays.com",
	ContactPhone: "+977-1-4000000",
	Address:      "Thamel, Kathmandu, Nepal",
}

func scanSettings(row pgx.Row) (*model.SiteSettings, error) {
	var s model.SiteSettings
	var social, hero []byte

	err := row.Scan(
		&s.ID, &s.SiteName, &s.Tagline, &s.ContactEmail, &s.ContactPhone,
		&s.Address, &social, &hero, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(social) > 0 {
		if err := json.Unmarshal(social, &s.Social); err != nil {
			return nil, fmt.Errorf("unmarshaling settings social links: %w", err)
		}
	}
	if len(hero) > 0 {
		if err := json.Unmarshal(hero, &s.Hero); err != nil {
			return nil, fmt.Errorf("unmarshaling settings hero: %w", err)
		}
	}
	return &s, nil
}

// GetSettings returns the singleton settings row, creating it with defaults
// on first read. The insert is ON CONFLICT DO NOTHING against the fixed id,
// so concurrent first reads cannot create duplicates.
func (r *Repository) GetSettings(ctx context.Context) (*model.SiteSettings, error) {
	social, err := json.Marshal(defaultSettings.Social)
	if err != nil {
		return nil, fmt.Errorf("marshaling default social links: %w", err)
	}
	hero, err := json.Marshal(defaultSettings.Hero)
	if err != nil {
		return nil, fmt.Errorf("marshaling default hero: %w", err)
	}

	if _, err := r.q.Exec(ctx, `
		INSERT INTO site_settings (id, site_name, tagline, contact_email, contact_phone, address, social, hero)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`,
		defaultSettings.SiteName, defaultSettings.Tagline, defaultSettings.ContactEmail,
		defaultSettings.ContactPhone, defaultSettings.Address, social, hero,
	); err != nil {
		return nil, fmt.Errorf("seeding default settings: %w", err)
	}

	s, err := scanSettings(r.q.QueryRow(ctx, `SELECT `+settingsColumns+` FROM site_settings WHERE id = 1`))
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	return s, nil
}

// SettingsUpdate carries the fields a settings update may change; nil means "keep".
type SettingsUpdate struct {
	SiteName     *string
	Tagline      *string
	ContactEmail *string
	ContactPhone *string
	Address      *string
	Social       *model.SocialLinks
	Hero         *model.HeroContent
}

// UpdateSettings merges the provided fields into the singleton row, creating
// it first if a fresh install is updated before it was ever read.
func (r *Repository) UpdateSettings(ctx context.Context, u SettingsUpdate) (*model.SiteSettings, error) {
	if _, err := r.GetSettings(ctx); err != nil {
		return nil, err
	}

	social, err := marshalOptional(u.Social)
	if err != nil {
		return nil, err
	}
	hero, err := marshalOptional(u.Hero)
	if err != nil {
		return nil, err
	}

	const q = `
		UPDATE site_settings SET
			site_name     = COALESCE($1, site_name),
			tagline       = COALESCE($2, tagline),
			contact_email = COALESCE($3, contact_email),
			contact_phone = COALESCE($4, contact_phone),
			address       = COALESCE($5, address),
			social        = COALESCE($6::jsonb, social),
			hero          = COALESCE($7::jsonb, hero),
			updated_at    = NOW()
		WHERE id = 1
		RETURNING ` + settingsColumns

	s, err := scanSettings(r.q.QueryRow(ctx, q,
		u.SiteName, u.Tagline, u.ContactEmail, u.ContactPhone, u.Address, social, hero))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("settings row missing after seed")
		}
		return nil, fmt.Errorf("updating settings: %w", err)
	}
	return s, nil
}
