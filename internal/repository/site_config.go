package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/bazaar/internal/models"
)

// SiteConfig loads the site-wide key/value settings.
func (r *Repository) SiteConfig(ctx context.Context) (models.SiteConfig, error) {
	query := `
		SELECT key, value
		FROM public.site_config;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query site config: %w", err)
	}
	defer rows.Close()

	cfg := models.SiteConfig{}
	for rows.Next() {
		var key, value string
		if errScan := rows.Scan(&key, &value); errScan != nil {
			return nil, fmt.Errorf("failed to scan site config entry: %w", errScan)
		}
		cfg[key] = value
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return cfg, nil
}
