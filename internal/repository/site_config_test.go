package repository_test

import (
	"log/slog"
	"regexp"
	"testing"

	"github.com/UnknownOlympus/bazaar/internal/models"
	"github.com/UnknownOlympus/bazaar/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteConfigQuery = `
	SELECT key, value
	FROM public.site_config;
`

func TestSiteConfig(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()

	t.Run("error - query site config", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(siteConfigQuery)).WillReturnError(assert.AnError)

		cfg, err := repo.SiteConfig(ctx)

		require.Nil(t, cfg)
		require.ErrorContains(t, err, "failed to query site config")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(siteConfigQuery)).
			WillReturnRows(pgxmock.NewRows([]string{"key", "value"}).
				AddRow("site_name", "Bazaar").
				AddRow("support_email", "help@example.com"))

		cfg, err := repo.SiteConfig(ctx)

		require.NoError(t, err)
		assert.Equal(t, models.SiteConfig{"site_name": "Bazaar", "support_email": "help@example.com"}, cfg)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
