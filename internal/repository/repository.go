package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/bazaar/internal/models"
	"github.com/jackc/pgx/v5"
)

type Repository struct {
	db  Database
	log *slog.Logger
}

// Database is the subset of pgxpool.Pool used by the repository.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type Interface interface {
	ListProducts(ctx context.Context) ([]models.ProductWithDistance, error)
	SearchProductsByLocation(
		ctx context.Context, coords models.Coordinates, radiusMeters float64,
	) ([]models.ProductWithDistance, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	SiteConfig(ctx context.Context) (models.SiteConfig, error)
}

var _ Interface = (*Repository)(nil)

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
