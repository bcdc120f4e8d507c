package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/bazaar/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ErrProductNotFound is returned when no product matches the requested identifier.
var ErrProductNotFound = errors.New("product not found")

type rowScanner interface {
	Scan(dest ...any) error
}

// ListProducts returns every product, newest first. The result is not paginated.
func (r *Repository) ListProducts(ctx context.Context) ([]models.ProductWithDistance, error) {
	query := `
		SELECT id::text, title, COALESCE(description, ''), price::text,
			COALESCE(images, '{}'), condition, location_name, created_at
		FROM public.products
		ORDER BY created_at DESC;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.ProductWithDistance{}
	for rows.Next() {
		product, errScan := scanProduct(rows)
		if errScan != nil {
			return nil, errScan
		}
		products = append(products, models.ProductWithDistance{Product: *product})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Products listed", "count", len(products))

	return products, nil
}

// SearchProductsByLocation returns the products within radiusMeters of coords, each
// annotated with its distance in meters. Ordering is decided by the database function
// search_products_by_location (ascending distance).
func (r *Repository) SearchProductsByLocation(
	ctx context.Context,
	coords models.Coordinates,
	radiusMeters float64,
) ([]models.ProductWithDistance, error) {
	query := `
		SELECT id::text, title, COALESCE(description, ''), price::text,
			COALESCE(images, '{}'), condition, location_name, created_at, distance
		FROM public.search_products_by_location($1, $2, $3);
	`

	rows, err := r.db.Query(ctx, query, coords.Latitude, coords.Longitude, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("failed to search products by location: %w", err)
	}
	defer rows.Close()

	products := []models.ProductWithDistance{}
	for rows.Next() {
		var distance float64
		product, errScan := scanProduct(rows, &distance)
		if errScan != nil {
			return nil, errScan
		}
		products = append(products, models.ProductWithDistance{Product: *product, Distance: &distance})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Products found near location",
		"location", coords.String(), "radius", radiusMeters, "count", len(products))

	return products, nil
}

// GetProduct returns a single product by its identifier.
func (r *Repository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	query := `
		SELECT id::text, title, COALESCE(description, ''), price::text,
			COALESCE(images, '{}'), condition, location_name, created_at
		FROM public.products
		WHERE id = $1::uuid;
	`

	// Identifiers that are not UUIDs cannot name a product.
	productID, err := uuid.Parse(id)
	if err != nil {
		r.log.DebugContext(ctx, "Malformed product id", "id", id, "error", err)
		return nil, ErrProductNotFound
	}

	product, err := scanProduct(r.db.QueryRow(ctx, query, productID.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return product, nil
}

// scanProduct reads the common product columns followed by any extra destinations.
func scanProduct(row rowScanner, extra ...any) (*models.Product, error) {
	var (
		product   models.Product
		price     string
		condition string
	)

	dest := append([]any{
		&product.ID,
		&product.Title,
		&product.Description,
		&price,
		&product.Images,
		&condition,
		&product.LocationName,
		&product.CreatedAt,
	}, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	amount, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price of product %s: %w", product.ID, err)
	}
	product.Price = amount
	product.Condition = models.Condition(condition)

	return &product, nil
}
