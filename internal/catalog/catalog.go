// Package catalog drives the nearby products page: it acquires the visitor location,
// fetches products for it, filters them by the search text and builds the grid view.
package catalog

import (
	"context"

	"github.com/UnknownOlympus/bazaar/internal/models"
)

const (
	// SearchRadiusMeters bounds the nearby search.
	SearchRadiusMeters = 5000.0
	// SkeletonCount is the number of placeholder cards shown while products load.
	SkeletonCount = 8
	// PlaceholderImage is shown for products without images.
	PlaceholderImage = "/placeholder.svg"
	// MyListingsPath is the route of the visitor's own listings.
	MyListingsPath = "/user-products"
)

// LocationProvider answers the current position of the visitor's device.
type LocationProvider interface {
	CurrentPosition(ctx context.Context) (*models.Coordinates, error)
}

// ProductSource is the backend read surface used by the page.
type ProductSource interface {
	ListProducts(ctx context.Context) ([]models.ProductWithDistance, error)
	SearchProductsByLocation(
		ctx context.Context, coords models.Coordinates, radiusMeters float64,
	) ([]models.ProductWithDistance, error)
}

// SiteConfigSource reads the site-wide settings.
type SiteConfigSource interface {
	SiteConfig(ctx context.Context) (models.SiteConfig, error)
}

// Navigator moves the visitor to another route.
type Navigator interface {
	Navigate(path string)
}

// Notifier shows a transient message to the visitor.
type Notifier interface {
	Notify(n Notification)
}

// Notification is a transient message. Destructive marks warnings and errors.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Destructive bool   `json:"destructive"`
}

// locationUnavailable is shown when the position cannot be read while mounting.
var locationUnavailable = Notification{
	Title:       "Localização não disponível",
	Description: "Ative a localização para ver produtos próximos",
	Destructive: true,
}

// Trigger tells what started a location request, or a page request in general.
type Trigger string

const (
	TriggerMount  Trigger = "mount"
	TriggerManual Trigger = "manual"
	// TriggerSearch is a search submitted from a page that was already mounted.
	TriggerSearch Trigger = "search"
)

// FetchState is the lifecycle of the product fetch.
type FetchState int

const (
	FetchIdle FetchState = iota
	FetchInFlight
	FetchSucceeded
	FetchFailed
)

func (s FetchState) String() string {
	switch s {
	case FetchIdle:
		return "idle"
	case FetchInFlight:
		return "in-flight"
	case FetchSucceeded:
		return "succeeded"
	case FetchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ProductPath returns the detail route of a product.
func ProductPath(id string) string {
	return "/product/" + id
}
