package geolocation

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/bazaar/internal/models"
)

// Provider resolves a free-text place (city, neighbourhood, address) into coordinates.
type Provider interface {
	Geocode(ctx context.Context, place string) (*models.Coordinates, error)
}

// ErrEmptyResponse is returned when a provider knows nothing about the requested place.
var ErrEmptyResponse = errors.New("geocoding provider returned empty response")
