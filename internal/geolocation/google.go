package geolocation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/bazaar/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider resolves places with the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient
	log    *slog.Logger
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode returns the location of the best match for place.
func (gp *GoogleProvider) Geocode(ctx context.Context, place string) (*models.Coordinates, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "place", place)

	results, err := gp.client.Geocode(ctx, &maps.GeocodingRequest{Address: place})
	if err != nil {
		return nil, fmt.Errorf("failed to geocode place: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrEmptyResponse
	}

	location := results[0].Geometry.Location

	return &models.Coordinates{Latitude: location.Lat, Longitude: location.Lng}, nil
}
