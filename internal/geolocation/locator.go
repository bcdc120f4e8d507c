package geolocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/bazaar/internal/models"
)

var (
	// ErrPermissionDenied is returned when the visitor refused to share the device position.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrLocationUnavailable is returned when no position source could answer.
	ErrLocationUnavailable = errors.New("location unavailable")
)

// RequestLocator answers "where is the visitor" from what the browser sent with the request.
// The device position wins over a typed place; a typed place needs a geocoder.
type RequestLocator struct {
	Position *models.Coordinates // Position reported by the browser, if any.
	Place    string              // Free-text place typed by the visitor.
	Denied   bool                // The browser reported that the permission was refused.
	Geocoder Provider            // Resolves Place; may be nil.
}

// HasSource reports whether the request carried anything a position can be derived from.
// A locator without a source stands for a device without location capability.
func (rl *RequestLocator) HasSource() bool {
	return rl.Position != nil || rl.Place != "" || rl.Denied
}

// CurrentPosition returns the visitor position.
func (rl *RequestLocator) CurrentPosition(ctx context.Context) (*models.Coordinates, error) {
	switch {
	case rl.Position != nil:
		coords := *rl.Position
		return &coords, nil
	case rl.Place != "" && rl.Geocoder != nil:
		coords, err := rl.Geocoder.Geocode(ctx, rl.Place)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
		}
		return coords, nil
	case rl.Denied:
		return nil, ErrPermissionDenied
	default:
		return nil, ErrLocationUnavailable
	}
}
