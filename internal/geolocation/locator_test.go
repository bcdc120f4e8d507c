package geolocation_test

import (
	"testing"

	"github.com/UnknownOlympus/bazaar/internal/geolocation"
	"github.com/UnknownOlympus/bazaar/internal/metrics"
	"github.com/UnknownOlympus/bazaar/internal/models"
	"github.com/UnknownOlympus/bazaar/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLocator_CurrentPosition(t *testing.T) {
	ctx := t.Context()

	t.Run("device position wins", func(t *testing.T) {
		geocoder := mocks.NewProvider(t)
		locator := &geolocation.RequestLocator{
			Position: &models.Coordinates{Latitude: -23.5, Longitude: -46.6},
			Place:    "Rio de Janeiro",
			Geocoder: geocoder,
		}

		coords, err := locator.CurrentPosition(ctx)

		require.NoError(t, err)
		assert.Equal(t, models.Coordinates{Latitude: -23.5, Longitude: -46.6}, *coords)
		assert.True(t, locator.HasSource())
		geocoder.AssertNotCalled(t, "Geocode")
	})

	t.Run("place is geocoded", func(t *testing.T) {
		geocoder := mocks.NewProvider(t)
		geocoder.On("Geocode", ctx, "Rio de Janeiro").
			Return(&models.Coordinates{Latitude: -22.9, Longitude: -43.2}, nil).Once()
		locator := &geolocation.RequestLocator{Place: "Rio de Janeiro", Geocoder: geocoder}

		coords, err := locator.CurrentPosition(ctx)

		require.NoError(t, err)
		assert.InDelta(t, -22.9, coords.Latitude, 0.0001)
	})

	t.Run("geocoding failure means unavailable", func(t *testing.T) {
		geocoder := mocks.NewProvider(t)
		geocoder.On("Geocode", ctx, "Atlantis").Return(nil, geolocation.ErrEmptyResponse).Once()
		locator := &geolocation.RequestLocator{Place: "Atlantis", Geocoder: geocoder}

		coords, err := locator.CurrentPosition(ctx)

		require.Nil(t, coords)
		require.ErrorIs(t, err, geolocation.ErrLocationUnavailable)
		require.ErrorIs(t, err, geolocation.ErrEmptyResponse)
	})

	t.Run("place without geocoder", func(t *testing.T) {
		locator := &geolocation.RequestLocator{Place: "Recife"}

		_, err := locator.CurrentPosition(ctx)

		require.ErrorIs(t, err, geolocation.ErrLocationUnavailable)
	})

	t.Run("permission denied", func(t *testing.T) {
		locator := &geolocation.RequestLocator{Denied: true}

		_, err := locator.CurrentPosition(ctx)

		require.ErrorIs(t, err, geolocation.ErrPermissionDenied)
		assert.True(t, locator.HasSource())
	})

	t.Run("no source", func(t *testing.T) {
		locator := &geolocation.RequestLocator{}

		_, err := locator.CurrentPosition(ctx)

		require.ErrorIs(t, err, geolocation.ErrLocationUnavailable)
		assert.False(t, locator.HasSource())
	})
}

func TestInstrumentedProvider(t *testing.T) {
	ctx := t.Context()
	m := metrics.NewMetrics(prometheus.NewRegistry())
	next := mocks.NewProvider(t)
	next.On("Geocode", ctx, "Sé").Return(&models.Coordinates{Latitude: -23.55, Longitude: -46.63}, nil).Once()

	provider := geolocation.NewInstrumentedProvider(next, "nominatim", m)
	coords, err := provider.Geocode(ctx, "Sé")

	require.NoError(t, err)
	assert.InDelta(t, -23.55, coords.Latitude, 0.0001)
	assert.Equal(t, 1, testutil.CollectAndCount(m.GeocodeSeconds))
}
