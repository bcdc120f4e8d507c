package geolocation_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/bazaar/internal/geolocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func respond(status int, body string) func(*http.Request) (*http.Response, error) {
	return func(*http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewBufferString(body))}, nil
	}
}

func newNominatim(doFunc func(*http.Request) (*http.Response, error)) *geolocation.NominatimProvider {
	return geolocation.NewNominatimProviderWithClient(
		&mockHTTPClient{doFunc: doFunc}, rate.NewLimiter(rate.Inf, 1), slog.Default(),
	)
}

func TestNominatimProvider_Geocode(t *testing.T) {
	ctx := context.Background()

	t.Run("successful geocoding", func(t *testing.T) {
		provider := newNominatim(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Contains(t, req.URL.String(), "nominatim.openstreetmap.org")
			assert.Equal(t, "Pinheiros, São Paulo", req.URL.Query().Get("q"))
			assert.Equal(t, "json", req.URL.Query().Get("format"))
			assert.Equal(t, "1", req.URL.Query().Get("limit"))
			assert.Contains(t, req.Header.Get("User-Agent"), "Bazaar-Products-Service")

			return respond(http.StatusOK, `[{"lat":"-23.5673","lon":"-46.6920"}]`)(req)
		})

		coords, err := provider.Geocode(ctx, "Pinheiros, São Paulo")

		require.NoError(t, err)
		assert.InEpsilon(t, -23.5673, coords.Latitude, 0.0001)
		assert.InEpsilon(t, -46.6920, coords.Longitude, 0.0001)
	})

	t.Run("empty response", func(t *testing.T) {
		provider := newNominatim(respond(http.StatusOK, `[]`))

		coords, err := provider.Geocode(ctx, "nowhere")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geolocation.ErrEmptyResponse)
	})

	t.Run("http error status", func(t *testing.T) {
		provider := newNominatim(respond(http.StatusTooManyRequests, "slow down"))

		coords, err := provider.Geocode(ctx, "Sé")

		require.Nil(t, coords)
		require.ErrorContains(t, err, "nominatim API returned status 429: slow down")
	})

	t.Run("transport error", func(t *testing.T) {
		provider := newNominatim(func(*http.Request) (*http.Response, error) {
			return nil, assert.AnError
		})

		_, err := provider.Geocode(ctx, "Sé")

		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("malformed json", func(t *testing.T) {
		provider := newNominatim(respond(http.StatusOK, `{`))

		_, err := provider.Geocode(ctx, "Sé")

		require.ErrorContains(t, err, "failed to decode nominatim response")
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		provider := newNominatim(respond(http.StatusOK, `[{"lat":"north","lon":"-46.6"}]`))

		_, err := provider.Geocode(ctx, "Sé")

		require.ErrorIs(t, err, geolocation.ErrInvalidCoords)
	})

	t.Run("cancelled context stops at the limiter", func(t *testing.T) {
		provider := geolocation.NewNominatimProviderWithClient(
			&mockHTTPClient{doFunc: respond(http.StatusOK, `[]`)}, rate.NewLimiter(rate.Limit(1), 1), slog.Default(),
		)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := provider.Geocode(cctx, "Sé")

		require.ErrorContains(t, err, "rate limiter wait failed")
	})
}
