package catalog_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/UnknownOlympus/bazaar/internal/catalog"
	"github.com/UnknownOlympus/bazaar/internal/models"
	"github.com/UnknownOlympus/bazaar/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type listFunc = func(context.Context) ([]models.ProductWithDistance, error)

func TestSharedSource_ConcurrentCallersShareOneFetch(t *testing.T) {
	products := mocks.NewProductSource(t)
	all := []models.ProductWithDistance{product("a", "Chair", "Wooden chair")}
	started := make(chan struct{})
	release := make(chan struct{})
	products.On("ListProducts", mock.Anything).Return(listFunc(func(context.Context) ([]models.ProductWithDistance, error) {
		close(started)
		<-release
		return all, nil
	}), nil).Once()

	shared := catalog.NewSharedSource(products, slog.Default(), 5*time.Second, time.Minute)

	var wg sync.WaitGroup
	results := make([][]models.ProductWithDistance, 3)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := shared.ListProducts(t.Context())
			assert.NoError(t, err)
			results[i] = items
		}()
		if i == 0 {
			<-started
		}
	}
	close(release)
	wg.Wait()

	for _, items := range results {
		assert.Equal(t, []string{"a"}, ids(items))
	}
}

func TestSharedSource_CallerGivingUpDoesNotCancelTheFetch(t *testing.T) {
	products := mocks.NewProductSource(t)
	all := []models.ProductWithDistance{product("a", "Chair", "Wooden chair")}
	started := make(chan struct{})
	release := make(chan struct{})
	var backendErr error
	products.On("ListProducts", mock.Anything).Return(listFunc(func(ctx context.Context) ([]models.ProductWithDistance, error) {
		close(started)
		<-release
		backendErr = ctx.Err()
		return all, nil
	}), nil).Once()

	shared := catalog.NewSharedSource(products, slog.Default(), 5*time.Second, time.Minute)

	ctx, cancel := context.WithCancel(t.Context())
	errCh := make(chan error, 1)
	go func() {
		_, err := shared.ListProducts(ctx)
		errCh <- err
	}()
	<-started
	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)

	close(release)
	items, err := shared.ListProducts(t.Context())

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(items))
	assert.NoError(t, backendErr)
}

func TestSharedSource_RecentResults(t *testing.T) {
	all := []models.ProductWithDistance{product("a", "Chair", "Wooden chair")}

	t.Run("reused within ttl", func(t *testing.T) {
		products := mocks.NewProductSource(t)
		products.On("ListProducts", mock.Anything).Return(all, nil).Once()
		shared := catalog.NewSharedSource(products, slog.Default(), time.Second, time.Minute)

		for range 3 {
			items, err := shared.ListProducts(t.Context())
			require.NoError(t, err)
			assert.Equal(t, []string{"a"}, ids(items))
		}
	})

	t.Run("zero ttl fetches every time", func(t *testing.T) {
		products := mocks.NewProductSource(t)
		products.On("ListProducts", mock.Anything).Return(all, nil).Twice()
		shared := catalog.NewSharedSource(products, slog.Default(), time.Second, 0)

		for range 2 {
			_, err := shared.ListProducts(t.Context())
			require.NoError(t, err)
		}
	})

	t.Run("failures are not kept", func(t *testing.T) {
		products := mocks.NewProductSource(t)
		products.On("ListProducts", mock.Anything).Return(nil, assert.AnError).Once()
		products.On("ListProducts", mock.Anything).Return(all, nil).Once()
		shared := catalog.NewSharedSource(products, slog.Default(), time.Second, time.Minute)

		_, err := shared.ListProducts(t.Context())
		require.ErrorIs(t, err, assert.AnError)

		items, err := shared.ListProducts(t.Context())
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, ids(items))
	})

	t.Run("each point is its own fetch", func(t *testing.T) {
		products := mocks.NewProductSource(t)
		here := models.Coordinates{Latitude: -23.5, Longitude: -46.6}
		there := models.Coordinates{Latitude: -23.5000001, Longitude: -46.6}
		products.On("SearchProductsByLocation", mock.Anything, here, catalog.SearchRadiusMeters).
			Return([]models.ProductWithDistance{withDistance(all[0], 10)}, nil).Once()
		products.On("SearchProductsByLocation", mock.Anything, there, catalog.SearchRadiusMeters).
			Return([]models.ProductWithDistance{}, nil).Once()
		shared := catalog.NewSharedSource(products, slog.Default(), time.Second, time.Minute)

		items, err := shared.SearchProductsByLocation(t.Context(), here, catalog.SearchRadiusMeters)
		require.NoError(t, err)
		assert.Len(t, items, 1)

		items, err = shared.SearchProductsByLocation(t.Context(), there, catalog.SearchRadiusMeters)
		require.NoError(t, err)
		assert.Empty(t, items)

		items, err = shared.SearchProductsByLocation(t.Context(), here, catalog.SearchRadiusMeters)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}

func TestSharedSource_FetchTimeout(t *testing.T) {
	products := mocks.NewProductSource(t)
	products.On("ListProducts", mock.Anything).Return(listFunc(func(ctx context.Context) ([]models.ProductWithDistance, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}), nil).Once()
	shared := catalog.NewSharedSource(products, slog.Default(), 20*time.Millisecond, time.Minute)

	_, err := shared.ListProducts(t.Context())

	require.ErrorIs(t, err, context.DeadlineExceeded)
}
