// Package mocks holds testify mocks of the service collaborators.
package mocks

import (
	"context"

	"github.com/UnknownOlympus/bazaar/internal/catalog"
	"github.com/UnknownOlympus/bazaar/internal/models"
	"github.com/UnknownOlympus/bazaar/internal/repository"
	"github.com/stretchr/testify/mock"
	"googlemaps.github.io/maps"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// ProductSource is a mock of catalog.ProductSource.
type ProductSource struct {
	mock.Mock
}

func NewProductSource(t testingT) *ProductSource {
	m := &ProductSource{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ProductSource) ListProducts(ctx context.Context) ([]models.ProductWithDistance, error) {
	ret := m.Called(ctx)

	if rf, ok := ret.Get(0).(func(context.Context) ([]models.ProductWithDistance, error)); ok {
		return rf(ctx)
	}

	var products []models.ProductWithDistance
	if v := ret.Get(0); v != nil {
		products = v.([]models.ProductWithDistance)
	}
	return products, ret.Error(1)
}

func (m *ProductSource) SearchProductsByLocation(
	ctx context.Context, coords models.Coordinates, radiusMeters float64,
) ([]models.ProductWithDistance, error) {
	ret := m.Called(ctx, coords, radiusMeters)

	if rf, ok := ret.Get(0).(func(context.Context, models.Coordinates, float64) ([]models.ProductWithDistance, error)); ok {
		return rf(ctx, coords, radiusMeters)
	}

	var products []models.ProductWithDistance
	if v := ret.Get(0); v != nil {
		products = v.([]models.ProductWithDistance)
	}
	return products, ret.Error(1)
}

// LocationProvider is a mock of catalog.LocationProvider.
type LocationProvider struct {
	mock.Mock
}

func NewLocationProvider(t testingT) *LocationProvider {
	m := &LocationProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *LocationProvider) CurrentPosition(ctx context.Context) (*models.Coordinates, error) {
	ret := m.Called(ctx)

	var coords *models.Coordinates
	if v := ret.Get(0); v != nil {
		coords = v.(*models.Coordinates)
	}
	return coords, ret.Error(1)
}

// SiteConfigSource is a mock of catalog.SiteConfigSource.
type SiteConfigSource struct {
	mock.Mock
}

func NewSiteConfigSource(t testingT) *SiteConfigSource {
	m := &SiteConfigSource{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SiteConfigSource) SiteConfig(ctx context.Context) (models.SiteConfig, error) {
	ret := m.Called(ctx)

	var cfg models.SiteConfig
	if v := ret.Get(0); v != nil {
		cfg = v.(models.SiteConfig)
	}
	return cfg, ret.Error(1)
}

// Navigator is a mock of catalog.Navigator.
type Navigator struct {
	mock.Mock
}

func NewNavigator(t testingT) *Navigator {
	m := &Navigator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Navigator) Navigate(path string) {
	m.Called(path)
}

// Notifier is a mock of catalog.Notifier.
type Notifier struct {
	mock.Mock
}

func NewNotifier(t testingT) *Notifier {
	m := &Notifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Notifier) Notify(n catalog.Notification) {
	m.Called(n)
}

// Provider is a mock of geolocation.Provider.
type Provider struct {
	mock.Mock
}

func NewProvider(t testingT) *Provider {
	m := &Provider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Provider) Geocode(ctx context.Context, place string) (*models.Coordinates, error) {
	ret := m.Called(ctx, place)

	var coords *models.Coordinates
	if v := ret.Get(0); v != nil {
		coords = v.(*models.Coordinates)
	}
	return coords, ret.Error(1)
}

// GoogleAPIClient is a mock of geolocation.GoogleAPIClient.
type GoogleAPIClient struct {
	mock.Mock
}

func NewGoogleAPIClient(t testingT) *GoogleAPIClient {
	m := &GoogleAPIClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *GoogleAPIClient) Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	ret := m.Called(ctx, r)

	var results []maps.GeocodingResult
	if v := ret.Get(0); v != nil {
		results = v.([]maps.GeocodingResult)
	}
	return results, ret.Error(1)
}

// Repository is a mock of repository.Interface.
type Repository struct {
	ProductSource
}

var _ repository.Interface = (*Repository)(nil)

func NewRepository(t testingT) *Repository {
	m := &Repository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Repository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	ret := m.Called(ctx, id)

	var product *models.Product
	if v := ret.Get(0); v != nil {
		product = v.(*models.Product)
	}
	return product, ret.Error(1)
}

func (m *Repository) SiteConfig(ctx context.Context) (models.SiteConfig, error) {
	ret := m.Called(ctx)

	var cfg models.SiteConfig
	if v := ret.Get(0); v != nil {
		cfg = v.(models.SiteConfig)
	}
	return cfg, ret.Error(1)
}
