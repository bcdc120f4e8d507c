package geolocation

import (
	"context"
	"time"

	"github.com/UnknownOlympus/bazaar/internal/metrics"
	"github.com/UnknownOlympus/bazaar/internal/models"
)

// InstrumentedProvider records the latency of every lookup of the wrapped provider.
type InstrumentedProvider struct {
	next    Provider
	name    string
	metrics *metrics.Metrics
}

func NewInstrumentedProvider(next Provider, name string, m *metrics.Metrics) *InstrumentedProvider {
	return &InstrumentedProvider{next: next, name: name, metrics: m}
}

func (ip *InstrumentedProvider) Geocode(ctx context.Context, place string) (*models.Coordinates, error) {
	startTime := time.Now()
	coords, err := ip.next.Geocode(ctx, place)
	ip.metrics.GeocodeSeconds.WithLabelValues(ip.name).Observe(time.Since(startTime).Seconds())

	return coords, err
}
