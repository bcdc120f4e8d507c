package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Fetches         *prometheus.CounterVec
	FetchSeconds    *prometheus.HistogramVec
	LocationLookups *prometheus.CounterVec
	GeocodeSeconds  *prometheus.HistogramVec
	ProductsOpened  prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Fetches: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "bazaar_product_fetches_total",
			Help: "Total number of product fetches by mode (all, nearby) and outcome.",
		}, []string{"mode", "status"}),
		FetchSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bazaar_product_fetch_duration_seconds",
			Help:    "Duration of product reads from the backend.",
			Buckets: prometheus.DefBuckets,
		}, []string{"mode"}),
		LocationLookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "bazaar_location_lookups_total",
			Help: "Total number of visitor location lookups by trigger (mount, manual) and outcome.",
		}, []string{"trigger", "status"}),
		GeocodeSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bazaar_geocoder_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ProductsOpened: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "bazaar_products_opened_total",
			Help: "Total number of product cards opened from the grid.",
		}),
	}
}
