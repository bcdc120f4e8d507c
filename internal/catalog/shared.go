package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/bazaar/internal/models"
	"golang.org/x/sync/singleflight"
)

// SharedSource is a ProductSource that runs each distinct fetch once. Fetches are
// keyed by what they ask for: every product, or a radius around a point. Callers
// asking for a key while its fetch is running join that fetch, and a finished
// result is served to later callers until it is older than the ttl.
//
// Backend calls are detached from the caller's context and bounded by their own
// timeout, so a caller that stops waiting never cancels a fetch others rely on.
type SharedSource struct {
	source  ProductSource
	log     *slog.Logger
	timeout time.Duration
	ttl     time.Duration

	group singleflight.Group

	mu      sync.Mutex
	results map[string]sharedResult
}

type sharedResult struct {
	items     []models.ProductWithDistance
	fetchedAt time.Time
}

// NewSharedSource wraps source. A zero ttl disables reuse of finished results,
// leaving only the joining of fetches in flight.
func NewSharedSource(source ProductSource, log *slog.Logger, timeout, ttl time.Duration) *SharedSource {
	return &SharedSource{
		source:  source,
		log:     log,
		timeout: timeout,
		ttl:     ttl,
		results: make(map[string]sharedResult),
	}
}

// ListProducts returns every product, newest first.
func (s *SharedSource) ListProducts(ctx context.Context) ([]models.ProductWithDistance, error) {
	return s.do(ctx, modeAll, s.source.ListProducts)
}

// SearchProductsByLocation returns the products within radiusMeters of coords.
func (s *SharedSource) SearchProductsByLocation(
	ctx context.Context,
	coords models.Coordinates,
	radiusMeters float64,
) ([]models.ProductWithDistance, error) {
	key := fmt.Sprintf("%s:%g,%g:%g", modeNearby, coords.Latitude, coords.Longitude, radiusMeters)

	return s.do(ctx, key, func(ctx context.Context) ([]models.ProductWithDistance, error) {
		return s.source.SearchProductsByLocation(ctx, coords, radiusMeters)
	})
}

func (s *SharedSource) do(
	ctx context.Context,
	key string,
	fetch func(context.Context) ([]models.ProductWithDistance, error),
) ([]models.ProductWithDistance, error) {
	if items, ok := s.recent(key); ok {
		s.log.DebugContext(ctx, "Reusing recent products", "key", key)
		return items, nil
	}

	resultCh := s.group.DoChan(key, func() (any, error) {
		if items, ok := s.recent(key); ok {
			return items, nil
		}

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		items, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		s.remember(key, items)

		return items, nil
	})

	select {
	case res := <-resultCh:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.log.DebugContext(ctx, "Joined products fetch in flight", "key", key)
		}
		items, _ := res.Val.([]models.ProductWithDistance)
		return items, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("stopped waiting for products: %w", ctx.Err())
	}
}

func (s *SharedSource) recent(key string) ([]models.ProductWithDistance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.results[key]
	if !ok || time.Since(res.fetchedAt) >= s.ttl {
		return nil, false
	}
	return res.items, true
}

func (s *SharedSource) remember(key string, items []models.ProductWithDistance) {
	if s.ttl <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, res := range s.results {
		if now.Sub(res.fetchedAt) >= s.ttl {
			delete(s.results, k)
		}
	}
	s.results[key] = sharedResult{items: items, fetchedAt: now}
}
