package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/bazaar/internal/metrics"
	"github.com/UnknownOlympus/bazaar/internal/models"
)

const (
	modeAll    = "all"
	modeNearby = "nearby"
)

// Page holds the state of one products page: the visitor coordinates, the search
// text and the latest fetched products. It is safe for concurrent use.
//
// Every fetch is numbered. A fetch result is applied only while its number is the
// latest one, so a slow answer for old coordinates never replaces a newer one.
type Page struct {
	log            *slog.Logger
	products       ProductSource
	location       LocationProvider
	siteConfig     SiteConfigSource
	navigator      Navigator
	notifier       Notifier
	metrics        *metrics.Metrics
	currencySymbol string

	wg sync.WaitGroup

	mu         sync.Mutex
	coords     *models.Coordinates
	search     string
	generation uint64
	state      FetchState
	items      []models.ProductWithDistance
	err        error
	site       models.SiteConfig
}

// NewPage creates a page. A nil location provider stands for a device without
// location capability; a nil site config source skips loading the site settings.
func NewPage(
	log *slog.Logger,
	products ProductSource,
	location LocationProvider,
	siteConfig SiteConfigSource,
	navigator Navigator,
	notifier Notifier,
	metrics *metrics.Metrics,
	currencySymbol string,
) *Page {
	return &Page{
		log:            log,
		products:       products,
		location:       location,
		siteConfig:     siteConfig,
		navigator:      navigator,
		notifier:       notifier,
		metrics:        metrics,
		currencySymbol: currencySymbol,
	}
}

// Mount starts the initial fetch without coordinates and, in parallel, the first
// location request. It returns immediately; use Wait to block until both settle.
func (p *Page) Mount(ctx context.Context) {
	p.Load(ctx)

	if p.siteConfig != nil {
		p.spawn(func() { p.loadSiteConfig(ctx) })
	}

	if p.location != nil {
		p.spawn(func() { p.acquire(ctx, TriggerMount) })
	}
}

// RefreshLocation asks for the position again. Failures are not reported to the visitor.
func (p *Page) RefreshLocation(ctx context.Context) {
	if p.location == nil {
		return
	}

	p.spawn(func() { p.acquire(ctx, TriggerManual) })
}

// Resume rebuilds a page that was mounted before from the coordinates it had
// acquired, nil when it had none, and starts the fetch for them. No location
// request is made, so nothing is notified.
func (p *Page) Resume(ctx context.Context, coords *models.Coordinates) {
	p.mu.Lock()
	if coords != nil {
		c := *coords
		p.coords = &c
	}
	p.mu.Unlock()

	p.Load(ctx)

	if p.siteConfig != nil {
		p.spawn(func() { p.loadSiteConfig(ctx) })
	}
}

// Load starts a fetch for the current coordinates, superseding any fetch in flight.
func (p *Page) Load(ctx context.Context) {
	p.mu.Lock()
	p.generation++
	gen := p.generation
	var coords *models.Coordinates
	if p.coords != nil {
		c := *p.coords
		coords = &c
	}
	p.state = FetchInFlight
	p.mu.Unlock()

	p.spawn(func() { p.fetch(ctx, gen, coords) })
}

// Wait blocks until no fetch or location request is running, or ctx is done.
func (p *Page) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("page did not settle: %w", ctx.Err())
	}
}

// SetSearch replaces the search text. It never triggers a fetch.
func (p *Page) SetSearch(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.search = text
}

// Search returns the current search text.
func (p *Page) Search() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.search
}

// Coordinates returns the last acquired visitor position, or nil.
func (p *Page) Coordinates() *models.Coordinates {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.coords == nil {
		return nil
	}
	c := *p.coords
	return &c
}

// State returns the fetch state.
func (p *Page) State() FetchState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Err returns the error of the last applied fetch, if it failed.
func (p *Page) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// SiteConfig returns the site settings loaded on mount.
func (p *Page) SiteConfig() models.SiteConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.site
}

// Products returns the fetched products narrowed by the search text.
func (p *Page) Products() []models.ProductWithDistance {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Filter(p.items, p.search)
}

// OpenProduct navigates to the detail route of a product.
func (p *Page) OpenProduct(id string) {
	p.metrics.ProductsOpened.Inc()
	p.navigator.Navigate(ProductPath(id))
}

// OpenMyListings navigates to the visitor's own listings.
func (p *Page) OpenMyListings() {
	p.navigator.Navigate(MyListingsPath)
}

func (p *Page) spawn(fn func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		fn()
	}()
}

func (p *Page) fetch(ctx context.Context, gen uint64, coords *models.Coordinates) {
	mode := modeAll
	var (
		items []models.ProductWithDistance
		err   error
	)

	startTime := time.Now()
	if coords == nil {
		items, err = p.products.ListProducts(ctx)
	} else {
		mode = modeNearby
		items, err = p.products.SearchProductsByLocation(ctx, *coords, SearchRadiusMeters)
	}
	p.metrics.FetchSeconds.WithLabelValues(mode).Observe(time.Since(startTime).Seconds())

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		p.log.DebugContext(ctx, "Discarding superseded products", "generation", gen, "latest", p.generation)
		p.metrics.Fetches.WithLabelValues(mode, "superseded").Inc()
		return
	}

	if err != nil {
		p.log.ErrorContext(ctx, "Failed to fetch products", "mode", mode, "error", err)
		p.metrics.Fetches.WithLabelValues(mode, "failure").Inc()
		p.state = FetchFailed
		p.items = nil
		p.err = fmt.Errorf("failed to fetch products: %w", err)
		return
	}

	p.log.DebugContext(ctx, "Products fetched", "mode", mode, "count", len(items))
	p.metrics.Fetches.WithLabelValues(mode, "success").Inc()
	p.state = FetchSucceeded
	p.items = items
	p.err = nil
}

// acquire requests the position once. A new position starts a fetch; an unchanged
// one keeps the current result, as it identifies the same fetch.
func (p *Page) acquire(ctx context.Context, trigger Trigger) {
	coords, err := p.location.CurrentPosition(ctx)
	if err != nil {
		p.metrics.LocationLookups.WithLabelValues(string(trigger), "failure").Inc()
		if trigger == TriggerMount {
			p.log.WarnContext(ctx, "Location unavailable", "error", err)
			p.notifier.Notify(locationUnavailable)
			return
		}
		p.log.DebugContext(ctx, "Location refresh failed", "error", err)
		return
	}
	p.metrics.LocationLookups.WithLabelValues(string(trigger), "success").Inc()

	p.mu.Lock()
	changed := p.coords == nil || *p.coords != *coords
	c := *coords
	p.coords = &c
	p.mu.Unlock()

	if changed {
		p.log.DebugContext(ctx, "Location acquired", "location", c.String(), "trigger", trigger)
		p.Load(ctx)
	}
}

func (p *Page) loadSiteConfig(ctx context.Context) {
	site, err := p.siteConfig.SiteConfig(ctx)
	if err != nil {
		p.log.WarnContext(ctx, "Failed to load site config", "error", err)
		return
	}

	p.mu.Lock()
	p.site = site
	p.mu.Unlock()
}
