package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/bazaar/internal/catalog"
	"github.com/UnknownOlympus/bazaar/internal/geolocation"
	"github.com/UnknownOlympus/bazaar/internal/metrics"
	"github.com/UnknownOlympus/bazaar/internal/models"
	"github.com/UnknownOlympus/bazaar/internal/repository"
	"github.com/labstack/echo/v4"
)

// Store is the backend read surface used by the HTTP handlers.
type Store interface {
	catalog.ProductSource
	catalog.SiteConfigSource
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

// Options tunes how the products page waits for its data.
type Options struct {
	CurrencySymbol string
	// RenderTimeout is how long a request waits for products before rendering skeletons.
	RenderTimeout time.Duration
	// FetchTimeout bounds a backend fetch, which outlives the request that started it.
	FetchTimeout time.Duration
	// ResultTTL is how long a finished fetch is reused by later requests for the same products.
	ResultTTL time.Duration
}

// Handler serves the products page and its navigation targets.
type Handler struct {
	log      *slog.Logger
	store    Store
	products *catalog.SharedSource
	geocoder geolocation.Provider
	metrics  *metrics.Metrics
	opts     Options
}

// NewHandler creates a Handler. geocoder may be nil, in which case typed places
// cannot be resolved and count as an unavailable location.
func NewHandler(
	log *slog.Logger,
	store Store,
	geocoder geolocation.Provider,
	metrics *metrics.Metrics,
	opts Options,
) *Handler {
	return &Handler{
		log:      log,
		store:    store,
		products: catalog.NewSharedSource(store, log, opts.FetchTimeout, opts.ResultTTL),
		geocoder: geocoder,
		metrics:  metrics,
		opts:     opts,
	}
}

type pageRequest struct {
	Search  string   `query:"q"`
	Lat     *float64 `query:"lat"     validate:"required_with=Lon,omitempty,latitude"`
	Lon     *float64 `query:"lon"     validate:"required_with=Lat,omitempty,longitude"`
	Near    string   `query:"near"`
	Geo     string   `query:"geo"     validate:"omitempty,oneof=denied"`
	Trigger string   `query:"trigger" validate:"omitempty,oneof=mount manual search"`
}

type pageResponse struct {
	catalog.View

	Notifications []catalog.Notification `json:"notifications"`
	RefreshURL    string                 `json:"-"`
	// Geo and Near carry the location outcome of the mounted page into its search form.
	Geo  string `json:"-"`
	Near string `json:"-"`
}

// Products renders the products grid as HTML.
func (h *Handler) Products(c echo.Context) error {
	resp, err := h.servePage(c)
	if err != nil {
		return err
	}
	if resp.Loading {
		resp.RefreshURL = c.Request().URL.RequestURI()
	}

	return c.Render(http.StatusOK, "products.html", resp)
}

// ProductsJSON returns the products grid view model.
func (h *Handler) ProductsJSON(c echo.Context) error {
	resp, err := h.servePage(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// Product returns a single product, the target of a card click.
func (h *Handler) Product(c echo.Context) error {
	product, err := h.store.GetProduct(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repository.ErrProductNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to load product").SetInternal(err)
	}

	return c.JSON(http.StatusOK, product)
}

// OpenProduct is the click-through of a product card.
func (h *Handler) OpenProduct(c echo.Context) error {
	nav := &redirect{}
	page := catalog.NewPage(h.log, h.store, nil, nil, nav, &flash{}, h.metrics, h.opts.CurrencySymbol)
	page.OpenProduct(c.Param("id"))

	return c.Redirect(http.StatusSeeOther, nav.path)
}

// OpenMyListings is the click-through of the header user icon.
func (h *Handler) OpenMyListings(c echo.Context) error {
	nav := &redirect{}
	page := catalog.NewPage(h.log, h.store, nil, nil, nav, &flash{}, h.metrics, h.opts.CurrencySymbol)
	page.OpenMyListings()

	return c.Redirect(http.StatusSeeOther, nav.path)
}

func (h *Handler) servePage(c echo.Context) (*pageResponse, error) {
	req, err := bindPageRequest(c)
	if err != nil {
		return nil, err
	}

	ctx := c.Request().Context()
	notifications := &flash{}

	locator := h.locator(req)
	var location catalog.LocationProvider
	if locator.HasSource() {
		location = locator
	}

	page := catalog.NewPage(h.log, h.products, location, h.store, &redirect{}, notifications, h.metrics, h.opts.CurrencySymbol)
	page.SetSearch(req.Search)

	// The page outlives this request when it has to render skeletons; its fetches
	// then complete for the refresh that follows.
	pageCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.opts.FetchTimeout)
	switch catalog.Trigger(req.Trigger) {
	case catalog.TriggerManual:
		page.Load(pageCtx)
		page.RefreshLocation(pageCtx)
	case catalog.TriggerSearch:
		page.Resume(pageCtx, locator.Position)
	default:
		page.Mount(pageCtx)
	}
	go func() {
		defer cancel()
		_ = page.Wait(pageCtx)
	}()

	waitCtx, cancelWait := context.WithTimeout(ctx, h.opts.RenderTimeout)
	defer cancelWait()
	if err = page.Wait(waitCtx); err != nil {
		h.log.DebugContext(ctx, "Products still loading, rendering placeholders", "error", err)
	}

	if page.State() == catalog.FetchFailed {
		return nil, echo.NewHTTPError(http.StatusBadGateway, "failed to load products").SetInternal(page.Err())
	}

	return &pageResponse{
		View:          page.View(),
		Notifications: notifications.list(),
		Geo:           req.Geo,
		Near:          req.Near,
	}, nil
}

func (h *Handler) locator(req pageRequest) *geolocation.RequestLocator {
	locator := &geolocation.RequestLocator{
		Place:    req.Near,
		Denied:   req.Geo == "denied",
		Geocoder: h.geocoder,
	}
	if req.Lat != nil && req.Lon != nil {
		locator.Position = &models.Coordinates{Latitude: *req.Lat, Longitude: *req.Lon}
	}

	return locator
}

func bindPageRequest(c echo.Context) (pageRequest, error) {
	var (
		req      pageRequest
		lat, lon float64
	)

	err := echo.QueryParamsBinder(c).
		String("q", &req.Search).
		String("near", &req.Near).
		String("geo", &req.Geo).
		String("trigger", &req.Trigger).
		Float64("lat", &lat).
		Float64("lon", &lon).
		BindError()
	if err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if c.QueryParam("lat") != "" {
		req.Lat = &lat
	}
	if c.QueryParam("lon") != "" {
		req.Lon = &lon
	}

	if err = c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return req, nil
}
