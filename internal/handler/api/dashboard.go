package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	models "PriceLens/internal/domain/models"
	"PriceLens/internal/engine/chart"
	"PriceLens/internal/engine/override"
	"PriceLens/internal/engine/search"
	"PriceLens/internal/service/ratelimit"
	"PriceLens/internal/usecase"
	pkgcache "PriceLens/pkg/cache"
	xhttp "PriceLens/pkg/http"
	xlogger "PriceLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// responseTTL bounds how stale a cached read response can get. Matches the
// Cache-Control max-age advertised to the frontend.
const responseTTL = 15 * time.Second

// DashboardHandler exposes the decision-support API consumed by the admin
// dashboard frontend. Read endpoints are rate limited per client and their
// envelopes cached briefly to absorb dashboard polling.
type DashboardHandler struct {
	logger *xlogger.Logger
	agg    *usecase.DashboardAggregator
	cache  pkgcache.Service
	rl     *ratelimit.Limiter
}

func NewDashboardHandler(logger *xlogger.Logger, agg *usecase.DashboardAggregator) *DashboardHandler {
	return &DashboardHandler{logger: logger, agg: agg, rl: ratelimit.New()}
}

// SetResponseCache injects the byte cache backing read responses.
func (h *DashboardHandler) SetResponseCache(c pkgcache.Service) { h.cache = c }

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/predictions", h.Search)
	g.GET("/anomalies", h.Anomalies)
	g.GET("/history/chart", h.Chart)
	g.GET("/override/preview", h.OverridePreview)
	g.POST("/override", h.OverrideSubmit)
	g.POST("/regenerate", h.Regenerate)
	e.GET("/healthz", h.Health)
}

// Search returns one ranked, paginated page of the product catalog.
func (h *DashboardHandler) Search(c echo.Context) error {
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if h.limited(c, "search") {
		return xhttp.TooManyRequestsResponse(c)
	}
	key := pkgcache.GenerateKeyWithParams("resp:search", req.Term, req.Page, req.Size)
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	if h.serveCached(c, key) {
		return nil
	}

	page, err := h.agg.SearchProducts(c.Request().Context(), req.Term, req.Page, req.Size)
	if err != nil {
		if errors.Is(err, search.ErrInvalidPage) || errors.Is(err, search.ErrInvalidPageSize) {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
		}
		h.logger.Error("search usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("prediction backend unavailable").WithError(err))
	}
	return h.writeAndCache(c, key, http.StatusOK, &xhttp.PagedDataResponse{
		Content: page.Content,
		Page:    page.Page,
	})
}

// Anomalies returns flagged rows for the requested status filter plus
// counts over the full flagged set.
func (h *DashboardHandler) Anomalies(c echo.Context) error {
	req := &models.AnomalyListRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if h.limited(c, "anomalies") {
		return xhttp.TooManyRequestsResponse(c)
	}
	key := pkgcache.GenerateKeyWithParams("resp:anomalies", req.Status)
	if h.serveCached(c, key) {
		return nil
	}

	report, err := h.agg.Flagged(c.Request().Context(), req.Status)
	if err != nil {
		h.logger.Error("anomalies usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("prediction backend unavailable").WithError(err))
	}
	return h.writeAndCache(c, key, http.StatusOK, report)
}

// Chart returns the render-ready chart series for one (product, market).
// The plot box comes from config; width, height, origin_x, origin_y, and
// padding_frac query params override it per request.
func (h *DashboardHandler) Chart(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	geom := h.chartGeometry(c)

	if h.limited(c, "chart") {
		return xhttp.TooManyRequestsResponse(c)
	}
	key := pkgcache.GenerateKeyWithParams("resp:chart",
		req.ProductID, req.MarketID,
		geom.Width, geom.Height, geom.OriginX, geom.OriginY, geom.PaddingFrac)
	if h.serveCached(c, key) {
		return nil
	}

	view, err := h.agg.HistoryChartIn(c.Request().Context(), req.ProductID, req.MarketID, geom)
	if err != nil {
		h.logger.Error("chart usecase error",
			xlogger.Int64("product_id", req.ProductID),
			xlogger.Int64("market_id", req.MarketID),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("prediction backend unavailable").WithError(err))
	}
	return h.writeAndCache(c, key, http.StatusOK, view)
}

// OverridePreview computes an override price without persisting anything.
func (h *DashboardHandler) OverridePreview(c echo.Context) error {
	req := &models.OverridePreviewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	preview, err := h.agg.PreviewOverride(req.BasePrice, req.Directive)
	if err != nil {
		if errors.Is(err, override.ErrInvalidBasePrice) {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, preview)
}

// OverrideSubmit persists an override directive on the backend.
func (h *DashboardHandler) OverrideSubmit(c echo.Context) error {
	req := &models.OverrideSubmitRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	err := h.agg.SubmitOverride(c.Request().Context(), req.ProductID, req.MarketID, req.Directive)
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownDirective) {
			return xhttp.AppErrorResponse(c,
				xhttp.BadRequestErrorf("unknown directive %q", req.Directive))
		}
		h.logger.Error("override usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("prediction backend unavailable").WithError(err))
	}
	return xhttp.AcceptedResponse(c, map[string]interface{}{
		"product_id": req.ProductID,
		"market_id":  req.MarketID,
	})
}

// Regenerate asks the backend to recompute one prediction.
func (h *DashboardHandler) Regenerate(c echo.Context) error {
	req := &models.RegenerateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	err := h.agg.Regenerate(c.Request().Context(), req.ProductID, req.MarketID)
	if err != nil {
		h.logger.Error("regenerate usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("prediction backend unavailable").WithError(err))
	}
	return xhttp.AcceptedResponse(c, map[string]interface{}{
		"product_id": req.ProductID,
		"market_id":  req.MarketID,
	})
}

// chartGeometry applies per-request plot box overrides on top of the
// configured geometry. Zero origins are legitimate, so those use a negative
// sentinel.
func (h *DashboardHandler) chartGeometry(c echo.Context) chart.Geometry {
	geom := h.agg.ChartGeometry()
	if w := xhttp.ParseIntDefault(c.QueryParam("width"), 0); w > 0 {
		geom.Width = float64(w)
	}
	if ht := xhttp.ParseIntDefault(c.QueryParam("height"), 0); ht > 0 {
		geom.Height = float64(ht)
	}
	if x := xhttp.ParseIntDefault(c.QueryParam("origin_x"), -1); x >= 0 {
		geom.OriginX = float64(x)
	}
	if y := xhttp.ParseIntDefault(c.QueryParam("origin_y"), -1); y >= 0 {
		geom.OriginY = float64(y)
	}
	if p := xhttp.ParseFloatDefault(c.QueryParam("padding_frac"), -1); p >= 0 {
		geom.PaddingFrac = p
	}
	return geom
}

// limited consumes one token for the calling client on the given endpoint.
func (h *DashboardHandler) limited(c echo.Context, endpoint string) bool {
	if h.rl == nil {
		return false
	}
	if h.rl.Allow(c.RealIP()+":"+endpoint, 5, 2) {
		return false
	}
	h.logger.Warn("rate limited",
		xlogger.String("endpoint", endpoint),
		xlogger.String("remote", c.RealIP()),
	)
	return true
}

// serveCached writes a previously cached response envelope, if one exists.
func (h *DashboardHandler) serveCached(c echo.Context, key string) bool {
	if h.cache == nil {
		return false
	}
	b, err := h.cache.Get(c.Request().Context(), key)
	if err != nil {
		return false
	}
	if err := c.JSONBlob(http.StatusOK, b); err != nil {
		h.logger.Warn("cached response write failed", xlogger.Error(err))
	}
	return true
}

// writeAndCache marshals the response envelope once, stores it, and writes it.
func (h *DashboardHandler) writeAndCache(c echo.Context, key string, statusCode int, data interface{}) error {
	b, err := json.Marshal(xhttp.APIResponse{
		Status:  statusCode,
		Message: http.StatusText(statusCode),
		Data:    data,
	})
	if err != nil {
		h.logger.Error("response marshal failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	if h.cache != nil {
		if err := h.cache.Set(c.Request().Context(), key, b, responseTTL); err != nil {
			h.logger.Warn("response cache write failed", xlogger.Error(err))
		}
	}
	return c.JSONBlob(http.StatusOK, b)
}

// Health reports service and backend liveness.
func (h *DashboardHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok", "backend": "ok", "time": time.Now().UTC().Format(time.RFC3339)}
	if err := h.agg.Health(c.Request().Context()); err != nil {
		status["backend"] = "unreachable"
	}
	return xhttp.SuccessResponse(c, status)
}
