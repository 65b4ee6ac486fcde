package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"PriceLens/internal/domain/models"
	domainrepo "PriceLens/internal/domain/repository"
	svccache "PriceLens/internal/service/cache"
	"PriceLens/internal/service/ratelimit"
	pkghttp "PriceLens/pkg/http"
	applogger "PriceLens/pkg/logger"
	"PriceLens/pkg/util"

	"github.com/cenkalti/backoff/v4"
)

// ErrBackendUnavailable wraps transport failures against the prediction
// backend after retries are exhausted.
var ErrBackendUnavailable = errors.New("prediction backend unavailable")

// BackendConfig holds backend source settings.
type BackendConfig struct {
	BaseURL      string
	APIKey       string
	BulkPageSize int
	MaxRetries   int
}

// BackendSource implements repository.PredictionSource against the REST
// backend that owns predictions and overrides. Reads go through the typed
// cache; writes invalidate the affected entries.
type BackendSource struct {
	client  *pkghttp.Client
	cfg     BackendConfig
	store   *svccache.Store
	limiter *ratelimit.Limiter
	metrics domainrepo.Metrics
	logger  *applogger.Logger
}

// NewBackendSource creates a backend-backed prediction source.
func NewBackendSource(
	client *pkghttp.Client,
	cfg BackendConfig,
	store *svccache.Store,
	limiter *ratelimit.Limiter,
	m domainrepo.Metrics,
	l *applogger.Logger,
) *BackendSource {
	if cfg.BulkPageSize <= 0 {
		cfg.BulkPageSize = 1000
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &BackendSource{
		client:  client,
		cfg:     cfg,
		store:   store,
		limiter: limiter,
		metrics: m,
		logger:  l,
	}
}

// pagedEnvelope matches the backend's spring-style page wrapper.
type pagedEnvelope struct {
	Content       []models.ProductGroup `json:"content"`
	TotalElements int64                 `json:"total_elements"`
	Last          bool                  `json:"last"`
}

// BulkSnapshot fetches the full product catalog with per-market predictions.
// The cache absorbs dashboard polling; a miss costs one backend round trip.
func (s *BackendSource) BulkSnapshot(ctx context.Context) ([]models.ProductGroup, error) {
	if s.store != nil {
		if products, ok := s.store.GetSnapshot(ctx); ok {
			return products, nil
		}
	}

	start := time.Now()
	var env pagedEnvelope
	err := s.send(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodGet,
		URL:    s.cfg.BaseURL + "/api/v1/predictions",
		QueryParams: map[string][]string{
			"page": {"0"},
			"size": {strconv.Itoa(s.cfg.BulkPageSize)},
		},
	}, &env)
	if err != nil {
		s.recordError("snapshot")
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if s.metrics != nil {
		s.metrics.RecordSourceFetch("snapshot")
		s.metrics.RecordSnapshotSize(len(env.Content))
		s.metrics.RecordLatency("bulk_snapshot", time.Since(start).Seconds())
	}

	if s.store != nil {
		if err := s.store.SetSnapshot(ctx, env.Content); err != nil && s.logger != nil {
			s.logger.Warn("snapshot cache write failed", applogger.Error(err))
		}
	}

	return env.Content, nil
}

// History fetches the price history for one (product, market) pair.
func (s *BackendSource) History(ctx context.Context, productID, marketID int64) (models.PriceHistory, error) {
	if s.store != nil {
		if h, ok := s.store.GetHistory(ctx, productID, marketID); ok {
			return h, nil
		}
	}

	start := time.Now()
	var h models.PriceHistory
	err := s.send(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodGet,
		URL: fmt.Sprintf("%s/api/v1/products/%d/markets/%d/history",
			s.cfg.BaseURL, productID, marketID),
	}, &h)
	if err != nil {
		var se *pkghttp.StatusError
		if errors.As(err, &se) && se.Status == 404 {
			s.recordError("history_not_found")
			return models.PriceHistory{}, fmt.Errorf("history for product %d market %d: not found", productID, marketID)
		}
		s.recordError("history")
		return models.PriceHistory{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if err := normalizeHistory(&h); err != nil {
		s.recordError("history_payload")
		return models.PriceHistory{}, fmt.Errorf("history for product %d market %d: %w", productID, marketID, err)
	}

	if s.metrics != nil {
		s.metrics.RecordSourceFetch("history")
		s.metrics.RecordLatency("history", time.Since(start).Seconds())
	}

	if s.store != nil {
		if err := s.store.SetHistory(ctx, productID, marketID, h); err != nil && s.logger != nil {
			s.logger.Warn("history cache write failed", applogger.Error(err))
		}
	}

	return h, nil
}

// SubmitOverride persists an override directive on the backend and drops
// the caches that now hold stale data.
func (s *BackendSource) SubmitOverride(ctx context.Context, productID, marketID int64, directive string) error {
	err := s.send(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodPost,
		URL:    s.cfg.BaseURL + "/api/v1/overrides",
		Body: map[string]interface{}{
			"product_id": productID,
			"market_id":  marketID,
			"directive":  directive,
		},
	}, nil)
	if err != nil {
		s.recordError("override")
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	s.invalidate(ctx, productID, marketID)
	if s.metrics != nil {
		s.metrics.RecordSourceFetch("override")
	}
	return nil
}

// Regenerate asks the backend to recompute a prediction from scratch.
func (s *BackendSource) Regenerate(ctx context.Context, productID, marketID int64) error {
	err := s.send(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodPost,
		URL: fmt.Sprintf("%s/api/v1/products/%d/markets/%d/regenerate",
			s.cfg.BaseURL, productID, marketID),
	}, nil)
	if err != nil {
		s.recordError("regenerate")
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	s.invalidate(ctx, productID, marketID)
	if s.metrics != nil {
		s.metrics.RecordSourceFetch("regenerate")
	}
	return nil
}

// Health checks backend reachability without retries.
func (s *BackendSource) Health(ctx context.Context) error {
	err := s.client.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodGet,
		URL:    s.cfg.BaseURL + "/api/v1/health",
	}, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}

// send issues one request with rate limiting and exponential-backoff retries.
// 4xx responses are permanent; retrying them only burns the budget.
func (s *BackendSource) send(ctx context.Context, opts *pkghttp.RequestOptions, dest interface{}) error {
	operation := func() error {
		if s.limiter != nil && !s.limiter.Allow("backend", 10, 5) {
			return errors.New("local rate limit exceeded")
		}
		if err := s.client.SendAndParse(ctx, opts, dest); err != nil {
			var se *pkghttp.StatusError
			if errors.As(err, &se) && se.Status >= 400 && se.Status < 500 {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	strategy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(s.cfg.MaxRetries)),
		ctx,
	)
	return backoff.Retry(operation, strategy)
}

// normalizeHistory validates that every date in the payload is an ISO
// calendar day and fills in forecast dates the backend omitted, deriving
// them from the last historical day plus the point's day offset.
func normalizeHistory(h *models.PriceHistory) error {
	last := ""
	for _, p := range h.RawHistory {
		if _, ok := util.ParseDay(p.Date); !ok {
			return fmt.Errorf("malformed history date %q", p.Date)
		}
		if p.Date > last {
			last = p.Date
		}
	}
	for i := range h.Predictions {
		p := &h.Predictions[i]
		if p.Date == "" && last != "" {
			p.Date = util.AddDays(last, p.DayOffset)
			continue
		}
		if _, ok := util.ParseDay(p.Date); !ok {
			return fmt.Errorf("malformed prediction date %q", p.Date)
		}
	}
	return nil
}

func (s *BackendSource) invalidate(ctx context.Context, productID, marketID int64) {
	if s.store == nil {
		return
	}
	_ = s.store.InvalidateSnapshot(ctx)
	_ = s.store.InvalidateHistory(ctx, productID, marketID)
}

func (s *BackendSource) recordError(kind string) {
	if s.metrics != nil {
		s.metrics.RecordError(kind)
	}
}
