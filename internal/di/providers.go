package di

import (
	"fmt"
	"time"

	domainrepo "PriceLens/internal/domain/repository"
	"PriceLens/internal/engine/chart"
	"PriceLens/internal/handler/api"
	internalrepo "PriceLens/internal/repository"
	svccache "PriceLens/internal/service/cache"
	"PriceLens/internal/service/ratelimit"
	"PriceLens/internal/usecase"
	pkgcache "PriceLens/pkg/cache"
	"PriceLens/pkg/config"
	xhttp "PriceLens/pkg/http"
	applogger "PriceLens/pkg/logger"
	"PriceLens/pkg/metrics"
	"PriceLens/pkg/server"
)

// ProvideLogger creates the structured application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "json"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return applogger.New(lc)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domainrepo.Metrics {
	return metrics.New()
}

// ProvideCache builds the byte cache backend selected in config.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	switch cfg.Cache.Mode {
	case "", "memory":
		return pkgcache.NewMemoryCache(), nil
	case "redis":
		return pkgcache.NewRedisCache(
			pkgcache.WithRedisAddr(cfg.Cache.Redis.Addr),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
			pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
	case "layered":
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisAddr(cfg.Cache.Redis.Addr),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
			pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, err
		}
		return pkgcache.NewLayeredCache(rc), nil
	default:
		return nil, fmt.Errorf("unknown cache mode %q", cfg.Cache.Mode)
	}
}

// ProvideCacheStore wraps the byte cache with typed snapshot/history access.
func ProvideCacheStore(c pkgcache.Service, cfg *config.Config) *svccache.Store {
	snapshotTTL := cfg.Cache.SnapshotTTL
	if snapshotTTL <= 0 {
		snapshotTTL = 30 * time.Second
	}
	historyTTL := cfg.Cache.HistoryTTL
	if historyTTL <= 0 {
		historyTTL = 5 * time.Minute
	}
	return svccache.NewStore(c, snapshotTTL, historyTTL)
}

// ProvideBackendSource creates the REST prediction source.
func ProvideBackendSource(
	cfg *config.Config,
	store *svccache.Store,
	m domainrepo.Metrics,
	l *applogger.Logger,
) domainrepo.PredictionSource {
	clientOpts := []xhttp.ClientOption{xhttp.WithTimeout(cfg.Backend.Timeout)}
	if cfg.Backend.APIKey != "" {
		clientOpts = append(clientOpts, xhttp.WithBaseHeader("X-API-Key", cfg.Backend.APIKey))
	}

	return internalrepo.NewBackendSource(
		xhttp.NewClient(clientOpts...),
		internalrepo.BackendConfig{
			BaseURL:      cfg.Backend.BaseURL,
			APIKey:       cfg.Backend.APIKey,
			BulkPageSize: cfg.Backend.BulkPageSize,
			MaxRetries:   cfg.Backend.MaxRetries,
		},
		store,
		ratelimit.New(),
		m,
		l,
	)
}

// ProvideGeometry builds the chart geometry, falling back to defaults for
// unset dimensions.
func ProvideGeometry(cfg *config.Config) chart.Geometry {
	g := chart.DefaultGeometry()
	if cfg.Chart.Width > 0 {
		g.Width = cfg.Chart.Width
	}
	if cfg.Chart.Height > 0 {
		g.Height = cfg.Chart.Height
	}
	if cfg.Chart.OriginX > 0 {
		g.OriginX = cfg.Chart.OriginX
	}
	if cfg.Chart.OriginY > 0 {
		g.OriginY = cfg.Chart.OriginY
	}
	if cfg.Chart.PaddingFrac > 0 {
		g.PaddingFrac = cfg.Chart.PaddingFrac
	}
	return g
}

// ProvideAggregator creates the dashboard aggregator use case.
func ProvideAggregator(
	source domainrepo.PredictionSource,
	geometry chart.Geometry,
	l *applogger.Logger,
) *usecase.DashboardAggregator {
	return usecase.NewDashboardAggregator(source, geometry, l)
}

// ProvideRefresher creates the background snapshot refresher.
func ProvideRefresher(
	source domainrepo.PredictionSource,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.SnapshotRefresher {
	return usecase.NewSnapshotRefresher(source, cfg.Cache.RefreshInterval, l)
}

// ProvideHandler creates the dashboard HTTP handler with the shared byte
// cache backing its read-response cache.
func ProvideHandler(l *applogger.Logger, agg *usecase.DashboardAggregator, c pkgcache.Service) xhttp.Handler {
	h := api.NewDashboardHandler(l, agg)
	h.SetResponseCache(c)
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	refresher *usecase.SnapshotRefresher,
	c pkgcache.Service,
) *server.App {
	return server.New(cfg, l, handler, refresher, c)
}
