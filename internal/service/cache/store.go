package cache

import (
	"context"
	"encoding/json"
	"time"

	"PriceLens/internal/domain/models"
	svcmetrics "PriceLens/internal/service/metrics"
	pkgcache "PriceLens/pkg/cache"
)

const (
	snapshotKey   = "snapshot:products"
	historyPrefix = "history"
)

// Store is the typed caching layer for dashboard reads. It serializes
// domain values as JSON over the byte cache, so the same code runs against
// memory, redis, or the layered backend.
type Store struct {
	c           pkgcache.Service
	snapshotTTL time.Duration
	historyTTL  time.Duration
}

// NewStore creates a typed cache store.
func NewStore(c pkgcache.Service, snapshotTTL, historyTTL time.Duration) *Store {
	svcmetrics.Register()
	return &Store{c: c, snapshotTTL: snapshotTTL, historyTTL: historyTTL}
}

// GetSnapshot returns the cached product snapshot, if present.
func (s *Store) GetSnapshot(ctx context.Context) ([]models.ProductGroup, bool) {
	b, err := s.c.Get(ctx, snapshotKey)
	if err != nil {
		svcmetrics.CacheHits.WithLabelValues("snapshot", "miss").Inc()
		return nil, false
	}
	var products []models.ProductGroup
	if err := json.Unmarshal(b, &products); err != nil {
		svcmetrics.CacheHits.WithLabelValues("snapshot", "miss").Inc()
		return nil, false
	}
	svcmetrics.CacheHits.WithLabelValues("snapshot", "hit").Inc()
	return products, true
}

// SetSnapshot stores the product snapshot.
func (s *Store) SetSnapshot(ctx context.Context, products []models.ProductGroup) error {
	b, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return s.c.Set(ctx, snapshotKey, b, s.snapshotTTL)
}

// InvalidateSnapshot drops the cached snapshot.
func (s *Store) InvalidateSnapshot(ctx context.Context) error {
	return s.c.Delete(ctx, snapshotKey)
}

// GetHistory returns a cached price history, if present.
func (s *Store) GetHistory(ctx context.Context, productID, marketID int64) (models.PriceHistory, bool) {
	key := pkgcache.GenerateKeyWithParams(historyPrefix, productID, marketID)
	b, err := s.c.Get(ctx, key)
	if err != nil {
		svcmetrics.CacheHits.WithLabelValues("history", "miss").Inc()
		return models.PriceHistory{}, false
	}
	var h models.PriceHistory
	if err := json.Unmarshal(b, &h); err != nil {
		svcmetrics.CacheHits.WithLabelValues("history", "miss").Inc()
		return models.PriceHistory{}, false
	}
	svcmetrics.CacheHits.WithLabelValues("history", "hit").Inc()
	return h, true
}

// SetHistory stores a price history.
func (s *Store) SetHistory(ctx context.Context, productID, marketID int64, h models.PriceHistory) error {
	b, err := json.Marshal(h)
	if err != nil {
		return err
	}
	key := pkgcache.GenerateKeyWithParams(historyPrefix, productID, marketID)
	return s.c.Set(ctx, key, b, s.historyTTL)
}

// InvalidateHistory drops one cached history.
func (s *Store) InvalidateHistory(ctx context.Context, productID, marketID int64) error {
	key := pkgcache.GenerateKeyWithParams(historyPrefix, productID, marketID)
	return s.c.Delete(ctx, key)
}
