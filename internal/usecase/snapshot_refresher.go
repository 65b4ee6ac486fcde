package usecase

import (
	"context"
	"time"

	drepo "PriceLens/internal/domain/repository"
	applogger "PriceLens/pkg/logger"
)

// SnapshotRefresher keeps the snapshot cache warm so dashboard reads rarely
// pay a backend round trip. A zero interval disables it.
type SnapshotRefresher struct {
	source   drepo.PredictionSource
	interval time.Duration
	logger   *applogger.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewSnapshotRefresher creates a snapshot refresher.
func NewSnapshotRefresher(source drepo.PredictionSource, interval time.Duration, l *applogger.Logger) *SnapshotRefresher {
	return &SnapshotRefresher{source: source, interval: interval, logger: l}
}

// Start launches the refresh loop. Fetch failures are logged and retried on
// the next tick; the loop never gives up while the context lives.
func (r *SnapshotRefresher) Start(ctx context.Context) error {
	if r.interval <= 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.run(ctx)
	return nil
}

func (r *SnapshotRefresher) run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *SnapshotRefresher) refresh(ctx context.Context) {
	start := time.Now()
	products, err := r.source.BulkSnapshot(ctx)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("snapshot refresh failed", applogger.Error(err))
		}
		return
	}
	if r.logger != nil {
		r.logger.Debug("snapshot refreshed",
			applogger.Int("products", len(products)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
}

// Shutdown stops the refresh loop and waits for it to exit.
func (r *SnapshotRefresher) Shutdown(ctx context.Context) error {
	if r.cancel == nil {
		return nil
	}
	r.cancel()
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
