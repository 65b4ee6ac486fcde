package repository

import (
	"context"

	"PriceLens/internal/domain/models"
)

// PredictionSource is the backend collaborator that owns predictions,
// history, and override persistence. The service treats it as a snapshot
// supplier: every read returns a complete, self-consistent copy.
type PredictionSource interface {
	// BulkSnapshot fetches the full product catalog with per-market
	// predictions in one call. The page-size ceiling is configured on the
	// implementation, never scattered through call sites.
	BulkSnapshot(ctx context.Context) ([]models.ProductGroup, error)
	History(ctx context.Context, productID, marketID int64) (models.PriceHistory, error)
	SubmitOverride(ctx context.Context, productID, marketID int64, directive string) error
	Regenerate(ctx context.Context, productID, marketID int64) error
	Health(ctx context.Context) error
}

type Metrics interface {
	RecordSourceFetch(kind string)
	RecordError(kind string)
	RecordSnapshotSize(products int)
	RecordLatency(op string, seconds float64)
}
