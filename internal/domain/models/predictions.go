package models

// Prediction status values as delivered by the backend model.
const (
	StatusNormal     = "NORMAL"
	StatusAnomaly    = "ANOMALY"
	StatusOverridden = "OVERRIDDEN"
	StatusNoData     = "NO_DATA"
)

// PredictionRecord is one product-in-one-market forecast snapshot. It is an
// immutable input supplied by the backend; the service only derives views
// from it and never writes it back.
type PredictionRecord struct {
	ProductID       int64   `json:"product_id"`
	ProductName     string  `json:"product_name"`
	ProductCode     string  `json:"product_code"`
	MarketID        int64   `json:"market_id"`
	MarketName      string  `json:"market_name"`
	MarketLocation  string  `json:"market_location"`
	CurrentPrice    float64 `json:"current_price"`
	ForecastPrice   float64 `json:"forecast_price"`
	TrendPercentage float64 `json:"trend_percentage"`
	ConfidenceScore float64 `json:"confidence_score"` // unit scale [0,1]
	Status          string  `json:"status"`
}

// ProductGroup owns the per-market predictions of a single product plus the
// backend-computed aggregates over them.
type ProductGroup struct {
	ProductID            int64              `json:"product_id"`
	ProductName          string             `json:"product_name"`
	ProductCode          string             `json:"product_code"`
	Category             string             `json:"category"`
	MarketPredictions    []PredictionRecord `json:"market_predictions"`
	AverageCurrentPrice  float64            `json:"average_current_price"`
	AverageForecastPrice float64            `json:"average_forecast_price"`
	TotalMarkets         int                `json:"total_markets"`
	AnomalyCount         int                `json:"anomaly_count"`
}

// SearchName and SearchCode expose the ranked-search match fields.
func (g ProductGroup) SearchName() string { return g.ProductName }
func (g ProductGroup) SearchCode() string { return g.ProductCode }

func (r PredictionRecord) SearchName() string { return r.ProductName }
func (r PredictionRecord) SearchCode() string { return r.ProductCode }

// FlaggedRow is a denormalized (product, market) pair whose prediction was
// flagged ANOMALY or OVERRIDDEN. Carries everything a table row needs so the
// renderer never does a second lookup.
type FlaggedRow struct {
	ProductID       int64   `json:"product_id"`
	ProductName     string  `json:"product_name"`
	ProductCode     string  `json:"product_code"`
	MarketID        int64   `json:"market_id"`
	MarketName      string  `json:"market_name"`
	MarketLocation  string  `json:"market_location"`
	CurrentPrice    float64 `json:"current_price"`
	ForecastPrice   float64 `json:"forecast_price"`
	TrendPercentage float64 `json:"trend_percentage"`
	ConfidenceScore float64 `json:"confidence_score"`
	Status          string  `json:"status"`
}

// FlaggedCounts tallies flagged predictions per status over the full
// (unfiltered) flattened set. Recomputed on every call, never cached.
type FlaggedCounts struct {
	Anomalies  int `json:"anomalies"`
	Overridden int `json:"overridden"`
}

// FlaggedReport pairs the filtered rows with counts over the full set, so
// badge totals stay stable while the table filter changes.
type FlaggedReport struct {
	Rows   []FlaggedRow  `json:"rows"`
	Counts FlaggedCounts `json:"counts"`
}

// OverridePreview shows the price a directive would produce without
// persisting anything.
type OverridePreview struct {
	BasePrice       float64 `json:"base_price"`
	Directive       string  `json:"directive"`
	OverriddenPrice float64 `json:"overridden_price"`
	Recognized      bool    `json:"recognized"`
}
