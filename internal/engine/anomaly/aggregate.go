// Package anomaly flattens the product-by-market prediction matrix into the
// actionable rows the anomaly views table over.
package anomaly

import (
	"strings"

	"PriceLens/internal/domain/models"
	"PriceLens/internal/engine/classify"
)

// StatusFilter restricts flagged rows to one status kind, or keeps both.
type StatusFilter string

const (
	FilterAll        StatusFilter = "ALL"
	FilterAnomaly    StatusFilter = "ANOMALY"
	FilterOverridden StatusFilter = "OVERRIDDEN"
)

// ParseFilter normalizes a filter string; anything unrecognized widens to ALL.
func ParseFilter(s string) StatusFilter {
	switch StatusFilter(strings.ToUpper(strings.TrimSpace(s))) {
	case FilterAnomaly:
		return FilterAnomaly
	case FilterOverridden:
		return FilterOverridden
	default:
		return FilterAll
	}
}

// CollectFlagged walks every (product, market prediction) pair and keeps the
// flagged ones, optionally restricted by filter. Order is stable: products
// in input order, markets in input order within each product. Rows carry
// denormalized product and market fields so no second lookup is needed.
func CollectFlagged(products []models.ProductGroup, filter StatusFilter) []models.FlaggedRow {
	rows := make([]models.FlaggedRow, 0)
	for _, p := range products {
		for _, m := range p.MarketPredictions {
			if !classify.IsFlagged(m.Status) {
				continue
			}
			status := strings.ToUpper(strings.TrimSpace(m.Status))
			if filter != FilterAll && status != string(filter) {
				continue
			}
			rows = append(rows, models.FlaggedRow{
				ProductID:       p.ProductID,
				ProductName:     p.ProductName,
				ProductCode:     p.ProductCode,
				MarketID:        m.MarketID,
				MarketName:      m.MarketName,
				MarketLocation:  m.MarketLocation,
				CurrentPrice:    m.CurrentPrice,
				ForecastPrice:   m.ForecastPrice,
				TrendPercentage: m.TrendPercentage,
				ConfidenceScore: m.ConfidenceScore,
				Status:          status,
			})
		}
	}
	return rows
}

// Tally counts flagged predictions per status over the unfiltered matrix so
// the counts always reflect the snapshot passed in.
func Tally(products []models.ProductGroup) models.FlaggedCounts {
	var c models.FlaggedCounts
	for _, p := range products {
		for _, m := range p.MarketPredictions {
			switch strings.ToUpper(strings.TrimSpace(m.Status)) {
			case models.StatusAnomaly:
				c.Anomalies++
			case models.StatusOverridden:
				c.Overridden++
			}
		}
	}
	return c
}
