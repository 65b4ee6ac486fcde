package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type SearchRequest struct {
	Term string `query:"term" json:"term"`
	Page int    `query:"page" json:"page" validate:"gte=0"`
	Size int    `query:"size" json:"size" default:"20" validate:"gte=1,lte=200"`
}

type AnomalyListRequest struct {
	Status string `query:"status" json:"status" default:"ALL" validate:"oneof=ALL ANOMALY OVERRIDDEN"`
}

type ChartRequest struct {
	ProductID int64 `query:"product_id" json:"product_id" validate:"required,gt=0"`
	MarketID  int64 `query:"market_id" json:"market_id" validate:"required,gt=0"`
}

type OverridePreviewRequest struct {
	BasePrice float64 `query:"base_price" json:"base_price" validate:"gte=0"`
	Directive string  `query:"directive" json:"directive" validate:"required"`
}

type OverrideSubmitRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	MarketID  int64  `json:"market_id" validate:"required,gt=0"`
	Directive string `json:"directive" validate:"required"`
}

type RegenerateRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	MarketID  int64 `json:"market_id" validate:"required,gt=0"`
}
