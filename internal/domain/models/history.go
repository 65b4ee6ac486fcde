package models

// Dates in history payloads are ISO calendar dates ("2006-01-02"). Keeping
// them as strings makes same-day grouping and chronological sorting plain
// string operations and sidesteps timezone drift entirely.

// PriceHistoryPoint is one raw daily price sample. Several samples may share
// the same calendar date when the backend recorded multiple observations.
type PriceHistoryPoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// PredictionPoint is one forecast sample, DayOffset days after the last
// historical date.
type PredictionPoint struct {
	Date           string  `json:"date"`
	PredictedPrice float64 `json:"predicted_price"`
	DayOffset      int     `json:"day_offset"`
}

// RegressionStats summarizes the backend's fitted trend line.
type RegressionStats struct {
	Slope          float64 `json:"slope"`
	Intercept      float64 `json:"intercept"`
	RSquare        float64 `json:"r_square"`
	SlopeDirection string  `json:"slope_direction"`
}

// PriceHistory is the per-(product, market) inspection payload.
type PriceHistory struct {
	RawHistory    []PriceHistoryPoint `json:"raw_history"`
	Predictions   []PredictionPoint   `json:"predictions"`
	CurrentPrice  float64             `json:"current_price"`
	TomorrowPrice float64             `json:"tomorrow_price"`
	ChangePercent float64             `json:"change_percent"`
	Regression    RegressionStats     `json:"regression_stats"`
	DataPoints    int                 `json:"data_points"`
}

// ChartPoint is one pixel-space vertex of a polyline.
type ChartPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Price float64 `json:"price"`
	Date  string  `json:"date"`
}

// AxisTick is a horizontal gridline position with its price label.
type AxisTick struct {
	Y     float64 `json:"y"`
	Price float64 `json:"price"`
}

// AxisLabel is an x-axis date label position.
type AxisLabel struct {
	X    float64 `json:"x"`
	Date string  `json:"date"`
}

// ChartSeries is plain coordinate/label data for a renderer. The prediction
// polyline starts at the exact last historical vertex so the two segments
// join without a gap.
type ChartSeries struct {
	HistoricalPoints []ChartPoint `json:"historical_points"`
	PredictionPoints []ChartPoint `json:"prediction_points"`
	YAxisTicks       []AxisTick   `json:"y_axis_ticks"`
	XAxisLabels      []AxisLabel  `json:"x_axis_labels"`
}
