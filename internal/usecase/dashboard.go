package usecase

import (
	"context"
	"errors"
	"time"

	"PriceLens/internal/domain/models"
	drepo "PriceLens/internal/domain/repository"
	"PriceLens/internal/engine/anomaly"
	"PriceLens/internal/engine/chart"
	"PriceLens/internal/engine/classify"
	"PriceLens/internal/engine/override"
	"PriceLens/internal/engine/search"
	svcmetrics "PriceLens/internal/service/metrics"
	applogger "PriceLens/pkg/logger"
)

// ErrUnknownDirective rejects override submissions the calculator does not
// recognize. Previews stay fail-soft; persisting an unknown directive is not.
var ErrUnknownDirective = errors.New("unknown override directive")

// PredictionView is a PredictionRecord decorated with the derived display
// fields the dashboard renders.
type PredictionView struct {
	models.PredictionRecord
	ConfidenceLevel classify.Level `json:"confidence_level"`
	TrendGlyph      string         `json:"trend_glyph"`
	Badge           classify.Badge `json:"badge"`
}

// GroupView is a ProductGroup with decorated market predictions.
type GroupView struct {
	models.ProductGroup
	MarketViews []PredictionView `json:"market_views"`
}

// SearchPage is one page of decorated search results.
type SearchPage struct {
	Content []GroupView     `json:"content"`
	Page    search.PageMeta `json:"page"`
}

// ChartView pairs the raw history payload with its render-ready series.
type ChartView struct {
	History models.PriceHistory `json:"history"`
	Series  models.ChartSeries  `json:"series"`
}

// DashboardAggregator is the read-side brain of the admin dashboard: it
// pulls snapshots from the backend source and runs the pure engines over
// them. All derived state is recomputed per call.
type DashboardAggregator struct {
	source   drepo.PredictionSource
	geometry chart.Geometry
	logger   *applogger.Logger
}

// NewDashboardAggregator creates a dashboard aggregator.
func NewDashboardAggregator(source drepo.PredictionSource, geometry chart.Geometry, l *applogger.Logger) *DashboardAggregator {
	svcmetrics.Register()
	return &DashboardAggregator{source: source, geometry: geometry, logger: l}
}

// SearchProducts runs the ranked search over the current snapshot and
// decorates each hit for display.
func (d *DashboardAggregator) SearchProducts(ctx context.Context, term string, page, size int) (SearchPage, error) {
	defer d.observe("search", time.Now())

	products, err := d.source.BulkSnapshot(ctx)
	if err != nil {
		d.fail("search", err)
		return SearchPage{}, err
	}

	result, err := search.Search(products, term, page, size)
	if err != nil {
		d.fail("search", err)
		return SearchPage{}, err
	}

	views := make([]GroupView, 0, len(result.Content))
	for _, g := range result.Content {
		views = append(views, decorateGroup(g))
	}
	return SearchPage{Content: views, Page: result.Page}, nil
}

// Flagged returns the anomaly/override report for the requested filter.
// Counts always cover the full flagged set regardless of filter.
func (d *DashboardAggregator) Flagged(ctx context.Context, status string) (models.FlaggedReport, error) {
	defer d.observe("flagged", time.Now())

	products, err := d.source.BulkSnapshot(ctx)
	if err != nil {
		d.fail("flagged", err)
		return models.FlaggedReport{}, err
	}

	filter := anomaly.ParseFilter(status)
	return models.FlaggedReport{
		Rows:   anomaly.CollectFlagged(products, filter),
		Counts: anomaly.Tally(products),
	}, nil
}

// ChartGeometry returns the configured plot box.
func (d *DashboardAggregator) ChartGeometry() chart.Geometry {
	return d.geometry
}

// HistoryChart fetches one pair's history and builds its chart series with
// the configured geometry.
func (d *DashboardAggregator) HistoryChart(ctx context.Context, productID, marketID int64) (ChartView, error) {
	return d.HistoryChartIn(ctx, productID, marketID, d.geometry)
}

// HistoryChartIn builds the chart series into a caller-supplied plot box.
func (d *DashboardAggregator) HistoryChartIn(ctx context.Context, productID, marketID int64, geom chart.Geometry) (ChartView, error) {
	defer d.observe("chart", time.Now())

	h, err := d.source.History(ctx, productID, marketID)
	if err != nil {
		d.fail("chart", err)
		return ChartView{}, err
	}

	series := chart.Build(h.RawHistory, h.Predictions, geom)
	return ChartView{History: h, Series: series}, nil
}

// PreviewOverride computes the price a directive would produce. Unknown
// directives preview as no-ops instead of failing the request.
func (d *DashboardAggregator) PreviewOverride(basePrice float64, directive string) (models.OverridePreview, error) {
	normalized := override.ParseDirective(directive)
	price, err := override.Price(basePrice, normalized)
	if err != nil {
		return models.OverridePreview{}, err
	}
	return models.OverridePreview{
		BasePrice:       basePrice,
		Directive:       string(normalized),
		OverriddenPrice: price,
		Recognized:      override.Known(normalized),
	}, nil
}

// SubmitOverride persists a directive on the backend. The directive must be
// one the calculator knows, otherwise the stored value could never be
// reproduced on read.
func (d *DashboardAggregator) SubmitOverride(ctx context.Context, productID, marketID int64, directive string) error {
	defer d.observe("override", time.Now())

	normalized := override.ParseDirective(directive)
	if !override.Known(normalized) {
		return ErrUnknownDirective
	}

	if err := d.source.SubmitOverride(ctx, productID, marketID, string(normalized)); err != nil {
		d.fail("override", err)
		return err
	}

	if d.logger != nil {
		d.logger.Info("override submitted",
			applogger.Int64("product_id", productID),
			applogger.Int64("market_id", marketID),
			applogger.String("directive", string(normalized)),
		)
	}
	return nil
}

// Regenerate asks the backend to recompute one prediction.
func (d *DashboardAggregator) Regenerate(ctx context.Context, productID, marketID int64) error {
	defer d.observe("regenerate", time.Now())

	if err := d.source.Regenerate(ctx, productID, marketID); err != nil {
		d.fail("regenerate", err)
		return err
	}

	if d.logger != nil {
		d.logger.Info("regeneration requested",
			applogger.Int64("product_id", productID),
			applogger.Int64("market_id", marketID),
		)
	}
	return nil
}

// Health reports backend reachability.
func (d *DashboardAggregator) Health(ctx context.Context) error {
	return d.source.Health(ctx)
}

func decorateGroup(g models.ProductGroup) GroupView {
	views := make([]PredictionView, 0, len(g.MarketPredictions))
	for _, r := range g.MarketPredictions {
		views = append(views, PredictionView{
			PredictionRecord: r,
			ConfidenceLevel:  classify.ConfidenceLevel(r.ConfidenceScore),
			TrendGlyph:       string(classify.TrendGlyph(r.TrendPercentage)),
			Badge:            classify.StatusBadge(r.Status),
		})
	}
	return GroupView{ProductGroup: g, MarketViews: views}
}

func (d *DashboardAggregator) observe(op string, start time.Time) {
	svcmetrics.DashboardLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (d *DashboardAggregator) fail(op string, err error) {
	svcmetrics.DashboardErrors.WithLabelValues(op).Inc()
	if d.logger != nil {
		d.logger.Error("dashboard operation failed",
			applogger.String("operation", op),
			applogger.Error(err),
		)
	}
}
