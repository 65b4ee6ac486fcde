// Package chart turns a mixed historical/forecast price series into plain
// pixel-space polyline data. It knows nothing about SVG, Canvas, or any
// charting library; a renderer consumes its output as-is.
package chart

import (
	"math"
	"sort"

	"PriceLens/internal/domain/models"
)

// Geometry fixes the plot box the coordinates are mapped into.
type Geometry struct {
	Width       float64
	Height      float64
	OriginX     float64
	OriginY     float64
	PaddingFrac float64 // fractional margin added above and below the price domain
}

// DefaultGeometry matches the dashboard's inspection panel.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:       640,
		Height:      280,
		OriginX:     40,
		OriginY:     20,
		PaddingFrac: 0.05,
	}
}

// tickFracs are the fixed fractional offsets ticks and labels sit at. No
// nice-number rounding.
var tickFracs = [...]float64{0, 0.25, 0.5, 0.75, 1}

// Smooth collapses same-day duplicate samples into one point per calendar
// date holding the arithmetic mean, sorted ascending by date. ISO date
// strings sort chronologically as plain strings.
func Smooth(raw []models.PriceHistoryPoint) []models.PriceHistoryPoint {
	if len(raw) == 0 {
		return nil
	}
	sums := make(map[string]float64, len(raw))
	counts := make(map[string]int, len(raw))
	for _, p := range raw {
		sums[p.Date] += p.Price
		counts[p.Date]++
	}
	out := make([]models.PriceHistoryPoint, 0, len(sums))
	for date, sum := range sums {
		out = append(out, models.PriceHistoryPoint{Date: date, Price: sum / float64(counts[date])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Build maps a smoothed history and its forecast continuation onto the plot
// box. The forecast polyline begins at the exact last historical vertex so
// the two segments join seamlessly.
func Build(raw []models.PriceHistoryPoint, preds []models.PredictionPoint, geom Geometry) models.ChartSeries {
	series := models.ChartSeries{
		HistoricalPoints: []models.ChartPoint{},
		PredictionPoints: []models.ChartPoint{},
		YAxisTicks:       []models.AxisTick{},
		XAxisLabels:      []models.AxisLabel{},
	}

	smoothed := Smooth(raw)
	total := len(smoothed) + len(preds)
	if total == 0 {
		return series
	}

	lo, hi := priceDomain(smoothed, preds, geom.PaddingFrac)

	xAt := func(i int) float64 {
		if total == 1 {
			return geom.OriginX
		}
		return geom.OriginX + geom.Width*float64(i)/float64(total-1)
	}
	yAt := func(price float64) float64 {
		if hi == lo {
			return geom.OriginY + geom.Height/2
		}
		// higher price sits higher on screen, so the ratio inverts
		return geom.OriginY + geom.Height*(1-(price-lo)/(hi-lo))
	}

	dates := make([]string, 0, total)
	for i, p := range smoothed {
		series.HistoricalPoints = append(series.HistoricalPoints, models.ChartPoint{
			X:     xAt(i),
			Y:     yAt(p.Price),
			Price: p.Price,
			Date:  p.Date,
		})
		dates = append(dates, p.Date)
	}

	if len(preds) > 0 {
		if n := len(series.HistoricalPoints); n > 0 {
			series.PredictionPoints = append(series.PredictionPoints, series.HistoricalPoints[n-1])
		}
		for j, p := range preds {
			series.PredictionPoints = append(series.PredictionPoints, models.ChartPoint{
				X:     xAt(len(smoothed) + j),
				Y:     yAt(p.PredictedPrice),
				Price: p.PredictedPrice,
				Date:  p.Date,
			})
		}
	}
	for _, p := range preds {
		dates = append(dates, p.Date)
	}

	for _, f := range tickFracs {
		price := lo + (hi-lo)*f
		series.YAxisTicks = append(series.YAxisTicks, models.AxisTick{Y: yAt(price), Price: price})
	}
	for _, f := range tickFracs {
		i := int(math.Round(f * float64(total-1)))
		series.XAxisLabels = append(series.XAxisLabels, models.AxisLabel{X: xAt(i), Date: dates[i]})
	}

	return series
}

// priceDomain computes the padded vertical domain over the union of
// historical and forecast prices.
func priceDomain(smoothed []models.PriceHistoryPoint, preds []models.PredictionPoint, paddingFrac float64) (float64, float64) {
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, p := range smoothed {
		min = math.Min(min, p.Price)
		max = math.Max(max, p.Price)
	}
	for _, p := range preds {
		min = math.Min(min, p.PredictedPrice)
		max = math.Max(max, p.PredictedPrice)
	}

	pad := (max - min) * paddingFrac
	if max == min {
		// flat series still needs a drawable span
		pad = math.Abs(max) * paddingFrac
		if pad == 0 {
			pad = 1
		}
	}
	return min - pad, max + pad
}
