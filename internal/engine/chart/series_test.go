package chart

import (
	"math"
	"testing"

	"PriceLens/internal/domain/models"
)

func TestSmoothSameDayDuplicates(t *testing.T) {
	raw := []models.PriceHistoryPoint{
		{Date: "2025-03-01", Price: 10},
		{Date: "2025-03-01", Price: 12},
		{Date: "2025-03-02", Price: 20},
	}
	got := Smooth(raw)
	if len(got) != 2 {
		t.Fatalf("expected 2 smoothed points, got %d", len(got))
	}
	if got[0].Date != "2025-03-01" || got[0].Price != 11 {
		t.Fatalf("expected mean 11 on first day, got %+v", got[0])
	}
	if got[1].Date != "2025-03-02" || got[1].Price != 20 {
		t.Fatalf("unexpected second point: %+v", got[1])
	}
}

func TestSmoothSortsAscending(t *testing.T) {
	raw := []models.PriceHistoryPoint{
		{Date: "2025-03-05", Price: 5},
		{Date: "2025-03-01", Price: 1},
		{Date: "2025-03-03", Price: 3},
	}
	got := Smooth(raw)
	for i := 1; i < len(got); i++ {
		if got[i-1].Date >= got[i].Date {
			t.Fatalf("dates not ascending: %v", got)
		}
	}
}

func TestSmoothEmpty(t *testing.T) {
	if got := Smooth(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func historyFixture() ([]models.PriceHistoryPoint, []models.PredictionPoint) {
	raw := []models.PriceHistoryPoint{
		{Date: "2025-03-01", Price: 100},
		{Date: "2025-03-02", Price: 110},
		{Date: "2025-03-03", Price: 105},
	}
	preds := []models.PredictionPoint{
		{Date: "2025-03-04", PredictedPrice: 112, DayOffset: 1},
		{Date: "2025-03-05", PredictedPrice: 118, DayOffset: 2},
	}
	return raw, preds
}

func TestBuildSeamContinuity(t *testing.T) {
	raw, preds := historyFixture()
	s := Build(raw, preds, DefaultGeometry())

	if len(s.HistoricalPoints) != 3 {
		t.Fatalf("expected 3 historical points, got %d", len(s.HistoricalPoints))
	}
	if len(s.PredictionPoints) != len(preds)+1 {
		t.Fatalf("expected seam + %d forecast points, got %d", len(preds), len(s.PredictionPoints))
	}

	last := s.HistoricalPoints[len(s.HistoricalPoints)-1]
	first := s.PredictionPoints[0]
	if last.X != first.X || last.Y != first.Y {
		t.Fatalf("seam mismatch: historical end (%v,%v), forecast start (%v,%v)",
			last.X, last.Y, first.X, first.Y)
	}
}

func TestBuildCoordinateMapping(t *testing.T) {
	raw, preds := historyFixture()
	geom := Geometry{Width: 100, Height: 50, OriginX: 0, OriginY: 0, PaddingFrac: 0}
	s := Build(raw, preds, geom)

	// 5 index slots across width 100: x steps of 25
	for i, want := range []float64{0, 25, 50} {
		if got := s.HistoricalPoints[i].X; math.Abs(got-want) > 1e-9 {
			t.Fatalf("historical x[%d] = %v, want %v", i, got, want)
		}
	}
	// forecast points (after the seam) continue at 75, 100
	for i, want := range []float64{75, 100} {
		if got := s.PredictionPoints[i+1].X; math.Abs(got-want) > 1e-9 {
			t.Fatalf("forecast x[%d] = %v, want %v", i, got, want)
		}
	}

	// max price (118) maps to top, min price (100) to bottom with no padding
	for _, p := range append(s.HistoricalPoints, s.PredictionPoints...) {
		switch p.Price {
		case 118:
			if math.Abs(p.Y-0) > 1e-9 {
				t.Fatalf("max price should sit at top, y = %v", p.Y)
			}
		case 100:
			if math.Abs(p.Y-50) > 1e-9 {
				t.Fatalf("min price should sit at bottom, y = %v", p.Y)
			}
		}
	}
}

func TestBuildDomainPadding(t *testing.T) {
	raw, preds := historyFixture()
	geom := Geometry{Width: 100, Height: 50, OriginX: 0, OriginY: 0, PaddingFrac: 0.1}
	s := Build(raw, preds, geom)

	// padded domain keeps extremes off the plot edges
	for _, p := range append(s.HistoricalPoints, s.PredictionPoints...) {
		if p.Y <= 0 || p.Y >= 50 {
			t.Fatalf("point %v drawn flush against plot edge (y=%v)", p.Price, p.Y)
		}
	}
}

func TestBuildTicksAtFixedOffsets(t *testing.T) {
	raw, preds := historyFixture()
	geom := Geometry{Width: 100, Height: 50, OriginX: 0, OriginY: 0, PaddingFrac: 0}
	s := Build(raw, preds, geom)

	if len(s.YAxisTicks) != 5 {
		t.Fatalf("expected 5 y ticks, got %d", len(s.YAxisTicks))
	}
	// domain [100,118], midpoint tick at 109
	if got := s.YAxisTicks[2].Price; math.Abs(got-109) > 1e-9 {
		t.Fatalf("mid tick price = %v, want 109", got)
	}
	if got := s.YAxisTicks[0].Price; got != 100 {
		t.Fatalf("first tick price = %v, want 100", got)
	}
	if got := s.YAxisTicks[4].Price; got != 118 {
		t.Fatalf("last tick price = %v, want 118", got)
	}

	if len(s.XAxisLabels) != 5 {
		t.Fatalf("expected 5 x labels, got %d", len(s.XAxisLabels))
	}
	if s.XAxisLabels[0].Date != "2025-03-01" || s.XAxisLabels[4].Date != "2025-03-05" {
		t.Fatalf("x label range mismatch: %+v", s.XAxisLabels)
	}
}

func TestBuildEmptyInputs(t *testing.T) {
	s := Build(nil, nil, DefaultGeometry())
	if len(s.HistoricalPoints) != 0 || len(s.PredictionPoints) != 0 {
		t.Fatalf("expected well-formed empty series, got %+v", s)
	}
	if s.HistoricalPoints == nil || s.PredictionPoints == nil {
		t.Fatalf("expected empty slices, not nil")
	}
}

func TestBuildFlatSeries(t *testing.T) {
	raw := []models.PriceHistoryPoint{
		{Date: "2025-03-01", Price: 50},
		{Date: "2025-03-02", Price: 50},
	}
	s := Build(raw, nil, DefaultGeometry())
	for _, p := range s.HistoricalPoints {
		if math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			t.Fatalf("flat series produced non-finite y: %+v", p)
		}
	}
	if s.YAxisTicks[0].Price >= s.YAxisTicks[4].Price {
		t.Fatalf("flat series must still have a drawable domain: %+v", s.YAxisTicks)
	}
}

func TestBuildHistoryOnly(t *testing.T) {
	raw, _ := historyFixture()
	s := Build(raw, nil, DefaultGeometry())
	if len(s.PredictionPoints) != 0 {
		t.Fatalf("no forecast means no prediction polyline, got %d points", len(s.PredictionPoints))
	}
	if len(s.HistoricalPoints) != 3 {
		t.Fatalf("expected 3 historical points, got %d", len(s.HistoricalPoints))
	}
}
