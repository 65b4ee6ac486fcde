package anomaly

import (
	"testing"

	"PriceLens/internal/domain/models"
)

func fixture() []models.ProductGroup {
	return []models.ProductGroup{
		{
			ProductID:   1,
			ProductName: "Rice",
			ProductCode: "RC1",
			MarketPredictions: []models.PredictionRecord{
				{MarketID: 9, MarketName: "Central", MarketLocation: "North", Status: "ANOMALY", CurrentPrice: 12000, ConfidenceScore: 0.82},
				{MarketID: 10, MarketName: "Harbor", Status: "NORMAL"},
			},
		},
		{
			ProductID:   2,
			ProductName: "Corn",
			ProductCode: "CN1",
			MarketPredictions: []models.PredictionRecord{
				{MarketID: 11, Status: "overridden"},
				{MarketID: 12, Status: "NO_DATA"},
				{MarketID: 13, Status: "Anomaly"},
			},
		},
		{
			ProductID:         3,
			ProductName:       "Soy",
			ProductCode:       "SY1",
			MarketPredictions: []models.PredictionRecord{{MarketID: 14, Status: "NORMAL"}},
		},
	}
}

func TestCollectFlaggedAnomalyOnly(t *testing.T) {
	rows := CollectFlagged(fixture(), FilterAnomaly)
	if len(rows) != 2 {
		t.Fatalf("expected 2 anomaly rows, got %d", len(rows))
	}
	if rows[0].ProductID != 1 || rows[0].MarketID != 9 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[0].ProductName != "Rice" || rows[0].ProductCode != "RC1" || rows[0].MarketName != "Central" {
		t.Fatalf("row must carry denormalized fields: %+v", rows[0])
	}
	if rows[1].ProductID != 2 || rows[1].MarketID != 13 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestCollectFlaggedOverriddenOnly(t *testing.T) {
	rows := CollectFlagged(fixture(), FilterOverridden)
	if len(rows) != 1 {
		t.Fatalf("expected 1 overridden row, got %d", len(rows))
	}
	if rows[0].ProductID != 2 || rows[0].MarketID != 11 {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
	if rows[0].Status != models.StatusOverridden {
		t.Fatalf("status must be canonicalized, got %q", rows[0].Status)
	}
}

func TestCollectFlaggedAllIsUnion(t *testing.T) {
	products := fixture()
	all := CollectFlagged(products, FilterAll)
	anomalies := CollectFlagged(products, FilterAnomaly)
	overridden := CollectFlagged(products, FilterOverridden)

	if len(all) != len(anomalies)+len(overridden) {
		t.Fatalf("ALL (%d rows) must equal union of ANOMALY (%d) and OVERRIDDEN (%d)",
			len(all), len(anomalies), len(overridden))
	}
	seen := map[[2]int64]bool{}
	for _, r := range all {
		key := [2]int64{r.ProductID, r.MarketID}
		if seen[key] {
			t.Fatalf("duplicate row for product %d market %d", r.ProductID, r.MarketID)
		}
		seen[key] = true
	}
	for _, r := range append(anomalies, overridden...) {
		if !seen[[2]int64{r.ProductID, r.MarketID}] {
			t.Fatalf("row for product %d market %d missing from ALL", r.ProductID, r.MarketID)
		}
	}
}

func TestCollectFlaggedStableOrder(t *testing.T) {
	rows := CollectFlagged(fixture(), FilterAll)
	wantMarkets := []int64{9, 11, 13}
	if len(rows) != len(wantMarkets) {
		t.Fatalf("expected %d rows, got %d", len(wantMarkets), len(rows))
	}
	for i, m := range wantMarkets {
		if rows[i].MarketID != m {
			t.Fatalf("row %d: expected market %d, got %d", i, m, rows[i].MarketID)
		}
	}
}

func TestCollectFlaggedEmptyInput(t *testing.T) {
	rows := CollectFlagged(nil, FilterAll)
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected well-formed empty slice, got %#v", rows)
	}
}

func TestTally(t *testing.T) {
	c := Tally(fixture())
	if c.Anomalies != 2 || c.Overridden != 1 {
		t.Fatalf("unexpected tally: %+v", c)
	}
}

func TestParseFilter(t *testing.T) {
	if ParseFilter(" anomaly ") != FilterAnomaly {
		t.Fatalf("expected ANOMALY")
	}
	if ParseFilter("OVERRIDDEN") != FilterOverridden {
		t.Fatalf("expected OVERRIDDEN")
	}
	for _, s := range []string{"", "ALL", "whatever"} {
		if ParseFilter(s) != FilterAll {
			t.Fatalf("expected %q to widen to ALL", s)
		}
	}
}
