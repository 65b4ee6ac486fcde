package classify

import (
	"math"
	"testing"
)

func TestConfidenceLevelBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{0.95, LevelHigh},
		{0.70000001, LevelHigh},
		{0.7, LevelMedium}, // strict greater-than, boundary stays MEDIUM
		{0.5, LevelMedium},
		{0.40000001, LevelMedium},
		{0.4, LevelLow},
		{0.1, LevelLow},
		{0, LevelLow},
		{-1, LevelLow},
		{math.NaN(), LevelLow},
	}
	for _, tt := range tests {
		if got := ConfidenceLevel(tt.score); got != tt.want {
			t.Fatalf("ConfidenceLevel(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestConfidenceLevelOnPercentScale(t *testing.T) {
	if got := ConfidenceLevelOn(85, ScalePercent); got != LevelHigh {
		t.Fatalf("expected HIGH for 85%%, got %v", got)
	}
	if got := ConfidenceLevelOn(70, ScalePercent); got != LevelMedium {
		t.Fatalf("expected MEDIUM for 70%%, got %v", got)
	}
	if got := ConfidenceLevelOn(0.85, ScaleUnit); got != LevelHigh {
		t.Fatalf("expected HIGH for 0.85 unit, got %v", got)
	}
}

func TestTrendGlyph(t *testing.T) {
	tests := []struct {
		pct  float64
		want Glyph
	}{
		{2.3, GlyphUp},
		{0.5, GlyphUp},
		{0.49, GlyphFlat},
		{0, GlyphFlat},
		{-0.49, GlyphFlat},
		{-0.5, GlyphDown},
		{-7.1, GlyphDown},
	}
	for _, tt := range tests {
		if got := TrendGlyph(tt.pct); got != tt.want {
			t.Fatalf("TrendGlyph(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestStatusBadge(t *testing.T) {
	tests := []struct {
		status string
		want   Severity
	}{
		{"NORMAL", SeverityOK},
		{"normal", SeverityOK},
		{" Warning ", SeverityWarning},
		{"Anomaly", SeverityCritical},
		{"OVERRIDDEN", SeverityUnknown}, // badge set only knows NORMAL/WARNING/ANOMALY
		{"garbage", SeverityUnknown},
		{"", SeverityUnknown},
	}
	for _, tt := range tests {
		got := StatusBadge(tt.status)
		if got.Severity != tt.want {
			t.Fatalf("StatusBadge(%q).Severity = %v, want %v", tt.status, got.Severity, tt.want)
		}
	}
	// unknown input is a display fallback, the raw text survives
	if b := StatusBadge("weird"); b.Label != "weird" {
		t.Fatalf("expected raw label for unknown status, got %q", b.Label)
	}
}

func TestIsFlagged(t *testing.T) {
	for _, s := range []string{"ANOMALY", "anomaly", "Overridden", " OVERRIDDEN "} {
		if !IsFlagged(s) {
			t.Fatalf("expected %q flagged", s)
		}
	}
	for _, s := range []string{"NORMAL", "NO_DATA", "WARNING", ""} {
		if IsFlagged(s) {
			t.Fatalf("expected %q not flagged", s)
		}
	}
}
