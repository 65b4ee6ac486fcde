package classify

import (
	"math"
	"strings"
)

// Level buckets a confidence score for display.
type Level string

const (
	LevelHigh   Level = "HIGH"
	LevelMedium Level = "MEDIUM"
	LevelLow    Level = "LOW"
)

// Scale declares which numeric range a confidence score arrives on. The
// canonical scale is the unit interval; a caller holding 0-100 payloads must
// say so instead of being guessed at.
type Scale int

const (
	ScaleUnit Scale = iota
	ScalePercent
)

// ConfidenceLevel classifies a unit-scale score. Boundaries are strict:
// exactly 0.7 is MEDIUM, exactly 0.4 is LOW. NaN falls through to LOW.
func ConfidenceLevel(score float64) Level {
	switch {
	case score > 0.7:
		return LevelHigh
	case score > 0.4:
		return LevelMedium
	default:
		return LevelLow
	}
}

// ConfidenceLevelOn classifies a score expressed on the given scale.
func ConfidenceLevelOn(score float64, scale Scale) Level {
	if scale == ScalePercent {
		score /= 100
	}
	return ConfidenceLevel(score)
}

// Glyph is the direction indicator for a trend percentage.
type Glyph string

const (
	GlyphUp   Glyph = "UP"
	GlyphDown Glyph = "DOWN"
	GlyphFlat Glyph = "FLAT"
)

// TrendGlyph maps a trend percentage to a glyph. Moves under half a percent
// in either direction read as flat.
func TrendGlyph(percentage float64) Glyph {
	if math.Abs(percentage) < 0.5 {
		return GlyphFlat
	}
	if percentage > 0 {
		return GlyphUp
	}
	return GlyphDown
}

// Severity grades a status badge for the renderer.
type Severity string

const (
	SeverityOK       Severity = "ok"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
	SeverityUnknown  Severity = "unknown"
)

// Badge is a display label plus severity for a status string.
type Badge struct {
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
}

// StatusBadge matches a status case-insensitively. An unrecognized status is
// a display fallback, not an error: the raw text comes back with unknown
// severity so the UI can still render something.
func StatusBadge(status string) Badge {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "NORMAL":
		return Badge{Label: "Normal", Severity: SeverityOK}
	case "WARNING":
		return Badge{Label: "Warning", Severity: SeverityWarning}
	case "ANOMALY":
		return Badge{Label: "Anomaly", Severity: SeverityCritical}
	default:
		return Badge{Label: status, Severity: SeverityUnknown}
	}
}

// IsFlagged reports whether a status marks a prediction as actionable for
// the anomaly views.
func IsFlagged(status string) bool {
	s := strings.ToUpper(strings.TrimSpace(status))
	return s == "ANOMALY" || s == "OVERRIDDEN"
}
