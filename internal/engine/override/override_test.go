package override

import (
	"errors"
	"math"
	"testing"
)

func TestPriceExactness(t *testing.T) {
	tests := []struct {
		directive Directive
		base      float64
		want      float64
	}{
		{NoOverride, 100, 100},
		{Stabilize, 100, 100},
		{Up10, 100, 110},
		{Down10, 100, 90},
		{Up20, 100, 120},
		{Down20, 100, 80},
		{Up30, 100, 130},
		{Down30, 100, 70},
		{Up50, 100, 150},
		{Down50, 100, 50},
	}
	for _, tt := range tests {
		got, err := Price(tt.base, tt.directive)
		if err != nil {
			t.Fatalf("Price(%v, %q): unexpected error %v", tt.base, tt.directive, err)
		}
		if got != tt.want {
			t.Fatalf("Price(%v, %q) = %v, want %v", tt.base, tt.directive, got, tt.want)
		}
	}
}

func TestPriceCaseInsensitive(t *testing.T) {
	got, err := Price(100, "+20% increase")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 120 {
		t.Fatalf("expected 120, got %v", got)
	}
}

func TestPriceUnknownDirectiveFailSoft(t *testing.T) {
	// the result only feeds a preview, so an unmapped tag is a no-op
	got, err := Price(42.5, "+15% INCREASE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42.5 {
		t.Fatalf("expected base unchanged, got %v", got)
	}
}

func TestPriceContractViolations(t *testing.T) {
	for _, base := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Price(base, NoOverride); !errors.Is(err, ErrInvalidBasePrice) {
			t.Fatalf("Price(%v): expected ErrInvalidBasePrice, got %v", base, err)
		}
	}
}

func TestKnown(t *testing.T) {
	if !Known("stabilize") {
		t.Fatalf("expected STABILIZE known regardless of case")
	}
	if Known("+40% INCREASE") {
		t.Fatalf("+40%% is not an enumerated directive")
	}
}
