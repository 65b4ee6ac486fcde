package override

import (
	"errors"
	"math"
	"strings"
)

// Directive is an analyst-supplied price adjustment tag. The string forms
// match what the backend accepts on submission.
type Directive string

const (
	NoOverride Directive = "NO_OVERRIDE"
	Stabilize  Directive = "STABILIZE"
	Up10       Directive = "+10% INCREASE"
	Down10     Directive = "-10% DECREASE"
	Up20       Directive = "+20% INCREASE"
	Down20     Directive = "-20% DECREASE"
	Up30       Directive = "+30% INCREASE"
	Down30     Directive = "-30% DECREASE"
	Up50       Directive = "+50% INCREASE"
	Down50     Directive = "-50% DECREASE"
)

var multipliers = map[Directive]float64{
	NoOverride: 1.00,
	Stabilize:  1.00,
	Up10:       1.10,
	Down10:     0.90,
	Up20:       1.20,
	Down20:     0.80,
	Up30:       1.30,
	Down30:     0.70,
	Up50:       1.50,
	Down50:     0.50,
}

// ErrInvalidBasePrice marks a caller contract violation: the base price fed
// into a preview must be a finite, non-negative number.
var ErrInvalidBasePrice = errors.New("override: base price must be finite and >= 0")

// Normalize canonicalizes a directive's case and whitespace.
func Normalize(d Directive) Directive {
	return Directive(strings.ToUpper(strings.TrimSpace(string(d))))
}

// ParseDirective canonicalizes a raw string into a Directive. The result is
// not guaranteed to be a known tag; check with Known.
func ParseDirective(s string) Directive {
	return Normalize(Directive(s))
}

// Known reports whether the directive is one of the enumerated tags.
func Known(d Directive) bool {
	_, ok := multipliers[Normalize(d)]
	return ok
}

// Price applies a directive to a base price. An unknown directive leaves the
// price unchanged: the result only feeds a preview ahead of an explicit
// confirmation, so degrading beats failing. A negative or non-finite base is
// a contract violation and returns ErrInvalidBasePrice.
func Price(basePrice float64, d Directive) (float64, error) {
	if basePrice < 0 || math.IsNaN(basePrice) || math.IsInf(basePrice, 0) {
		return 0, ErrInvalidBasePrice
	}
	m, ok := multipliers[Normalize(d)]
	if !ok {
		return basePrice, nil
	}
	return basePrice * m, nil
}
