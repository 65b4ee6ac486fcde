package util

import "testing"

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("42", 7); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("expected default for empty, got %d", got)
	}
	if got := ParseIntDefault("nope", 7); got != 7 {
		t.Fatalf("expected default for garbage, got %d", got)
	}
}

func TestParseFloatDefault(t *testing.T) {
	if got := ParseFloatDefault("0.25", 1); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
	if got := ParseFloatDefault("", 1); got != 1 {
		t.Fatalf("expected default for empty, got %v", got)
	}
	if got := ParseFloatDefault("nope", 1); got != 1 {
		t.Fatalf("expected default for garbage, got %v", got)
	}
}
