package domain_test

import (
	"testing"

	"snowbird_docs/internal/domain"
)

func TestLocationSlug(t *testing.T) {
	got := domain.LocationSlug("Kelvin Heights Peninsula")
	if got != "kelvin-heights-peninsula" {
		t.Fatalf("got %q", got)
	}
	// Idempotent: normalizing an already-normalized slug is a no-op.
	if again := domain.LocationSlug(got); again != got {
		t.Fatalf("not idempotent: %q -> %q", got, again)
	}
}

func TestLocationSlug_WhitespaceRuns(t *testing.T) {
	if got := domain.LocationSlug("Fernhill  \t Sunshine Bay"); got != "fernhill-sunshine-bay" {
		t.Fatalf("got %q", got)
	}
}
