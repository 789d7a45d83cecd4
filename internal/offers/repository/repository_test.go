package repository

import (
	"testing"

	"offer_generator_backend/platform/apperr"
)

func TestFormatOfferNumberCarriesYearAndPadding(t *testing.T) {
	if got := FormatOfferNumber(2026, 7); got != "OFF-2026-0007" {
		t.Fatalf("unexpected number %q", got)
	}
	if got := FormatOfferNumber(2027, 1); got != "OFF-2027-0001" {
		t.Fatalf("expected numbering to restart in a new year, got %q", got)
	}
	if got := FormatOfferNumber(2026, 12345); got != "OFF-2026-12345" {
		t.Fatalf("unexpected number %q", got)
	}
}

func TestResolveSortDefaultsAndRejectsUnknown(t *testing.T) {
	by, err := resolveSortBy("")
	if err != nil || by != "createdAt" {
		t.Fatalf("expected createdAt default, got %q %v", by, err)
	}
	order, err := resolveSortOrder("")
	if err != nil || order != "desc" {
		t.Fatalf("expected desc default, got %q %v", order, err)
	}
	if _, err := resolveSortBy("data"); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
	if _, err := resolveSortOrder("sideways"); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}
