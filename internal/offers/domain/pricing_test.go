package domain

import (
	"testing"
	"time"
)

func exampleOffer(includeVAT bool) Offer {
	o := DefaultOffer(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	o.Client.Name = "Acme Ltd"
	o.Products = []Product{
		{ID: "p1", Name: "Cable", Quantity: 2, UnitPrice: 50},
		{
			ID:        "p2",
			Name:      "Install kit",
			Quantity:  1,
			UnitPrice: 300,
			IsBundle:  true,
			BundledProducts: []BundledProduct{
				{ID: "b1", Name: "Bracket", Quantity: 4, UnitPrice: 25},
				{ID: "b2", Name: "Labour", Quantity: 2, UnitPrice: 100},
			},
		},
	}
	o.Details.IncludeVAT = includeVAT
	o.Details.VATRate = 20
	o.Details.TransportCost = 10
	o.Details.OtherCosts = 0
	return o
}

func TestCalculateTotals_ExampleWithVAT(t *testing.T) {
	o := exampleOffer(true)

	if got := CalculateSubtotal(o); got != 400 {
		t.Fatalf("expected subtotal 400, got %v", got)
	}
	if got := CalculateVAT(o); got != 80 {
		t.Fatalf("expected VAT 80, got %v", got)
	}
	if got := CalculateTotal(o); got != 490 {
		t.Fatalf("expected total 490, got %v", got)
	}

	totals := CalculateTotals(o)
	if totals.Total != 490 || totals.Subtotal != 400 || totals.VAT != 80 {
		t.Fatalf("unexpected totals %+v", totals)
	}
	if len(totals.LineTotals) != 2 || totals.LineTotals[0] != 100 || totals.LineTotals[1] != 300 {
		t.Fatalf("unexpected line totals %v", totals.LineTotals)
	}
}

func TestCalculateTotals_ExampleWithoutVAT(t *testing.T) {
	o := exampleOffer(false)

	if got := CalculateVAT(o); got != 0 {
		t.Fatalf("expected VAT 0, got %v", got)
	}
	if got := CalculateTotal(o); got != 410 {
		t.Fatalf("expected total 410, got %v", got)
	}
}

func TestCalculateVAT_IgnoresRateWhenExcluded(t *testing.T) {
	for _, rate := range []float64{0, 9, 21, 100, -5} {
		o := exampleOffer(false)
		o.Details.VATRate = rate
		if got := CalculateVAT(o); got != 0 {
			t.Fatalf("rate %v: expected VAT 0, got %v", rate, got)
		}
	}
}

func TestCalculateVAT_ZeroRateIsNotAnError(t *testing.T) {
	o := exampleOffer(true)
	o.Details.VATRate = 0
	if got := CalculateVAT(o); got != 0 {
		t.Fatalf("expected VAT 0, got %v", got)
	}
}

func TestCalculateTotal_InvariantHolds(t *testing.T) {
	offers := []Offer{
		DefaultOffer(time.Now()),
		exampleOffer(true),
		exampleOffer(false),
	}
	negative := exampleOffer(true)
	negative.Products = append(negative.Products, Product{ID: "p3", Quantity: -3, UnitPrice: 12.5})
	negative.Details.OtherCosts = 7.25
	offers = append(offers, negative)

	for i, o := range offers {
		want := CalculateSubtotal(o) + CalculateVAT(o) + o.Details.TransportCost + o.Details.OtherCosts
		if got := CalculateTotal(o); got != want {
			t.Fatalf("offer %d: expected total %v, got %v", i, want, got)
		}
		if got := CalculateTotals(o).Total; got != want {
			t.Fatalf("offer %d: CalculateTotals expected %v, got %v", i, want, got)
		}
	}
}

func TestCalculateSubtotal_EmptyProducts(t *testing.T) {
	o := DefaultOffer(time.Now())
	o.Details.TransportCost = 15
	o.Details.OtherCosts = 5

	if got := CalculateSubtotal(o); got != 0 {
		t.Fatalf("expected subtotal 0, got %v", got)
	}
	if got := CalculateVAT(o); got != 0 {
		t.Fatalf("expected VAT 0, got %v", got)
	}
	if got := CalculateTotal(o); got != 20 {
		t.Fatalf("expected total 20, got %v", got)
	}
}

func TestCalculateSubtotal_BundleCountsOnce(t *testing.T) {
	o := DefaultOffer(time.Now())
	o.Products = []Product{{
		ID:        "bundle",
		Quantity:  1,
		UnitPrice: 150,
		IsBundle:  true,
		BundledProducts: []BundledProduct{
			{ID: "a", Quantity: 10, UnitPrice: 100},
			{ID: "b", Quantity: 3, UnitPrice: 999},
		},
	}}

	if got := CalculateSubtotal(o); got != 150 {
		t.Fatalf("expected subtotal 150, got %v", got)
	}
}

func TestCalculateSubtotal_NegativeInputsAreNotClamped(t *testing.T) {
	o := DefaultOffer(time.Now())
	o.Products = []Product{{ID: "x", Quantity: 2, UnitPrice: -10}}

	if got := CalculateSubtotal(o); got != -20 {
		t.Fatalf("expected subtotal -20, got %v", got)
	}
}

func TestBundleSubtotal(t *testing.T) {
	items := []BundledProduct{
		{Quantity: 2, UnitPrice: 12.5},
		{Quantity: 1, UnitPrice: 75},
	}
	if got := BundleSubtotal(items); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
	if got := BundleSubtotal(nil); got != 0 {
		t.Fatalf("expected 0 for empty bundle, got %v", got)
	}
}
