package domain

import (
	"reflect"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func threeProducts() Offer {
	o := DefaultOffer(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	o.Products = []Product{
		{ID: "a", Name: "First", Quantity: 1, UnitPrice: 10},
		{ID: "b", Name: "Second", Quantity: 2, UnitPrice: 20},
		{ID: "c", Name: "Third", Quantity: 3, UnitPrice: 30},
	}
	return o
}

func productIDs(o Offer) []string {
	ids := make([]string, len(o.Products))
	for i, p := range o.Products {
		ids[i] = p.ID
	}
	return ids
}

func TestUpdateProduct_MissingIDIsNoop(t *testing.T) {
	o := threeProducts()
	before := o.Clone()

	got := UpdateProduct(o, "missing-id", ProductPatch{Name: strPtr("x")})
	if !reflect.DeepEqual(got.Products, before.Products) {
		t.Fatalf("expected products unchanged, got %+v", got.Products)
	}
}

func TestRemoveProduct_MissingIDIsNoop(t *testing.T) {
	o := threeProducts()
	before := o.Clone()

	got := RemoveProduct(o, "missing-id")
	if !reflect.DeepEqual(got.Products, before.Products) {
		t.Fatalf("expected products unchanged, got %+v", got.Products)
	}
}

func TestAddProduct_AppendsWithFreshID(t *testing.T) {
	o := threeProducts()

	got, id := AddProduct(o, Product{ID: "a", Name: "Fourth", Quantity: 1, UnitPrice: 5})
	if id == "" || id == "a" {
		t.Fatalf("expected a fresh id, got %q", id)
	}
	want := []string{"a", "b", "c", id}
	if !reflect.DeepEqual(productIDs(got), want) {
		t.Fatalf("expected order %v, got %v", want, productIDs(got))
	}
	if len(o.Products) != 3 {
		t.Fatalf("input offer was modified: %d products", len(o.Products))
	}

	_, second := AddProduct(got, Product{Name: "Fifth"})
	if second == id {
		t.Fatal("expected distinct ids for consecutive adds")
	}
}

func TestRemoveProduct_PreservesOrder(t *testing.T) {
	o := threeProducts()

	got := RemoveProduct(o, "b")
	if !reflect.DeepEqual(productIDs(got), []string{"a", "c"}) {
		t.Fatalf("unexpected order %v", productIDs(got))
	}
	if !reflect.DeepEqual(productIDs(o), []string{"a", "b", "c"}) {
		t.Fatalf("input offer was modified: %v", productIDs(o))
	}
}

func TestUpdateProduct_MergesOnlyPresentFields(t *testing.T) {
	o := threeProducts()
	qty := 7

	got := UpdateProduct(o, "b", ProductPatch{Quantity: &qty})
	p := got.Products[1]
	if p.Quantity != 7 || p.Name != "Second" || p.UnitPrice != 20 {
		t.Fatalf("unexpected product after merge %+v", p)
	}
	if o.Products[1].Quantity != 2 {
		t.Fatal("input offer was modified")
	}
}

func TestUpdateProduct_DoesNotRecomputeBundlePrice(t *testing.T) {
	o := SaveBundle(threeProducts(), "a", []BundledProduct{{Quantity: 2, UnitPrice: 40}})
	items := []BundledProduct{{Quantity: 10, UnitPrice: 40}}

	got := UpdateProduct(o, "a", ProductPatch{BundledProducts: &items})
	if got.Products[0].UnitPrice != 80 {
		t.Fatalf("expected stored bundle price 80, got %v", got.Products[0].UnitPrice)
	}
}

func TestSaveBundle_SetsPriceFromItems(t *testing.T) {
	o := threeProducts()

	got := SaveBundle(o, "c", []BundledProduct{
		{Name: "Panel", Quantity: 2, UnitPrice: 100},
		{Name: "Mount", Quantity: 1, UnitPrice: 50},
	})
	p := got.Products[2]
	if !p.IsBundle || p.UnitPrice != 250 || len(p.BundledProducts) != 2 {
		t.Fatalf("unexpected bundle %+v", p)
	}
	for _, item := range p.BundledProducts {
		if item.ID == "" {
			t.Fatal("expected bundled items to get ids")
		}
	}
	if o.Products[2].IsBundle {
		t.Fatal("input offer was modified")
	}
}

func TestUpdateCompanyInfo_PreservesOtherFields(t *testing.T) {
	o := DefaultOffer(time.Now())
	o.Company = CompanyInfo{Name: "Old BV", City: "Utrecht", VATNumber: "NL1"}

	got := UpdateCompanyInfo(o, CompanyPatch{Name: strPtr("New BV")})
	if got.Company.Name != "New BV" || got.Company.City != "Utrecht" || got.Company.VATNumber != "NL1" {
		t.Fatalf("unexpected company %+v", got.Company)
	}
}

func TestUpdateClientInfo_PreservesOtherFields(t *testing.T) {
	o := DefaultOffer(time.Now())
	o.Client = ClientInfo{Name: "Acme", Email: "info@acme.test"}

	got := UpdateClientInfo(o, ClientPatch{City: strPtr("Delft")})
	if got.Client.Name != "Acme" || got.Client.Email != "info@acme.test" || got.Client.City != "Delft" {
		t.Fatalf("unexpected client %+v", got.Client)
	}
}

func TestUpdateOfferDetails_Merges(t *testing.T) {
	o := DefaultOffer(time.Now())
	include := false

	got := UpdateOfferDetails(o, DetailsPatch{IncludeVAT: &include, Notes: strPtr("Delivery in May")})
	if got.Details.IncludeVAT || got.Details.Notes != "Delivery in May" {
		t.Fatalf("unexpected details %+v", got.Details)
	}
	if got.Details.VATRate != o.Details.VATRate || got.Details.Currency != o.Details.Currency {
		t.Fatalf("expected untouched fields preserved, got %+v", got.Details)
	}
}

func TestClearProducts(t *testing.T) {
	o := threeProducts()
	o.Client.Name = "Acme"

	got := ClearProducts(o)
	if len(got.Products) != 0 || got.Products == nil {
		t.Fatalf("expected empty non-nil products, got %#v", got.Products)
	}
	if got.Client.Name != "Acme" {
		t.Fatal("expected client preserved")
	}
}

func TestResetProducts_ReplacesInOrder(t *testing.T) {
	o := threeProducts()

	got := ResetProducts(o, []Product{{ID: "z", Name: "Z"}, {Name: "no id"}})
	if len(got.Products) != 2 || got.Products[0].ID != "z" || got.Products[1].ID == "" {
		t.Fatalf("unexpected products %+v", got.Products)
	}
}

func TestMoveProduct(t *testing.T) {
	o := threeProducts()

	cases := []struct {
		id   string
		to   int
		want []string
	}{
		{"a", 2, []string{"b", "c", "a"}},
		{"c", 0, []string{"c", "a", "b"}},
		{"b", 99, []string{"a", "c", "b"}},
		{"b", -1, []string{"b", "a", "c"}},
		{"missing", 0, []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		got := MoveProduct(o, tc.id, tc.to)
		if !reflect.DeepEqual(productIDs(got), tc.want) {
			t.Fatalf("move %s to %d: expected %v, got %v", tc.id, tc.to, tc.want, productIDs(got))
		}
	}
	if !reflect.DeepEqual(productIDs(o), []string{"a", "b", "c"}) {
		t.Fatalf("input offer was modified: %v", productIDs(o))
	}
}

func TestApplyTemplate(t *testing.T) {
	o := threeProducts()
	o.Client.Name = "Acme"
	o.Company.Name = "Seller BV"
	rate := 9.0

	got := ApplyTemplate(o, Template{ID: "solar", Details: &DetailsPatch{VATRate: &rate}})
	if got.Details.VATRate != 9 || len(got.Products) != 3 || got.TemplateID != "solar" {
		t.Fatalf("expected details merged and products kept, got %+v", got)
	}

	got = ApplyTemplate(o, Template{Products: []Product{{Name: "Panel", Quantity: 4, UnitPrice: 200}}})
	if len(got.Products) != 1 || got.Products[0].ID == "" {
		t.Fatalf("expected products replaced, got %+v", got.Products)
	}
	if got.Client.Name != "Acme" || got.Company.Name != "Seller BV" {
		t.Fatal("expected company and client untouched")
	}
}

func TestHasMeaningfulContent(t *testing.T) {
	o := DefaultOffer(time.Now())
	if HasMeaningfulContent(o) {
		t.Fatal("default offer should not be meaningful")
	}

	o.Client.Name = "   "
	if HasMeaningfulContent(o) {
		t.Fatal("blank client name should not be meaningful")
	}

	withNotes := DefaultOffer(time.Now())
	withNotes.Details.Notes = "call first"
	if !HasMeaningfulContent(withNotes) {
		t.Fatal("notes should be meaningful")
	}

	withProduct, _ := AddProduct(DefaultOffer(time.Now()), Product{Name: "x"})
	if !HasMeaningfulContent(withProduct) {
		t.Fatal("a product should be meaningful")
	}
}

func TestDefaultOffer(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	o := DefaultOffer(now)

	if o.Details.Date != "2026-01-15" || o.Details.ValidUntil != "2026-02-14" {
		t.Fatalf("unexpected dates %s / %s", o.Details.Date, o.Details.ValidUntil)
	}
	if o.Details.VATRate != 20 || !o.Details.IncludeVAT || o.Details.Currency != "EUR" {
		t.Fatalf("unexpected defaults %+v", o.Details)
	}
	if o.Products == nil || len(o.Products) != 0 {
		t.Fatalf("expected empty product list, got %#v", o.Products)
	}
}

func TestTemplateFromOffer_CopiesWithFreshIDs(t *testing.T) {
	src := SaveBundle(threeProducts(), "b", []BundledProduct{{ID: "x", Quantity: 1, UnitPrice: 40}})
	src.Details.OfferNumber = "OFF-2026-0007"
	src.Details.Notes = "Saved notes"
	src.Details.VATRate = 9

	target := DefaultOffer(time.Now())
	target.Client.Name = "New client"
	got := ApplyTemplate(target, TemplateFromOffer(src))

	if got.Details.OfferNumber != "" {
		t.Fatalf("expected offer number dropped, got %q", got.Details.OfferNumber)
	}
	if got.Details.Notes != "Saved notes" || got.Details.VATRate != 9 {
		t.Fatalf("expected details copied, got %+v", got.Details)
	}
	if got.Client.Name != "New client" {
		t.Fatal("expected client untouched")
	}
	if len(got.Products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(got.Products))
	}
	for i, p := range got.Products {
		if p.ID == "" || p.ID == src.Products[i].ID {
			t.Fatalf("product %d: expected fresh id, got %q", i, p.ID)
		}
	}
	if got.Products[1].BundledProducts[0].ID == "x" || src.Products[1].BundledProducts[0].ID != "x" {
		t.Fatal("expected bundled ids regenerated without touching the source")
	}
}
