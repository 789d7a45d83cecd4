package service

import (
	"context"
	"testing"

	"offer_generator_backend/internal/catalog/repository"
	"offer_generator_backend/internal/catalog/transport"
	"offer_generator_backend/internal/offers/domain"

	"github.com/google/uuid"
)

type fakeStore struct {
	search string
	limit  int
}

func (f *fakeStore) SearchProducts(_ context.Context, _ uuid.UUID, search string, limit int) ([]repository.Product, error) {
	f.search, f.limit = search, limit
	return []repository.Product{{ID: uuid.New(), Name: "Panel", PartNumber: "SP-410", UnitPrice: 189}}, nil
}

func (f *fakeStore) SearchClients(_ context.Context, _ uuid.UUID, search string, limit int) ([]repository.Client, error) {
	f.search, f.limit = search, limit
	return []repository.Client{{ID: uuid.New(), Name: "Acme", Data: domain.ClientInfo{Name: "Acme", City: "Utrecht"}}}, nil
}

func TestSuggestProductsDefaultsLimitAndTrims(t *testing.T) {
	store := &fakeStore{}
	svc := New(store)

	items, err := svc.SuggestProducts(context.Background(), uuid.New(), transport.AutocompleteSearchRequest{Query: "  pan "})
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if store.search != "pan" || store.limit != defaultSuggestionLimit {
		t.Fatalf("unexpected query %q limit %d", store.search, store.limit)
	}
	if len(items) != 1 || items[0].PartNumber != "SP-410" || items[0].UnitPrice != 189 {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestSuggestClientsReturnsStoredInfo(t *testing.T) {
	store := &fakeStore{}
	svc := New(store)

	items, err := svc.SuggestClients(context.Background(), uuid.New(), transport.AutocompleteSearchRequest{Query: "ac", Limit: 3})
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if store.limit != 3 {
		t.Fatalf("expected limit 3, got %d", store.limit)
	}
	if len(items) != 1 || items[0].Client.City != "Utrecht" {
		t.Fatalf("unexpected items %+v", items)
	}
}
