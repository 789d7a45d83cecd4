package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"offer_generator_backend/internal/offers/domain"
	"offer_generator_backend/internal/offers/repository"
	"offer_generator_backend/internal/offers/transport"
	"offer_generator_backend/platform/apperr"
	"offer_generator_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	created    []*repository.Offer
	counter    int
	createErr  error
	lastParams repository.ListParams
	rows       map[uuid.UUID]*repository.Offer
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[uuid.UUID]*repository.Offer{}}
}

func (f *fakeStore) Create(_ context.Context, o *repository.Offer) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.counter++
	o.OfferNumber = repository.FormatOfferNumber(o.CreatedAt.Year(), f.counter)
	o.Data.Details.OfferNumber = o.OfferNumber
	f.created = append(f.created, o)
	f.rows[o.ID] = o
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id, userID uuid.UUID) (*repository.Offer, error) {
	o, ok := f.rows[id]
	if !ok || o.UserID != userID {
		return nil, apperr.NotFound("offer not found")
	}
	return o, nil
}

func (f *fakeStore) Delete(_ context.Context, id, userID uuid.UUID) error {
	o, ok := f.rows[id]
	if !ok || o.UserID != userID {
		return apperr.NotFound("offer not found")
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeStore) List(_ context.Context, params repository.ListParams) (*repository.ListResult, error) {
	f.lastParams = params
	var items []repository.Offer
	for _, o := range f.rows {
		if o.UserID == params.UserID {
			items = append(items, *o)
		}
	}
	return &repository.ListResult{Items: items, Total: len(items), Page: params.Page, PageSize: params.PageSize, TotalPages: 1}, nil
}

func newTestService(store Store) *Service {
	svc := New(store, logger.Discard())
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) }
	return svc
}

func sampleOffer() domain.Offer {
	o := domain.DefaultOffer(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	o.Client.Name = "Acme"
	o.Products = []domain.Product{
		{Name: "Panel", Quantity: 2, UnitPrice: 100},
		{ID: "keep", Name: "Cable", Quantity: 1, UnitPrice: 50},
	}
	return o
}

func TestSaveComputesTotalsAndNumber(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	userID := uuid.New()

	row, err := svc.Save(context.Background(), userID, sampleOffer())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if row.OfferNumber != "OFF-2025-0001" {
		t.Fatalf("unexpected offer number %q", row.OfferNumber)
	}
	if row.Data.Details.OfferNumber != row.OfferNumber {
		t.Fatalf("expected number in stored details, got %q", row.Data.Details.OfferNumber)
	}
	if row.Subtotal != 250 || row.VATTotal != 50 || row.Total != 300 {
		t.Fatalf("unexpected totals %v/%v/%v", row.Subtotal, row.VATTotal, row.Total)
	}
	if row.Data.Products[0].ID == "" || row.Data.Products[1].ID != "keep" {
		t.Fatalf("expected product ids filled, got %+v", row.Data.Products)
	}

	second, err := svc.Save(context.Background(), userID, sampleOffer())
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if second.OfferNumber != "OFF-2025-0002" {
		t.Fatalf("unexpected second number %q", second.OfferNumber)
	}
}

func TestSaveRequiresClientName(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	o := sampleOffer()
	o.Client.Name = "   "

	_, err := svc.Save(context.Background(), uuid.New(), o)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.created) != 0 {
		t.Fatal("expected nothing stored")
	}
}

func TestSaveWrapsStoreError(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("connection refused")
	svc := newTestService(store)

	_, err := svc.Save(context.Background(), uuid.New(), sampleOffer())
	if err == nil || !errors.Is(err, store.createErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestGetIsScopedToUser(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	owner := uuid.New()

	row, err := svc.Save(context.Background(), owner, sampleOffer())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), uuid.New(), row.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for other user, got %v", err)
	}
	resp, err := svc.GetByID(context.Background(), owner, row.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if resp.Totals.Total != 300 || len(resp.Totals.LineTotals) != 2 {
		t.Fatalf("unexpected totals %+v", resp.Totals)
	}
}

func TestListClampsPaging(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	if _, err := svc.List(context.Background(), uuid.New(), transport.ListOffersRequest{PageSize: 1000}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if store.lastParams.Page != 1 || store.lastParams.PageSize != maxPageSize {
		t.Fatalf("unexpected params %+v", store.lastParams)
	}

	if _, err := svc.List(context.Background(), uuid.New(), transport.ListOffersRequest{Search: "  acme "}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if store.lastParams.PageSize != defaultPageSize || store.lastParams.Search != "acme" {
		t.Fatalf("unexpected params %+v", store.lastParams)
	}
}

func TestDeleteMissingOffer(t *testing.T) {
	svc := newTestService(newFakeStore())

	if err := svc.Delete(context.Background(), uuid.New(), uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
