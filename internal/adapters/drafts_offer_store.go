package adapters

import (
	"context"
	"fmt"

	draftsvc "offer_generator_backend/internal/drafts/service"
	"offer_generator_backend/internal/offers/domain"
	offersvc "offer_generator_backend/internal/offers/service"

	"github.com/google/uuid"
)

// DraftsOfferStore adapts the offers service for the drafts domain.
// It implements draftsvc.OfferSaver and draftsvc.OfferReader.
type DraftsOfferStore struct {
	svc *offersvc.Service
}

// NewDraftsOfferStore creates a new offer store adapter.
func NewDraftsOfferStore(svc *offersvc.Service) *DraftsOfferStore {
	return &DraftsOfferStore{svc: svc}
}

// SaveOffer stores a finalized offer and returns the canonical copy.
func (a *DraftsOfferStore) SaveOffer(ctx context.Context, userID uuid.UUID, offer domain.Offer) (*draftsvc.SavedOffer, error) {
	row, err := a.svc.Save(ctx, userID, offer)
	if err != nil {
		return nil, fmt.Errorf("offers store adapter: %w", err)
	}

	return &draftsvc.SavedOffer{
		ID:          row.ID,
		OfferNumber: row.OfferNumber,
		Offer:       row.Data,
		Totals:      domain.CalculateTotals(row.Data),
		CreatedAt:   row.CreatedAt,
	}, nil
}

// GetOffer returns the stored offer body for loading into the editor.
func (a *DraftsOfferStore) GetOffer(ctx context.Context, userID, offerID uuid.UUID) (*domain.Offer, error) {
	row, err := a.svc.Get(ctx, userID, offerID)
	if err != nil {
		return nil, err
	}
	offer := row.Data.Clone()
	return &offer, nil
}

// Compile-time checks that DraftsOfferStore implements the drafts ports.
var (
	_ draftsvc.OfferSaver  = (*DraftsOfferStore)(nil)
	_ draftsvc.OfferReader = (*DraftsOfferStore)(nil)
)
