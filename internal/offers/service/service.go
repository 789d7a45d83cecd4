package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"offer_generator_backend/internal/offers/domain"
	"offer_generator_backend/internal/offers/repository"
	"offer_generator_backend/internal/offers/transport"
	"offer_generator_backend/platform/apperr"
	"offer_generator_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Store is the persistence the offers service needs.
// Implemented by repository.Repository.
type Store interface {
	Create(ctx context.Context, offer *repository.Offer) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*repository.Offer, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	List(ctx context.Context, params repository.ListParams) (*repository.ListResult, error)
}

// Service provides business logic for finalized offers
type Service struct {
	repo Store
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new offers service
func New(repo Store, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// Save stores a finalized copy of offer for the user. Totals are computed
// server-side, missing line ids are filled in and the offer gets the next
// OFF-<year>-<nnnn> number.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, offer domain.Offer) (*repository.Offer, error) {
	clientName := strings.TrimSpace(offer.Client.Name)
	if clientName == "" {
		return nil, apperr.Validation("client name is required")
	}

	now := s.now().UTC()
	data := domain.ResetProducts(offer, offer.Products)
	if data.CreatedAt == nil {
		data.CreatedAt = &now
	}
	data.LastEdited = &now
	totals := domain.CalculateTotals(data)

	row := &repository.Offer{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       strings.TrimSpace(data.Name),
		ClientName: clientName,
		Currency:   data.Details.Currency,
		Subtotal:   totals.Subtotal,
		VATTotal:   totals.VAT,
		Total:      totals.Total,
		Data:       data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("save offer: %w", err)
	}

	s.log.Info("offer saved", "userId", userID.String(), "offerId", row.ID.String(), "offerNumber", row.OfferNumber)
	return row, nil
}

// Get returns one of the user's saved offers
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*repository.Offer, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// GetByID returns one of the user's saved offers as a response
func (s *Service) GetByID(ctx context.Context, userID, id uuid.UUID) (*transport.OfferResponse, error) {
	row, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return toResponse(row), nil
}

// Delete removes one of the user's saved offers
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.log.Info("offer deleted", "userId", userID.String(), "offerId", id.String())
	return nil
}

// List returns a page of the user's saved offers, newest first by default
func (s *Service) List(ctx context.Context, userID uuid.UUID, req transport.ListOffersRequest) (*transport.OfferListResponse, error) {
	params := repository.ListParams{
		UserID:    userID,
		Search:    strings.TrimSpace(req.Search),
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Page:      max(req.Page, 1),
		PageSize:  clampPageSize(req.PageSize),
	}

	result, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]transport.OfferSummary, len(result.Items))
	for i, o := range result.Items {
		items[i] = transport.OfferSummary{
			ID:          o.ID,
			OfferNumber: o.OfferNumber,
			Name:        o.Name,
			ClientName:  o.ClientName,
			Currency:    o.Currency,
			Total:       o.Total,
			CreatedAt:   o.CreatedAt,
		}
	}
	return &transport.OfferListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

func toResponse(row *repository.Offer) *transport.OfferResponse {
	return &transport.OfferResponse{
		ID:          row.ID,
		OfferNumber: row.OfferNumber,
		Offer:       row.Data,
		Totals:      domain.CalculateTotals(row.Data),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func clampPageSize(size int) int {
	if size <= 0 {
		return defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}
