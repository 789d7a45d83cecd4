package service

import (
	"context"
	"strings"

	"offer_generator_backend/internal/catalog/repository"
	"offer_generator_backend/internal/catalog/transport"

	"github.com/google/uuid"
)

const defaultSuggestionLimit = 10

// Store is the lookup storage the catalog service reads from.
// Implemented by repository.Repo.
type Store interface {
	SearchProducts(ctx context.Context, userID uuid.UUID, search string, limit int) ([]repository.Product, error)
	SearchClients(ctx context.Context, userID uuid.UUID, search string, limit int) ([]repository.Client, error)
}

// Service serves product and client suggestions for the editor
type Service struct {
	repo Store
}

// New creates a new catalog service
func New(repo Store) *Service {
	return &Service{repo: repo}
}

// SuggestProducts returns remembered products for autocomplete.
func (s *Service) SuggestProducts(ctx context.Context, userID uuid.UUID, req transport.AutocompleteSearchRequest) ([]transport.ProductSuggestion, error) {
	items, err := s.repo.SearchProducts(ctx, userID, strings.TrimSpace(req.Query), limitOrDefault(req.Limit))
	if err != nil {
		return nil, err
	}

	out := make([]transport.ProductSuggestion, len(items))
	for i, p := range items {
		out[i] = transport.ProductSuggestion{
			ID:          p.ID,
			Name:        p.Name,
			PartNumber:  p.PartNumber,
			Description: p.Description,
			Unit:        p.Unit,
			UnitPrice:   p.UnitPrice,
		}
	}
	return out, nil
}

// SuggestClients returns remembered clients for autocomplete.
func (s *Service) SuggestClients(ctx context.Context, userID uuid.UUID, req transport.AutocompleteSearchRequest) ([]transport.ClientSuggestion, error) {
	items, err := s.repo.SearchClients(ctx, userID, strings.TrimSpace(req.Query), limitOrDefault(req.Limit))
	if err != nil {
		return nil, err
	}

	out := make([]transport.ClientSuggestion, len(items))
	for i, c := range items {
		out[i] = transport.ClientSuggestion{ID: c.ID, Client: c.Data}
	}
	return out, nil
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultSuggestionLimit
	}
	return limit
}
