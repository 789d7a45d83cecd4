package transport

import (
	"offer_generator_backend/internal/offers/domain"

	"github.com/google/uuid"
)

// AutocompleteSearchRequest is the query of the lookup endpoints
type AutocompleteSearchRequest struct {
	Query string `form:"q" validate:"max=200"`
	Limit int    `form:"limit" validate:"omitempty,min=1,max=50"`
}

// ProductSuggestion can be added to the editor as a new line item
type ProductSuggestion struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PartNumber  string    `json:"partNumber"`
	Description string    `json:"description"`
	Unit        string    `json:"unit"`
	UnitPrice   float64   `json:"unitPrice"`
}

// ClientSuggestion can be copied into the editor's client fields
type ClientSuggestion struct {
	ID     uuid.UUID         `json:"id"`
	Client domain.ClientInfo `json:"client"`
}
