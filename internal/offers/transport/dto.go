package transport

import (
	"time"

	"offer_generator_backend/internal/offers/domain"

	"github.com/google/uuid"
)

// ListOffersRequest is the query string of GET /offers
type ListOffersRequest struct {
	Search    string `form:"search" validate:"max=200"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=offerNumber clientName total createdAt"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// OfferSummary is one row of the saved offers list
type OfferSummary struct {
	ID          uuid.UUID `json:"id"`
	OfferNumber string    `json:"offerNumber"`
	Name        string    `json:"name,omitempty"`
	ClientName  string    `json:"clientName"`
	Currency    string    `json:"currency"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OfferListResponse is the paginated saved offers list
type OfferListResponse struct {
	Items      []OfferSummary `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// OfferResponse is a saved offer with its stored totals
type OfferResponse struct {
	ID             uuid.UUID     `json:"id"`
	OfferNumber    string        `json:"offerNumber"`
	Offer          domain.Offer  `json:"offer"`
	Totals         domain.Totals `json:"totals"`
	CompanyLogoURL string        `json:"companyLogoUrl,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
