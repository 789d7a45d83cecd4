package transport

import (
	"time"

	"offer_generator_backend/internal/offers/domain"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CompanyRequest is a partial update of the company snapshot
type CompanyRequest struct {
	Name               *string `json:"name" validate:"omitempty,max=200"`
	NameSecondary      *string `json:"nameSecondary" validate:"omitempty,max=200"`
	Address            *string `json:"address" validate:"omitempty,max=300"`
	AddressSecondary   *string `json:"addressSecondary" validate:"omitempty,max=300"`
	City               *string `json:"city" validate:"omitempty,max=120"`
	PostalCode         *string `json:"postalCode" validate:"omitempty,max=20"`
	Country            *string `json:"country" validate:"omitempty,max=120"`
	VATNumber          *string `json:"vatNumber" validate:"omitempty,max=40"`
	RegistrationNumber *string `json:"registrationNumber" validate:"omitempty,max=40"`
	Email              *string `json:"email" validate:"omitempty,email,max=254"`
	Phone              *string `json:"phone" validate:"omitempty,max=40"`
	Website            *string `json:"website" validate:"omitempty,max=300"`
	BankAccount        *string `json:"bankAccount" validate:"omitempty,max=60"`
	LogoKey            *string `json:"logoKey" validate:"omitempty,max=500"`
}

// ClientRequest is a partial update of the client snapshot
type ClientRequest struct {
	Name               *string `json:"name" validate:"omitempty,max=200"`
	ContactPerson      *string `json:"contactPerson" validate:"omitempty,max=200"`
	Email              *string `json:"email" validate:"omitempty,email,max=254"`
	Phone              *string `json:"phone" validate:"omitempty,max=40"`
	Address            *string `json:"address" validate:"omitempty,max=300"`
	City               *string `json:"city" validate:"omitempty,max=120"`
	PostalCode         *string `json:"postalCode" validate:"omitempty,max=20"`
	Country            *string `json:"country" validate:"omitempty,max=120"`
	VATNumber          *string `json:"vatNumber" validate:"omitempty,max=40"`
	RegistrationNumber *string `json:"registrationNumber" validate:"omitempty,max=40"`
}

// DetailsRequest is a partial update of the offer details
type DetailsRequest struct {
	Date           *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil     *string  `json:"validUntil" validate:"omitempty,datetime=2006-01-02"`
	VATRate        *float64 `json:"vatRate" validate:"omitempty,min=0,max=100"`
	IncludeVAT     *bool    `json:"includeVat"`
	TransportCost  *float64 `json:"transportCost" validate:"omitempty,min=0"`
	OtherCosts     *float64 `json:"otherCosts" validate:"omitempty,min=0"`
	Currency       *string  `json:"currency" validate:"omitempty,currency"`
	Notes          *string  `json:"notes" validate:"omitempty,max=5000"`
	ShowPartNumber *bool    `json:"showPartNumber"`
	PaymentTerms   *string  `json:"paymentTerms" validate:"omitempty,max=2000"`
	DeliveryTerms  *string  `json:"deliveryTerms" validate:"omitempty,max=2000"`
}

// BundledProductRequest is one line inside a bundle
type BundledProductRequest struct {
	Name        string  `json:"name" validate:"max=300"`
	Description string  `json:"description" validate:"max=2000"`
	PartNumber  string  `json:"partNumber" validate:"max=100"`
	Quantity    int     `json:"quantity" validate:"min=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"min=0"`
}

// ProductRequest is the input for a new line item
type ProductRequest struct {
	Name              string                  `json:"name" validate:"max=300"`
	Description       string                  `json:"description" validate:"max=2000"`
	PartNumber        string                  `json:"partNumber" validate:"max=100"`
	Quantity          int                     `json:"quantity" validate:"min=0"`
	UnitPrice         float64                 `json:"unitPrice" validate:"min=0"`
	Unit              string                  `json:"unit" validate:"max=20"`
	IsBundle          bool                    `json:"isBundle"`
	BundledProducts   []BundledProductRequest `json:"bundledProducts" validate:"omitempty,dive"`
	ShowBundledPrices bool                    `json:"showBundledPrices"`
}

// ProductPatchRequest is a partial update of one line item
type ProductPatchRequest struct {
	Name              *string                  `json:"name" validate:"omitempty,max=300"`
	Description       *string                  `json:"description" validate:"omitempty,max=2000"`
	PartNumber        *string                  `json:"partNumber" validate:"omitempty,max=100"`
	Quantity          *int                     `json:"quantity" validate:"omitempty,min=0"`
	UnitPrice         *float64                 `json:"unitPrice" validate:"omitempty,min=0"`
	Unit              *string                  `json:"unit" validate:"omitempty,max=20"`
	IsBundle          *bool                    `json:"isBundle"`
	BundledProducts   *[]BundledProductRequest `json:"bundledProducts" validate:"omitempty"`
	ShowBundledPrices *bool                    `json:"showBundledPrices"`
}

// ResetProductsRequest replaces the whole product list
type ResetProductsRequest struct {
	Products []ProductRequest `json:"products" validate:"dive"`
}

// SaveBundleRequest stores the contents of a bundle
type SaveBundleRequest struct {
	Items []BundledProductRequest `json:"items" validate:"required,min=1,dive"`
}

// MoveProductRequest moves a line item to a new position
type MoveProductRequest struct {
	Position *int `json:"position" validate:"required,min=0"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// EditorStateResponse is the offer being edited, its totals and the draft flags
type EditorStateResponse struct {
	Offer             domain.Offer  `json:"offer"`
	Totals            domain.Totals `json:"totals"`
	IsDirty           bool          `json:"isDirty"`
	HasUserInteracted bool          `json:"hasUserInteracted"`
	IsAutoSaving      bool          `json:"isAutoSaving"`
	LastSaved         *time.Time    `json:"lastSaved,omitempty"`
	AutoSaveEnabled   bool          `json:"autoSaveEnabled"`
	IsLoadingDraft    bool          `json:"isLoadingDraft"`
	HasRemoteDraft    bool          `json:"hasRemoteDraft"`
	DraftCode         string        `json:"draftCode,omitempty"`
	CompanyLogoURL    string        `json:"companyLogoUrl,omitempty"`
}

// AddProductResponse returns the id given to the new line item
type AddProductResponse struct {
	ProductID string              `json:"productId"`
	State     EditorStateResponse `json:"state"`
}

// FinalizeResponse returns the stored offer reference
type FinalizeResponse struct {
	OfferID     uuid.UUID           `json:"offerId"`
	OfferNumber string              `json:"offerNumber"`
	State       EditorStateResponse `json:"state"`
}
