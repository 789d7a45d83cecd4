// Package domain holds the offer aggregate, its pricing rules and the
// copy-on-write mutation functions the editor applies to it.
package domain

import (
	"strings"
	"time"
)

const (
	// DateLayout is the calendar-date format used by OfferDetails.Date and ValidUntil.
	DateLayout = "2006-01-02"

	defaultVATRate      = 20
	defaultCurrency     = "EUR"
	defaultValidityDays = 30
)

// Offer is the root aggregate for one quotation.
type Offer struct {
	Company    CompanyInfo  `json:"company"`
	Client     ClientInfo   `json:"client"`
	Products   []Product    `json:"products"`
	Details    OfferDetails `json:"details"`
	CreatedAt  *time.Time   `json:"createdAt,omitempty"`
	LastEdited *time.Time   `json:"lastEdited,omitempty"`
	Name       string       `json:"name,omitempty"`
	TemplateID string       `json:"templateId,omitempty"`
}

// CompanyInfo is a snapshot of the issuing company. The *Secondary fields
// carry the second-language variant printed on bilingual templates.
type CompanyInfo struct {
	Name               string `json:"name"`
	NameSecondary      string `json:"nameSecondary,omitempty"`
	Address            string `json:"address"`
	AddressSecondary   string `json:"addressSecondary,omitempty"`
	City               string `json:"city"`
	PostalCode         string `json:"postalCode"`
	Country            string `json:"country"`
	VATNumber          string `json:"vatNumber"`
	RegistrationNumber string `json:"registrationNumber"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Website            string `json:"website"`
	BankAccount        string `json:"bankAccount"`
	LogoKey            string `json:"logoKey,omitempty"`
}

// ClientInfo is a snapshot of the receiving client.
type ClientInfo struct {
	Name               string `json:"name"`
	ContactPerson      string `json:"contactPerson"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Address            string `json:"address"`
	City               string `json:"city"`
	PostalCode         string `json:"postalCode"`
	Country            string `json:"country"`
	VATNumber          string `json:"vatNumber"`
	RegistrationNumber string `json:"registrationNumber"`
}

// Product is one line item. For a bundle, UnitPrice is the stored sum of the
// bundled lines at the moment the bundle was last saved.
type Product struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	PartNumber        string           `json:"partNumber"`
	Quantity          int              `json:"quantity"`
	UnitPrice         float64          `json:"unitPrice"`
	Unit              string           `json:"unit"`
	IsBundle          bool             `json:"isBundle"`
	BundledProducts   []BundledProduct `json:"bundledProducts,omitempty"`
	ShowBundledPrices bool             `json:"showBundledPrices"`
}

// BundledProduct is a sub-line inside a bundle. Bundles do not nest.
type BundledProduct struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PartNumber  string  `json:"partNumber"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// OfferDetails holds the offer-level numeric and policy fields.
// VATRate is a percentage (20 means 20%).
type OfferDetails struct {
	OfferNumber    string  `json:"offerNumber"`
	Date           string  `json:"date"`
	ValidUntil     string  `json:"validUntil"`
	VATRate        float64 `json:"vatRate"`
	IncludeVAT     bool    `json:"includeVat"`
	TransportCost  float64 `json:"transportCost"`
	OtherCosts     float64 `json:"otherCosts"`
	Currency       string  `json:"currency"`
	Notes          string  `json:"notes"`
	ShowPartNumber bool    `json:"showPartNumber"`
	PaymentTerms   string  `json:"paymentTerms,omitempty"`
	DeliveryTerms  string  `json:"deliveryTerms,omitempty"`
}

// DefaultDetails returns fresh details dated now.
func DefaultDetails(now time.Time) OfferDetails {
	return OfferDetails{
		Date:           now.Format(DateLayout),
		ValidUntil:     now.AddDate(0, 0, defaultValidityDays).Format(DateLayout),
		VATRate:        defaultVATRate,
		IncludeVAT:     true,
		Currency:       defaultCurrency,
		ShowPartNumber: true,
	}
}

// DefaultOffer returns the empty offer a new or reset editor starts from.
func DefaultOffer(now time.Time) Offer {
	return Offer{
		Products: []Product{},
		Details:  DefaultDetails(now),
	}
}

// HasMeaningfulContent reports whether the offer carries anything worth
// creating a draft row for.
func HasMeaningfulContent(o Offer) bool {
	if strings.TrimSpace(o.Client.Name) != "" {
		return true
	}
	if len(o.Products) > 0 {
		return true
	}
	return strings.TrimSpace(o.Details.Notes) != "" || strings.TrimSpace(o.Details.OfferNumber) != ""
}

// Clone returns a deep copy of o; product and bundle slices are not shared.
func (o Offer) Clone() Offer {
	out := o
	out.Products = cloneProducts(o.Products)
	if o.CreatedAt != nil {
		t := *o.CreatedAt
		out.CreatedAt = &t
	}
	if o.LastEdited != nil {
		t := *o.LastEdited
		out.LastEdited = &t
	}
	return out
}

func cloneProducts(in []Product) []Product {
	out := make([]Product, len(in))
	for i, p := range in {
		out[i] = p.clone()
	}
	return out
}

func (p Product) clone() Product {
	if p.BundledProducts != nil {
		items := make([]BundledProduct, len(p.BundledProducts))
		copy(items, p.BundledProducts)
		p.BundledProducts = items
	}
	return p
}
