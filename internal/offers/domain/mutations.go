package domain

import "github.com/google/uuid"

// CompanyPatch is a partial CompanyInfo; nil fields are left untouched.
type CompanyPatch struct {
	Name               *string `json:"name"`
	NameSecondary      *string `json:"nameSecondary"`
	Address            *string `json:"address"`
	AddressSecondary   *string `json:"addressSecondary"`
	City               *string `json:"city"`
	PostalCode         *string `json:"postalCode"`
	Country            *string `json:"country"`
	VATNumber          *string `json:"vatNumber"`
	RegistrationNumber *string `json:"registrationNumber"`
	Email              *string `json:"email"`
	Phone              *string `json:"phone"`
	Website            *string `json:"website"`
	BankAccount        *string `json:"bankAccount"`
	LogoKey            *string `json:"logoKey"`
}

// ClientPatch is a partial ClientInfo; nil fields are left untouched.
type ClientPatch struct {
	Name               *string `json:"name"`
	ContactPerson      *string `json:"contactPerson"`
	Email              *string `json:"email"`
	Phone              *string `json:"phone"`
	Address            *string `json:"address"`
	City               *string `json:"city"`
	PostalCode         *string `json:"postalCode"`
	Country            *string `json:"country"`
	VATNumber          *string `json:"vatNumber"`
	RegistrationNumber *string `json:"registrationNumber"`
}

// DetailsPatch is a partial OfferDetails; nil fields are left untouched.
type DetailsPatch struct {
	OfferNumber    *string  `json:"offerNumber" yaml:"offerNumber"`
	Date           *string  `json:"date" yaml:"date"`
	ValidUntil     *string  `json:"validUntil" yaml:"validUntil"`
	VATRate        *float64 `json:"vatRate" yaml:"vatRate"`
	IncludeVAT     *bool    `json:"includeVat" yaml:"includeVat"`
	TransportCost  *float64 `json:"transportCost" yaml:"transportCost"`
	OtherCosts     *float64 `json:"otherCosts" yaml:"otherCosts"`
	Currency       *string  `json:"currency" yaml:"currency"`
	Notes          *string  `json:"notes" yaml:"notes"`
	ShowPartNumber *bool    `json:"showPartNumber" yaml:"showPartNumber"`
	PaymentTerms   *string  `json:"paymentTerms" yaml:"paymentTerms"`
	DeliveryTerms  *string  `json:"deliveryTerms" yaml:"deliveryTerms"`
}

// ProductPatch is a partial Product. The id can not be patched.
type ProductPatch struct {
	Name              *string           `json:"name"`
	Description       *string           `json:"description"`
	PartNumber        *string           `json:"partNumber"`
	Quantity          *int              `json:"quantity"`
	UnitPrice         *float64          `json:"unitPrice"`
	Unit              *string           `json:"unit"`
	IsBundle          *bool             `json:"isBundle"`
	BundledProducts   *[]BundledProduct `json:"bundledProducts"`
	ShowBundledPrices *bool             `json:"showBundledPrices"`
}

// Template overlays an offer: Details are merged and Products, when non-empty,
// replace the current line items. Company and client are never touched.
type Template struct {
	ID       string
	Name     string
	Details  *DetailsPatch
	Products []Product
}

// NewID returns a fresh line item id.
func NewID() string {
	return uuid.NewString()
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// UpdateCompanyInfo merges patch into the company snapshot.
func UpdateCompanyInfo(o Offer, patch CompanyPatch) Offer {
	out := o.Clone()
	c := &out.Company
	set(&c.Name, patch.Name)
	set(&c.NameSecondary, patch.NameSecondary)
	set(&c.Address, patch.Address)
	set(&c.AddressSecondary, patch.AddressSecondary)
	set(&c.City, patch.City)
	set(&c.PostalCode, patch.PostalCode)
	set(&c.Country, patch.Country)
	set(&c.VATNumber, patch.VATNumber)
	set(&c.RegistrationNumber, patch.RegistrationNumber)
	set(&c.Email, patch.Email)
	set(&c.Phone, patch.Phone)
	set(&c.Website, patch.Website)
	set(&c.BankAccount, patch.BankAccount)
	set(&c.LogoKey, patch.LogoKey)
	return out
}

// UpdateClientInfo merges patch into the client snapshot.
func UpdateClientInfo(o Offer, patch ClientPatch) Offer {
	out := o.Clone()
	c := &out.Client
	set(&c.Name, patch.Name)
	set(&c.ContactPerson, patch.ContactPerson)
	set(&c.Email, patch.Email)
	set(&c.Phone, patch.Phone)
	set(&c.Address, patch.Address)
	set(&c.City, patch.City)
	set(&c.PostalCode, patch.PostalCode)
	set(&c.Country, patch.Country)
	set(&c.VATNumber, patch.VATNumber)
	set(&c.RegistrationNumber, patch.RegistrationNumber)
	return out
}

// UpdateOfferDetails merges patch into the offer details.
func UpdateOfferDetails(o Offer, patch DetailsPatch) Offer {
	out := o.Clone()
	mergeDetails(&out.Details, patch)
	return out
}

func mergeDetails(d *OfferDetails, patch DetailsPatch) {
	set(&d.OfferNumber, patch.OfferNumber)
	set(&d.Date, patch.Date)
	set(&d.ValidUntil, patch.ValidUntil)
	set(&d.VATRate, patch.VATRate)
	set(&d.IncludeVAT, patch.IncludeVAT)
	set(&d.TransportCost, patch.TransportCost)
	set(&d.OtherCosts, patch.OtherCosts)
	set(&d.Currency, patch.Currency)
	set(&d.Notes, patch.Notes)
	set(&d.ShowPartNumber, patch.ShowPartNumber)
	set(&d.PaymentTerms, patch.PaymentTerms)
	set(&d.DeliveryTerms, patch.DeliveryTerms)
}

// AddProduct appends p under a fresh id and returns the new offer and the id.
// Any id already on p is ignored.
func AddProduct(o Offer, p Product) (Offer, string) {
	out := o.Clone()
	p = p.clone()
	p.ID = NewID()
	ensureBundledIDs(p.BundledProducts)
	out.Products = append(out.Products, p)
	return out, p.ID
}

// UpdateProduct merges patch into the product with id. An unknown id returns
// the offer unchanged.
func UpdateProduct(o Offer, id string, patch ProductPatch) Offer {
	idx := indexOf(o.Products, id)
	if idx < 0 {
		return o
	}

	out := o.Clone()
	p := &out.Products[idx]
	set(&p.Name, patch.Name)
	set(&p.Description, patch.Description)
	set(&p.PartNumber, patch.PartNumber)
	set(&p.Quantity, patch.Quantity)
	set(&p.UnitPrice, patch.UnitPrice)
	set(&p.Unit, patch.Unit)
	set(&p.IsBundle, patch.IsBundle)
	set(&p.ShowBundledPrices, patch.ShowBundledPrices)
	if patch.BundledProducts != nil {
		items := make([]BundledProduct, len(*patch.BundledProducts))
		copy(items, *patch.BundledProducts)
		ensureBundledIDs(items)
		p.BundledProducts = items
	}
	if !p.IsBundle {
		p.BundledProducts = nil
	}
	return out
}

// RemoveProduct drops the product with id. An unknown id returns the offer
// unchanged. Remaining products keep their ids and relative order.
func RemoveProduct(o Offer, id string) Offer {
	idx := indexOf(o.Products, id)
	if idx < 0 {
		return o
	}

	out := o.Clone()
	out.Products = append(out.Products[:idx], out.Products[idx+1:]...)
	return out
}

// ClearProducts empties the line items.
func ClearProducts(o Offer) Offer {
	out := o.Clone()
	out.Products = []Product{}
	return out
}

// ResetProducts replaces the line items with products, in order. Products
// without an id get a fresh one.
func ResetProducts(o Offer, products []Product) Offer {
	out := o.Clone()
	out.Products = cloneProducts(products)
	ensureProductIDs(out.Products)
	return out
}

// MoveProduct moves the product with id to position to (clamped to the list).
func MoveProduct(o Offer, id string, to int) Offer {
	from := indexOf(o.Products, id)
	if from < 0 {
		return o
	}
	if to < 0 {
		to = 0
	}
	if to > len(o.Products)-1 {
		to = len(o.Products) - 1
	}
	if from == to {
		return o
	}

	out := o.Clone()
	moved := out.Products[from]
	rest := append(out.Products[:from:from], out.Products[from+1:]...)
	products := make([]Product, 0, len(o.Products))
	products = append(products, rest[:to]...)
	products = append(products, moved)
	products = append(products, rest[to:]...)
	out.Products = products
	return out
}

// SaveBundle stores items on the product with id, marks it as a bundle and
// sets its UnitPrice to the bundle subtotal. This is the only operation that
// recomputes a bundle price.
func SaveBundle(o Offer, id string, items []BundledProduct) Offer {
	idx := indexOf(o.Products, id)
	if idx < 0 {
		return o
	}

	out := o.Clone()
	bundled := make([]BundledProduct, len(items))
	copy(bundled, items)
	ensureBundledIDs(bundled)

	p := &out.Products[idx]
	p.IsBundle = true
	p.BundledProducts = bundled
	p.UnitPrice = BundleSubtotal(bundled)
	return out
}

// ApplyTemplate overlays tpl on o.
func ApplyTemplate(o Offer, tpl Template) Offer {
	out := o.Clone()
	if tpl.Details != nil {
		mergeDetails(&out.Details, *tpl.Details)
	}
	if len(tpl.Products) > 0 {
		out.Products = cloneProducts(tpl.Products)
		ensureProductIDs(out.Products)
	}
	if tpl.ID != "" {
		out.TemplateID = tpl.ID
	}
	if tpl.Name != "" {
		out.Name = tpl.Name
	}
	return out
}

func indexOf(products []Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

func ensureProductIDs(products []Product) {
	for i := range products {
		if products[i].ID == "" {
			products[i].ID = NewID()
		}
		ensureBundledIDs(products[i].BundledProducts)
	}
}

func ensureBundledIDs(items []BundledProduct) {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = NewID()
		}
	}
}

// TemplateFromOffer turns a saved offer into a template for a new copy: the
// offer number and dates are dropped and every line gets a fresh id.
func TemplateFromOffer(o Offer) Template {
	d := o.Details
	products := cloneProducts(o.Products)
	for i := range products {
		products[i].ID = ""
		for j := range products[i].BundledProducts {
			products[i].BundledProducts[j].ID = ""
		}
	}

	return Template{
		Name: o.Name,
		Details: &DetailsPatch{
			VATRate:        &d.VATRate,
			IncludeVAT:     &d.IncludeVAT,
			TransportCost:  &d.TransportCost,
			OtherCosts:     &d.OtherCosts,
			Currency:       &d.Currency,
			Notes:          &d.Notes,
			ShowPartNumber: &d.ShowPartNumber,
			PaymentTerms:   &d.PaymentTerms,
			DeliveryTerms:  &d.DeliveryTerms,
		},
		Products: products,
	}
}
