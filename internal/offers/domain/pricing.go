package domain

// Totals is the derived money view of an offer.
type Totals struct {
	Subtotal      float64   `json:"subtotal"`
	VAT           float64   `json:"vat"`
	TransportCost float64   `json:"transportCost"`
	OtherCosts    float64   `json:"otherCosts"`
	Total         float64   `json:"total"`
	LineTotals    []float64 `json:"lineTotals"`
}

// LineTotal is quantity * unitPrice for one product.
func LineTotal(p Product) float64 {
	return float64(p.Quantity) * p.UnitPrice
}

// CalculateSubtotal sums every line. A bundle contributes through its own
// stored UnitPrice; its bundled lines are not summed again.
func CalculateSubtotal(o Offer) float64 {
	var subtotal float64
	for _, p := range o.Products {
		subtotal += LineTotal(p)
	}
	return subtotal
}

// CalculateVAT applies the percentage VAT rate to the subtotal when the offer
// includes VAT.
func CalculateVAT(o Offer) float64 {
	if !o.Details.IncludeVAT {
		return 0
	}
	return CalculateSubtotal(o) * o.Details.VATRate / 100
}

// CalculateTotal is subtotal + VAT + transport + other costs.
func CalculateTotal(o Offer) float64 {
	return CalculateSubtotal(o) + CalculateVAT(o) + o.Details.TransportCost + o.Details.OtherCosts
}

// BundleSubtotal is the price a bundle gets when its contents are saved.
func BundleSubtotal(items []BundledProduct) float64 {
	var sum float64
	for _, item := range items {
		sum += float64(item.Quantity) * item.UnitPrice
	}
	return sum
}

// CalculateTotals computes every derived amount in one pass.
func CalculateTotals(o Offer) Totals {
	lines := make([]float64, len(o.Products))
	var subtotal float64
	for i, p := range o.Products {
		lines[i] = LineTotal(p)
		subtotal += lines[i]
	}

	var vat float64
	if o.Details.IncludeVAT {
		vat = subtotal * o.Details.VATRate / 100
	}

	return Totals{
		Subtotal:      subtotal,
		VAT:           vat,
		TransportCost: o.Details.TransportCost,
		OtherCosts:    o.Details.OtherCosts,
		Total:         subtotal + vat + o.Details.TransportCost + o.Details.OtherCosts,
		LineTotals:    lines,
	}
}
