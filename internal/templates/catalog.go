// Package templates serves the offer template catalog: named product lists
// and detail defaults that the editor can overlay onto the current offer.
package templates

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"offer_generator_backend/internal/offers/domain"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Templates []templateEntry `yaml:"templates"`
}

type templateEntry struct {
	Code        string               `yaml:"code"`
	Name        string               `yaml:"name"`
	Description string               `yaml:"description"`
	Details     *domain.DetailsPatch `yaml:"details"`
	Products    []productEntry       `yaml:"products"`
}

type productEntry struct {
	Name              string         `yaml:"name"`
	Description       string         `yaml:"description"`
	PartNumber        string         `yaml:"partNumber"`
	Quantity          int            `yaml:"quantity"`
	UnitPrice         float64        `yaml:"unitPrice"`
	Unit              string         `yaml:"unit"`
	BundledProducts   []bundledEntry `yaml:"bundledProducts"`
	ShowBundledPrices bool           `yaml:"showBundledPrices"`
}

type bundledEntry struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	PartNumber  string  `yaml:"partNumber"`
	Quantity    int     `yaml:"quantity"`
	UnitPrice   float64 `yaml:"unitPrice"`
}

// Summary describes one catalog entry for listing.
type Summary struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ProductCount int    `json:"productCount"`
}

// Catalog is an immutable set of offer templates keyed by code.
type Catalog struct {
	byCode    map[string]domain.Template
	summaries []Summary
}

// LoadFile reads a catalog from a YAML file. A missing file yields an empty
// catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Catalog{byCode: map[string]domain.Template{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read template catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog. Codes must be unique and non-empty.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse template catalog: %w", err)
	}

	c := &Catalog{byCode: make(map[string]domain.Template, len(file.Templates))}
	for _, entry := range file.Templates {
		code := strings.TrimSpace(entry.Code)
		if code == "" {
			return nil, fmt.Errorf("template %q has no code", entry.Name)
		}
		if _, dup := c.byCode[code]; dup {
			return nil, fmt.Errorf("duplicate template code %q", code)
		}
		c.byCode[code] = entry.toTemplate(code)
		c.summaries = append(c.summaries, Summary{
			Code:         code,
			Name:         entry.Name,
			Description:  entry.Description,
			ProductCount: len(entry.Products),
		})
	}
	sort.Slice(c.summaries, func(i, j int) bool { return c.summaries[i].Code < c.summaries[j].Code })
	return c, nil
}

// Template returns the template with code. Product ids are left blank so
// every application gets fresh ids.
func (c *Catalog) Template(code string) (domain.Template, bool) {
	tpl, ok := c.byCode[code]
	if !ok {
		return domain.Template{}, false
	}
	out := tpl
	out.Products = make([]domain.Product, len(tpl.Products))
	for i, p := range tpl.Products {
		if p.BundledProducts != nil {
			p.BundledProducts = append([]domain.BundledProduct(nil), p.BundledProducts...)
		}
		out.Products[i] = p
	}
	if tpl.Details != nil {
		details := *tpl.Details
		out.Details = &details
	}
	return out, true
}

// List returns the catalog entries ordered by code.
func (c *Catalog) List() []Summary {
	out := make([]Summary, len(c.summaries))
	copy(out, c.summaries)
	return out
}

func (e templateEntry) toTemplate(code string) domain.Template {
	products := make([]domain.Product, 0, len(e.Products))
	for _, p := range e.Products {
		product := domain.Product{
			Name:              p.Name,
			Description:       p.Description,
			PartNumber:        p.PartNumber,
			Quantity:          p.Quantity,
			UnitPrice:         p.UnitPrice,
			Unit:              p.Unit,
			ShowBundledPrices: p.ShowBundledPrices,
		}
		if len(p.BundledProducts) > 0 {
			items := make([]domain.BundledProduct, len(p.BundledProducts))
			for i, b := range p.BundledProducts {
				items[i] = domain.BundledProduct{
					Name:        b.Name,
					Description: b.Description,
					PartNumber:  b.PartNumber,
					Quantity:    b.Quantity,
					UnitPrice:   b.UnitPrice,
				}
			}
			product.IsBundle = true
			product.BundledProducts = items
			product.UnitPrice = domain.BundleSubtotal(items)
		}
		products = append(products, product)
	}
	return domain.Template{
		ID:       code,
		Name:     e.Name,
		Details:  e.Details,
		Products: products,
	}
}
