package templates

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

const sampleCatalog = `
templates:
  - code: kit
    name: Kit
    details:
      vatRate: 9
    products:
      - name: Box
        quantity: 2
        unitPrice: 10
      - name: Bundle
        quantity: 1
        bundledProducts:
          - name: A
            quantity: 2
            unitPrice: 5
          - name: B
            quantity: 1
            unitPrice: 3
  - code: empty
    name: Empty
`

func TestParseBuildsTemplates(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	tpl, ok := c.Template("kit")
	if !ok {
		t.Fatal("expected kit template")
	}
	if tpl.ID != "kit" || tpl.Name != "Kit" {
		t.Fatalf("unexpected template header %+v", tpl)
	}
	if tpl.Details == nil || tpl.Details.VATRate == nil || *tpl.Details.VATRate != 9 {
		t.Fatalf("expected vat rate 9, got %+v", tpl.Details)
	}
	if len(tpl.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(tpl.Products))
	}
	bundle := tpl.Products[1]
	if !bundle.IsBundle || bundle.UnitPrice != 13 {
		t.Fatalf("expected bundle priced 13, got %+v", bundle)
	}
	for _, p := range tpl.Products {
		if p.ID != "" {
			t.Fatalf("expected blank product ids, got %q", p.ID)
		}
	}
}

func TestTemplateReturnsCopies(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	first, _ := c.Template("kit")
	first.Products[0].Name = "changed"
	first.Products[1].BundledProducts[0].Quantity = 99

	second, _ := c.Template("kit")
	if second.Products[0].Name != "Box" || second.Products[1].BundledProducts[0].Quantity != 2 {
		t.Fatal("expected catalog to be unaffected by caller changes")
	}
}

func TestParseRejectsDuplicateCodes(t *testing.T) {
	_, err := Parse([]byte("templates:\n  - code: a\n  - code: a\n"))
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestParseRejectsMissingCode(t *testing.T) {
	if _, err := Parse([]byte("templates:\n  - name: nameless\n")); err == nil {
		t.Fatal("expected error for missing code")
	}
}

func TestLoadFileMissingIsEmpty(t *testing.T) {
	c, err := LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(c.List()) != 0 {
		t.Fatal("expected empty catalog")
	}
	if _, ok := c.Template("kit"); ok {
		t.Fatal("expected no template")
	}
}

func TestListHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, err := Parse([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	r := gin.New()
	NewHandler(c).RegisterRoutes(r.Group("/templates"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/templates", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Index(body, `"empty"`) > strings.Index(body, `"kit"`) {
		t.Fatalf("expected entries ordered by code: %s", body)
	}
}
