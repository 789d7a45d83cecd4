package handler

import (
	"context"
	"net/http"

	"offer_generator_backend/internal/drafts/service"
	"offer_generator_backend/internal/drafts/transport"
	"offer_generator_backend/internal/offers/domain"
	"offer_generator_backend/platform/httpkit"
	"offer_generator_backend/platform/phone"
	"offer_generator_backend/platform/sanitize"
	"offer_generator_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// LogoURLResolver turns a stored company logo key into a short-lived URL.
type LogoURLResolver interface {
	LogoURL(ctx context.Context, key string) string
}

// Handler handles HTTP requests for the offer editor
type Handler struct {
	svc    *service.Service
	val    *validator.Validator
	phones *phone.Normalizer
	logos  LogoURLResolver
}

// New creates a new editor handler
func New(svc *service.Service, val *validator.Validator, phones *phone.Normalizer) *Handler {
	return &Handler{svc: svc, val: val, phones: phones}
}

// SetLogoResolver injects the company logo URL resolver.
func (h *Handler) SetLogoResolver(r LogoURLResolver) {
	h.logos = r
}

// RegisterRoutes registers the editor routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Open)
	rg.DELETE("", h.Close)
	rg.PATCH("/company", h.UpdateCompany)
	rg.PATCH("/client", h.UpdateClient)
	rg.PATCH("/details", h.UpdateDetails)
	rg.POST("/products", h.AddProduct)
	rg.PUT("/products", h.ResetProducts)
	rg.DELETE("/products", h.ClearProducts)
	rg.PATCH("/products/:id", h.UpdateProduct)
	rg.DELETE("/products/:id", h.RemoveProduct)
	rg.PUT("/products/:id/bundle", h.SaveBundle)
	rg.POST("/products/:id/move", h.MoveProduct)
	rg.POST("/apply-template/:code", h.ApplyTemplate)
	rg.POST("/apply-offer/:id", h.ApplySavedOffer)
	rg.POST("/save", h.SaveDraft)
	rg.POST("/autosave/toggle", h.ToggleAutoSave)
	rg.POST("/reset", h.Reset)
	rg.POST("/finalize", h.Finalize)
}

func (h *Handler) Open(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	st, err := h.svc.Open(c.Request.Context(), userID)
	h.respond(c, st, err)
}

func (h *Handler) Close(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	h.svc.Close(userID)
	c.Status(http.StatusNoContent)
}

func (h *Handler) UpdateCompany(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	var req transport.CompanyRequest
	if !h.bind(c, &req) {
		return
	}

	st, err := h.svc.UpdateCompanyInfo(c.Request.Context(), userID, h.companyPatch(req))
	h.respond(c, st, err)
}

func (h *Handler) UpdateClient(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	var req transport.ClientRequest
	if !h.bind(c, &req) {
		return
	}

	st, err := h.svc.UpdateClientInfo(c.Request.Context(), userID, h.clientPatch(req))
	h.respond(c, st, err)
}

func (h *Handler) UpdateDetails(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	var req transport.DetailsRequest
	if !h.bind(c, &req) {
		return
	}

	st, err := h.svc.UpdateOfferDetails(c.Request.Context(), userID, detailsPatch(req))
	h.respond(c, st, err)
}

func (h *Handler) AddProduct(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	var req transport.ProductRequest
	if !h.bind(c, &req) {
		return
	}

	st, id, err := h.svc.AddProduct(c.Request.Context(), userID, toProduct(req))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.AddProductResponse{
		ProductID: id,
		State:     h.toResponse(c.Request.Context(), st),
	})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	var req transport.ProductPatchRequest
	if !h.bind(c, &req) {
		return
	}
	if req.BundledProducts != nil {
		for i := range *req.BundledProducts {
			if err := h.val.Struct((*req.BundledProducts)[i]); err != nil {
				httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
				return
			}
		}
	}

	st, err := h.svc.UpdateProduct(c.Request.Context(), userID, c.Param("id"), productPatch(req))
	h.respond(c, st, err)
}

func (h *Handler) RemoveProduct(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	st, err := h.svc.RemoveProduct(c.Request.Context(), userID, c.Param("id"))
	h.respond(c, st, err)
}

func (h *Handler) ClearProducts(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	st, err := h.svc.ClearProducts(c.Request.Context(), userID)
	h.respond(c, st, err)
}

func (h *Handler) ResetProducts(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	var req transport.ResetProductsRequest
	if !h.bind(c, &req) {
		return
	}

	products := make([]domain.Product, len(req.Products))
	for i, p := range req.Products {
		products[i] = toProduct(p)
	}

	st, err := h.svc.ResetProducts(c.Request.Context(), userID, products)
	h.respond(c, st, err)
}

func (h *Handler) SaveBundle(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	var req transport.SaveBundleRequest
	if !h.bind(c, &req) {
		return
	}

	st, err := h.svc.SaveBundle(c.Request.Context(), userID, c.Param("id"), toBundled(req.Items))
	h.respond(c, st, err)
}

func (h *Handler) MoveProduct(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	var req transport.MoveProductRequest
	if !h.bind(c, &req) {
		return
	}

	st, err := h.svc.MoveProduct(c.Request.Context(), userID, c.Param("id"), *req.Position)
	h.respond(c, st, err)
}

func (h *Handler) ApplyTemplate(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	st, err := h.svc.ApplyCatalogTemplate(c.Request.Context(), userID, c.Param("code"))
	h.respond(c, st, err)
}

func (h *Handler) ApplySavedOffer(c *gin.Context) {
	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	st, err := h.svc.ApplySavedOffer(c.Request.Context(), userID, offerID)
	h.respond(c, st, err)
}

func (h *Handler) SaveDraft(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	st, err := h.svc.SaveDraft(c.Request.Context(), userID)
	h.respond(c, st, err)
}

func (h *Handler) ToggleAutoSave(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	st, err := h.svc.ToggleAutoSave(c.Request.Context(), userID)
	h.respond(c, st, err)
}

func (h *Handler) Reset(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	st, err := h.svc.ResetOffer(c.Request.Context(), userID)
	h.respond(c, st, err)
}

func (h *Handler) Finalize(c *gin.Context) {
	userID, ok := mustGetUserID(c)
	if !ok {
		return
	}

	st, saved, err := h.svc.Finalize(c.Request.Context(), userID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.FinalizeResponse{
		OfferID:     saved.ID,
		OfferNumber: saved.OfferNumber,
		State:       h.toResponse(c.Request.Context(), st),
	})
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return false
	}
	return true
}

func (h *Handler) respond(c *gin.Context, st service.State, err error) {
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, h.toResponse(c.Request.Context(), st))
}

func (h *Handler) toResponse(ctx context.Context, st service.State) transport.EditorStateResponse {
	resp := transport.EditorStateResponse{
		Offer:             st.Offer,
		Totals:            domain.CalculateTotals(st.Offer),
		IsDirty:           st.IsDirty,
		HasUserInteracted: st.HasUserInteracted,
		IsAutoSaving:      st.IsAutoSaving,
		LastSaved:         st.LastSaved,
		AutoSaveEnabled:   st.AutoSaveEnabled,
		IsLoadingDraft:    st.IsLoadingDraft,
		HasRemoteDraft:    st.HasRemoteDraft,
		DraftCode:         st.DraftCode,
	}
	if h.logos != nil && st.Offer.Company.LogoKey != "" {
		resp.CompanyLogoURL = h.logos.LogoURL(ctx, st.Offer.Company.LogoKey)
	}
	return resp
}

func mustGetUserID(c *gin.Context) (uuid.UUID, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.UUID{}, false
	}
	return identity.UserID(), true
}

func (h *Handler) companyPatch(req transport.CompanyRequest) domain.CompanyPatch {
	return domain.CompanyPatch{
		Name:               sanitize.LinePtr(req.Name),
		NameSecondary:      sanitize.LinePtr(req.NameSecondary),
		Address:            sanitize.LinePtr(req.Address),
		AddressSecondary:   sanitize.LinePtr(req.AddressSecondary),
		City:               sanitize.LinePtr(req.City),
		PostalCode:         sanitize.LinePtr(req.PostalCode),
		Country:            sanitize.LinePtr(req.Country),
		VATNumber:          sanitize.LinePtr(req.VATNumber),
		RegistrationNumber: sanitize.LinePtr(req.RegistrationNumber),
		Email:              sanitize.LinePtr(req.Email),
		Phone:              h.phones.E164Ptr(sanitize.LinePtr(req.Phone)),
		Website:            sanitize.LinePtr(req.Website),
		BankAccount:        sanitize.LinePtr(req.BankAccount),
		LogoKey:            req.LogoKey,
	}
}

func (h *Handler) clientPatch(req transport.ClientRequest) domain.ClientPatch {
	return domain.ClientPatch{
		Name:               sanitize.LinePtr(req.Name),
		ContactPerson:      sanitize.LinePtr(req.ContactPerson),
		Email:              sanitize.LinePtr(req.Email),
		Phone:              h.phones.E164Ptr(sanitize.LinePtr(req.Phone)),
		Address:            sanitize.LinePtr(req.Address),
		City:               sanitize.LinePtr(req.City),
		PostalCode:         sanitize.LinePtr(req.PostalCode),
		Country:            sanitize.LinePtr(req.Country),
		VATNumber:          sanitize.LinePtr(req.VATNumber),
		RegistrationNumber: sanitize.LinePtr(req.RegistrationNumber),
	}
}

func detailsPatch(req transport.DetailsRequest) domain.DetailsPatch {
	return domain.DetailsPatch{
		Date:           req.Date,
		ValidUntil:     req.ValidUntil,
		VATRate:        req.VATRate,
		IncludeVAT:     req.IncludeVAT,
		TransportCost:  req.TransportCost,
		OtherCosts:     req.OtherCosts,
		Currency:       req.Currency,
		Notes:          sanitize.TextPtr(req.Notes),
		ShowPartNumber: req.ShowPartNumber,
		PaymentTerms:   sanitize.TextPtr(req.PaymentTerms),
		DeliveryTerms:  sanitize.TextPtr(req.DeliveryTerms),
	}
}

func toProduct(req transport.ProductRequest) domain.Product {
	p := domain.Product{
		Name:              sanitize.Line(req.Name),
		Description:       sanitize.Text(req.Description),
		PartNumber:        sanitize.Line(req.PartNumber),
		Quantity:          req.Quantity,
		UnitPrice:         req.UnitPrice,
		Unit:              sanitize.Line(req.Unit),
		IsBundle:          req.IsBundle,
		ShowBundledPrices: req.ShowBundledPrices,
	}
	if req.IsBundle {
		p.BundledProducts = toBundled(req.BundledProducts)
	}
	return p
}

func productPatch(req transport.ProductPatchRequest) domain.ProductPatch {
	patch := domain.ProductPatch{
		Name:              sanitize.LinePtr(req.Name),
		Description:       sanitize.TextPtr(req.Description),
		PartNumber:        sanitize.LinePtr(req.PartNumber),
		Quantity:          req.Quantity,
		UnitPrice:         req.UnitPrice,
		Unit:              sanitize.LinePtr(req.Unit),
		IsBundle:          req.IsBundle,
		ShowBundledPrices: req.ShowBundledPrices,
	}
	if req.BundledProducts != nil {
		items := toBundled(*req.BundledProducts)
		patch.BundledProducts = &items
	}
	return patch
}

func toBundled(items []transport.BundledProductRequest) []domain.BundledProduct {
	out := make([]domain.BundledProduct, len(items))
	for i, item := range items {
		out[i] = domain.BundledProduct{
			Name:        sanitize.Line(item.Name),
			Description: sanitize.Text(item.Description),
			PartNumber:  sanitize.Line(item.PartNumber),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return out
}
