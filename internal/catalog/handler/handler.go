package handler

import (
	"net/http"

	"offer_generator_backend/internal/catalog/service"
	"offer_generator_backend/internal/catalog/transport"
	"offer_generator_backend/platform/httpkit"
	"offer_generator_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler serves the editor lookup endpoints
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new catalog handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SearchProducts handles GET /api/v1/catalog/products/search
func (h *Handler) SearchProducts(c *gin.Context) {
	req, ok := h.bindSearch(c)
	if !ok {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	items, err := h.svc.SuggestProducts(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"items": items})
}

// SearchClients handles GET /api/v1/catalog/clients/search
func (h *Handler) SearchClients(c *gin.Context) {
	req, ok := h.bindSearch(c)
	if !ok {
		return
	}
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	items, err := h.svc.SuggestClients(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"items": items})
}

func (h *Handler) bindSearch(c *gin.Context) (transport.AutocompleteSearchRequest, bool) {
	var req transport.AutocompleteSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return req, false
	}
	return req, true
}
