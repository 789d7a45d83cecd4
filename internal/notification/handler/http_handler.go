package handler

import (
	"offer_generator_backend/internal/notification/inapp"
	"offer_generator_backend/internal/notification/sse"
	"offer_generator_backend/platform/apperr"
	"offer_generator_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HTTPHandler struct {
	inbox  *inapp.Inbox
	stream *sse.Service
}

func NewHTTPHandler(inbox *inapp.Inbox, stream *sse.Service) *HTTPHandler {
	return &HTTPHandler{inbox: inbox, stream: stream}
}

func (h *HTTPHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Drain)
	rg.GET("/stream", h.stream.Handler(userIDFromContext))
}

// Drain returns and removes the user's pending notices.
func (h *HTTPHandler) Drain(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	items, err := h.inbox.Drain(c.Request.Context(), identity.UserID())
	if err != nil {
		httpkit.HandleError(c, apperr.Unavailable("notices unavailable", err))
		return
	}

	httpkit.OK(c, gin.H{"items": items})
}

func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	identity := httpkit.GetIdentity(c)
	if !identity.IsAuthenticated() {
		return uuid.Nil, false
	}
	return identity.UserID(), true
}
