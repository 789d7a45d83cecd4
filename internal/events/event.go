// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"offer_generator_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Editor Events
// =============================================================================

// Notice levels shown by the editor.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeInfo    = "info"
)

// EditorNotice is a toast for one user: the outcome of a manual save, a reset
// or a finalize.
type EditorNotice struct {
	BaseEvent
	UserID  uuid.UUID `json:"userId"`
	Level   string    `json:"level"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
}

func (e EditorNotice) EventName() string { return "editor.notice" }

// DraftSaved is published after a draft snapshot reached the drafts table.
type DraftSaved struct {
	BaseEvent
	UserID    uuid.UUID `json:"userId"`
	DraftCode string    `json:"draftCode"`
	Manual    bool      `json:"manual"`
}

func (e DraftSaved) EventName() string { return "drafts.saved" }

// DraftReset is published when a user discards the offer being edited.
type DraftReset struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
}

func (e DraftReset) EventName() string { return "drafts.reset" }

// =============================================================================
// Offer Events
// =============================================================================

// OfferFinalized is published when an editor offer is stored as a permanent offer.
type OfferFinalized struct {
	BaseEvent
	UserID      uuid.UUID `json:"userId"`
	OfferID     uuid.UUID `json:"offerId"`
	OfferNumber string    `json:"offerNumber"`
	ClientName  string    `json:"clientName"`
	Total       float64   `json:"total"`
}

func (e OfferFinalized) EventName() string { return "offers.finalized" }
