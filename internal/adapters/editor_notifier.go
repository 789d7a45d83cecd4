package adapters

import (
	"context"

	draftsvc "offer_generator_backend/internal/drafts/service"
	"offer_generator_backend/internal/events"

	"github.com/google/uuid"
)

// EditorNotifier turns editor notices into EditorNotice events for the
// notification module.
type EditorNotifier struct {
	bus events.Bus
}

// NewEditorNotifier creates a notifier that publishes on bus.
func NewEditorNotifier(bus events.Bus) *EditorNotifier {
	return &EditorNotifier{bus: bus}
}

// Notify publishes the notice for userID.
func (n *EditorNotifier) Notify(ctx context.Context, userID uuid.UUID, notice draftsvc.Notice) {
	n.bus.Publish(ctx, events.EditorNotice{
		BaseEvent: events.NewBaseEvent(),
		UserID:    userID,
		Level:     notice.Level,
		Title:     notice.Title,
		Message:   notice.Message,
	})
}

// Compile-time check that EditorNotifier implements draftsvc.Notifier.
var _ draftsvc.Notifier = (*EditorNotifier)(nil)
