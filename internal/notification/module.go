// Package notification delivers editor notices to users. Notices arrive as
// domain events, are kept in a short Redis inbox and are pushed live to any
// open event stream.
package notification

import (
	"context"
	"fmt"

	"offer_generator_backend/internal/events"
	apphttp "offer_generator_backend/internal/http"
	notifhandler "offer_generator_backend/internal/notification/handler"
	"offer_generator_backend/internal/notification/inapp"
	"offer_generator_backend/internal/notification/sse"
	"offer_generator_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Module handles notice delivery for the editor
type Module struct {
	inbox   *inapp.Inbox
	stream  *sse.Service
	handler *notifhandler.HTTPHandler
	log     *logger.Logger
}

// New creates the notification module
func New(rdb *redis.Client, log *logger.Logger) *Module {
	inbox := inapp.NewInbox(rdb)
	stream := sse.New(log)
	return &Module{
		inbox:   inbox,
		stream:  stream,
		handler: notifhandler.NewHTTPHandler(inbox, stream),
		log:     log,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "notification"
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/notifications"))
}

// RegisterHandlers subscribes the module to the events it delivers.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.EditorNotice{}.EventName(), m)
	bus.Subscribe(events.DraftSaved{}.EventName(), m)
	bus.Subscribe(events.OfferFinalized{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.EditorNotice:
		return m.handleEditorNotice(ctx, e)
	case events.DraftSaved:
		m.stream.Publish(e.UserID, sse.Event{Type: sse.EventDraftSaved, Data: e})
		return nil
	case events.OfferFinalized:
		m.stream.Publish(e.UserID, sse.Event{Type: sse.EventOfferFinalized, Message: e.OfferNumber, Data: e})
		return nil
	default:
		return nil
	}
}

// Close disconnects every open event stream.
func (m *Module) Close() {
	m.stream.Close()
}

func (m *Module) handleEditorNotice(ctx context.Context, e events.EditorNotice) error {
	notice := inapp.Notice{
		Level:     e.Level,
		Title:     e.Title,
		Message:   e.Message,
		CreatedAt: e.OccurredAt(),
	}

	if m.stream.Publish(e.UserID, sse.Event{Type: sse.EventNotice, Message: e.Title, Data: notice}) > 0 {
		return nil
	}

	if err := m.inbox.Push(ctx, e.UserID, notice); err != nil {
		m.log.Error("failed to store notice", "error", err, "userId", e.UserID.String())
		return fmt.Errorf("store notice: %w", err)
	}
	return nil
}

// Compile-time checks
var (
	_ apphttp.Module = (*Module)(nil)
	_ events.Handler = (*Module)(nil)
)
