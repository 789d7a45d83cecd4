package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"offer_generator_backend/internal/events"
	"offer_generator_backend/internal/notification/inapp"
	"offer_generator_backend/platform/httpkit"
	"offer_generator_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestModule(t *testing.T) (*Module, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, logger.Discard()), rdb
}

func notice(userID uuid.UUID, title string) events.EditorNotice {
	return events.EditorNotice{
		BaseEvent: events.NewBaseEvent(),
		UserID:    userID,
		Level:     events.NoticeSuccess,
		Title:     title,
		Message:   title + " message",
	}
}

func TestNoticeStoredWhenOffline(t *testing.T) {
	m, _ := newTestModule(t)
	userID := uuid.New()

	if err := m.Handle(context.Background(), notice(userID, "Draft saved")); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	items, err := m.inbox.Drain(context.Background(), userID)
	if err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Draft saved" || items[0].Level != events.NoticeSuccess {
		t.Fatalf("unexpected notices %+v", items)
	}

	again, err := m.inbox.Drain(context.Background(), userID)
	if err != nil {
		t.Fatalf("second drain failed: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected empty inbox after drain, got %d", len(again))
	}
}

func TestInboxKeepsNewestNotices(t *testing.T) {
	m, _ := newTestModule(t)
	userID := uuid.New()

	for i := 0; i < inapp.MaxNotices+5; i++ {
		n := notice(userID, "n")
		n.Message = time.Duration(i).String()
		if err := m.Handle(context.Background(), n); err != nil {
			t.Fatalf("handle failed: %v", err)
		}
	}

	items, err := m.inbox.Drain(context.Background(), userID)
	if err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	if len(items) != inapp.MaxNotices {
		t.Fatalf("expected %d notices, got %d", inapp.MaxNotices, len(items))
	}
	if items[0].Message != time.Duration(inapp.MaxNotices+4).String() {
		t.Fatalf("expected newest first, got %q", items[0].Message)
	}
}

func TestInboxSkipsMalformedEntries(t *testing.T) {
	m, rdb := newTestModule(t)
	userID := uuid.New()

	if err := rdb.LPush(context.Background(), "offer:notices:"+userID.String(), "{broken").Err(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := m.Handle(context.Background(), notice(userID, "ok")); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	items, err := m.inbox.Drain(context.Background(), userID)
	if err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	if len(items) != 1 || items[0].Title != "ok" {
		t.Fatalf("unexpected notices %+v", items)
	}
}

func TestDrainEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m, _ := newTestModule(t)
	userID := uuid.New()
	if err := m.Handle(context.Background(), notice(userID, "Offer reset")); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	r := gin.New()
	g := r.Group("/notifications")
	g.Use(func(c *gin.Context) {
		c.Set(httpkit.ContextUserIDKey, userID)
		c.Next()
	})
	m.handler.RegisterRoutes(g)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Items []inapp.Notice `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].Title != "Offer reset" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestOtherEventsIgnoredByInbox(t *testing.T) {
	m, _ := newTestModule(t)
	userID := uuid.New()

	err := m.Handle(context.Background(), events.DraftSaved{BaseEvent: events.NewBaseEvent(), UserID: userID, DraftCode: "DRF-1"})
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	items, err := m.inbox.Drain(context.Background(), userID)
	if err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no notices, got %d", len(items))
	}
}
