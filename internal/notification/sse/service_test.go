package sse

import (
	"testing"

	"offer_generator_backend/platform/logger"

	"github.com/google/uuid"
)

func TestPublishReachesOnlyTheUser(t *testing.T) {
	s := New(logger.Discard())
	alice := &client{userID: uuid.New(), events: make(chan Event, 1)}
	bob := &client{userID: uuid.New(), events: make(chan Event, 1)}
	s.addClient(alice)
	s.addClient(bob)

	if n := s.Publish(alice.userID, Event{Type: EventNotice}); n != 1 {
		t.Fatalf("expected 1 delivery, got %d", n)
	}
	if len(bob.events) != 0 {
		t.Fatal("expected nothing for other user")
	}
	if ev := <-alice.events; ev.Type != EventNotice {
		t.Fatalf("unexpected event %q", ev.Type)
	}
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	s := New(logger.Discard())
	c := &client{userID: uuid.New(), events: make(chan Event, 1)}
	s.addClient(c)

	s.Publish(c.userID, Event{Type: EventNotice})
	if n := s.Publish(c.userID, Event{Type: EventNotice}); n != 0 {
		t.Fatalf("expected dropped event, got %d deliveries", n)
	}
}

func TestRemoveAfterCloseIsSafe(t *testing.T) {
	s := New(logger.Discard())
	c := &client{userID: uuid.New(), events: make(chan Event, 1)}
	s.addClient(c)

	s.Close()
	s.removeClient(c)

	if s.Connected(c.userID) {
		t.Fatal("expected no connected clients")
	}
	if _, ok := <-c.events; ok {
		t.Fatal("expected closed channel")
	}
}
