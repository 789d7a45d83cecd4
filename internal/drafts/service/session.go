package service

import (
	"sync"
	"time"

	"offer_generator_backend/internal/offers/domain"

	"github.com/google/uuid"
)

// State is a read-only view of one editor session.
type State struct {
	Offer             domain.Offer
	IsDirty           bool
	HasUserInteracted bool
	IsAutoSaving      bool
	LastSaved         *time.Time
	AutoSaveEnabled   bool
	IsLoadingDraft    bool
	HasRemoteDraft    bool
	DraftCode         string
}

// session is the live editor of one user. mu guards every field; persistMu
// serializes writes and deletes against the drafts table so a reset or a
// finalize never interleaves with a save.
type session struct {
	userID uuid.UUID

	mu        sync.Mutex
	persistMu sync.Mutex

	offer      domain.Offer
	dirty      bool
	interacted bool
	saving     bool
	lastSaved  *time.Time
	autoSave   bool
	loading    bool
	hasRemote  bool
	draftCode  string
	createdAt  time.Time
	revision   uint64
	generation uint64
	timer      *time.Timer
	closed     bool

	// lastAccess is guarded by Service.mu.
	lastAccess time.Time
}

func newSession(userID uuid.UUID, now time.Time) *session {
	return &session{
		userID:     userID,
		offer:      domain.DefaultOffer(now),
		autoSave:   true,
		createdAt:  now,
		lastAccess: now,
	}
}

// stateLocked must be called with s.mu held.
func (s *session) stateLocked() State {
	var lastSaved *time.Time
	if s.lastSaved != nil {
		t := *s.lastSaved
		lastSaved = &t
	}
	return State{
		Offer:             s.offer.Clone(),
		IsDirty:           s.dirty,
		HasUserInteracted: s.interacted,
		IsAutoSaving:      s.saving,
		LastSaved:         lastSaved,
		AutoSaveEnabled:   s.autoSave,
		IsLoadingDraft:    s.loading,
		HasRemoteDraft:    s.hasRemote,
		DraftCode:         s.draftCode,
	}
}

func (s *session) state() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// snapshotLocked returns the offer stamped for persistence: createdAt is the
// session anchor and lastEdited is now.
func (s *session) snapshotLocked(now time.Time) domain.Offer {
	snap := s.offer.Clone()
	createdAt := s.createdAt
	lastEdited := now
	snap.CreatedAt = &createdAt
	snap.LastEdited = &lastEdited
	return snap
}

// adoptLocked replaces the offer with a loaded draft.
func (s *session) adoptLocked(offer domain.Offer, now time.Time) {
	s.offer = offer.Clone()
	if s.offer.Products == nil {
		s.offer.Products = []domain.Product{}
	}
	if offer.CreatedAt != nil {
		s.createdAt = *offer.CreatedAt
	}
	s.interacted = true
	s.lastSaved = &now
}

func (s *session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
