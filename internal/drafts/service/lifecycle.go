package service

import (
	"context"
	"strings"
	"time"

	"offer_generator_backend/internal/events"
	"offer_generator_backend/internal/offers/domain"
	"offer_generator_backend/platform/apperr"

	"github.com/google/uuid"
)

type persistOutcome int

const (
	persistSaved persistOutcome = iota
	persistLocalOnly
	persistSkippedEmpty
	persistDiscarded
)

// persist writes a snapshot of the session to the drafts table and the
// backup copy. The first write of a session is skipped when the offer has no
// meaningful content. A failed remote write still stores the backup; for an
// auto-save that counts as saved, for a manual save the session stays dirty
// and the error is returned.
func (s *Service) persist(ctx context.Context, sess *session, gen uint64, manual bool) (persistOutcome, error) {
	sess.persistMu.Lock()
	defer sess.persistMu.Unlock()

	sess.mu.Lock()
	if sess.generation != gen || (!manual && sess.loading) {
		sess.mu.Unlock()
		return persistDiscarded, nil
	}
	now := s.now()
	snap := sess.snapshotLocked(now)
	rev := sess.revision
	if !sess.hasRemote && !domain.HasMeaningfulContent(snap) {
		sess.mu.Unlock()
		return persistSkippedEmpty, nil
	}
	sess.saving = true
	sess.mu.Unlock()

	code, saveErr := s.drafts.Save(ctx, sess.userID, snap)
	s.backup.Save(ctx, sess.userID, snap)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.saving = false
	if sess.generation != gen {
		return persistDiscarded, nil
	}

	outcome := persistSaved
	if saveErr != nil {
		if manual {
			return persistLocalOnly, apperr.Unavailable("draft could not be saved", saveErr)
		}
		s.log.StoreError("offer_drafts", "save", saveErr)
		outcome = persistLocalOnly
	} else {
		sess.hasRemote = true
		sess.draftCode = code
	}

	saved := now
	sess.lastSaved = &saved
	if sess.revision == rev {
		sess.dirty = false
	}

	if outcome == persistSaved {
		s.publish(ctx, events.DraftSaved{
			BaseEvent: events.NewBaseEvent(),
			UserID:    sess.userID,
			DraftCode: code,
			Manual:    manual,
		})
	}
	s.log.DraftEvent("saved", sess.userID.String(), "manual", manual, "remote", saveErr == nil)
	return outcome, nil
}

// SaveDraft saves the user's offer now. It does nothing until the user has
// edited something. The outcome is reported through the notifier; a failed
// remote write is also returned as an Unavailable error.
func (s *Service) SaveDraft(ctx context.Context, userID uuid.UUID) (State, error) {
	if userID == uuid.Nil {
		return State{}, nil
	}
	sess := s.session(ctx, userID)

	sess.mu.Lock()
	interacted := sess.interacted
	gen := sess.generation
	sess.mu.Unlock()
	if !interacted {
		return sess.state(), nil
	}

	outcome, err := s.persist(ctx, sess, gen, true)
	switch {
	case err != nil:
		s.log.StoreError("offer_drafts", "manual_save", err)
		s.notify(ctx, userID, events.NoticeError, "Draft not saved", "The draft could not be saved to the server. A local copy was kept.")
		return sess.state(), err
	case outcome == persistSkippedEmpty:
		s.notify(ctx, userID, events.NoticeInfo, "Nothing to save", "Add a client, a product or notes before saving a draft.")
	case outcome == persistSaved:
		s.notify(ctx, userID, events.NoticeSuccess, "Draft saved", "Your draft has been saved.")
	}
	return sess.state(), nil
}

// ToggleAutoSave flips auto-save for the user. It does not cancel a save that
// is already running. Turning it back on re-arms the debounce when there are
// unsaved edits.
func (s *Service) ToggleAutoSave(ctx context.Context, userID uuid.UUID) (State, error) {
	if userID == uuid.Nil {
		return State{}, nil
	}
	sess := s.session(ctx, userID)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.autoSave = !sess.autoSave
	if sess.autoSave && sess.dirty && sess.interacted {
		s.scheduleLocked(sess)
	}
	s.log.DraftEvent("autosave_toggled", userID.String(), "enabled", sess.autoSave)
	return sess.stateLocked(), nil
}

// ResetOffer discards the user's offer and draft. The in-memory reset always
// completes; a failed remote delete is logged and handed to the retrier.
func (s *Service) ResetOffer(ctx context.Context, userID uuid.UUID) (State, error) {
	if userID == uuid.Nil {
		return State{}, nil
	}
	sess := s.session(ctx, userID)

	sess.mu.Lock()
	sess.loading = true
	sess.generation++
	sess.stopTimerLocked()
	sess.mu.Unlock()

	sess.persistMu.Lock()

	sess.mu.Lock()
	now := s.now()
	sess.offer = domain.DefaultOffer(now)
	sess.dirty = false
	sess.interacted = false
	sess.lastSaved = nil
	sess.createdAt = now
	sess.hasRemote = false
	sess.draftCode = ""
	sess.revision++
	sess.mu.Unlock()

	s.discardDraft(ctx, userID, "reset", now)
	sess.persistMu.Unlock()

	sess.mu.Lock()
	sess.loading = false
	st := sess.stateLocked()
	sess.mu.Unlock()

	s.log.DraftEvent("reset", userID.String())
	s.notify(ctx, userID, events.NoticeInfo, "Offer reset", "Started a new offer.")
	s.publish(ctx, events.DraftReset{BaseEvent: events.NewBaseEvent(), UserID: userID})
	return st, nil
}

// Finalize stores the user's offer as a permanent offer, replaces the editor
// offer with the stored copy and removes the draft. The client name is
// required; without it nothing is stored or deleted.
func (s *Service) Finalize(ctx context.Context, userID uuid.UUID) (State, *SavedOffer, error) {
	if userID == uuid.Nil {
		return State{}, nil, nil
	}
	sess := s.session(ctx, userID)

	sess.mu.Lock()
	if strings.TrimSpace(sess.offer.Client.Name) == "" {
		sess.mu.Unlock()
		return sess.state(), nil, apperr.Validation("client name is required")
	}
	snap := sess.snapshotLocked(s.now())
	sess.mu.Unlock()

	if s.saver == nil {
		return sess.state(), nil, apperr.Internal("offer store not configured")
	}

	sess.persistMu.Lock()
	defer sess.persistMu.Unlock()

	saved, err := s.saver.SaveOffer(ctx, userID, snap)
	if err != nil {
		s.log.StoreError("offers", "finalize", err)
		s.notify(ctx, userID, events.NoticeError, "Offer not saved", "The offer could not be saved. Please try again.")
		if apperr.GetKind(err) == apperr.KindUnknown {
			err = apperr.Unavailable("offer could not be saved", err)
		}
		return sess.state(), nil, err
	}

	sess.mu.Lock()
	now := s.now()
	sess.generation++
	sess.stopTimerLocked()
	sess.offer = saved.Offer.Clone()
	if sess.offer.Products == nil {
		sess.offer.Products = []domain.Product{}
	}
	sess.dirty = false
	sess.interacted = false
	sess.hasRemote = false
	sess.draftCode = ""
	sess.lastSaved = &now
	sess.createdAt = now
	sess.revision++
	st := sess.stateLocked()
	sess.mu.Unlock()

	s.discardDraft(ctx, userID, "finalize", now)

	s.log.DraftEvent("finalized", userID.String(), "offerNumber", saved.OfferNumber)
	s.notify(ctx, userID, events.NoticeSuccess, "Offer saved", "Offer "+saved.OfferNumber+" has been saved.")
	s.publish(ctx, events.OfferFinalized{
		BaseEvent:   events.NewBaseEvent(),
		UserID:      userID,
		OfferID:     saved.ID,
		OfferNumber: saved.OfferNumber,
		ClientName:  saved.Offer.Client.Name,
		Total:       saved.Totals.Total,
	})
	return st, saved, nil
}

// discardDraft removes the user's draft row and backup copy. It outlives the
// request so a disconnecting client can not bring the draft back. A failed
// delete is logged and handed to the retrier, which may only remove a draft
// saved at or before cutoff.
func (s *Service) discardDraft(ctx context.Context, userID uuid.UUID, reason string, cutoff time.Time) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	s.backup.Clear(ctx, userID)

	err := s.drafts.Delete(ctx, userID)
	if err == nil {
		return
	}
	s.log.StoreError("offer_drafts", "delete_"+reason, err)
	if s.retrier == nil {
		return
	}
	if err := s.retrier.ScheduleDraftDelete(ctx, userID, cutoff); err != nil {
		s.log.StoreError("scheduler", "schedule_draft_delete", err)
	}
}
