package service

import (
	"context"
	"time"
)

const minIdleSweepInterval = time.Second

// RunIdleSweep closes sessions left unused for ttl until ctx is done. It is
// the server side of an editor whose browser went away without closing it.
func (s *Service) RunIdleSweep(ctx context.Context, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	interval := ttl / 2
	if interval < minIdleSweepInterval {
		interval = minIdleSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictIdle(ctx, ttl); n > 0 {
				s.log.Info("idle editor sessions closed", "count", n, "ttl", ttl)
			}
		}
	}
}

// EvictIdle closes every session not used for ttl and returns how many were
// closed. Unsaved edits of a session with auto-save enabled are saved first,
// the same way the debounce would have saved them.
func (s *Service) EvictIdle(ctx context.Context, ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	var idle []*session
	for id, sess := range s.sessions {
		if sess.lastAccess.After(cutoff) {
			continue
		}
		idle = append(idle, sess)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, sess := range idle {
		s.evict(ctx, sess)
	}
	return len(idle)
}

func (s *Service) evict(ctx context.Context, sess *session) {
	sess.mu.Lock()
	sess.stopTimerLocked()
	gen := sess.generation
	flush := sess.autoSave && sess.dirty && sess.interacted && !sess.loading
	sess.mu.Unlock()

	if flush {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), autoSaveTimeout)
		if _, err := s.persist(saveCtx, sess, gen, false); err != nil {
			s.log.StoreError("offer_drafts", "evict_save", err)
		}
		cancel()
	}

	sess.mu.Lock()
	sess.closed = true
	sess.stopTimerLocked()
	sess.mu.Unlock()

	// Wait for a save that is still running.
	sess.persistMu.Lock()
	sess.persistMu.Unlock()

	s.log.DraftEvent("evicted", sess.userID.String(), "flushed", flush)
}
