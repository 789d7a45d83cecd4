// Package service runs the offer editor sessions: one live offer per user,
// debounced auto-save to the drafts table with a backup copy, manual save,
// reset and finalize.
package service

import (
	"context"
	"sync"
	"time"

	"offer_generator_backend/internal/events"
	"offer_generator_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	defaultDebounce = 5 * time.Second
	autoSaveTimeout = 30 * time.Second
	loadTimeout     = 15 * time.Second
	cleanupTimeout  = 15 * time.Second
)

// Service owns every open editor session.
type Service struct {
	drafts    DraftStore
	backup    BackupStore
	saver     OfferSaver
	reader    OfferReader
	templates TemplateCatalog
	notifier  Notifier
	retrier   DeleteRetrier
	eventBus  events.Bus
	log       *logger.Logger
	debounce  time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	opening  singleflight.Group
}

// New creates a new editor service. A non-positive debounce uses 5s.
func New(drafts DraftStore, backup BackupStore, debounce time.Duration, log *logger.Logger) *Service {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	if backup == nil {
		backup = noopBackup{}
	}
	return &Service{
		drafts:   drafts,
		backup:   backup,
		notifier: noopNotifier{},
		log:      log,
		debounce: debounce,
		now:      func() time.Time { return time.Now().UTC() },
		sessions: make(map[uuid.UUID]*session),
	}
}

// SetOfferSaver injects the permanent offer store used by Finalize.
func (s *Service) SetOfferSaver(saver OfferSaver) {
	s.saver = saver
}

// SetOfferReader injects the saved offer lookup used by ApplySavedOffer.
func (s *Service) SetOfferReader(reader OfferReader) {
	s.reader = reader
}

// SetTemplateCatalog injects the template catalog used by ApplyCatalogTemplate.
func (s *Service) SetTemplateCatalog(catalog TemplateCatalog) {
	s.templates = catalog
}

// SetNotifier injects the toast sink.
func (s *Service) SetNotifier(n Notifier) {
	if n == nil {
		s.notifier = noopNotifier{}
		return
	}
	s.notifier = n
}

// SetDeleteRetrier injects the scheduler used when a draft delete fails.
func (s *Service) SetDeleteRetrier(r DeleteRetrier) {
	s.retrier = r
}

// SetEventBus injects the event bus.
func (s *Service) SetEventBus(bus events.Bus) {
	s.eventBus = bus
}

// Open returns the user's editor, loading the latest draft on first use.
// Concurrent first calls for one user share a single load.
func (s *Service) Open(ctx context.Context, userID uuid.UUID) (State, error) {
	if userID == uuid.Nil {
		return State{}, nil
	}
	sess := s.session(ctx, userID)
	return sess.state(), nil
}

// Close cancels the pending auto-save and drops the user's session.
func (s *Service) Close(userID uuid.UUID) {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	delete(s.sessions, userID)
	s.mu.Unlock()
	if !ok {
		return
	}

	sess.mu.Lock()
	sess.closed = true
	sess.stopTimerLocked()
	sess.mu.Unlock()
}

// Shutdown closes every session and waits for saves already in flight.
func (s *Service) Shutdown() {
	s.mu.Lock()
	open := make([]*session, 0, len(s.sessions))
	for id, sess := range s.sessions {
		open = append(open, sess)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, sess := range open {
		sess.mu.Lock()
		sess.closed = true
		sess.stopTimerLocked()
		sess.mu.Unlock()

		// Wait for a save that is still running.
		sess.persistMu.Lock()
		sess.persistMu.Unlock()
	}
}

// lookup returns the open session of a user and marks it as used.
func (s *Service) lookup(userID uuid.UUID) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[userID]
	if sess != nil {
		sess.lastAccess = s.now()
	}
	return sess
}

func (s *Service) session(ctx context.Context, userID uuid.UUID) *session {
	if sess := s.lookup(userID); sess != nil {
		return sess
	}

	v, _, _ := s.opening.Do(userID.String(), func() (any, error) {
		if sess := s.lookup(userID); sess != nil {
			return sess, nil
		}
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		sess := s.load(loadCtx, userID)
		s.mu.Lock()
		sess.lastAccess = s.now()
		s.sessions[userID] = sess
		s.mu.Unlock()
		return sess, nil
	})
	return v.(*session)
}

// load builds a session from the drafts table, falling back to the backup
// copy when the table can not be read.
func (s *Service) load(ctx context.Context, userID uuid.UUID) *session {
	now := s.now()
	sess := newSession(userID, now)
	sess.loading = true
	defer func() { sess.loading = false }()

	remote, err := s.drafts.GetLatest(ctx, userID)
	if err == nil {
		if remote != nil {
			sess.adoptLocked(*remote, now)
			sess.hasRemote = true
			s.log.DraftEvent("loaded", userID.String(), "source", "remote")
		}
		return sess
	}

	s.log.StoreError("offer_drafts", "get_latest", err)
	backup := s.backup.Get(ctx, userID)
	if backup == nil {
		return sess
	}

	sess.adoptLocked(*backup, now)
	sess.lastSaved = nil
	s.log.DraftEvent("loaded", userID.String(), "source", "backup")

	snap := sess.snapshotLocked(now)
	code, err := s.drafts.Save(ctx, userID, snap)
	if err != nil {
		s.log.StoreError("offer_drafts", "resync_backup", err)
		return sess
	}
	sess.hasRemote = true
	sess.draftCode = code
	sess.lastSaved = &now
	return sess
}

func (s *Service) notify(ctx context.Context, userID uuid.UUID, level, title, message string) {
	s.notifier.Notify(ctx, userID, Notice{Level: level, Title: title, Message: message})
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(ctx, event)
}
