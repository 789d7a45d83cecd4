package scheduler

import (
	"context"
	"time"

	"offer_generator_backend/platform/logger"
)

const (
	defaultDraftCleanupInterval = time.Hour
	defaultDraftRetention       = 90 * 24 * time.Hour
)

// StaleDraftStore deletes drafts that have not been saved since cutoff.
type StaleDraftStore interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// DraftCleanup periodically removes abandoned drafts.
type DraftCleanup struct {
	drafts    StaleDraftStore
	log       *logger.Logger
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
}

func NewDraftCleanup(drafts StaleDraftStore, log *logger.Logger, interval, retention time.Duration) *DraftCleanup {
	if interval <= 0 {
		interval = defaultDraftCleanupInterval
	}
	if retention <= 0 {
		retention = defaultDraftRetention
	}

	return &DraftCleanup{
		drafts:    drafts,
		log:       log,
		interval:  interval,
		retention: retention,
		now:       time.Now,
	}
}

func (c *DraftCleanup) Run(ctx context.Context) {
	if c == nil || c.drafts == nil {
		return
	}

	c.cleanup(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

func (c *DraftCleanup) cleanup(ctx context.Context) {
	cutoff := c.now().Add(-c.retention)

	deleted, err := c.drafts.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		c.log.Warn("stale draft cleanup failed", "error", err)
		return
	}

	if deleted > 0 {
		c.log.Info("stale draft cleanup deleted drafts", "deleted", deleted, "cutoff", cutoff)
	}
}
