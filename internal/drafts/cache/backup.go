// Package cache keeps a best-effort copy of each user's draft in Redis so an
// editor can recover when the drafts table is unreachable.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"offer_generator_backend/internal/offers/domain"
	"offer_generator_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "offer:draft:"

// BackupStore stores draft snapshots under offer:draft:<userID>. None of its
// methods return errors; failures are logged and swallowed.
type BackupStore struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// NewBackupStore creates a backup store. A zero ttl keeps keys forever.
func NewBackupStore(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *BackupStore {
	return &BackupStore{rdb: rdb, ttl: ttl, log: log}
}

func key(userID uuid.UUID) string {
	return keyPrefix + userID.String()
}

// Save writes the snapshot for userID.
func (s *BackupStore) Save(ctx context.Context, userID uuid.UUID, offer domain.Offer) {
	if s == nil || s.rdb == nil {
		return
	}

	data, err := json.Marshal(offer)
	if err != nil {
		s.log.StoreError("draft_backup", "encode", err)
		return
	}
	if err := s.rdb.Set(ctx, key(userID), data, s.ttl).Err(); err != nil {
		s.log.StoreError("draft_backup", "save", err)
	}
}

// Get returns the stored snapshot, or nil when there is none or it can not be decoded.
func (s *BackupStore) Get(ctx context.Context, userID uuid.UUID) *domain.Offer {
	if s == nil || s.rdb == nil {
		return nil
	}

	data, err := s.rdb.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		s.log.StoreError("draft_backup", "get", err)
		return nil
	}

	var offer domain.Offer
	if err := json.Unmarshal(data, &offer); err != nil {
		s.log.StoreError("draft_backup", "decode", err)
		return nil
	}
	if offer.Products == nil {
		offer.Products = []domain.Product{}
	}
	return &offer
}

// Clear removes the snapshot for userID.
func (s *BackupStore) Clear(ctx context.Context, userID uuid.UUID) {
	if s == nil || s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, key(userID)).Err(); err != nil {
		s.log.StoreError("draft_backup", "clear", err)
	}
}
