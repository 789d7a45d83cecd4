// Package inapp keeps the most recent editor notices of each user in Redis
// until the editor collects them.
package inapp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "offer:notices:"
	// MaxNotices is how many notices are kept per user; older ones are dropped.
	MaxNotices = 20
	noticeTTL  = 24 * time.Hour
)

// Notice is one toast shown to the user.
type Notice struct {
	Level     string    `json:"level"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Inbox is a capped per-user list of notices, newest first.
type Inbox struct {
	rdb *redis.Client
}

// NewInbox creates an inbox on rdb
func NewInbox(rdb *redis.Client) *Inbox {
	return &Inbox{rdb: rdb}
}

func key(userID uuid.UUID) string {
	return keyPrefix + userID.String()
}

// Push stores n for userID and trims the list to MaxNotices.
func (i *Inbox) Push(ctx context.Context, userID uuid.UUID, n Notice) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notice: %w", err)
	}

	k := key(userID)
	_, err = i.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, k, data)
		pipe.LTrim(ctx, k, 0, MaxNotices-1)
		pipe.Expire(ctx, k, noticeTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("push notice: %w", err)
	}
	return nil
}

// Drain returns the user's notices, newest first, and empties the inbox.
// Entries that can not be decoded are skipped.
func (i *Inbox) Drain(ctx context.Context, userID uuid.UUID) ([]Notice, error) {
	k := key(userID)
	var items *redis.StringSliceCmd
	_, err := i.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, k, 0, -1)
		pipe.Del(ctx, k)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("drain notices: %w", err)
	}

	raw := items.Val()
	out := make([]Notice, 0, len(raw))
	for _, r := range raw {
		var n Notice
		if err := json.Unmarshal([]byte(r), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
