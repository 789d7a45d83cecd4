package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"offer_generator_backend/platform/config"
	"offer_generator_backend/platform/redisclient"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	draftDeleteDelay    = 30 * time.Second
	draftDeleteMaxRetry = 10
)

type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleDraftDelete enqueues a retrying delete of the user's draft row as it
// was at cutoff. The same delete is not queued twice.
func (c *Client) ScheduleDraftDelete(ctx context.Context, userID uuid.UUID, cutoff time.Time) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewDraftDeleteTask(DraftDeletePayload{UserID: userID.String(), Cutoff: cutoff.UTC()})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.ProcessIn(draftDeleteDelay),
		asynq.MaxRetry(draftDeleteMaxRetry),
		asynq.Unique(time.Hour),
	)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue draft delete: %w", err)
	}
	return nil
}

func redisClientOpt(cfg config.RedisConfig) (asynq.RedisClientOpt, error) {
	opt, err := redisclient.Options(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
