package scheduler

import (
	"context"
	"fmt"
	"time"

	"offer_generator_backend/platform/config"
	"offer_generator_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// DraftDeleter removes a user's draft row unless it was saved after cutoff.
type DraftDeleter interface {
	DeleteSavedBefore(ctx context.Context, userID uuid.UUID, cutoff time.Time) (bool, error)
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	drafts DraftDeleter
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, drafts DraftDeleter, log *logger.Logger) (*Worker, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 5
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		drafts: drafts,
		log:    log,
	}

	mux.HandleFunc(TaskDraftDelete, w.handleDraftDelete)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleDraftDelete retries a draft delete that failed in the API. A draft
// saved after the cutoff is left alone. A bad payload is not retried.
func (w *Worker) handleDraftDelete(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseDraftDeletePayload(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", payload.UserID, asynq.SkipRetry)
	}

	if payload.Cutoff.IsZero() {
		return fmt.Errorf("missing cutoff for user %s: %w", payload.UserID, asynq.SkipRetry)
	}

	deleted, err := w.drafts.DeleteSavedBefore(ctx, userID, payload.Cutoff)
	if err != nil {
		w.log.StoreError("offer_drafts", "retry_delete", err)
		return err
	}

	if !deleted {
		w.log.DraftEvent("retry_delete_kept_newer", userID.String(), "cutoff", payload.Cutoff)
		return nil
	}
	w.log.DraftEvent("deleted_by_retry", userID.String())
	return nil
}
