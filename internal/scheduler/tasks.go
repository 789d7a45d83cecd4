package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskDraftDelete = "drafts.delete"

// DraftDeletePayload names the draft to remove: the user's draft as it was at
// Cutoff. A draft saved after Cutoff belongs to a newer offer and is kept.
type DraftDeletePayload struct {
	UserID string    `json:"userId"`
	Cutoff time.Time `json:"cutoff"`
}

func NewDraftDeleteTask(payload DraftDeletePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDraftDelete, data), nil
}

func ParseDraftDeletePayload(task *asynq.Task) (DraftDeletePayload, error) {
	var payload DraftDeletePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DraftDeletePayload{}, err
	}
	return payload, nil
}
