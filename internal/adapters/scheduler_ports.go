package adapters

import (
	draftsrepo "offer_generator_backend/internal/drafts/repository"
	draftsvc "offer_generator_backend/internal/drafts/service"
	"offer_generator_backend/internal/scheduler"
)

// The asynq client retries draft deletes for the editor; the scheduler works
// directly on the drafts repository.
var (
	_ draftsvc.DeleteRetrier    = (*scheduler.Client)(nil)
	_ scheduler.DraftDeleter    = (*draftsrepo.Repository)(nil)
	_ scheduler.StaleDraftStore = (*draftsrepo.Repository)(nil)
)
