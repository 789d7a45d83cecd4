package service

import (
	"context"
	"time"

	"offer_generator_backend/internal/offers/domain"

	"github.com/google/uuid"
)

// DraftStore is the remote drafts table. Save creates or updates the single
// active draft of a user and returns its draft code. Delete of a missing row
// returns nil.
type DraftStore interface {
	GetLatest(ctx context.Context, userID uuid.UUID) (*domain.Offer, error)
	Save(ctx context.Context, userID uuid.UUID, offer domain.Offer) (string, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// BackupStore is the best-effort local copy used when the drafts table is
// unreachable. Implementations log their own failures.
type BackupStore interface {
	Save(ctx context.Context, userID uuid.UUID, offer domain.Offer)
	Get(ctx context.Context, userID uuid.UUID) *domain.Offer
	Clear(ctx context.Context, userID uuid.UUID)
}

// SavedOffer is the canonical permanent offer returned by the offer store.
type SavedOffer struct {
	ID          uuid.UUID
	OfferNumber string
	Offer       domain.Offer
	Totals      domain.Totals
	CreatedAt   time.Time
}

// OfferSaver persists a finalized offer and assigns its offer number.
type OfferSaver interface {
	SaveOffer(ctx context.Context, userID uuid.UUID, offer domain.Offer) (*SavedOffer, error)
}

// OfferReader loads a saved offer so it can be copied into the editor.
type OfferReader interface {
	GetOffer(ctx context.Context, userID, offerID uuid.UUID) (*domain.Offer, error)
}

// TemplateCatalog resolves offer templates by code.
type TemplateCatalog interface {
	Template(code string) (domain.Template, bool)
}

// Notice is a toast shown to the user.
type Notice struct {
	Level   string
	Title   string
	Message string
}

// Notifier delivers notices for manual save, reset and finalize.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, notice Notice)
}

// DeleteRetrier schedules another attempt at removing a user's draft row. Only
// a draft last saved at or before cutoff may be removed by the retry.
type DeleteRetrier interface {
	ScheduleDraftDelete(ctx context.Context, userID uuid.UUID, cutoff time.Time) error
}

type noopBackup struct{}

func (noopBackup) Save(context.Context, uuid.UUID, domain.Offer) {}
func (noopBackup) Get(context.Context, uuid.UUID) *domain.Offer  { return nil }
func (noopBackup) Clear(context.Context, uuid.UUID)              {}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, uuid.UUID, Notice) {}
