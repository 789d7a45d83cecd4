package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"offer_generator_backend/internal/offers/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrCorruptDraft is returned when a stored draft row can not be decoded.
var ErrCorruptDraft = errors.New("stored draft is malformed")

// Draft is the database model for the single active draft of a user
type Draft struct {
	UserID    uuid.UUID `db:"user_id"`
	DraftCode string    `db:"draft_code"`
	Status    string    `db:"status"`
	Data      []byte    `db:"data"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Repository provides database operations for offer drafts
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new drafts repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetLatest returns the user's active draft, or nil when there is none.
func (r *Repository) GetLatest(ctx context.Context, userID uuid.UUID) (*domain.Offer, error) {
	var d Draft
	query := `
		SELECT user_id, draft_code, status, data, created_at, updated_at
		FROM offer_drafts
		WHERE user_id = $1 AND status = 'draft'`

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&d.UserID, &d.DraftCode, &d.Status, &d.Data, &d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	var offer domain.Offer
	if err := json.Unmarshal(d.Data, &offer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDraft, err)
	}
	if offer.Products == nil {
		offer.Products = []domain.Product{}
	}
	return &offer, nil
}

// Save creates or updates the user's single active draft. The draft code
// assigned on creation is kept for every later update.
func (r *Repository) Save(ctx context.Context, userID uuid.UUID, offer domain.Offer) (string, error) {
	data, err := json.Marshal(offer)
	if err != nil {
		return "", fmt.Errorf("failed to encode draft: %w", err)
	}

	query := `
		INSERT INTO offer_drafts (user_id, draft_code, status, data, created_at, updated_at)
		VALUES ($1, $2, 'draft', $3, $4, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET data = EXCLUDED.data, status = 'draft', updated_at = EXCLUDED.updated_at
		RETURNING draft_code`

	var code string
	if err := r.pool.QueryRow(ctx, query, userID, newDraftCode(), data, time.Now().UTC()).Scan(&code); err != nil {
		return "", fmt.Errorf("failed to save draft: %w", err)
	}
	return code, nil
}

// Delete removes the user's draft. A missing row is not an error.
func (r *Repository) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM offer_drafts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// DeleteSavedBefore removes the user's draft only when it was last saved at or
// before cutoff. A draft saved after cutoff is kept. It reports whether a row
// was removed.
func (r *Repository) DeleteSavedBefore(ctx context.Context, userID uuid.UUID, cutoff time.Time) (bool, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM offer_drafts WHERE user_id = $1 AND updated_at <= $2`, userID, cutoff)
	if err != nil {
		return false, fmt.Errorf("failed to delete draft: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// DeleteOlderThan removes drafts not touched since cutoff and returns how many were removed.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM offer_drafts WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale drafts: %w", err)
	}
	return result.RowsAffected(), nil
}

func newDraftCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "DRF-" + strings.ToUpper(id[:10])
}
