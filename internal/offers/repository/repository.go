package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"offer_generator_backend/internal/offers/domain"
	"offer_generator_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ── Models ────────────────────────────────────────────────────────────────────

// Offer is the database model for a finalized offer
type Offer struct {
	ID          uuid.UUID    `db:"id"`
	UserID      uuid.UUID    `db:"user_id"`
	OfferNumber string       `db:"offer_number"`
	Name        string       `db:"name"`
	ClientName  string       `db:"client_name"`
	Currency    string       `db:"currency"`
	Subtotal    float64      `db:"subtotal"`
	VATTotal    float64      `db:"vat_total"`
	Total       float64      `db:"total"`
	Data        domain.Offer `db:"data"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

// ListParams contains parameters for listing offers
type ListParams struct {
	UserID    uuid.UUID
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// ListResult contains the paginated result of listing offers
type ListResult struct {
	Items      []Offer
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// ── Repository ────────────────────────────────────────────────────────────────

const offerNotFoundMsg = "offer not found"

// Repository provides database operations for finalized offers
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new offers repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create numbers the offer and inserts it together with the client and the
// non-bundle products it references, all in one transaction. The assigned
// number is written into both the row and the stored offer details.
func (r *Repository) Create(ctx context.Context, offer *Offer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	number, err := nextOfferNumber(ctx, tx, offer.UserID, offer.CreatedAt)
	if err != nil {
		return err
	}
	offer.OfferNumber = number
	offer.Data.Details.OfferNumber = number

	data, err := json.Marshal(offer.Data)
	if err != nil {
		return fmt.Errorf("failed to encode offer: %w", err)
	}

	query := `
		INSERT INTO offers (
			id, user_id, offer_number, name, client_name, currency,
			subtotal, vat_total, total, data, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	if _, err := tx.Exec(ctx, query,
		offer.ID, offer.UserID, offer.OfferNumber, offer.Name, offer.ClientName, offer.Currency,
		offer.Subtotal, offer.VATTotal, offer.Total, data, offer.CreatedAt, offer.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert offer: %w", err)
	}

	if err := upsertClient(ctx, tx, offer.UserID, offer.Data.Client, offer.CreatedAt); err != nil {
		return err
	}
	if err := upsertCatalogProducts(ctx, tx, offer.UserID, offer.Data.Products, offer.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// nextOfferNumber atomically generates the next offer number for a user.
// Numbering restarts at 1 every calendar year.
func nextOfferNumber(ctx context.Context, tx pgx.Tx, userID uuid.UUID, at time.Time) (string, error) {
	var nextNum int
	query := `
		INSERT INTO offer_counters (user_id, year, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, year) DO UPDATE SET last_number = offer_counters.last_number + 1
		RETURNING last_number`

	if err := tx.QueryRow(ctx, query, userID, at.Year()).Scan(&nextNum); err != nil {
		return "", fmt.Errorf("failed to generate offer number: %w", err)
	}
	return FormatOfferNumber(at.Year(), nextNum), nil
}

// FormatOfferNumber renders the human-facing offer number.
func FormatOfferNumber(year, n int) string {
	return fmt.Sprintf("OFF-%d-%04d", year, n)
}

func upsertClient(ctx context.Context, tx pgx.Tx, userID uuid.UUID, client domain.ClientInfo, at time.Time) error {
	name := strings.TrimSpace(client.Name)
	if name == "" {
		return nil
	}
	data, err := json.Marshal(client)
	if err != nil {
		return fmt.Errorf("failed to encode client: %w", err)
	}

	query := `
		INSERT INTO clients (id, user_id, name, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_id, name) DO UPDATE
		SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`

	if _, err := tx.Exec(ctx, query, uuid.New(), userID, name, data, at); err != nil {
		return fmt.Errorf("failed to upsert client: %w", err)
	}
	return nil
}

func upsertCatalogProducts(ctx context.Context, tx pgx.Tx, userID uuid.UUID, products []domain.Product, at time.Time) error {
	query := `
		INSERT INTO catalog_products (id, user_id, name, part_number, description, unit, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (user_id, name, part_number) DO UPDATE
		SET description = EXCLUDED.description, unit = EXCLUDED.unit,
			unit_price = EXCLUDED.unit_price, updated_at = EXCLUDED.updated_at`

	batch := &pgx.Batch{}
	for _, p := range products {
		name := strings.TrimSpace(p.Name)
		if p.IsBundle || name == "" {
			continue
		}
		batch.Queue(query, uuid.New(), userID, name, strings.TrimSpace(p.PartNumber), p.Description, p.Unit, p.UnitPrice, at)
	}
	if batch.Len() == 0 {
		return nil
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to upsert catalog product: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to upsert catalog products: %w", err)
	}
	return nil
}

// GetByID retrieves one of the user's offers
func (r *Repository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Offer, error) {
	query := `
		SELECT id, user_id, offer_number, name, client_name, currency,
			subtotal, vat_total, total, data, created_at, updated_at
		FROM offers
		WHERE id = $1 AND user_id = $2`

	o, err := scanOffer(r.pool.QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound(offerNotFoundMsg)
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Delete removes one of the user's offers
func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM offers WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(offerNotFoundMsg)
	}
	return nil
}

// List retrieves the user's offers with search and pagination
func (r *Repository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	sortBy, err := resolveSortBy(params.SortBy)
	if err != nil {
		return nil, err
	}
	sortOrder, err := resolveSortOrder(params.SortOrder)
	if err != nil {
		return nil, err
	}

	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}

	baseQuery := `
		FROM offers
		WHERE user_id = $1
			AND ($2::text IS NULL OR offer_number ILIKE $2 OR client_name ILIKE $2 OR name ILIKE $2)
	`
	args := []interface{}{params.UserID, searchParam}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count offers: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	offset := (params.Page - 1) * params.PageSize

	selectQuery := `
		SELECT id, user_id, offer_number, name, client_name, currency,
			subtotal, vat_total, total, data, created_at, updated_at
		` + baseQuery + `
		ORDER BY
			CASE WHEN $3 = 'offerNumber' AND $4 = 'asc' THEN offer_number END ASC,
			CASE WHEN $3 = 'offerNumber' AND $4 = 'desc' THEN offer_number END DESC,
			CASE WHEN $3 = 'clientName' AND $4 = 'asc' THEN client_name END ASC,
			CASE WHEN $3 = 'clientName' AND $4 = 'desc' THEN client_name END DESC,
			CASE WHEN $3 = 'total' AND $4 = 'asc' THEN total END ASC,
			CASE WHEN $3 = 'total' AND $4 = 'desc' THEN total END DESC,
			CASE WHEN $3 = 'createdAt' AND $4 = 'asc' THEN created_at END ASC,
			CASE WHEN $3 = 'createdAt' AND $4 = 'desc' THEN created_at END DESC,
			created_at DESC
		LIMIT $5 OFFSET $6`

	args = append(args, sortBy, sortOrder, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	items := make([]Offer, 0)
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate offers: %w", err)
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

func scanOffer(row pgx.Row) (*Offer, error) {
	var o Offer
	var data []byte
	if err := row.Scan(
		&o.ID, &o.UserID, &o.OfferNumber, &o.Name, &o.ClientName, &o.Currency,
		&o.Subtotal, &o.VATTotal, &o.Total, &data, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan offer: %w", err)
	}
	if err := json.Unmarshal(data, &o.Data); err != nil {
		return nil, fmt.Errorf("failed to decode offer %s: %w", o.ID, err)
	}
	if o.Data.Products == nil {
		o.Data.Products = []domain.Product{}
	}
	return &o, nil
}

func resolveSortBy(sortBy string) (string, error) {
	if sortBy == "" {
		return "createdAt", nil
	}
	switch sortBy {
	case "offerNumber", "clientName", "total", "createdAt":
		return sortBy, nil
	default:
		return "", apperr.BadRequest("invalid sort field")
	}
}

func resolveSortOrder(sortOrder string) (string, error) {
	if sortOrder == "" {
		return "desc", nil
	}
	switch sortOrder {
	case "asc", "desc":
		return sortOrder, nil
	default:
		return "", apperr.BadRequest("invalid sort order")
	}
}
