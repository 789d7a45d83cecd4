package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"offer_generator_backend/internal/offers/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Product is a line item remembered from a finalized offer
type Product struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	PartNumber  string    `db:"part_number"`
	Description string    `db:"description"`
	Unit        string    `db:"unit"`
	UnitPrice   float64   `db:"unit_price"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Client is a client remembered from a finalized offer
type Client struct {
	ID        uuid.UUID         `db:"id"`
	Name      string            `db:"name"`
	Data      domain.ClientInfo `db:"data"`
	UpdatedAt time.Time         `db:"updated_at"`
}

// Repo reads the reference tables filled when offers are finalized
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// SearchProducts returns the user's remembered products matching search on
// name or part number, most recently used first.
func (r *Repo) SearchProducts(ctx context.Context, userID uuid.UUID, search string, limit int) ([]Product, error) {
	var searchParam interface{}
	if search != "" {
		searchParam = "%" + search + "%"
	}

	query := `
		SELECT id, name, part_number, description, unit, unit_price, updated_at
		FROM catalog_products
		WHERE user_id = $1
			AND ($2::text IS NULL OR name ILIKE $2 OR part_number ILIKE $2)
		ORDER BY updated_at DESC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, userID, searchParam, limit)
	if err != nil {
		return nil, fmt.Errorf("search catalog products: %w", err)
	}
	defer rows.Close()

	items := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.PartNumber, &p.Description, &p.Unit, &p.UnitPrice, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan catalog product: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog products: %w", err)
	}
	return items, nil
}

// SearchClients returns the user's remembered clients matching search on name,
// most recently used first.
func (r *Repo) SearchClients(ctx context.Context, userID uuid.UUID, search string, limit int) ([]Client, error) {
	var searchParam interface{}
	if search != "" {
		searchParam = "%" + search + "%"
	}

	query := `
		SELECT id, name, data, updated_at
		FROM clients
		WHERE user_id = $1
			AND ($2::text IS NULL OR name ILIKE $2)
		ORDER BY updated_at DESC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, userID, searchParam, limit)
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	defer rows.Close()

	items := make([]Client, 0)
	for rows.Next() {
		var c Client
		var data []byte
		if err := rows.Scan(&c.ID, &c.Name, &data, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		if err := json.Unmarshal(data, &c.Data); err != nil {
			c.Data = domain.ClientInfo{Name: c.Name}
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return items, nil
}
