package product

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a product does not exist or belongs to
// another owner.
var ErrNotFound = errors.New("product not found")

// Repository persists products.
type Repository interface {
	Create(ctx context.Context, p Product) error
	ListByOwner(ctx context.Context, ownerID string) ([]Product, error)
	Get(ctx context.Context, ownerID, id string) (Product, error)
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, ownerID, id string) error
}

// PostgresRepository stores products in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a product record.
func (r *PostgresRepository) Create(ctx context.Context, p Product) error {
	productID, err := uuid.Parse(p.ID)
	if err != nil {
		return err
	}
	ownerID, err := uuid.Parse(p.OwnerID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO products (id, owner_id, title, description, cost, banner_url, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		productID, ownerID, p.Title, p.Description, p.Cost, p.BannerURL, p.CreatedAt.UTC())
	return err
}

// ListByOwner returns all products belonging to a user, newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]Product, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, owner_id, title, description, cost, banner_url, created_at
        FROM products WHERE owner_id = $1 ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get fetches one product scoped to its owner.
func (r *PostgresRepository) Get(ctx context.Context, ownerID, id string) (Product, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return Product{}, ErrNotFound
	}
	productID, err := uuid.Parse(id)
	if err != nil {
		return Product{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, owner_id, title, description, cost, banner_url, created_at
        FROM products WHERE id = $1 AND owner_id = $2`, productID, owner)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

// Update rewrites the mutable fields of a product.
func (r *PostgresRepository) Update(ctx context.Context, p Product) error {
	productID, err := uuid.Parse(p.ID)
	if err != nil {
		return ErrNotFound
	}
	owner, err := uuid.Parse(p.OwnerID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE products SET title = $1, description = $2, cost = $3, banner_url = $4
        WHERE id = $5 AND owner_id = $6`, p.Title, p.Description, p.Cost, p.BannerURL, productID, owner)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product scoped to its owner.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return ErrNotFound
	}
	productID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1 AND owner_id = $2`, productID, owner)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var (
		id        uuid.UUID
		owner     uuid.UUID
		createdAt time.Time
		p         Product
	)
	if err := row.Scan(&id, &owner, &p.Title, &p.Description, &p.Cost, &p.BannerURL, &createdAt); err != nil {
		return Product{}, err
	}
	p.ID = id.String()
	p.OwnerID = owner.String()
	p.CreatedAt = createdAt.UTC()
	return p, nil
}
