package repository

import (
	"context"
	"errors"
	"fmt"

	"product-catalog/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresProductRepository implements the ProductRepository interface using PostgreSQL.
type postgresProductRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresProductRepository creates a new PostgreSQL-backed product repository.
// The products table is expected to exist (see database.Migrate).
func NewPostgresProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &postgresProductRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product-postgres").Logger(),
	}
}

// Read retrieves all products in insertion order.
func (r *postgresProductRepository) Read(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, price
		FROM products
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// ReadByID retrieves a single product by its ID.
func (r *postgresProductRepository) ReadByID(ctx context.Context, id string) (model.Product, error) {
	query := `
		SELECT id, name, price
		FROM products
		WHERE id = $1
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return model.Product{}, r.rowError(err, id, "failed to query product")
	}

	return p, nil
}

// Create inserts a new product with a generated UUID.
func (r *postgresProductRepository) Create(ctx context.Context, payload model.ProductInput) (model.Product, error) {
	p := model.Product{ID: model.ID(uuid.New().String())}
	apply(&p, payload)

	query := `
		INSERT INTO products (id, name, price)
		VALUES ($1, $2, $3)
		RETURNING id, name, price
	`

	created, err := scanProduct(r.pool.QueryRow(ctx, query, p.ID.String(), p.Name, p.Price))
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID.String()).Msg("failed to insert product")
		return model.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	return created, nil
}

// Update applies the non-nil payload fields to an existing product.
func (r *postgresProductRepository) Update(ctx context.Context, id string, payload model.ProductInput) (model.Product, error) {
	query := `
		UPDATE products
		SET name = COALESCE($2, name),
		    price = COALESCE($3, price)
		WHERE id = $1
		RETURNING id, name, price
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id, payload.Name, payload.Price))
	if err != nil {
		return model.Product{}, r.rowError(err, id, "failed to update product")
	}

	return p, nil
}

// Delete removes a product and returns the deleted row.
func (r *postgresProductRepository) Delete(ctx context.Context, id string) (model.Product, error) {
	query := `
		DELETE FROM products
		WHERE id = $1
		RETURNING id, name, price
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return model.Product{}, r.rowError(err, id, "failed to delete product")
	}

	return p, nil
}

func (r *postgresProductRepository) rowError(err error, id, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Debug().Str("product_id", id).Msg("product not found")
		return model.ErrProductNotFound
	}
	r.logger.Error().Err(err).Str("product_id", id).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (model.Product, error) {
	var (
		id    string
		p     model.Product
		price *float64
	)
	if err := row.Scan(&id, &p.Name, &price); err != nil {
		return model.Product{}, err
	}
	p.ID = model.ID(id)
	p.Price = price
	return p, nil
}
