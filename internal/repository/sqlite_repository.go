package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"product-catalog/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// sqliteProductRepository implements the ProductRepository interface on top of
// an SQLite database opened through database.OpenSQLite.
type sqliteProductRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewSQLiteProductRepository creates a new SQLite-backed product repository.
func NewSQLiteProductRepository(db *sql.DB, logger zerolog.Logger) ProductRepository {
	return &sqliteProductRepository{
		db:     db,
		logger: logger.With().Str("repository", "product-sqlite").Logger(),
	}
}

func (r *sqliteProductRepository) Read(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price FROM products ORDER BY created_at, rowid`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanSQLProduct(rows)
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

func (r *sqliteProductRepository) ReadByID(ctx context.Context, id string) (model.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, price FROM products WHERE id = ?`, id)

	p, err := scanSQLProduct(row)
	if err != nil {
		return model.Product{}, r.rowError(err, id, "failed to query product")
	}
	return p, nil
}

func (r *sqliteProductRepository) Create(ctx context.Context, payload model.ProductInput) (model.Product, error) {
	p := model.Product{ID: model.ID(uuid.New().String())}
	apply(&p, payload)

	row := r.db.QueryRowContext(ctx,
		`INSERT INTO products (id, name, price) VALUES (?, ?, ?) RETURNING id, name, price`,
		p.ID.String(), p.Name, p.Price,
	)

	created, err := scanSQLProduct(row)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID.String()).Msg("failed to insert product")
		return model.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return created, nil
}

func (r *sqliteProductRepository) Update(ctx context.Context, id string, payload model.ProductInput) (model.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE products
		 SET name = COALESCE(?, name), price = COALESCE(?, price)
		 WHERE id = ?
		 RETURNING id, name, price`,
		payload.Name, payload.Price, id,
	)

	p, err := scanSQLProduct(row)
	if err != nil {
		return model.Product{}, r.rowError(err, id, "failed to update product")
	}
	return p, nil
}

func (r *sqliteProductRepository) Delete(ctx context.Context, id string) (model.Product, error) {
	row := r.db.QueryRowContext(ctx, `DELETE FROM products WHERE id = ? RETURNING id, name, price`, id)

	p, err := scanSQLProduct(row)
	if err != nil {
		return model.Product{}, r.rowError(err, id, "failed to delete product")
	}
	return p, nil
}

func (r *sqliteProductRepository) rowError(err error, id, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Debug().Str("product_id", id).Msg("product not found")
		return model.ErrProductNotFound
	}
	r.logger.Error().Err(err).Str("product_id", id).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}

func scanSQLProduct(row rowScanner) (model.Product, error) {
	var (
		id    string
		p     model.Product
		price sql.NullFloat64
	)
	if err := row.Scan(&id, &p.Name, &price); err != nil {
		return model.Product{}, err
	}
	p.ID = model.ID(id)
	if price.Valid {
		p.Price = &price.Float64
	}
	return p, nil
}
