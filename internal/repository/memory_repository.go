package repository

import (
	"context"
	"strconv"
	"sync"

	"product-catalog/internal/model"

	"github.com/rs/zerolog"
)

// memoryProductRepository keeps products in a slice ordered by insertion.
type memoryProductRepository struct {
	products []model.Product
	nextID   int
	mutex    sync.RWMutex
	logger   zerolog.Logger
}

// NewMemoryProductRepository creates an in-memory product repository holding
// copies of the given products. New products receive sequential numeric ids
// continuing after the highest numeric id already present.
func NewMemoryProductRepository(logger zerolog.Logger, initial ...model.Product) ProductRepository {
	r := &memoryProductRepository{
		products: make([]model.Product, 0, len(initial)),
		nextID:   1,
		logger:   logger.With().Str("repository", "product-memory").Logger(),
	}

	for _, p := range initial {
		r.products = append(r.products, clone(p))
		if n, err := strconv.Atoi(p.ID.String()); err == nil && n >= r.nextID {
			r.nextID = n + 1
		}
	}

	return r
}

func (r *memoryProductRepository) Read(ctx context.Context) ([]model.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	products := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, clone(p))
	}
	return products, nil
}

func (r *memoryProductRepository) ReadByID(ctx context.Context, id string) (model.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		r.logger.Debug().Str("product_id", id).Msg("product not found")
		return model.Product{}, model.ErrProductNotFound
	}
	return clone(r.products[i]), nil
}

func (r *memoryProductRepository) Create(ctx context.Context, payload model.ProductInput) (model.Product, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	p := model.Product{ID: model.ID(strconv.Itoa(r.nextID))}
	apply(&p, payload)
	r.nextID++
	r.products = append(r.products, p)

	return clone(p), nil
}

func (r *memoryProductRepository) Update(ctx context.Context, id string, payload model.ProductInput) (model.Product, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		r.logger.Debug().Str("product_id", id).Msg("product not found")
		return model.Product{}, model.ErrProductNotFound
	}

	apply(&r.products[i], payload)
	return clone(r.products[i]), nil
}

func (r *memoryProductRepository) Delete(ctx context.Context, id string) (model.Product, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		r.logger.Debug().Str("product_id", id).Msg("product not found")
		return model.Product{}, model.ErrProductNotFound
	}

	deleted := r.products[i]
	r.products = append(r.products[:i], r.products[i+1:]...)
	return deleted, nil
}

// indexOf must be called with the mutex held.
func (r *memoryProductRepository) indexOf(id string) int {
	for i, p := range r.products {
		if p.ID.String() == id {
			return i
		}
	}
	return -1
}

// clone detaches the price pointer so callers cannot mutate stored state.
func clone(p model.Product) model.Product {
	if p.Price != nil {
		price := *p.Price
		p.Price = &price
	}
	return p
}
