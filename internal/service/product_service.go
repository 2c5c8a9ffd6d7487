package service

import (
	"context"

	"product-catalog/internal/model"
	"product-catalog/internal/repository"

	"github.com/rs/zerolog"
)

// productService decorates a ProductRepository with structured logging. It
// satisfies the same interface and passes errors through untouched so the
// controller still sees exactly what the storage layer returned.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService wraps productRepo with logging.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) repository.ProductRepository {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

func (s *productService) Read(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.Read(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read products")
		return nil, err
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")
	return products, nil
}

func (s *productService) ReadByID(ctx context.Context, id string) (model.Product, error) {
	product, err := s.productRepo.ReadByID(ctx, id)
	if err != nil {
		s.logFailure(err, id, "failed to read product")
		return product, err
	}

	s.logger.Debug().Str("product_id", id).Msg("retrieved product")
	return product, nil
}

func (s *productService) Create(ctx context.Context, payload model.ProductInput) (model.Product, error) {
	product, err := s.productRepo.Create(ctx, payload)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return product, err
	}

	s.logger.Debug().Str("product_id", product.ID.String()).Msg("created product")
	return product, nil
}

func (s *productService) Update(ctx context.Context, id string, payload model.ProductInput) (model.Product, error) {
	product, err := s.productRepo.Update(ctx, id, payload)
	if err != nil {
		s.logFailure(err, id, "failed to update product")
		return product, err
	}

	s.logger.Debug().Str("product_id", id).Msg("updated product")
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id string) (model.Product, error) {
	product, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logFailure(err, id, "failed to delete product")
		return product, err
	}

	s.logger.Debug().Str("product_id", id).Msg("deleted product")
	return product, nil
}

// logFailure keeps missing products at debug level; they are expected traffic.
func (s *productService) logFailure(err error, id, msg string) {
	if err == model.ErrProductNotFound {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return
	}
	s.logger.Error().Err(err).Str("product_id", id).Msg(msg)
}
