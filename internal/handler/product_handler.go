package handler

import (
	"net/http"

	"product-catalog/internal/model"
	"product-catalog/internal/repository"

	"github.com/rs/zerolog"
)

// ProductsController exposes the product CRUD operations as middleware-style
// handlers. It never writes error responses itself: every repository failure
// is handed to next exactly as the repository returned it.
type ProductsController struct {
	repo   repository.ProductRepository
	logger zerolog.Logger
}

// NewProductsController creates a controller backed by repo.
func NewProductsController(repo repository.ProductRepository, logger zerolog.Logger) *ProductsController {
	return &ProductsController{
		repo:   repo,
		logger: logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /products.
func (c *ProductsController) GetAll(req *Request, res ResponseSink, next NextFunc) {
	products, err := c.repo.Read(req.Context())
	if err != nil {
		next(err)
		return
	}

	c.logger.Debug().Int("count", len(products)).Msg("listed products")
	res.SendBody(model.NewEnvelope(products...))
}

// GetByID handles GET /products/{id}.
func (c *ProductsController) GetByID(req *Request, res ResponseSink, next NextFunc) {
	product, err := c.repo.ReadByID(req.Context(), req.ID)
	if err != nil {
		next(err)
		return
	}

	res.SendBody(model.NewEnvelope(product))
}

// Create handles POST /products.
func (c *ProductsController) Create(req *Request, res ResponseSink, next NextFunc) {
	product, err := c.repo.Create(req.Context(), req.Body)
	if err != nil {
		next(err)
		return
	}

	c.logger.Info().Str("product_id", product.ID.String()).Msg("product created")
	res.SetStatus(http.StatusCreated)
	res.SendBody(model.NewEnvelope(product))
}

// Update handles PATCH /products/{id}.
func (c *ProductsController) Update(req *Request, res ResponseSink, next NextFunc) {
	product, err := c.repo.Update(req.Context(), req.ID, req.Body)
	if err != nil {
		next(err)
		return
	}

	c.logger.Info().Str("product_id", product.ID.String()).Msg("product updated")
	res.SendBody(model.NewEnvelope(product))
}

// Delete handles DELETE /products/{id}. The envelope carries the removed product.
func (c *ProductsController) Delete(req *Request, res ResponseSink, next NextFunc) {
	product, err := c.repo.Delete(req.Context(), req.ID)
	if err != nil {
		next(err)
		return
	}

	c.logger.Info().Str("product_id", product.ID.String()).Msg("product deleted")
	res.SendBody(model.NewEnvelope(product))
}
