// Package web serves the catalogue page, built server side with the dom
// renderer and the page components and backed by the product API client.
package web

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"product-catalog/internal/components"
	"product-catalog/internal/dom"
	"product-catalog/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductClient is the part of the API client the page needs.
// *apiclient.Client satisfies it.
type ProductClient interface {
	GetProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, input model.ProductInput) (model.Product, error)
}

const pageShell = `<!DOCTYPE html><html lang="es"><head><meta charset="utf-8"><title>Productos</title></head><body><main id="app"></main></body></html>`

// Handler serves GET and POST on its mount point.
type Handler struct {
	client   ProductClient
	basePath string
	logger   zerolog.Logger
}

// NewHandler returns the UI as an http.Handler to be mounted by the router
// at basePath. The add form posts back to basePath.
func NewHandler(client ProductClient, basePath string, logger zerolog.Logger) http.Handler {
	h := &Handler{
		client:   client,
		basePath: basePath,
		logger:   logger.With().Str("handler", "web").Logger(),
	}

	r := chi.NewRouter()
	r.Get("/", h.page)
	r.Post("/", h.add)
	return r
}

// page renders the header, the product list and the add form.
func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	products, err := h.client.GetProducts(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load products")
		http.Error(w, "failed to load products: "+err.Error(), http.StatusBadGateway)
		return
	}

	doc, err := h.newPage(nil)
	if err == nil {
		_, err = components.CreateProductList(doc, products, components.WithSelector("#app"), components.WithPosition(dom.AfterBegin))
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc.HTML()))
}

// add replays the posted form through the page's own add form: the value is
// filled in and the submit button clicked, so creation runs through the same
// submit handler a browser would trigger.
func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var createErr error
	submitted := false
	doc, err := h.newPage(func(data url.Values) {
		submitted = true
		name := strings.TrimSpace(data.Get("name"))
		_, createErr = h.client.CreateProduct(r.Context(), model.ProductInput{Name: &name})
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	input, err := doc.Query(`form.add-form input[name="name"]`)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	dom.SetValue(input, r.PostForm.Get("name"))

	button, err := doc.Query(`form.add-form button[type="submit"]`)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	doc.Click(button)

	if !submitted {
		http.Error(w, "form was not submitted", http.StatusInternalServerError)
		return
	}
	if createErr != nil {
		h.logger.Error().Err(createErr).Msg("failed to create product")
		http.Error(w, "failed to create product: "+createErr.Error(), http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, h.basePath, http.StatusSeeOther)
}

// newPage builds the page shell with the header and the add form wired to
// onSubmit.
func (h *Handler) newPage(onSubmit components.SubmitHandler) (*dom.Document, error) {
	doc, err := dom.Parse(pageShell)
	if err != nil {
		return nil, err
	}
	if _, err := components.CreateHeader(doc); err != nil {
		return nil, err
	}

	form, err := components.CreateFormAdd(doc, onSubmit, components.WithSelector("details.add"))
	if err != nil {
		return nil, err
	}
	dom.SetAttr(form, "method", "post")
	dom.SetAttr(form, "action", h.basePath)

	return doc, nil
}
