// Package apiclient talks to the product REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"product-catalog/internal/model"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrEmptyResults is returned when a single-entity response carries an
// envelope with no results.
var ErrEmptyResults = errors.New("response contained no results")

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	StatusCode int
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.StatusText)
}

// Client wraps the CRUD endpoints of one base resource URL.
type Client struct {
	baseURL string
	doer    Doer
	timeout time.Duration
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithDoer replaces the HTTP transport.
func WithDoer(d Doer) Option {
	return func(c *Client) {
		c.doer = d
	}
}

// WithTimeout sets the timeout of the default transport. It has no effect
// together with WithDoer.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for baseURL, e.g. "http://localhost:8080/products".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: 10 * time.Second,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.doer == nil {
		c.doer = &http.Client{
			Timeout:   c.timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	c.logger = c.logger.With().Str("component", "api-client").Logger()

	return c
}

// GetProducts fetches the whole collection.
func (c *Client) GetProducts(ctx context.Context) ([]model.Product, error) {
	data, err := c.send(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}
	return decodeProducts(data)
}

// CreateProduct posts a new product and returns the created entity.
func (c *Client) CreateProduct(ctx context.Context, input model.ProductInput) (model.Product, error) {
	data, err := c.send(ctx, http.MethodPost, c.baseURL, &input)
	if err != nil {
		return model.Product{}, err
	}
	return decodeProduct(data)
}

// UpdateProduct patches the product with the given id.
func (c *Client) UpdateProduct(ctx context.Context, id string, input model.ProductInput) (model.Product, error) {
	data, err := c.send(ctx, http.MethodPatch, c.itemURL(id), &input)
	if err != nil {
		return model.Product{}, err
	}
	return decodeProduct(data)
}

// DeleteProduct deletes the product with the given id and returns whatever
// collection the server answers with.
func (c *Client) DeleteProduct(ctx context.Context, id string) ([]model.Product, error) {
	data, err := c.send(ctx, http.MethodDelete, c.itemURL(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeProducts(data)
}

func (c *Client) itemURL(id string) string {
	return c.baseURL + "/" + url.PathEscape(id)
}

func (c *Client) send(ctx context.Context, method, target string, input *model.ProductInput) ([]byte, error) {
	var body io.Reader
	if input != nil {
		payload, err := json.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if input != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("url", target).Msg("request failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, StatusText: statusText(resp)}
		c.logger.Warn().
			Str("method", method).
			Str("url", target).
			Int("status", resp.StatusCode).
			Msg("unexpected response status")
		return nil, statusErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

// statusText returns the reason phrase the server sent, falling back to the
// canonical one for the code.
func statusText(resp *http.Response) string {
	code := fmt.Sprintf("%d", resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

type envelope struct {
	Results *[]model.Product `json:"results"`
}

func decodeProducts(data []byte) ([]model.Product, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Product{}, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Results != nil {
		return *env.Results, nil
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func decodeProduct(data []byte) (model.Product, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Results != nil {
		if len(*env.Results) == 0 {
			return model.Product{}, ErrEmptyResults
		}
		return (*env.Results)[0], nil
	}

	var product model.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return model.Product{}, fmt.Errorf("failed to decode product: %w", err)
	}
	return product, nil
}
