package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"product-catalog/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Request is the transport-neutral view of an incoming call.
type Request struct {
	ctx  context.Context
	ID   string
	Body model.ProductInput
}

// NewRequest builds a Request. A nil ctx is replaced by context.Background.
func NewRequest(ctx context.Context, id string, body model.ProductInput) *Request {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Request{ctx: ctx, ID: id, Body: body}
}

// Context returns the request context.
func (r *Request) Context() context.Context {
	return r.ctx
}

// ResponseSink receives the outcome of a successful handler. SetStatus and
// SendBody are independent; SetStatus only has an effect before SendBody.
type ResponseSink interface {
	SetStatus(code int)
	SendBody(body interface{})
}

// NextFunc forwards a failure to the error stage.
type NextFunc func(err error)

// HandlerFunc is the controller handler signature.
type HandlerFunc func(req *Request, res ResponseSink, next NextFunc)

// ErrorHandler is the error stage every forwarded failure ends up in.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Adapt turns a controller handler into an http.HandlerFunc. The path
// parameter "id" and the JSON body are extracted before the handler runs; a
// body that is not valid JSON goes straight to onError as model.ErrInvalidJSON.
func Adapt(h HandlerFunc, onError ErrorHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body model.ProductInput
		if err := decodeBody(r, &body); err != nil {
			onError(w, r, err)
			return
		}

		req := NewRequest(r.Context(), chi.URLParam(r, "id"), body)
		sink := &httpSink{w: w, status: http.StatusOK}

		h(req, sink, func(err error) {
			onError(w, r, err)
		})
	}
}

func decodeBody(r *http.Request, dst *model.ProductInput) error {
	if r.Body == nil || r.Method == http.MethodGet || r.Method == http.MethodDelete {
		return nil
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return model.ErrInvalidJSON
	}

	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return model.ErrInvalidJSON
	}
	return nil
}

// httpSink writes the envelope as JSON once SendBody is called.
type httpSink struct {
	w      http.ResponseWriter
	status int
	sent   bool
}

func (s *httpSink) SetStatus(code int) {
	if !s.sent {
		s.status = code
	}
}

func (s *httpSink) SendBody(body interface{}) {
	if s.sent {
		return
	}
	s.sent = true
	writeJSON(s.w, s.status, body)
}

// NewErrorHandler returns the error stage. Domain errors map to their HTTP
// status; anything else is logged and reported as a generic 500.
func NewErrorHandler(logger zerolog.Logger) ErrorHandler {
	logger = logger.With().Str("handler", "error").Logger()

	return func(w http.ResponseWriter, r *http.Request, err error) {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			status := http.StatusBadRequest
			if domainErr.Code == model.ErrCodeProductNotFound {
				status = http.StatusNotFound
			}
			writeError(w, status, domainErr.Code, domainErr.Message, logger)
			return
		}

		logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to do.
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Warn().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message, Code: code})
}
