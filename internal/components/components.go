// Package components builds the catalogue page fragments on top of the dom
// renderer.
package components

import (
	"net/url"

	"product-catalog/internal/dom"

	"golang.org/x/net/html"
)

// Renderer inserts markup relative to the element matching selector.
// *dom.Document satisfies it.
type Renderer interface {
	Render(selector string, position dom.Position, markup string) (*html.Node, error)
}

// Document is a Renderer that also accepts event listeners.
type Document interface {
	Renderer
	AddEventListener(n *html.Node, eventType string, l dom.Listener)
}

// SubmitHandler receives the form values of a submitted form.
type SubmitHandler func(data url.Values)

type options struct {
	selector string
	position dom.Position
}

// Option overrides where a component is rendered.
type Option func(*options)

// WithSelector sets the target element selector.
func WithSelector(selector string) Option {
	return func(o *options) {
		o.selector = selector
	}
}

// WithPosition sets the insertion position relative to the target.
func WithPosition(position dom.Position) Option {
	return func(o *options) {
		o.position = position
	}
}

func buildOptions(selector string, position dom.Position, opts []Option) options {
	o := options{selector: selector, position: position}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
