package components

import (
	"product-catalog/internal/dom"

	"golang.org/x/net/html"
)

// HeaderTemplate is the markup rendered by CreateHeader.
const HeaderTemplate = `
        <header class="header">
            <div class="header__container">
                <img src="favicon.png" alt="Logo de la empresa" class="header__logo" />
                <h1 class="header__title">Productos</h1>
            </div>
            <menu>
              <button class="header__nav-button" type="button" aria-expanded="false" aria-controls="add">Add</button>
            </menu>
        </header>
        <details class="add">
            <summary class="header__nav-title">Add</summary>
        </details>
    `

// CreateHeader renders the page header, by default as the first child of body.
// It returns the header element.
func CreateHeader(r Renderer, opts ...Option) (*html.Node, error) {
	o := buildOptions("body", dom.AfterBegin, opts)
	return r.Render(o.selector, o.position, HeaderTemplate)
}
