package components

import (
	"strconv"
	"strings"

	"product-catalog/internal/dom"
	"product-catalog/internal/model"

	"golang.org/x/net/html"
)

// CreateProductList renders products as a ul.products list, by default as the
// last child of body. An empty catalogue renders an empty list.
func CreateProductList(r Renderer, products []model.Product, opts ...Option) (*html.Node, error) {
	o := buildOptions("body", dom.BeforeEnd, opts)
	return r.Render(o.selector, o.position, productListMarkup(products))
}

func productListMarkup(products []model.Product) string {
	var sb strings.Builder
	sb.WriteString(`<ul class="products">`)
	for _, p := range products {
		sb.WriteString(`<li class="product" data-id="`)
		sb.WriteString(html.EscapeString(p.ID.String()))
		sb.WriteString(`"><span class="product__name">`)
		sb.WriteString(html.EscapeString(p.Name))
		sb.WriteString(`</span>`)
		if p.Price != nil {
			sb.WriteString(`<span class="product__price">`)
			sb.WriteString(strconv.FormatFloat(*p.Price, 'f', 2, 64))
			sb.WriteString(`</span>`)
		}
		sb.WriteString(`</li>`)
	}
	sb.WriteString(`</ul>`)
	return sb.String()
}
