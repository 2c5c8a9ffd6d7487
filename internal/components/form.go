package components

import (
	"product-catalog/internal/dom"

	"golang.org/x/net/html"
)

// FormAddTemplate is the markup rendered by CreateFormAdd.
const FormAddTemplate = `
        <form class="add-form" aria-label="Add product">
            <input class="add-form__name" type="text" name="name" placeholder="Product name" />
            <button class="add-form__submit" type="submit">Add</button>
        </form>
    `

// CreateFormAdd renders the add-product form, by default as the last child of
// body, and attaches a submit listener. The listener always prevents
// navigation and then calls onSubmit, if set, with the form values.
func CreateFormAdd(doc Document, onSubmit SubmitHandler, opts ...Option) (*html.Node, error) {
	o := buildOptions("body", dom.BeforeEnd, opts)

	form, err := doc.Render(o.selector, o.position, FormAddTemplate)
	if err != nil || form == nil {
		return form, err
	}

	doc.AddEventListener(form, "submit", func(ev *dom.Event) {
		ev.PreventDefault()
		if onSubmit != nil {
			onSubmit(dom.FormData(form))
		}
	})

	return form, nil
}
