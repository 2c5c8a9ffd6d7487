package dom

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Event is dispatched to listeners along the path from the target up to the
// document root.
type Event struct {
	Type          string
	Target        *html.Node
	CurrentTarget *html.Node

	defaultPrevented bool
	stopped          bool
}

// PreventDefault cancels the default action, such as form navigation.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Listener handles an event.
type Listener func(ev *Event)

// AddEventListener registers l for events of type eventType on n.
func (d *Document) AddEventListener(n *html.Node, eventType string, l Listener) {
	byType, ok := d.listeners[n]
	if !ok {
		byType = make(map[string][]Listener)
		d.listeners[n] = byType
	}
	byType[eventType] = append(byType[eventType], l)
}

// Dispatch fires an event of eventType at target and bubbles it to the root.
// Listeners added during dispatch do not run for this event.
func (d *Document) Dispatch(target *html.Node, eventType string) *Event {
	ev := &Event{Type: eventType, Target: target}

	for n := target; n != nil && !ev.stopped; n = n.Parent {
		listeners := d.listeners[n][eventType]
		if len(listeners) == 0 {
			continue
		}
		ev.CurrentTarget = n
		for _, l := range append([]Listener(nil), listeners...) {
			l(ev)
		}
	}
	ev.CurrentTarget = nil

	return ev
}

// Click fires a click at n. When the click is not cancelled and n is a submit
// button inside a form, the form is submitted.
func (d *Document) Click(n *html.Node) *Event {
	ev := d.Dispatch(n, "click")
	if ev.DefaultPrevented() || !isSubmitter(n) {
		return ev
	}
	if form := closestForm(n); form != nil {
		d.Submit(form)
	}
	return ev
}

// Submit fires a submit event at form. An uncancelled submit counts as a
// navigation.
func (d *Document) Submit(form *html.Node) *Event {
	ev := d.Dispatch(form, "submit")
	if !ev.DefaultPrevented() {
		d.navigations++
	}
	return ev
}

// Navigations returns how many submits went through without PreventDefault.
func (d *Document) Navigations() int {
	return d.navigations
}

// SetValue sets the current value of a form control.
func SetValue(n *html.Node, value string) {
	if n.DataAtom == atom.Textarea {
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			n.RemoveChild(c)
			c = next
		}
		n.AppendChild(&html.Node{Type: html.TextNode, Data: value})
		return
	}
	SetAttr(n, "value", value)
}

// FormData collects the named, enabled input and textarea values of form.
// Checkboxes and radios contribute only when checked.
func FormData(form *html.Node) url.Values {
	values := make(url.Values)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			collect(n, values)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(form)

	return values
}

func collect(n *html.Node, values url.Values) {
	name, ok := Attr(n, "name")
	if !ok || name == "" {
		return
	}
	if _, disabled := Attr(n, "disabled"); disabled {
		return
	}

	switch n.DataAtom {
	case atom.Input:
		typ, _ := Attr(n, "type")
		switch strings.ToLower(typ) {
		case "submit", "button", "reset", "image", "file":
			return
		case "checkbox", "radio":
			if _, checked := Attr(n, "checked"); !checked {
				return
			}
			value, ok := Attr(n, "value")
			if !ok {
				value = "on"
			}
			values.Add(name, value)
			return
		}
		value, _ := Attr(n, "value")
		values.Add(name, value)
	case atom.Textarea:
		values.Add(name, TextContent(n))
	}
}

func isSubmitter(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	typ, ok := Attr(n, "type")
	typ = strings.ToLower(typ)
	switch n.DataAtom {
	case atom.Button:
		return !ok || typ == "submit"
	case atom.Input:
		return typ == "submit" || typ == "image"
	}
	return false
}

func closestForm(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Form {
			return p
		}
	}
	return nil
}
