// Package dom is a small server-side document model: CSS selector lookup,
// adjacent HTML insertion and a bubbling event model over golang.org/x/net/html.
//
// A Document is not safe for concurrent use.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Position is an insertion position relative to a target element.
type Position string

const (
	BeforeBegin Position = "beforebegin"
	AfterBegin  Position = "afterbegin"
	BeforeEnd   Position = "beforeend"
	AfterEnd    Position = "afterend"
)

var (
	// ErrElementNotFound matches every *NotFoundError.
	ErrElementNotFound = errors.New("element not found")
	// ErrSyntax is returned for invalid selectors and unknown positions.
	ErrSyntax = errors.New("syntax error")
	// ErrNoModificationAllowed is returned when inserting next to a node
	// whose parent is the document itself.
	ErrNoModificationAllowed = errors.New("no modification allowed")
)

// NotFoundError reports a selector that matched nothing.
type NotFoundError struct {
	Selector string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Element with selector %s not found", e.Selector)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrElementNotFound
}

// ParsePosition parses a position name, ignoring case.
func ParsePosition(s string) (Position, error) {
	switch p := Position(strings.ToLower(s)); p {
	case BeforeBegin, AfterBegin, BeforeEnd, AfterEnd:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown insertion position %q", ErrSyntax, s)
	}
}

// Document is a parsed HTML document plus the event listeners attached to
// its nodes.
type Document struct {
	root        *html.Node
	listeners   map[*html.Node]map[string][]Listener
	navigations int
}

// NewDocument returns an empty document with html, head and body elements.
func NewDocument() *Document {
	doc, _ := Parse("")
	return doc
}

// Parse parses markup as a complete document. Missing html, head and body
// elements are created the way a browser would.
func Parse(markup string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{
		root:      root,
		listeners: make(map[*html.Node]map[string][]Listener),
	}, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the body element.
func (d *Document) Body() *html.Node {
	n, _ := d.Query("body")
	return n
}

// Query returns the first element matching selector. A selector that
// matches nothing yields a *NotFoundError.
func (d *Document) Query(selector string) (*html.Node, error) {
	return QueryIn(d.root, selector)
}

// QueryIn is Query scoped to the descendants of n (n itself included).
func QueryIn(n *html.Node, selector string) (*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid selector %q: %v", ErrSyntax, selector, err)
	}
	found := sel.MatchFirst(n)
	if found == nil {
		return nil, &NotFoundError{Selector: selector}
	}
	return found, nil
}

// QueryAll returns every element under n matching selector, in document order.
func QueryAll(n *html.Node, selector string) ([]*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid selector %q: %v", ErrSyntax, selector, err)
	}
	return sel.MatchAll(n), nil
}

// Render parses markup and inserts it at position relative to the first
// element matching selector. It returns the first element among the inserted
// nodes, or nil when markup contained no element. Nothing is inserted when an
// error is returned.
func (d *Document) Render(selector string, position Position, markup string) (*html.Node, error) {
	target, err := d.Query(selector)
	if err != nil {
		return nil, err
	}
	return InsertAdjacentHTML(target, position, markup)
}

// InsertAdjacentHTML inserts markup at position relative to target.
func InsertAdjacentHTML(target *html.Node, position Position, markup string) (*html.Node, error) {
	pos, err := ParsePosition(string(position))
	if err != nil {
		return nil, err
	}

	context := target
	if pos == BeforeBegin || pos == AfterEnd {
		context = target.Parent
		if context == nil || context.Type == html.DocumentNode {
			return nil, ErrNoModificationAllowed
		}
	}
	if context.Type != html.ElementNode || context.DataAtom == atom.Html {
		context = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	}

	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}

	parent, ref := target, (*html.Node)(nil)
	switch pos {
	case BeforeBegin:
		parent, ref = target.Parent, target
	case AfterBegin:
		ref = target.FirstChild
	case AfterEnd:
		parent, ref = target.Parent, target.NextSibling
	}

	var first *html.Node
	for _, n := range nodes {
		parent.InsertBefore(n, ref)
		if first == nil && n.Type == html.ElementNode {
			first = n
		}
	}
	return first, nil
}

// OuterHTML serializes n including its own tags.
func OuterHTML(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

// HTML serializes the whole document.
func (d *Document) HTML() string {
	return OuterHTML(d.root)
}

// Attr returns the value of the named attribute and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the named attribute.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// TextContent concatenates the text nodes under n.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// Contains reports whether n is ancestor or equal to other.
func Contains(n, other *html.Node) bool {
	for p := other; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}
