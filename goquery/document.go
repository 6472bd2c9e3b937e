// Package goquery implements the swi document and metadata abstractions on
// top of goquery, cascadia and golang.org/x/net/html.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/swi"
	"golang.org/x/net/html"
)

// Ensure Parser implements swi.Parser at compile time.
var _ swi.Parser = (*Parser)(nil)

// Ensure Node implements swi.Node at compile time.
var _ swi.Node = Node{}

// multiValued lists the attributes whose value is a whitespace-separated
// list rather than a single string.
var multiValued = map[string]bool{
	"class":          true,
	"rel":            true,
	"rev":            true,
	"accept-charset": true,
	"headers":        true,
	"accesskey":      true,
	"dropzone":       true,
}

// Parser parses HTML into goquery-backed nodes.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses markup and returns the document root.
func (p *Parser) Parse(markup string) (swi.Node, error) {
	if markup == "" {
		return nil, swi.Errorf(swi.EINVALID, "empty markup")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, swi.Errorf(swi.EINVALID, "failed to parse HTML: %v", err)
	}
	return Node{n: doc.Nodes[0]}, nil
}

// Node wraps an *html.Node. Node values are comparable, and two Nodes
// wrapping the same element are equal.
type Node struct {
	n *html.Node
}

// NewNode wraps an existing *html.Node.
func NewNode(n *html.Node) Node {
	return Node{n: n}
}

// HTMLNode returns the wrapped node.
func (n Node) HTMLNode() *html.Node {
	return n.n
}

// Name returns the tag name, or "" for the document root.
func (n Node) Name() string {
	if n.n.Type != html.ElementNode {
		return ""
	}
	return n.n.Data
}

// Text returns the combined text of the node and its descendants.
func (n Node) Text() string {
	return goquery.NewDocumentFromNode(n.n).Text()
}

// Attr returns the value of the named attribute.
func (n Node) Attr(name string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Attributes returns the node's attributes in document order.
func (n Node) Attributes() []swi.Attribute {
	if len(n.n.Attr) == 0 {
		return nil
	}
	attrs := make([]swi.Attribute, 0, len(n.n.Attr))
	for _, a := range n.n.Attr {
		if a.Namespace != "" {
			continue
		}
		attr := swi.Attribute{Name: a.Key, Value: a.Val}
		if multiValued[a.Key] {
			attr.List = append([]string{}, strings.Fields(a.Val)...)
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

// Parent returns the enclosing element, or nil for the top-level element
// and the document root.
func (n Node) Parent() swi.Node {
	p := n.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return Node{n: p}
}

// Descendants returns all element descendants in document order.
func (n Node) Descendants() []swi.Node {
	var out []swi.Node
	var stack []*html.Node
	for c := n.n.LastChild; c != nil; c = c.PrevSibling {
		stack = append(stack, c)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Type != html.ElementNode {
			continue
		}
		out = append(out, Node{n: cur})
		for c := cur.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return out
}

// Select returns the descendants matching selector in document order.
func (n Node) Select(selector string) ([]swi.Node, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, swi.Errorf(swi.EINVALID, "invalid selector %q: %v", selector, err)
	}
	found := goquery.NewDocumentFromNode(n.n).FindMatcher(m).Nodes
	out := make([]swi.Node, len(found))
	for i, f := range found {
		out[i] = Node{n: f}
	}
	return out, nil
}
