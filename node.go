package swi

// TextAttribute is the attribute name that addresses a node's full text
// content instead of one of its markup attributes.
const TextAttribute = "#text"

// Attribute is a single markup attribute of a Node, in document order.
// Multi-valued attributes (class, rel, ...) carry their whitespace-separated
// values in List; Value always holds the raw attribute text.
type Attribute struct {
	Name  string
	Value string
	List  []string
}

// Multi reports whether the attribute is a multi-valued (list) attribute.
func (a Attribute) Multi() bool {
	return a.List != nil
}

// Node is an element of a parsed document.
//
// Implementations must be comparable: two Nodes referring to the same
// element compare equal with ==. The document root is a Node whose Name is
// empty and whose Parent is nil; the top-level element's Parent is nil too.
type Node interface {
	// Name returns the lower-case tag name, or "" for the document root.
	Name() string

	// Text returns the concatenated text of the node and its descendants.
	Text() string

	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)

	// Attributes returns all attributes in document order.
	Attributes() []Attribute

	// Parent returns the enclosing element, or nil at the top.
	Parent() Node

	// Descendants returns all element descendants in document order,
	// excluding the node itself.
	Descendants() []Node

	// Select returns the descendants matching a CSS selector in document
	// order. Ancestors outside the node may satisfy combinators.
	// Returns EINVALID if the selector cannot be compiled.
	Select(selector string) ([]Node, error)
}

// Parser turns markup into a document root.
type Parser interface {
	// Parse parses markup and returns the document root node.
	Parse(markup string) (Node, error)
}

// ValueOf returns the value a wrapper attribute addresses on a node: the
// node's text for TextAttribute, otherwise the attribute value.
func ValueOf(n Node, attribute string) (string, bool) {
	if attribute == TextAttribute {
		return n.Text(), true
	}
	return n.Attr(attribute)
}
