package swi

// WrapperKind identifies a Wrapper variant.
type WrapperKind string

// Wrapper variants.
const (
	KindCss   WrapperKind = "css"
	KindMeta  WrapperKind = "meta"
	KindGroup WrapperKind = "group"
	KindList  WrapperKind = "list"
)

// Wrapper is an extraction rule learned from labeled pages.
// The set of variants is closed: *Css, *Meta, *Group and *List.
type Wrapper interface {
	// Kind returns the variant tag.
	Kind() WrapperKind

	// Extract applies the wrapper to a parsed page. A rule that resolves
	// nothing returns an empty slice.
	Extract(doc Node, meta *Metadata) []string

	wrapper()
}

// Css locates a value through a CSS selector and an attribute of the
// selected nodes (TextAttribute for the node text).
type Css struct {
	Selector  string
	Attribute string
	Pattern   *Pattern
	Index     int

	// Target is the labeled value the wrapper was built from.
	Target string
}

// Kind implements Wrapper.
func (c *Css) Kind() WrapperKind { return KindCss }

func (c *Css) wrapper() {}

// Simplify isolates the value inside raw.
func (c *Css) Simplify(raw string) string {
	return Simplify(c.Pattern, raw)
}

// Values returns the non-empty raw values of the selected nodes in document
// order. Nodes lacking the attribute are skipped.
func (c *Css) Values(doc Node) []string {
	if c.Selector == "" || doc == nil {
		return nil
	}
	nodes, err := doc.Select(c.Selector)
	if err != nil {
		return nil
	}

	var values []string
	for _, n := range nodes {
		if v, ok := ValueOf(n, c.Attribute); ok && v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Extract returns the value at the stored index, falling back to the first
// non-blank value when the page holds fewer matches or the indexed value
// simplifies to nothing. Index counts the entries of Values.
func (c *Css) Extract(doc Node, _ *Metadata) []string {
	values := c.Values(doc)
	if c.Index >= 0 && c.Index < len(values) {
		if s := c.Simplify(values[c.Index]); s != "" {
			return []string{s}
		}
	}
	for _, v := range values {
		if s := c.Simplify(v); s != "" {
			return []string{s}
		}
	}
	return nil
}

// Meta locates a value inside the structured metadata of a page.
type Meta struct {
	Path    Path
	Pattern *Pattern
	Target  string
}

// Kind implements Wrapper.
func (m *Meta) Kind() WrapperKind { return KindMeta }

func (m *Meta) wrapper() {}

// Simplify isolates the value inside raw.
func (m *Meta) Simplify(raw string) string {
	return Simplify(m.Pattern, raw)
}

// Extract returns the simplified value at the path, or nothing when the
// path no longer resolves.
func (m *Meta) Extract(_ Node, meta *Metadata) []string {
	raw, ok := meta.ValueAt(m.Path)
	if !ok {
		return nil
	}
	if v := m.Simplify(raw); v != "" {
		return []string{v}
	}
	return nil
}

// Group extracts a repeated field. Own selects the common parents
// (anchors) of the members; each member selector is then applied beneath
// every anchor. Own.Attribute and Own.Pattern are shared by all values.
type Group struct {
	Own     Css
	Members []*Css

	// Shape is the leading token of every selector level shared by the
	// members.
	Shape []string
}

// Kind implements Wrapper.
func (g *Group) Kind() WrapperKind { return KindGroup }

func (g *Group) wrapper() {}

// Simplify isolates the value inside raw.
func (g *Group) Simplify(raw string) string {
	return Simplify(g.Own.Pattern, raw)
}

// Extract returns the anchor values followed by the member values found
// under each anchor, de-duplicated by raw value with the first occurrence
// kept. For text groups an anchor contributes its own text only when no
// member resolves beneath it, since its text concatenates the member texts.
func (g *Group) Extract(doc Node, _ *Metadata) []string {
	if g.Own.Selector == "" || doc == nil {
		return nil
	}
	anchors, err := doc.Select(g.Own.Selector)
	if err != nil {
		return nil
	}

	var nested []Node
	var nodes []Node
	for _, anchor := range anchors {
		var found []Node
		for _, m := range g.Members {
			if m.Selector == "" {
				continue
			}
			sel, err := anchor.Select(m.Selector)
			if err != nil {
				continue
			}
			found = append(found, sel...)
		}
		// A text anchor's text already contains its members'; it is kept
		// only when no member resolves under it.
		if g.Own.Attribute != TextAttribute || len(found) == 0 {
			nodes = append(nodes, anchor)
		}
		nested = append(nested, found...)
	}
	nodes = append(nodes, nested...)

	seen := make(map[string]bool)
	var out []string
	for _, n := range nodes {
		raw, ok := ValueOf(n, g.Own.Attribute)
		if !ok || raw == "" || seen[raw] {
			continue
		}
		seen[raw] = true
		if v := g.Simplify(raw); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// List aggregates wrappers whose values could not be correlated into a
// single Group.
type List struct {
	Members []Wrapper
}

// Kind implements Wrapper.
func (l *List) Kind() WrapperKind { return KindList }

func (l *List) wrapper() {}

// Extract concatenates the member results in order.
func (l *List) Extract(doc Node, meta *Metadata) []string {
	var out []string
	for _, m := range l.Members {
		out = append(out, m.Extract(doc, meta)...)
	}
	return out
}
