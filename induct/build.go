package induct

import (
	"unicode/utf8"

	"github.com/fwojciec/swi"
	"github.com/fwojciec/swi/fuzzy"
)

// DefaultParentThreshold is the minimum similarity a group member's value
// must reach beneath a candidate common parent.
const DefaultParentThreshold = 98

// BuildCss builds a Css wrapper locating the attribute of node.
//
// The selector is the sanitized and minimized path of node. When it
// selects several values the wrapper keeps the index of the one most
// similar to target, and derives its pattern from that value. A failed
// alignment leaves the wrapper without a pattern.
func BuildCss(doc, node swi.Node, attribute, target string) (*swi.Css, error) {
	c, _, err := buildCss(doc, node, attribute, target)
	return c, err
}

func buildCss(doc, node swi.Node, attribute, target string) (*swi.Css, FragmentedSelector, error) {
	c := &swi.Css{Attribute: attribute, Target: target}
	if node == nil {
		return c, nil, nil
	}

	path, err := Minimize(doc, Sanitize(BuildPath(node), target))
	if err != nil {
		return nil, nil, err
	}
	c.Selector = path.String()

	values := c.Values(doc)
	if len(values) == 0 {
		return c, path, nil
	}
	c.Index = bestIndex(target, values)
	if target != "" {
		if p, err := Derive(target, values[c.Index]); err == nil {
			c.Pattern = p
		}
	}
	return c, path, nil
}

// bestIndex returns the index of the value most similar to target among
// those at least as long as target; the first wins ties.
func bestIndex(target string, values []string) int {
	size := utf8.RuneCountInString(target)
	best, index := 0, 0
	for i, v := range values {
		if utf8.RuneCountInString(v) < size {
			continue
		}
		if score := fuzzy.PartialRatio(target, v); score > best {
			best, index = score, i
		}
	}
	return index
}

// BuildMeta builds a Meta wrapper for the scalar at path.
// Returns EMETADATA when the page has no metadata or path does not resolve.
func BuildMeta(meta *swi.Metadata, path swi.Path, target string) (*swi.Meta, error) {
	if meta == nil {
		return nil, swi.Errorf(swi.EMETADATA, "no metadata found")
	}
	raw, ok := meta.ValueAt(path)
	if !ok {
		return nil, swi.Errorf(swi.EMETADATA, "no metadata value at %s", path)
	}

	m := &swi.Meta{Path: path, Target: target}
	if p, err := Derive(target, raw); err == nil {
		m.Pattern = p
	}
	return m, nil
}

// member is a group member together with its minimized selector path.
type member struct {
	css  *swi.Css
	path FragmentedSelector
}

// groupBuilder collects the members of a repeated field that share a shape.
type groupBuilder struct {
	shape   []string
	members []member
}

func (g *groupBuilder) accepts(shape []string) bool {
	if len(shape) != len(g.shape) {
		return false
	}
	for i := range shape {
		if shape[i] != g.shape[i] {
			return false
		}
	}
	return true
}

// clusterMembers assigns every member, in order, to the first group of the
// same shape, opening a new group when none matches.
func clusterMembers(members []member) []*groupBuilder {
	var groups []*groupBuilder
	for _, m := range members {
		shape := m.path.Shape()
		var target *groupBuilder
		for _, g := range groups {
			if g.accepts(shape) {
				target = g
				break
			}
		}
		if target == nil {
			target = &groupBuilder{shape: shape}
			groups = append(groups, target)
		}
		target.members = append(target.members, m)
	}
	return groups
}

// build finalizes the group: it finds the common parent of the members and
// builds the group's own selector from it. The attribute and pattern of the
// first member are shared by the whole group.
func (g *groupBuilder) build(doc swi.Node, threshold int) (*swi.Group, error) {
	first := g.members[0].css
	group := &swi.Group{Shape: g.shape}
	for _, m := range g.members {
		group.Members = append(group.Members, m.css)
	}

	anchor := g.commonParent(doc, threshold)
	own, _, err := buildCss(doc, anchor, first.Attribute, "")
	if err != nil {
		return nil, err
	}
	own.Pattern = first.Pattern
	group.Own = *own
	return group, nil
}

// commonParent returns the closest ancestor-or-self of the first member's
// node from which every member selector locates its labeled value. A
// single member anchors on its own node. Returns nil when nothing
// qualifies.
func (g *groupBuilder) commonParent(doc swi.Node, threshold int) swi.Node {
	first := g.members[0].css
	start := selectFirst(doc, first.Selector)
	if start == nil || len(g.members) == 1 {
		return start
	}
	for n := start; n != nil; n = n.Parent() {
		if g.locatesAll(n, threshold) {
			return n
		}
	}
	return nil
}

// locatesAll reports whether, beneath anchor, every member selector reaches
// a node whose value matches the member's target.
func (g *groupBuilder) locatesAll(anchor swi.Node, threshold int) bool {
	for _, m := range g.members {
		if !locates(anchor, m.css, threshold) {
			return false
		}
	}
	return true
}

func locates(anchor swi.Node, c *swi.Css, threshold int) bool {
	if c.Selector == "" {
		return false
	}
	roots, err := anchor.Select(c.Selector)
	if err != nil {
		return false
	}
	for _, root := range roots {
		candidates := append([]swi.Node{root}, root.Descendants()...)
		for _, n := range candidates {
			v, ok := swi.ValueOf(n, c.Attribute)
			if !ok || v == "" {
				continue
			}
			if fuzzy.PartialRatio(c.Target, v) >= threshold {
				return true
			}
		}
	}
	return false
}

func selectFirst(doc swi.Node, selector string) swi.Node {
	if selector == "" {
		return nil
	}
	nodes, err := doc.Select(selector)
	if err != nil || len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}
