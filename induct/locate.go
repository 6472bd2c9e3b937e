// Package induct implements supervised wrapper induction: locating labeled
// values in a page, generalizing their position into selectors and
// patterns, and selecting the wrapper that generalizes best across the
// training pages.
package induct

import (
	"unicode/utf8"

	"github.com/fwojciec/swi"
	"github.com/fwojciec/swi/fuzzy"
)

// MatchKind tells where a Match was found.
type MatchKind int

const (
	// Structural matches point at a document node and attribute.
	Structural MatchKind = iota
	// Structured matches point at a metadata path.
	Structured
)

// Match is a candidate location of a target value.
type Match struct {
	Score  int
	Length int
	Kind   MatchKind

	// Node and Attribute are set for Structural matches. Attribute is
	// swi.TextAttribute when the node text matched.
	Node      swi.Node
	Attribute string

	// Path is set for Structured matches.
	Path swi.Path
}

// FindBestMatches returns the locations whose content best matches target.
//
// Document text and scalar attributes are scored with partial similarity,
// since they commonly carry noise around the value; metadata scalars are
// expected near-exact and use whole-string similarity. Only content at
// least as long as target is considered. The best-scoring ties are then
// re-ranked by score minus content length, which favours the tightest
// location, and the new ties are returned in document order followed by
// metadata order. A node text tie whose text is carried unchanged by a
// tied descendant is dropped in favour of the innermost node.
func FindBestMatches(doc swi.Node, meta *swi.Metadata, target string) ([]Match, error) {
	if target == "" {
		return nil, swi.Errorf(swi.EINVALID, "target value required")
	}
	size := utf8.RuneCountInString(target)

	var matches []Match
	if doc != nil {
		for _, n := range doc.Descendants() {
			matches = append(matches, nodeMatches(n, target, size)...)
		}
	}
	for _, path := range meta.Paths() {
		text, ok := meta.ValueAt(path)
		if !ok {
			continue
		}
		length := utf8.RuneCountInString(text)
		if length < size {
			continue
		}
		matches = append(matches, Match{
			Score:  fuzzy.Ratio(target, text),
			Length: length,
			Kind:   Structured,
			Path:   path,
		})
	}

	if len(matches) == 0 {
		return nil, nil
	}

	best := topScored(matches)
	for i := range best {
		best[i].Score -= best[i].Length
	}
	return innermost(topScored(best)), nil
}

// innermost drops text matches on nodes that enclose another text match
// of the same length. A descendant's text is part of its ancestor's, so
// equal length means the ancestor adds nothing around the value.
func innermost(matches []Match) []Match {
	out := matches[:0:0]
	for i, m := range matches {
		if !encloses(m, matches, i) {
			out = append(out, m)
		}
	}
	return out
}

func encloses(m Match, matches []Match, self int) bool {
	if m.Kind != Structural || m.Attribute != swi.TextAttribute {
		return false
	}
	for j, o := range matches {
		if j == self || o.Kind != Structural || o.Attribute != swi.TextAttribute || o.Length != m.Length {
			continue
		}
		for p := o.Node.Parent(); p != nil; p = p.Parent() {
			if p == m.Node {
				return true
			}
		}
	}
	return false
}

func nodeMatches(n swi.Node, target string, size int) []Match {
	var matches []Match

	text := n.Text()
	if length := utf8.RuneCountInString(text); length >= size {
		matches = append(matches, Match{
			Score:     fuzzy.PartialRatio(target, text),
			Length:    length,
			Kind:      Structural,
			Node:      n,
			Attribute: swi.TextAttribute,
		})
	}

	// Attributes of meta tags are covered by the metadata extractor.
	if n.Name() == "meta" {
		return matches
	}
	for _, attr := range n.Attributes() {
		if attr.Multi() {
			continue
		}
		length := utf8.RuneCountInString(attr.Value)
		if length < size {
			continue
		}
		matches = append(matches, Match{
			Score:     fuzzy.PartialRatio(target, attr.Value),
			Length:    length,
			Kind:      Structural,
			Node:      n,
			Attribute: attr.Name,
		})
	}
	return matches
}

// topScored returns the matches sharing the highest score, keeping their
// relative order.
func topScored(matches []Match) []Match {
	top := matches[0].Score
	for _, m := range matches[1:] {
		if m.Score > top {
			top = m.Score
		}
	}
	var out []Match
	for _, m := range matches {
		if m.Score == top {
			out = append(out, m)
		}
	}
	return out
}
