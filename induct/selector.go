package induct

import (
	"fmt"
	"strings"

	"github.com/fwojciec/swi"
)

// TokenKind identifies the part of a selector level a Token renders.
type TokenKind int

// Token kinds.
const (
	TokenTag TokenKind = iota
	TokenID
	TokenClass
	TokenAttr
)

// Token is one simple selector: a tag name, an id, a class or the presence
// of an attribute. Value holds the unescaped name.
type Token struct {
	Kind  TokenKind
	Value string
}

// String renders the token as CSS. Ids starting with a digit use the
// attribute-equality form since the hash form rejects a leading digit.
func (t Token) String() string {
	switch t.Kind {
	case TokenID:
		if t.Value != "" && t.Value[0] >= '0' && t.Value[0] <= '9' {
			return `[id=` + quote(t.Value) + `]`
		}
		return "#" + cssEscape(t.Value)
	case TokenClass:
		return "." + cssEscape(t.Value)
	case TokenAttr:
		return "[" + cssEscape(t.Value) + "]"
	}
	return cssEscape(t.Value)
}

// Level is the token group of one ancestor level.
type Level []Token

// String renders the level as a compound selector.
func (l Level) String() string {
	var sb strings.Builder
	for _, t := range l {
		sb.WriteString(t.String())
	}
	return sb.String()
}

// FragmentedSelector is a selector kept as one Level per ancestor, ordered
// from the document root to the target node.
type FragmentedSelector []Level

// String joins the levels with descendant combinators. Empty levels are
// skipped.
func (s FragmentedSelector) String() string {
	parts := make([]string, 0, len(s))
	for _, l := range s {
		if len(l) > 0 {
			parts = append(parts, l.String())
		}
	}
	return strings.Join(parts, " ")
}

// Shape returns the leading token of every level. Wrappers whose selectors
// share a shape describe sibling structures of one repeated field.
func (s FragmentedSelector) Shape() []string {
	shape := make([]string, 0, len(s))
	for _, l := range s {
		if len(l) > 0 {
			shape = append(shape, l[0].String())
		}
	}
	return shape
}

func (s FragmentedSelector) clone() FragmentedSelector {
	out := make(FragmentedSelector, len(s))
	for i, l := range s {
		out[i] = append(Level(nil), l...)
	}
	return out
}

// BuildPath returns the full selector of node: one level per ancestor up to
// the top-level element, each covering the tag, id, classes and the
// presence of every other attribute.
func BuildPath(node swi.Node) FragmentedSelector {
	var levels []Level
	for n := node; n != nil; n = n.Parent() {
		levels = append(levels, levelOf(n))
	}
	for i, j := 0, len(levels)-1; i < j; i, j = i+1, j-1 {
		levels[i], levels[j] = levels[j], levels[i]
	}
	return levels
}

func levelOf(n swi.Node) Level {
	level := Level{{Kind: TokenTag, Value: n.Name()}}
	attrs := n.Attributes()
	for _, a := range attrs {
		if a.Name == "id" && a.Value != "" {
			level = append(level, Token{Kind: TokenID, Value: a.Value})
		}
	}
	for _, a := range attrs {
		if a.Name == "class" {
			for _, c := range a.List {
				level = append(level, Token{Kind: TokenClass, Value: c})
			}
		}
	}
	for _, a := range attrs {
		if a.Name != "" && a.Name != "id" && a.Name != "class" {
			level = append(level, Token{Kind: TokenAttr, Value: a.Name})
		}
	}
	return level
}

// Sanitize drops every token containing a line break or forbidden, which
// is typically the labeled value itself. Levels left empty are kept for
// Minimize to remove.
func Sanitize(path FragmentedSelector, forbidden string) FragmentedSelector {
	out := make(FragmentedSelector, len(path))
	for i, l := range path {
		kept := Level{}
		for _, t := range l {
			if strings.ContainsAny(t.Value, "\r\n") {
				continue
			}
			if forbidden != "" && strings.Contains(t.Value, forbidden) {
				continue
			}
			kept = append(kept, t)
		}
		out[i] = kept
	}
	return out
}

// Minimize greedily removes tokens from path, from the outermost level to
// the innermost and left to right, keeping a removal whenever the
// resulting selector still selects exactly the same nodes in the same
// order. Levels left empty are dropped. The result is not guaranteed to be
// the globally smallest selector.
func Minimize(doc swi.Node, path FragmentedSelector) (FragmentedSelector, error) {
	selector := path.String()
	if selector == "" {
		return nil, nil
	}
	want, err := doc.Select(selector)
	if err != nil {
		return nil, err
	}

	out := path.clone()
	for i := 0; i < len(out); {
		for j := 0; j < len(out[i]); {
			level := out[i]
			candidate := append(append(Level{}, level[:j]...), level[j+1:]...)
			out[i] = candidate
			if !selectsSame(doc, out, want) {
				out[i] = level
				j++
			}
		}
		if len(out[i]) == 0 {
			out = append(out[:i], out[i+1:]...)
			continue
		}
		i++
	}
	return out, nil
}

// selectsSame reports whether path selects exactly want, position by position.
func selectsSame(doc swi.Node, path FragmentedSelector, want []swi.Node) bool {
	selector := path.String()
	if selector == "" {
		return false
	}
	got, err := doc.Select(selector)
	if err != nil || len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// cssEscape escapes an identifier following the CSSOM serialization rules.
func cssEscape(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	for i, r := range runes {
		switch {
		case r == 0:
			sb.WriteRune('\uFFFD')
		case (r >= 0x01 && r <= 0x1f) || r == 0x7f:
			fmt.Fprintf(&sb, "\\%x ", r)
		case i == 0 && r >= '0' && r <= '9':
			fmt.Fprintf(&sb, "\\%x ", r)
		case i == 1 && r >= '0' && r <= '9' && runes[0] == '-':
			fmt.Fprintf(&sb, "\\%x ", r)
		case i == 0 && r == '-' && len(runes) == 1:
			sb.WriteString(`\-`)
		case r >= 0x80 || r == '-' || r == '_' ||
			(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			sb.WriteRune(r)
		default:
			sb.WriteRune('\\')
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// quote renders s as a double-quoted CSS string.
func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}
