package swi

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MetadataKind identifies the shape of a Metadata node.
type MetadataKind int

// Metadata node kinds.
const (
	MetadataScalar MetadataKind = iota
	MetadataMap
	MetadataList
)

// Metadata is a node of a structured-metadata tree (schema.org JSON-LD,
// microdata, OpenGraph, ...). Mapping keys keep their document order so
// that path enumeration is deterministic.
type Metadata struct {
	Kind  MetadataKind
	Value string      // scalar value
	Keys  []string    // mapping keys, parallel to Items
	Items []*Metadata // mapping values or sequence items
}

// NewScalar returns a scalar metadata node.
func NewScalar(value string) *Metadata {
	return &Metadata{Kind: MetadataScalar, Value: value}
}

// NewMap returns an empty mapping node.
func NewMap() *Metadata {
	return &Metadata{Kind: MetadataMap}
}

// NewList returns a sequence node holding items.
func NewList(items ...*Metadata) *Metadata {
	return &Metadata{Kind: MetadataList, Items: items}
}

// Set adds or replaces the value stored under key.
func (m *Metadata) Set(key string, value *Metadata) {
	for i, k := range m.Keys {
		if k == key {
			m.Items[i] = value
			return
		}
	}
	m.Keys = append(m.Keys, key)
	m.Items = append(m.Items, value)
}

// Get returns the value stored under key.
func (m *Metadata) Get(key string) (*Metadata, bool) {
	if m == nil || m.Kind != MetadataMap {
		return nil, false
	}
	for i, k := range m.Keys {
		if k == key {
			return m.Items[i], true
		}
	}
	return nil, false
}

// Append adds an item to a sequence node.
func (m *Metadata) Append(item *Metadata) {
	m.Items = append(m.Items, item)
}

// ValueAt resolves path and returns the scalar found there.
// Returns false when a step does not resolve or the path ends on a
// mapping or sequence.
func (m *Metadata) ValueAt(path Path) (string, bool) {
	cur := m
	for _, step := range path {
		if cur == nil {
			return "", false
		}
		switch cur.Kind {
		case MetadataMap:
			if step.IsIndex {
				return "", false
			}
			next, ok := cur.Get(step.Key)
			if !ok {
				return "", false
			}
			cur = next
		case MetadataList:
			if !step.IsIndex || step.Index < 0 || step.Index >= len(cur.Items) {
				return "", false
			}
			cur = cur.Items[step.Index]
		default:
			return "", false
		}
	}
	if cur == nil || cur.Kind != MetadataScalar {
		return "", false
	}
	return cur.Value, true
}

// Paths returns the path of every scalar in the tree, in document order.
func (m *Metadata) Paths() []Path {
	if m == nil {
		return nil
	}

	type frame struct {
		node *Metadata
		path Path
	}

	var paths []Path
	stack := []frame{{node: m}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.node == nil {
			continue
		}

		switch f.node.Kind {
		case MetadataScalar:
			paths = append(paths, f.path)
		case MetadataMap:
			// Push in reverse so that keys pop in document order.
			for i := len(f.node.Keys) - 1; i >= 0; i-- {
				stack = append(stack, frame{node: f.node.Items[i], path: f.path.Key(f.node.Keys[i])})
			}
		case MetadataList:
			for i := len(f.node.Items) - 1; i >= 0; i-- {
				stack = append(stack, frame{node: f.node.Items[i], path: f.path.Index(i)})
			}
		}
	}
	return paths
}

// PathStep addresses one level of a metadata tree: a mapping key or a
// sequence index.
type PathStep struct {
	Key     string
	Index   int
	IsIndex bool
}

// String returns the step as it appears in a rendered path.
func (s PathStep) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Key
}

// MarshalJSON encodes keys as strings and indices as numbers.
func (s PathStep) MarshalJSON() ([]byte, error) {
	if s.IsIndex {
		return json.Marshal(s.Index)
	}
	return json.Marshal(s.Key)
}

// UnmarshalJSON decodes a string key or a numeric index.
func (s *PathStep) UnmarshalJSON(data []byte) error {
	var key string
	if err := json.Unmarshal(data, &key); err == nil {
		*s = PathStep{Key: key}
		return nil
	}
	var index int
	if err := json.Unmarshal(data, &index); err != nil {
		return Errorf(EINVALID, "invalid metadata path step %s", string(data))
	}
	*s = PathStep{Index: index, IsIndex: true}
	return nil
}

// Path addresses a scalar inside a metadata tree.
type Path []PathStep

// Key returns a copy of p extended with a mapping key.
func (p Path) Key(key string) Path {
	return p.extend(PathStep{Key: key})
}

// Index returns a copy of p extended with a sequence index.
func (p Path) Index(i int) Path {
	return p.extend(PathStep{Index: i, IsIndex: true})
}

func (p Path) extend(step PathStep) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, step)
}

// String renders the path as dot-separated steps, e.g. "json-ld.[0].offers.price".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, step := range p {
		parts[i] = step.String()
	}
	return strings.Join(parts, ".")
}

// MetadataExtractor extracts structured metadata from raw markup.
type MetadataExtractor interface {
	// ExtractMetadata returns the metadata tree of a page.
	// A page without any metadata yields an empty tree, not an error.
	ExtractMetadata(markup string) (*Metadata, error)
}
