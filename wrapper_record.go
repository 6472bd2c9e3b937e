package swi

import (
	"encoding/json"
	"sort"
)

// WrapperRecord is the serializable form of every Wrapper variant.
// Group records keep their own selector in the Css fields and their
// members in Members.
type WrapperRecord struct {
	Kind      WrapperKind     `json:"kind"`
	Selector  string          `json:"selector,omitempty"`
	Attribute string          `json:"attribute,omitempty"`
	Pattern   *Pattern        `json:"pattern,omitempty"`
	Index     int             `json:"index,omitempty"`
	Target    string          `json:"target,omitempty"`
	Path      Path            `json:"path,omitempty"`
	Shape     []string        `json:"shape,omitempty"`
	Members   []WrapperRecord `json:"members,omitempty"`
}

// NewWrapperRecord converts a wrapper into its record form.
func NewWrapperRecord(w Wrapper) WrapperRecord {
	switch w := w.(type) {
	case *Css:
		return cssRecord(w)
	case *Meta:
		return WrapperRecord{Kind: KindMeta, Path: w.Path, Pattern: w.Pattern, Target: w.Target}
	case *Group:
		r := cssRecord(&w.Own)
		r.Kind = KindGroup
		r.Shape = w.Shape
		for _, m := range w.Members {
			r.Members = append(r.Members, cssRecord(m))
		}
		return r
	case *List:
		r := WrapperRecord{Kind: KindList}
		for _, m := range w.Members {
			r.Members = append(r.Members, NewWrapperRecord(m))
		}
		return r
	}
	return WrapperRecord{}
}

func cssRecord(c *Css) WrapperRecord {
	return WrapperRecord{
		Kind:      KindCss,
		Selector:  c.Selector,
		Attribute: c.Attribute,
		Pattern:   c.Pattern,
		Index:     c.Index,
		Target:    c.Target,
	}
}

// Wrapper converts the record back into a wrapper.
func (r WrapperRecord) Wrapper() (Wrapper, error) {
	switch r.Kind {
	case KindCss:
		return r.css(), nil
	case KindMeta:
		return &Meta{Path: r.Path, Pattern: r.Pattern, Target: r.Target}, nil
	case KindGroup:
		g := &Group{Own: *r.css(), Shape: r.Shape}
		for _, m := range r.Members {
			if m.Kind != KindCss {
				return nil, Errorf(EINVALID, "group member must be css, got %q", m.Kind)
			}
			g.Members = append(g.Members, m.css())
		}
		return g, nil
	case KindList:
		l := &List{}
		for _, m := range r.Members {
			w, err := m.Wrapper()
			if err != nil {
				return nil, err
			}
			l.Members = append(l.Members, w)
		}
		return l, nil
	}
	return nil, Errorf(EINVALID, "unknown wrapper kind %q", r.Kind)
}

func (r WrapperRecord) css() *Css {
	return &Css{
		Selector:  r.Selector,
		Attribute: r.Attribute,
		Pattern:   r.Pattern,
		Index:     r.Index,
		Target:    r.Target,
	}
}

// WrapperTable maps a label to its selected wrapper.
type WrapperTable map[string]Wrapper

// Labels returns the table's labels in sorted order.
func (t WrapperTable) Labels() []string {
	labels := make([]string, 0, len(t))
	for label := range t {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Extract applies every wrapper to a parsed page. It does not modify the
// table and is safe for concurrent use.
func (t WrapperTable) Extract(doc Node, meta *Metadata) *Prediction {
	p := &Prediction{Values: make(map[string][]string, len(t))}
	for _, label := range t.Labels() {
		values := t[label].Extract(doc, meta)
		p.Values[label] = values
		if len(values) == 0 {
			p.Misses = append(p.Misses, label)
		}
	}
	return p
}

// MarshalJSON encodes the table as label -> WrapperRecord.
func (t WrapperTable) MarshalJSON() ([]byte, error) {
	records := make(map[string]WrapperRecord, len(t))
	for label, w := range t {
		records[label] = NewWrapperRecord(w)
	}
	return json.Marshal(records)
}

// UnmarshalJSON decodes a table written by MarshalJSON.
func (t *WrapperTable) UnmarshalJSON(data []byte) error {
	var records map[string]WrapperRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	table := make(WrapperTable, len(records))
	for label, r := range records {
		w, err := r.Wrapper()
		if err != nil {
			return err
		}
		table[label] = w
	}
	*t = table
	return nil
}
