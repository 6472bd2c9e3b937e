package induct

import (
	"github.com/fwojciec/swi"
)

// Trainer builds the candidate wrappers of a single labeled page.
type Trainer struct {
	// ParentThreshold is the similarity a group member must reach beneath
	// a candidate common parent. Zero means DefaultParentThreshold.
	ParentThreshold int
}

// Train returns the candidate wrappers of every label of set, in
// generation order.
//
// A single-value label yields one Css or Meta candidate per best match. A
// repeated label yields a single List candidate holding one Group per
// distinct member shape; values located only in metadata, or not at all,
// are left out of the groups.
//
// Returns ETRAINING when a label has no or an empty value; no candidates
// are returned in that case.
func (t *Trainer) Train(doc swi.Node, meta *swi.Metadata, set swi.TrainingSet) (map[string][]swi.Wrapper, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}

	candidates := make(map[string][]swi.Wrapper, len(set))
	for _, label := range set.Labels() {
		values := set[label]

		var wrappers []swi.Wrapper
		var err error
		if len(values) > 1 {
			wrappers, err = t.repeated(doc, meta, values)
		} else {
			wrappers, err = t.single(doc, meta, values[0])
		}
		if err != nil {
			return nil, err
		}
		candidates[label] = wrappers
	}
	return candidates, nil
}

func (t *Trainer) single(doc swi.Node, meta *swi.Metadata, value string) ([]swi.Wrapper, error) {
	matches, err := FindBestMatches(doc, meta, value)
	if err != nil {
		return nil, err
	}

	var wrappers []swi.Wrapper
	for _, m := range matches {
		switch m.Kind {
		case Structured:
			w, err := BuildMeta(meta, m.Path, value)
			if err != nil {
				return nil, err
			}
			wrappers = append(wrappers, w)
		default:
			w, err := BuildCss(doc, m.Node, m.Attribute, value)
			if err != nil {
				return nil, err
			}
			wrappers = append(wrappers, w)
		}
	}
	return wrappers, nil
}

func (t *Trainer) repeated(doc swi.Node, meta *swi.Metadata, values []string) ([]swi.Wrapper, error) {
	var members []member
	for _, value := range values {
		matches, err := FindBestMatches(doc, meta, value)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 || matches[0].Kind != Structural {
			continue
		}
		c, path, err := buildCss(doc, matches[0].Node, matches[0].Attribute, value)
		if err != nil {
			return nil, err
		}
		members = append(members, member{css: c, path: path})
	}

	list := &swi.List{}
	for _, g := range clusterMembers(members) {
		group, err := g.build(doc, t.threshold())
		if err != nil {
			return nil, err
		}
		list.Members = append(list.Members, group)
	}
	return []swi.Wrapper{list}, nil
}

func (t *Trainer) threshold() int {
	if t.ParentThreshold <= 0 {
		return DefaultParentThreshold
	}
	return t.ParentThreshold
}
