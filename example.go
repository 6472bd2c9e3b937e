package swi

import (
	"sort"
	"strings"
)

// TrainingSet maps a label to its expected value(s) on one page. A label
// with a single value is a single-value field; more values make it a
// repeated field whose values are listed in document order.
type TrainingSet map[string][]string

// Validate returns ETRAINING if any label has no value or an empty value.
func (s TrainingSet) Validate() error {
	if len(s) == 0 {
		return Errorf(ETRAINING, "training set has no labels")
	}
	for _, label := range s.Labels() {
		values := s[label]
		if len(values) == 0 {
			return Errorf(ETRAINING, "label %q has no expected value", label)
		}
		for _, v := range values {
			if strings.TrimSpace(v) == "" {
				return Errorf(ETRAINING, "label %q has an empty expected value", label)
			}
		}
	}
	return nil
}

// Labels returns the set's labels in sorted order.
func (s TrainingSet) Labels() []string {
	labels := make([]string, 0, len(s))
	for label := range s {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Example is a trained page: the parsed page, its labels and the candidate
// wrappers built for each label, in generation order.
type Example struct {
	ID          string
	ContentHash string
	Document    Node
	Metadata    *Metadata
	Expected    TrainingSet
	Candidates  map[string][]Wrapper

	// Duplicate reports that a page with the same content was probably
	// trained before. Duplicates are kept.
	Duplicate bool
}

// Prediction holds the values extracted from a page.
type Prediction struct {
	Values map[string][]string `json:"values"`

	// Misses lists, in sorted order, the labels whose wrapper resolved
	// nothing on the page.
	Misses []string `json:"misses,omitempty"`
}

// Err returns EMISMATCH naming the missed labels, or nil when every wrapper
// resolved a value.
func (p *Prediction) Err() error {
	if len(p.Misses) == 0 {
		return nil
	}
	return Errorf(EMISMATCH, "no value for %s", strings.Join(p.Misses, ", "))
}

// Inducer learns wrappers from labeled pages and applies them.
// Implementations are not safe for concurrent use.
type Inducer interface {
	// AddTrainPage trains on a page. An empty id is replaced by a random one.
	// Returns EINVALID on empty content and ETRAINING on empty or missing
	// label values; the page is not added on error.
	AddTrainPage(content string, set TrainingSet, id string) (*Example, error)

	// Predict extracts every trained label from a page.
	// Returns EINVALID on an empty page.
	Predict(page string) (*Prediction, error)

	// Wrappers returns the selected wrapper per label.
	Wrappers() WrapperTable
}
