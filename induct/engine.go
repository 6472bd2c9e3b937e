package induct

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/swi"
	"github.com/fwojciec/swi/bloom"
	"github.com/fwojciec/swi/fs"
	"github.com/fwojciec/swi/fuzzy"
	"github.com/google/uuid"
)

// Ensure Engine implements swi.Inducer at compile time.
var _ swi.Inducer = (*Engine)(nil)

// Bloom filter sizing for duplicate page detection.
const (
	expectedPages = 10000
	duplicateRate = 0.001
)

// Engine trains on labeled pages and selects, per label, the candidate
// wrapper that best reproduces the labels of every training page.
//
// The selection is recomputed lazily: training marks it stale and the next
// Predict, Wrappers or Save call rebuilds it. Engine is not safe for
// concurrent use.
type Engine struct {
	Parser   swi.Parser
	Metadata swi.MetadataExtractor
	Trainer  Trainer

	examples []*swi.Example
	seen     *bloom.Filter
	selected swi.WrapperTable
	dirty    bool
}

// NewEngine returns an engine parsing pages with parser and extracting
// their metadata with metadata.
func NewEngine(parser swi.Parser, metadata swi.MetadataExtractor) *Engine {
	return &Engine{
		Parser:   parser,
		Metadata: metadata,
		seen:     bloom.NewFilter(expectedPages, duplicateRate),
		selected: swi.WrapperTable{},
	}
}

// Examples returns the training examples in insertion order.
func (e *Engine) Examples() []*swi.Example {
	return e.examples
}

// AddTrainPage implements swi.Inducer.
func (e *Engine) AddTrainPage(content string, set swi.TrainingSet, id string) (*swi.Example, error) {
	if strings.TrimSpace(content) == "" {
		return nil, swi.Errorf(swi.EINVALID, "page content required")
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}

	doc, meta, err := e.parse(content)
	if err != nil {
		return nil, err
	}
	candidates, err := e.Trainer.Train(doc, meta, set)
	if err != nil {
		return nil, err
	}

	if id == "" {
		id = uuid.NewString()
	}
	hash := strconv.FormatUint(xxhash.Sum64String(content), 16)
	ex := &swi.Example{
		ID:          id,
		ContentHash: hash,
		Document:    doc,
		Metadata:    meta,
		Expected:    set,
		Candidates:  candidates,
		Duplicate:   e.seen.Seen(hash),
	}

	e.examples = append(e.examples, ex)
	e.dirty = true
	return ex, nil
}

// Predict implements swi.Inducer. Labels whose wrapper resolves nothing
// are reported as misses and never fail the call.
func (e *Engine) Predict(page string) (*swi.Prediction, error) {
	if strings.TrimSpace(page) == "" {
		return nil, swi.Errorf(swi.EINVALID, "page content required")
	}
	doc, meta, err := e.parse(page)
	if err != nil {
		return nil, err
	}
	return e.Wrappers().Extract(doc, meta), nil
}

// Wrappers implements swi.Inducer.
func (e *Engine) Wrappers() swi.WrapperTable {
	if e.dirty {
		e.selected = e.selectWrappers()
		e.dirty = false
	}
	return e.selected
}

// SetWrappers replaces the selection with table. Training examples are
// kept and the next AddTrainPage recomputes the selection from them.
func (e *Engine) SetWrappers(table swi.WrapperTable) {
	if table == nil {
		table = swi.WrapperTable{}
	}
	e.selected = table
	e.dirty = false
}

// Save writes the selected wrappers to path.
func (e *Engine) Save(path string) error {
	return fs.WriteWrappers(path, e.Wrappers())
}

// Load replaces the selection with the wrappers stored at path.
func (e *Engine) Load(path string) error {
	table, err := fs.ReadWrappers(path)
	if err != nil {
		return err
	}
	e.SetWrappers(table)
	return nil
}

func (e *Engine) parse(content string) (swi.Node, *swi.Metadata, error) {
	doc, err := e.Parser.Parse(content)
	if err != nil {
		return nil, nil, err
	}
	meta, err := e.Metadata.ExtractMetadata(content)
	if err != nil {
		return nil, nil, err
	}
	return doc, meta, nil
}

// selectWrappers picks, per label, the candidate with the highest score.
// The first candidate seen is the incumbent with a score of zero and is
// only replaced by a strictly higher score.
func (e *Engine) selectWrappers() swi.WrapperTable {
	table := swi.WrapperTable{}
	best := make(map[string]float64)
	for _, ex := range e.examples {
		for _, label := range ex.Expected.Labels() {
			for _, c := range ex.Candidates[label] {
				if _, ok := table[label]; !ok {
					table[label] = c
				}
				if s := e.Score(label, c); s > best[label] {
					table[label] = c
					best[label] = s
				}
			}
		}
	}
	return table
}

// Score rates w against every training page labeled with label: each pair
// of an expected and a predicted value adds one when they match exactly
// and subtracts one half otherwise.
func (e *Engine) Score(label string, w swi.Wrapper) float64 {
	var score float64
	for _, ex := range e.examples {
		expected, ok := ex.Expected[label]
		if !ok {
			continue
		}
		predicted := w.Extract(ex.Document, ex.Metadata)
		for _, want := range expected {
			for _, got := range predicted {
				if fuzzy.PartialRatio(want, got) == 100 {
					score++
				} else {
					score -= 0.5
				}
			}
		}
	}
	return score
}
