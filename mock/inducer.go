package mock

import "github.com/fwojciec/swi"

var _ swi.Inducer = (*Inducer)(nil)

// Inducer is a mock implementation of swi.Inducer.
type Inducer struct {
	AddTrainPageFn func(content string, set swi.TrainingSet, id string) (*swi.Example, error)
	PredictFn      func(page string) (*swi.Prediction, error)
	WrappersFn     func() swi.WrapperTable
}

func (i *Inducer) AddTrainPage(content string, set swi.TrainingSet, id string) (*swi.Example, error) {
	return i.AddTrainPageFn(content, set, id)
}

func (i *Inducer) Predict(page string) (*swi.Prediction, error) {
	return i.PredictFn(page)
}

func (i *Inducer) Wrappers() swi.WrapperTable {
	return i.WrappersFn()
}
