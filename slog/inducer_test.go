package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/swi"
	"github.com/fwojciec/swi/mock"
	swislog "github.com/fwojciec/swi/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingInducer_AddTrainPage(t *testing.T) {
	t.Parallel()

	t.Run("logs training with candidates and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Inducer{
			AddTrainPageFn: func(content string, set swi.TrainingSet, id string) (*swi.Example, error) {
				return &swi.Example{
					ID:       "product-1",
					Expected: set,
					Candidates: map[string][]swi.Wrapper{
						"price": {&swi.Css{}, &swi.Css{}},
						"title": {&swi.Css{}},
					},
					Duplicate: true,
				}, nil
			},
		}

		ind := swislog.NewLoggingInducer(inner, logger)
		ex, err := ind.AddTrainPage("<p>x</p>", swi.TrainingSet{"price": {"1"}, "title": {"x"}}, "")

		require.NoError(t, err)
		assert.Equal(t, "product-1", ex.ID)
		output := buf.String()
		assert.Contains(t, output, "train page")
		assert.Contains(t, output, "id=product-1")
		assert.Contains(t, output, "labels=2")
		assert.Contains(t, output, "candidates=3")
		assert.Contains(t, output, "duplicate=true")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Inducer{
			AddTrainPageFn: func(string, swi.TrainingSet, string) (*swi.Example, error) {
				return nil, errors.New("empty value")
			},
		}

		ind := swislog.NewLoggingInducer(inner, logger)
		_, err := ind.AddTrainPage("<p>x</p>", swi.TrainingSet{"price": {""}}, "product-2")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "id=product-2")
		assert.Contains(t, output, "err=\"empty value\"")
	})
}

func TestLoggingInducer_Predict(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Inducer{
		PredictFn: func(string) (*swi.Prediction, error) {
			return &swi.Prediction{
				Values: map[string][]string{"price": {"45.00"}, "sku": nil},
				Misses: []string{"sku"},
			}, nil
		},
	}

	ind := swislog.NewLoggingInducer(inner, logger)
	p, err := ind.Predict("<p>x</p>")

	require.NoError(t, err)
	assert.Equal(t, []string{"45.00"}, p.Values["price"])
	output := buf.String()
	assert.Contains(t, output, "predict")
	assert.Contains(t, output, "labels=2")
	assert.Contains(t, output, "misses=1")
}

func TestLoggingInducer_Wrappers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	table := swi.WrapperTable{"price": &swi.Css{Selector: ".price"}}
	inner := &mock.Inducer{
		WrappersFn: func() swi.WrapperTable { return table },
	}

	ind := swislog.NewLoggingInducer(inner, slog.New(slog.NewTextHandler(&buf, nil)))

	assert.Equal(t, table, ind.Wrappers())
	assert.Empty(t, buf.String(), "wrappers access is not logged")
}
