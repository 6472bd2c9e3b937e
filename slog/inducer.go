package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/swi"
)

// Ensure LoggingInducer implements swi.Inducer.
var _ swi.Inducer = (*LoggingInducer)(nil)

// LoggingInducer wraps an Inducer with logging of training and prediction.
type LoggingInducer struct {
	next   swi.Inducer
	logger *slog.Logger
}

// NewLoggingInducer creates a new LoggingInducer.
func NewLoggingInducer(next swi.Inducer, logger *slog.Logger) *LoggingInducer {
	return &LoggingInducer{next: next, logger: logger}
}

// AddTrainPage delegates to the wrapped inducer and logs the operation.
func (i *LoggingInducer) AddTrainPage(content string, set swi.TrainingSet, id string) (ex *swi.Example, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"labels", len(set),
			"duration", time.Since(begin),
			"err", err,
		}
		if ex != nil {
			candidates := 0
			for _, c := range ex.Candidates {
				candidates += len(c)
			}
			attrs = append([]any{
				"id", ex.ID,
				"candidates", candidates,
				"duplicate", ex.Duplicate,
			}, attrs...)
		} else if id != "" {
			attrs = append([]any{"id", id}, attrs...)
		}
		i.logger.Info("train page", attrs...)
	}(time.Now())
	return i.next.AddTrainPage(content, set, id)
}

// Predict delegates to the wrapped inducer and logs the operation.
func (i *LoggingInducer) Predict(page string) (p *swi.Prediction, err error) {
	defer func(begin time.Time) {
		labels, misses := 0, 0
		if p != nil {
			labels, misses = len(p.Values), len(p.Misses)
		}
		i.logger.Info("predict",
			"labels", labels,
			"misses", misses,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Predict(page)
}

// Wrappers delegates to the wrapped inducer.
func (i *LoggingInducer) Wrappers() swi.WrapperTable {
	return i.next.Wrappers()
}
