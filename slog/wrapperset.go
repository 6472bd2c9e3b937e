package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/swi"
)

// Ensure LoggingWrapperSetService implements swi.WrapperSetService.
var _ swi.WrapperSetService = (*LoggingWrapperSetService)(nil)

// LoggingWrapperSetService wraps a WrapperSetService with debug logging.
type LoggingWrapperSetService struct {
	next   swi.WrapperSetService
	logger *slog.Logger
}

// NewLoggingWrapperSetService creates a new LoggingWrapperSetService.
func NewLoggingWrapperSetService(next swi.WrapperSetService, logger *slog.Logger) *LoggingWrapperSetService {
	return &LoggingWrapperSetService{next: next, logger: logger}
}

// SaveWrapperSet delegates to the wrapped service and logs the operation.
func (s *LoggingWrapperSetService) SaveWrapperSet(ctx context.Context, set *swi.WrapperSet) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save wrapper set",
			"name", set.Name,
			"labels", len(set.Wrappers),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveWrapperSet(ctx, set)
}

// FindWrapperSet delegates to the wrapped service and logs the operation.
func (s *LoggingWrapperSetService) FindWrapperSet(ctx context.Context, name string) (set *swi.WrapperSet, err error) {
	defer func(begin time.Time) {
		labels := 0
		if set != nil {
			labels = len(set.Wrappers)
		}
		s.logger.Info("find wrapper set",
			"name", name,
			"labels", labels,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindWrapperSet(ctx, name)
}

// FindWrapperSets delegates to the wrapped service and logs the operation.
func (s *LoggingWrapperSetService) FindWrapperSets(ctx context.Context) (sets []*swi.WrapperSet, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find wrapper sets",
			"count", len(sets),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindWrapperSets(ctx)
}

// DeleteWrapperSet delegates to the wrapped service and logs the operation.
func (s *LoggingWrapperSetService) DeleteWrapperSet(ctx context.Context, name string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete wrapper set",
			"name", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteWrapperSet(ctx, name)
}
