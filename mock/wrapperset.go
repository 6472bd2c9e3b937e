package mock

import (
	"context"

	"github.com/fwojciec/swi"
)

var _ swi.WrapperSetService = (*WrapperSetService)(nil)

// WrapperSetService is a mock implementation of swi.WrapperSetService.
type WrapperSetService struct {
	SaveWrapperSetFn   func(ctx context.Context, set *swi.WrapperSet) error
	FindWrapperSetFn   func(ctx context.Context, name string) (*swi.WrapperSet, error)
	FindWrapperSetsFn  func(ctx context.Context) ([]*swi.WrapperSet, error)
	DeleteWrapperSetFn func(ctx context.Context, name string) error
}

func (s *WrapperSetService) SaveWrapperSet(ctx context.Context, set *swi.WrapperSet) error {
	return s.SaveWrapperSetFn(ctx, set)
}

func (s *WrapperSetService) FindWrapperSet(ctx context.Context, name string) (*swi.WrapperSet, error) {
	return s.FindWrapperSetFn(ctx, name)
}

func (s *WrapperSetService) FindWrapperSets(ctx context.Context) ([]*swi.WrapperSet, error) {
	return s.FindWrapperSetsFn(ctx)
}

func (s *WrapperSetService) DeleteWrapperSet(ctx context.Context, name string) error {
	return s.DeleteWrapperSetFn(ctx, name)
}
