package swi

import (
	"context"
	"time"
)

// WrapperSet is a named, persisted wrapper table, typically one per site
// template.
type WrapperSet struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Wrappers  WrapperTable `json:"wrappers"`
	Examples  int          `json:"examples"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Validate returns an error if the wrapper set contains invalid fields.
func (s *WrapperSet) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "wrapper set name required")
	}
	if len(s.Wrappers) == 0 {
		return Errorf(EINVALID, "wrapper set %q has no wrappers", s.Name)
	}
	return nil
}

// WrapperSetService represents a service for managing wrapper sets.
type WrapperSetService interface {
	// SaveWrapperSet creates the set or replaces an existing set of the same name.
	SaveWrapperSet(ctx context.Context, set *WrapperSet) error

	// FindWrapperSet retrieves a set by name.
	// Returns ENOTFOUND if the set does not exist.
	FindWrapperSet(ctx context.Context, name string) (*WrapperSet, error)

	// FindWrapperSets retrieves all sets ordered by name.
	FindWrapperSets(ctx context.Context) ([]*WrapperSet, error)

	// DeleteWrapperSet permanently removes a set.
	// Returns ENOTFOUND if the set does not exist.
	DeleteWrapperSet(ctx context.Context, name string) error
}
