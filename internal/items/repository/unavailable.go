package repository

import (
	"context"
	"errors"

	"github.com/firetemplate/items-api/internal/items"
)

// ErrUnavailable is returned by Unavailable for every call.
var ErrUnavailable = errors.New("database not initialized")

// Unavailable stands in for a backend that failed to initialise so the
// process can still start and serve its always-on endpoints.
type Unavailable struct{}

func (Unavailable) ListByOwner(context.Context, string, int) ([]*items.Item, error) {
	return nil, ErrUnavailable
}

func (Unavailable) Create(context.Context, *items.Item) (*items.Item, error) {
	return nil, ErrUnavailable
}

func (Unavailable) Get(context.Context, string) (*items.Item, error) { return nil, ErrUnavailable }

func (Unavailable) Update(context.Context, string, items.Patch) (*items.Item, error) {
	return nil, ErrUnavailable
}

func (Unavailable) Delete(context.Context, string) error { return ErrUnavailable }
