package repository

import (
	"context"
	"errors"

	"github.com/firetemplate/items-api/internal/items"
)

var (
	ErrNotFound = errors.New("item not found")
)

// Repository is the persistence contract shared by the Firestore, Mongo and
// in-memory stores. Implementations are safe for concurrent use and rely on
// the backend's per-document atomicity; nothing spans more than one document.
type Repository interface {
	ListByOwner(ctx context.Context, owner string, limit int) ([]*items.Item, error)
	// Create stores it and returns the stored copy with its new ID.
	Create(ctx context.Context, it *items.Item) (*items.Item, error)
	Get(ctx context.Context, id string) (*items.Item, error)
	// Update applies p and returns the item as stored afterwards.
	Update(ctx context.Context, id string, p items.Patch) (*items.Item, error)
	Delete(ctx context.Context, id string) error
}
