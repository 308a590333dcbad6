package service

import (
	"context"
	"errors"

	"github.com/firetemplate/items-api/internal/apperr"
	"github.com/firetemplate/items-api/internal/items"
	"github.com/firetemplate/items-api/internal/items/repository"
	"github.com/firetemplate/items-api/internal/models"
	"github.com/firetemplate/items-api/pkg/logger"
	"github.com/firetemplate/items-api/pkg/metrics"
)

const (
	msgNotFound = "Item not found"
	msgDenied   = "Access denied"
)

// Service applies the ownership rules on top of a Repository. Every error it
// returns is an *apperr.Error.
type Service struct {
	repo repository.Repository
}

func NewService(r repository.Repository) *Service {
	return &Service{repo: r}
}

func observe(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = apperr.KindOf(err).String()
	}
	metrics.ItemOperations.WithLabelValues(op, outcome).Inc()
}

func backend(op string, err error) error {
	logger.Errorf("item %s failed: %v", op, err)
	return apperr.Backend(err)
}

// List returns up to limit items owned by the caller. limit <= 0 uses the default.
func (s *Service) List(ctx context.Context, caller *models.Caller, limit int) (out []*items.Item, err error) {
	defer func() { observe("list", err) }()
	if limit <= 0 {
		limit = items.DefaultListLimit
	}
	out, err = s.repo.ListByOwner(ctx, caller.UID, limit)
	if err != nil {
		return nil, backend("list", err)
	}
	return out, nil
}

// Create stores a new item owned by the caller.
func (s *Service) Create(ctx context.Context, caller *models.Caller, p items.Patch) (out *items.Item, err error) {
	defer func() { observe("create", err) }()
	out, err = s.repo.Create(ctx, &items.Item{Name: p.Name, Description: p.Description, Owner: caller.UID})
	if err != nil {
		return nil, backend("create", err)
	}
	return out, nil
}

// owned fetches id and checks it belongs to the caller: 404 first, then 403.
func (s *Service) owned(ctx context.Context, op string, caller *models.Caller, id string) (*items.Item, error) {
	it, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound(msgNotFound)
	}
	if err != nil {
		return nil, backend(op, err)
	}
	if it.Owner != caller.UID {
		logger.Debugf("item %s denied: id=%s caller=%s", op, id, caller.UID)
		return nil, apperr.Forbidden(msgDenied)
	}
	return it, nil
}

// Get returns the item when the caller owns it.
func (s *Service) Get(ctx context.Context, caller *models.Caller, id string) (out *items.Item, err error) {
	defer func() { observe("get", err) }()
	return s.owned(ctx, "get", caller, id)
}

// Update replaces name and description of an owned item. ID and owner are kept.
func (s *Service) Update(ctx context.Context, caller *models.Caller, id string, p items.Patch) (out *items.Item, err error) {
	defer func() { observe("update", err) }()
	if _, err = s.owned(ctx, "update", caller, id); err != nil {
		return nil, err
	}
	out, err = s.repo.Update(ctx, id, p)
	if errors.Is(err, repository.ErrNotFound) {
		// deleted between the check and the write
		return nil, apperr.NotFound(msgNotFound)
	}
	if err != nil {
		return nil, backend("update", err)
	}
	return out, nil
}

// Delete removes an owned item.
func (s *Service) Delete(ctx context.Context, caller *models.Caller, id string) (err error) {
	defer func() { observe("delete", err) }()
	if _, err = s.owned(ctx, "delete", caller, id); err != nil {
		return err
	}
	err = s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(msgNotFound)
	}
	if err != nil {
		return backend("delete", err)
	}
	return nil
}
