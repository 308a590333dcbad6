package users

import (
	"context"

	"github.com/firetemplate/items-api/internal/apperr"
	"github.com/firetemplate/items-api/internal/models"
	"github.com/firetemplate/items-api/pkg/logger"
)

// Directory resolves profiles from the identity provider.
type Directory interface {
	Ready() bool
	GetProfile(ctx context.Context, uid string) (*models.Profile, error)
}

// Service resolves the caller's profile. When the provider directory is
// ready it is authoritative; otherwise the local repository is kept in sync
// with the verified claims.
type Service struct {
	dir  Directory
	repo ProfileRepository
}

func NewService(dir Directory, repo ProfileRepository) *Service {
	return &Service{dir: dir, repo: repo}
}

// Me returns the caller's profile, or a NotFound error when it cannot be resolved
func (s *Service) Me(ctx context.Context, caller *models.Caller) (*models.Profile, error) {
	if caller == nil || caller.UID == "" {
		return nil, apperr.NotFound("User not found")
	}
	if s.dir != nil && s.dir.Ready() {
		p, err := s.dir.GetProfile(ctx, caller.UID)
		if err != nil {
			logger.Warnf("profile lookup for %s failed: %v", caller.UID, err)
			return nil, apperr.NotFound("User not found")
		}
		return p, nil
	}
	if s.repo == nil {
		return nil, apperr.NotFound("User not found")
	}
	p, err := s.repo.UpsertByUID(ctx, models.NewProfile(caller.UID, caller.Email, caller.Name))
	if err != nil || p == nil {
		logger.Warnf("profile upsert for %s failed: %v", caller.UID, err)
		return nil, apperr.NotFound("User not found")
	}
	return p, nil
}
