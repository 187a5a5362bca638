package project

import (
	"context"

	"github.com/google/uuid"

	domainproject "github.com/alanyang/folio/internal/domain/project"
)

//go:generate mockgen -destination=../../mocks/project_repository.go -package=mocks -mock_names=Repository=MockProjectRepository . Repository

// Repository manages project persistence.
// Lookups of a missing id return domainproject.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, p domainproject.Project) (domainproject.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (domainproject.Project, error)
	// UpdateByID applies patch, bumps updated_at and returns the post-update state.
	UpdateByID(ctx context.Context, id uuid.UUID, patch domainproject.Patch) (domainproject.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByUpdatedDesc returns every project, most recently modified first.
	ListByUpdatedDesc(ctx context.Context) ([]domainproject.Project, error)
}
