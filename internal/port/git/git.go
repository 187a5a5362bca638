package git

import (
	"context"
	"errors"
	"time"
)

//go:generate mockgen -destination=../../mocks/git_provider.go -package=mocks -mock_names=Provider=MockGitProvider . Provider

// ErrRepositoryNotFound is returned when the hosting service has no such repository.
var ErrRepositoryNotFound = errors.New("repository not found")

type Repository struct {
	FullName    string    `json:"fullName"`
	Description string    `json:"description"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Language    string    `json:"language"`
	PushedAt    time.Time `json:"pushedAt"`
	HTMLURL     string    `json:"htmlUrl"`
}

type Provider interface {
	Repository(ctx context.Context, owner, name string) (Repository, error)
}
