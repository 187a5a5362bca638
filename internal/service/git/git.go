package git

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	portcache "github.com/alanyang/folio/internal/port/cache"
	portgit "github.com/alanyang/folio/internal/port/git"
)

// ErrNotGitHubLink is returned when a link does not name a github.com repository.
var ErrNotGitHubLink = errors.New("not a GitHub repository link")

type Service struct {
	provider portgit.Provider
	cache    portcache.Cache
	ttl      time.Duration
}

// NewService builds a lookup service. cache may be nil.
func NewService(provider portgit.Provider, cache portcache.Cache, ttl time.Duration) *Service {
	return &Service{provider: provider, cache: cache, ttl: ttl}
}

// Lookup resolves link to a repository and fetches its metadata.
func (s *Service) Lookup(ctx context.Context, link string) (portgit.Repository, error) {
	owner, name, err := ParseRepoLink(link)
	if err != nil {
		return portgit.Repository{}, err
	}

	key := "github:" + strings.ToLower(owner+"/"+name)
	if repo, ok := s.cached(ctx, key); ok {
		return repo, nil
	}

	repo, err := s.provider.Repository(ctx, owner, name)
	if err != nil {
		return portgit.Repository{}, fmt.Errorf("lookup repository %s/%s: %w", owner, name, err)
	}
	s.store(ctx, key, repo)
	return repo, nil
}

// ParseRepoLink extracts owner and repository name from an https or scp-style
// GitHub link. Trailing ".git" and extra path segments are ignored.
func ParseRepoLink(link string) (owner, name string, err error) {
	link = strings.TrimSpace(link)
	var path string
	switch {
	case strings.HasPrefix(link, "git@github.com:"):
		path = strings.TrimPrefix(link, "git@github.com:")
	default:
		if !strings.Contains(link, "://") {
			link = "https://" + link
		}
		u, perr := url.Parse(link)
		if perr != nil {
			return "", "", ErrNotGitHubLink
		}
		host := strings.ToLower(u.Hostname())
		if host != "github.com" && host != "www.github.com" {
			return "", "", ErrNotGitHubLink
		}
		path = u.Path
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return "", "", ErrNotGitHubLink
	}
	owner = parts[0]
	name = strings.TrimSuffix(parts[1], ".git")
	if owner == "" || name == "" {
		return "", "", ErrNotGitHubLink
	}
	return owner, name, nil
}

func (s *Service) cached(ctx context.Context, key string) (portgit.Repository, bool) {
	if s.cache == nil {
		return portgit.Repository{}, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return portgit.Repository{}, false
	}
	var repo portgit.Repository
	if err := json.Unmarshal(data, &repo); err != nil {
		return portgit.Repository{}, false
	}
	return repo, true
}

func (s *Service) store(ctx context.Context, key string, repo portgit.Repository) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	data, err := json.Marshal(repo)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		slog.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}
