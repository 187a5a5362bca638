package github

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"

	portgit "github.com/alanyang/folio/internal/port/git"
)

var _ portgit.Provider = (*Client)(nil)

type Client struct {
	gh *github.Client
}

// NewClient builds a GitHub client. An empty token uses anonymous, rate-limited access.
func NewClient(token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	return &Client{gh: github.NewClient(httpClient)}
}

func newClientWith(gh *github.Client) *Client { return &Client{gh: gh} }

func (c *Client) Repository(ctx context.Context, owner, name string) (portgit.Repository, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
			return portgit.Repository{}, portgit.ErrRepositoryNotFound
		}
		return portgit.Repository{}, err
	}
	return portgit.Repository{
		FullName:    repo.GetFullName(),
		Description: repo.GetDescription(),
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		Language:    repo.GetLanguage(),
		PushedAt:    repo.GetPushedAt().Time,
		HTMLURL:     repo.GetHTMLURL(),
	}, nil
}
