package git_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	domainproject "github.com/alanyang/folio/internal/domain/project"
	"github.com/alanyang/folio/internal/mocks"
	portgit "github.com/alanyang/folio/internal/port/git"
	gitsvc "github.com/alanyang/folio/internal/service/git"
	projectsvc "github.com/alanyang/folio/internal/service/project"
	transportgit "github.com/alanyang/folio/internal/transport/git"
)

func init() { gin.SetMode(gin.TestMode) }

func newRouter(t *testing.T, withGit bool) (*gin.Engine, *mocks.MockProjectRepository, *mocks.MockGitProvider) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockProjectRepository(ctrl)
	provider := mocks.NewMockGitProvider(ctrl)

	projects := projectsvc.NewService(repo, mocks.NewMockMediaStore(ctrl), nil, nil, projectsvc.Config{})
	var gitSvc *gitsvc.Service
	if withGit {
		gitSvc = gitsvc.NewService(provider, nil, 0)
	}

	r := gin.New()
	transportgit.Register(r.Group("/api/projects"), projects, gitSvc)
	return r, repo, provider
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func projectWithLink(link string) domainproject.Project {
	return domainproject.Project{ID: uuid.New(), GitRepoLink: link}
}

func TestGetRepository_Success(t *testing.T) {
	r, repo, provider := newRouter(t, true)
	p := projectWithLink("https://github.com/alanyang/folio")
	repo.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
	provider.EXPECT().Repository(gomock.Any(), "alanyang", "folio").
		Return(portgit.Repository{FullName: "alanyang/folio", Stars: 5}, nil)

	w := get(r, "/api/projects/"+p.ID.String()+"/repository")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fullName":"alanyang/folio"`)
	assert.Contains(t, w.Body.String(), `"stars":5`)
}

func TestGetRepository_Disabled(t *testing.T) {
	r, _, _ := newRouter(t, false)

	w := get(r, "/api/projects/"+uuid.NewString()+"/repository")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetRepository_UnknownProject(t *testing.T) {
	r, repo, _ := newRouter(t, true)
	id := uuid.New()
	repo.EXPECT().FindByID(gomock.Any(), id).Return(domainproject.Project{}, domainproject.ErrNotFound)

	w := get(r, "/api/projects/"+id.String()+"/repository")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRepository_NotGitHub(t *testing.T) {
	r, repo, _ := newRouter(t, true)
	p := projectWithLink("https://gitlab.com/a/b")
	repo.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)

	w := get(r, "/api/projects/"+p.ID.String()+"/repository")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRepository_RepositoryMissing(t *testing.T) {
	r, repo, provider := newRouter(t, true)
	p := projectWithLink("https://github.com/a/gone")
	repo.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
	provider.EXPECT().Repository(gomock.Any(), "a", "gone").Return(portgit.Repository{}, portgit.ErrRepositoryNotFound)

	w := get(r, "/api/projects/"+p.ID.String()+"/repository")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRepository_UpstreamError(t *testing.T) {
	r, repo, provider := newRouter(t, true)
	p := projectWithLink("https://github.com/a/b")
	repo.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
	provider.EXPECT().Repository(gomock.Any(), "a", "b").Return(portgit.Repository{}, errors.New("rate limited"))

	w := get(r, "/api/projects/"+p.ID.String()+"/repository")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetRepository_InvalidID(t *testing.T) {
	r, _, _ := newRouter(t, true)

	w := get(r, "/api/projects/nope/repository")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
