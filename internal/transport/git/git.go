package git

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portgit "github.com/alanyang/folio/internal/port/git"
	gitsvc "github.com/alanyang/folio/internal/service/git"
	projectsvc "github.com/alanyang/folio/internal/service/project"
)

// Register mounts repository lookups under a project group. gitSvc may be nil
// when lookups are disabled.
func Register(rg *gin.RouterGroup, projects *projectsvc.Service, gitSvc *gitsvc.Service) {
	rg.GET("/:id/repository", getRepository(projects, gitSvc))
}

func gitUnavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"success": false,
		"message": "GitHub lookup not enabled (set GITHUB_LOOKUP=true)",
	})
}

func getRepository(projects *projectsvc.Service, gitSvc *gitsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gitSvc == nil {
			gitUnavailable(c)
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid project id"})
			return
		}

		p, err := projects.Get(c.Request.Context(), id)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "load project for repository lookup", "project_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
			return
		}
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project Not Found!"})
			return
		}

		repo, err := gitSvc.Lookup(c.Request.Context(), p.GitRepoLink)
		switch {
		case errors.Is(err, gitsvc.ErrNotGitHubLink):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Project repository is not hosted on GitHub"})
		case errors.Is(err, portgit.ErrRepositoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Repository Not Found!"})
		case err != nil:
			slog.WarnContext(c.Request.Context(), "repository lookup failed", "project_id", id, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "GitHub lookup failed"})
		default:
			c.JSON(http.StatusOK, gin.H{"success": true, "repository": repo})
		}
	}
}
