package project

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainproject "github.com/alanyang/folio/internal/domain/project"
	portmedia "github.com/alanyang/folio/internal/port/media"
	projectsvc "github.com/alanyang/folio/internal/service/project"
)

// Multipart field names.
const (
	fieldBanner  = "projectBanner"
	fieldGallery = "projectImages"
)

var formFields = []string{"title", "description", "gitRepoLink", "projectLink", "stack", "technologies", "deployed"}

func Register(rg *gin.RouterGroup, svc *projectsvc.Service, maxUploadBytes int64) {
	limit := limitBody(maxUploadBytes)
	rg.POST("", limit, createProject(svc))
	rg.GET("", listProjects(svc))
	rg.GET("/:id", getProject(svc))
	rg.PUT("/:id", limit, updateProject(svc))
	rg.DELETE("/:id", deleteProject(svc))
}

func createProject(svc *projectsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		files, err := readFiles(c)
		if err != nil {
			writeFormError(c, err)
			return
		}

		fields := domainproject.Fields{
			Title:        c.PostForm("title"),
			Description:  c.PostForm("description"),
			GitRepoLink:  c.PostForm("gitRepoLink"),
			ProjectLink:  c.PostForm("projectLink"),
			Stack:        c.PostForm("stack"),
			Technologies: c.PostForm("technologies"),
			Deployed:     c.PostForm("deployed"),
		}

		p, err := svc.Create(c.Request.Context(), fields, files)
		if err != nil {
			writeError(c, err, "Project Not Found!")
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "New Project Added!",
			"project": p,
		})
	}
}

func updateProject(svc *projectsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		files, err := readFiles(c)
		if err != nil {
			writeFormError(c, err)
			return
		}

		p, err := svc.Update(c.Request.Context(), id, readPatch(c), files)
		if err != nil {
			writeError(c, err, "Project Not Found!")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Project Updated!",
			"project": p,
		})
	}
}

func deleteProject(svc *projectsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err, "Already Deleted!")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Project Deleted!",
		})
	}
}

func listProjects(svc *projectsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, err, "Project Not Found!")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"projects": projects,
		})
	}
}

func getProject(svc *projectsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		p, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			writeError(c, err, "Project Not Found!")
			return
		}
		// p is nil for an unknown id; the response carries project: null.
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"project": p,
		})
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, &domainproject.ValidationError{
			Reason:  domainproject.ReasonInvalidID,
			Message: "Invalid project id",
		}, "")
		return uuid.Nil, false
	}
	return id, true
}

func readPatch(c *gin.Context) domainproject.Patch {
	var patch domainproject.Patch
	targets := map[string]**string{
		"title":        &patch.Title,
		"description":  &patch.Description,
		"gitRepoLink":  &patch.GitRepoLink,
		"projectLink":  &patch.ProjectLink,
		"stack":        &patch.Stack,
		"technologies": &patch.Technologies,
		"deployed":     &patch.Deployed,
	}
	for _, name := range formFields {
		if v, ok := c.GetPostForm(name); ok {
			*targets[name] = &v
		}
	}
	return patch
}

// readFiles collects the banner and gallery parts. A request that is not
// multipart simply carries no files.
func readFiles(c *gin.Context) (projectsvc.Files, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return projectsvc.Files{}, nil
		}
		return projectsvc.Files{}, err
	}

	var files projectsvc.Files
	if headers := form.File[fieldBanner]; len(headers) > 0 {
		f := toMediaFile(headers[0])
		files.Banner = &f
	}
	for _, h := range form.File[fieldGallery] {
		files.Gallery = append(files.Gallery, toMediaFile(h))
	}
	return files, nil
}

func toMediaFile(h *multipart.FileHeader) portmedia.File {
	return portmedia.File{
		Filename:    h.Filename,
		ContentType: h.Header.Get("Content-Type"),
		Size:        h.Size,
		Open: func() (io.ReadCloser, error) {
			return h.Open()
		},
	}
}

func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

func writeFormError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		fail(c, http.StatusRequestEntityTooLarge, "Upload Too Large!")
		return
	}
	fail(c, http.StatusBadRequest, "Malformed multipart form")
}

// writeError maps service errors onto the uniform {success:false, message} body.
func writeError(c *gin.Context, err error, notFoundMessage string) {
	var (
		verr *domainproject.ValidationError
		uerr *domainproject.UploadError
		derr *domainproject.DestroyError
		perr *domainproject.PersistenceError
	)
	switch {
	case errors.As(err, &verr):
		status := http.StatusBadRequest
		if verr.Reason == domainproject.ReasonNoFiles {
			status = http.StatusNotFound
		}
		fail(c, status, verr.Message)
	case errors.Is(err, domainproject.ErrNotFound):
		fail(c, http.StatusNotFound, notFoundMessage)
	case errors.As(err, &uerr):
		slog.ErrorContext(c.Request.Context(), "media upload failed", "collection", uerr.Collection, "error", uerr.Err)
		fail(c, http.StatusInternalServerError, uerr.Message)
	case errors.As(err, &derr):
		slog.ErrorContext(c.Request.Context(), "media destroy failed", "image_id", derr.ImageID, "error", derr.Err)
		fail(c, http.StatusInternalServerError, "Failed to remove image from media store")
	case errors.As(err, &perr):
		status := http.StatusInternalServerError
		if perr.Constraint() {
			status = http.StatusBadRequest
		}
		fail(c, status, perr.Message)
	default:
		slog.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		fail(c, http.StatusInternalServerError, "Internal Server Error")
	}
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
