package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alanyang/folio/internal/domain/event"
	domainproject "github.com/alanyang/folio/internal/domain/project"
	"github.com/alanyang/folio/internal/metrics"
	portcache "github.com/alanyang/folio/internal/port/cache"
	porteventbus "github.com/alanyang/folio/internal/port/eventbus"
	portmedia "github.com/alanyang/folio/internal/port/media"
	portproject "github.com/alanyang/folio/internal/port/project"
)

const listCacheKey = "projects:all"

var errUnusableReference = errors.New("media store returned no usable reference")

// Config names the media collections and the read cache TTL.
type Config struct {
	BannerCollection  string
	GalleryCollection string
	CacheTTL          time.Duration
}

// Files carries the image payloads of a create or update request.
type Files struct {
	Banner  *portmedia.File
	Gallery []portmedia.File
}

// Empty reports whether no payload at all was supplied.
func (f Files) Empty() bool { return f.Banner == nil && len(f.Gallery) == 0 }

// Service orchestrates media store and repository calls for the project lifecycle.
// Media calls within one operation are issued one at a time, in order.
// Bus and cache are optional.
type Service struct {
	repo  portproject.Repository
	media portmedia.Store
	bus   porteventbus.EventBus
	cache portcache.Cache
	cfg   Config
}

func NewService(repo portproject.Repository, media portmedia.Store, bus porteventbus.EventBus, cache portcache.Cache, cfg Config) *Service {
	return &Service{repo: repo, media: media, bus: bus, cache: cache, cfg: cfg}
}

// Create uploads the banner and gallery images, then inserts the project.
// A gallery upload failure aborts without removing images already uploaded.
func (s *Service) Create(ctx context.Context, fields domainproject.Fields, files Files) (domainproject.Project, error) {
	if files.Empty() {
		return domainproject.Project{}, &domainproject.ValidationError{
			Reason:  domainproject.ReasonNoFiles,
			Message: "Project Banner Image Required!",
		}
	}
	if missing := fields.Missing(); len(missing) > 0 {
		return domainproject.Project{}, &domainproject.ValidationError{
			Reason:  domainproject.ReasonMissingField,
			Fields:  missing,
			Message: "Please Provide All Details!",
		}
	}
	if files.Banner == nil {
		return domainproject.Project{}, &domainproject.ValidationError{
			Reason:  domainproject.ReasonMissingBanner,
			Fields:  []string{"projectBanner"},
			Message: "Project Banner Image Required!",
		}
	}

	banner, err := s.upload(ctx, *files.Banner, s.cfg.BannerCollection, "Failed to upload banner to media store")
	if err != nil {
		return domainproject.Project{}, err
	}
	gallery, err := s.uploadGallery(ctx, files.Gallery)
	if err != nil {
		return domainproject.Project{}, err
	}

	created, err := s.repo.Create(ctx, domainproject.New(fields, banner, gallery))
	if err != nil {
		return domainproject.Project{}, fmt.Errorf("create project: %w", err)
	}

	s.forget(ctx, created.ID)
	s.publish(ctx, event.TypeProjectCreated, created.ID)
	return created, nil
}

// Update overwrites the supplied descriptive fields, replaces the banner when a new
// one is given and appends new gallery images after the existing ones.
//
// The old banner is destroyed before the replacement is uploaded; if that upload
// fails the stored record keeps referencing the destroyed object.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch domainproject.Patch, files Files) (domainproject.Project, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domainproject.Project{}, fmt.Errorf("update project: %w", err)
	}
	if blank := patch.Blank(); len(blank) > 0 {
		return domainproject.Project{}, &domainproject.ValidationError{
			Reason:  domainproject.ReasonMissingField,
			Fields:  blank,
			Message: "Please Provide All Details!",
		}
	}
	// Banner and gallery come from the uploads below, never from the caller.
	patch.Banner, patch.Gallery = nil, nil

	if files.Banner != nil {
		if err := s.destroy(ctx, current.Banner.ID); err != nil {
			return domainproject.Project{}, err
		}
		banner, err := s.upload(ctx, *files.Banner, s.cfg.BannerCollection, "Failed to upload banner to media store")
		if err != nil {
			slog.ErrorContext(ctx, "banner destroyed but replacement upload failed",
				"project_id", id, "destroyed_banner", current.Banner.ID, "error", err)
			return domainproject.Project{}, err
		}
		patch.Banner = &banner
	}

	if len(files.Gallery) > 0 {
		added, err := s.uploadGallery(ctx, files.Gallery)
		if err != nil {
			return domainproject.Project{}, err
		}
		gallery := make([]domainproject.Image, 0, len(current.Gallery)+len(added))
		gallery = append(gallery, current.Gallery...)
		patch.Gallery = append(gallery, added...)
	}

	updated, err := s.repo.UpdateByID(ctx, id, patch)
	if err != nil {
		return domainproject.Project{}, fmt.Errorf("update project: %w", err)
	}

	s.forget(ctx, id)
	s.publish(ctx, event.TypeProjectUpdated, id)
	return updated, nil
}

// Delete destroys the banner, then every gallery image in stored order, then the record.
// A failed destroy stops the operation; images already destroyed stay destroyed.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if err := s.destroy(ctx, current.Banner.ID); err != nil {
		return err
	}
	for _, img := range current.Gallery {
		if err := s.destroy(ctx, img.ID); err != nil {
			return err
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.forget(ctx, id)
	s.publish(ctx, event.TypeProjectDeleted, id)
	return nil
}

// List returns every project, most recently modified first.
func (s *Service) List(ctx context.Context) ([]domainproject.Project, error) {
	var cached []domainproject.Project
	if s.cacheGet(ctx, listCacheKey, &cached) {
		return cached, nil
	}

	projects, err := s.repo.ListByUpdatedDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if projects == nil {
		projects = []domainproject.Project{}
	}
	s.cacheSet(ctx, listCacheKey, projects)
	return projects, nil
}

// Get returns the project with the given id, or nil when there is none.
// Unlike Update and Delete, a missing project is not an error here.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domainproject.Project, error) {
	var cached domainproject.Project
	if s.cacheGet(ctx, itemCacheKey(id), &cached) {
		return &cached, nil
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainproject.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	s.cacheSet(ctx, itemCacheKey(id), p)
	return &p, nil
}

// Forget drops cached reads for id. Used when another instance reports a change.
func (s *Service) Forget(ctx context.Context, id uuid.UUID) {
	s.forget(ctx, id)
}

func (s *Service) upload(ctx context.Context, f portmedia.File, collection, message string) (domainproject.Image, error) {
	img, err := s.media.Upload(ctx, f, collection)
	if err == nil && (img.ID == "" || img.URL == "") {
		err = errUnusableReference
	}
	if err != nil {
		return domainproject.Image{}, &domainproject.UploadError{Collection: collection, Message: message, Err: err}
	}
	return img, nil
}

func (s *Service) uploadGallery(ctx context.Context, files []portmedia.File) ([]domainproject.Image, error) {
	images := make([]domainproject.Image, 0, len(files))
	for _, f := range files {
		img, err := s.upload(ctx, f, s.cfg.GalleryCollection, "Failed to upload gallery image to media store")
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func (s *Service) destroy(ctx context.Context, imageID string) error {
	if imageID == "" {
		return nil
	}
	if err := s.media.Destroy(ctx, imageID); err != nil {
		return &domainproject.DestroyError{ImageID: imageID, Err: err}
	}
	return nil
}

func (s *Service) publish(ctx context.Context, t event.Type, id uuid.UUID) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event.New(t, id)); err != nil {
		slog.WarnContext(ctx, "publish project event failed", "type", t, "project_id", id, "error", err)
	}
}

func itemCacheKey(id uuid.UUID) string { return "project:" + id.String() }

func (s *Service) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, portcache.ErrMiss) {
			metrics.CacheLookups.WithLabelValues("miss").Inc()
		} else {
			metrics.CacheLookups.WithLabelValues("error").Inc()
			slog.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		slog.WarnContext(ctx, "cache entry undecodable", "key", key, "error", err)
		return false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return true
}

func (s *Service) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil || s.cfg.CacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
		slog.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

func (s *Service) forget(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, listCacheKey, itemCacheKey(id)); err != nil {
		slog.WarnContext(ctx, "cache invalidation failed", "project_id", id, "error", err)
	}
}
