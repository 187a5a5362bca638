package project_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alanyang/folio/internal/adapter/memory"
	"github.com/alanyang/folio/internal/domain/event"
	domainproject "github.com/alanyang/folio/internal/domain/project"
	"github.com/alanyang/folio/internal/mocks"
	portmedia "github.com/alanyang/folio/internal/port/media"
	projectsvc "github.com/alanyang/folio/internal/service/project"
	"github.com/alanyang/folio/internal/testutil"
)

// ── helpers ───────────────────────────────────────────────────────────────────

const (
	bannerCollection  = "portfolio-project-images"
	galleryCollection = "portfolio-project-galleries"
)

type svcDeps struct {
	repo  *mocks.MockProjectRepository
	media *mocks.MockMediaStore
	bus   *mocks.MockEventBus
	cache *memory.Cache
}

func newProjectSvc(t *testing.T) (*projectsvc.Service, svcDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := svcDeps{
		repo:  mocks.NewMockProjectRepository(ctrl),
		media: mocks.NewMockMediaStore(ctrl),
		bus:   mocks.NewMockEventBus(ctrl),
		cache: memory.NewCache(),
	}
	svc := projectsvc.NewService(d.repo, d.media, d.bus, d.cache, projectsvc.Config{
		BannerCollection:  bannerCollection,
		GalleryCollection: galleryCollection,
		CacheTTL:          time.Minute,
	})
	return svc, d
}

func file(name string) portmedia.File {
	return portmedia.File{
		Filename:    name,
		ContentType: "image/png",
		Size:        4,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("data")), nil
		},
	}
}

func fileNamed(name string) gomock.Matcher { return fileMatcher{name} }

type fileMatcher struct{ want string }

func (m fileMatcher) Matches(x interface{}) bool {
	f, ok := x.(portmedia.File)
	return ok && f.Filename == m.want
}
func (m fileMatcher) String() string { return "file=" + m.want }

func matchEventType(et event.Type) gomock.Matcher {
	return eventTypeMatcher{et}
}

type eventTypeMatcher struct{ want event.Type }

func (m eventTypeMatcher) Matches(x interface{}) bool {
	e, ok := x.(event.Event)
	return ok && e.Type == m.want
}
func (m eventTypeMatcher) String() string { return "event.Type=" + string(m.want) }

func fullFields() domainproject.Fields {
	return domainproject.Fields{
		Title:        "Folio",
		Description:  "Portfolio backend",
		GitRepoLink:  "https://github.com/alanyang/folio",
		ProjectLink:  "https://folio.example.com",
		Stack:        "Full Stack",
		Technologies: "Go, Postgres",
		Deployed:     "Yes",
	}
}

func storedProject() domainproject.Project {
	p := domainproject.New(fullFields(),
		domainproject.Image{ID: "portfolio-project-images/b1.png", URL: "https://cdn/b1.png"},
		[]domainproject.Image{
			{ID: "portfolio-project-galleries/g1.png", URL: "https://cdn/g1.png"},
			{ID: "portfolio-project-galleries/g2.png", URL: "https://cdn/g2.png"},
		})
	return p
}

func strPtr(s string) *string { return &s }

// ── Create ────────────────────────────────────────────────────────────────────

func TestCreate_Success(t *testing.T) {
	svc, d := newProjectSvc(t)
	banner := domainproject.Image{ID: "portfolio-project-images/b.png", URL: "https://cdn/b.png"}
	g1 := domainproject.Image{ID: "portfolio-project-galleries/1.png", URL: "https://cdn/1.png"}
	g2 := domainproject.Image{ID: "portfolio-project-galleries/2.png", URL: "https://cdn/2.png"}

	gomock.InOrder(
		d.media.EXPECT().Upload(gomock.Any(), fileNamed("banner.png"), bannerCollection).Return(banner, nil),
		d.media.EXPECT().Upload(gomock.Any(), fileNamed("one.png"), galleryCollection).Return(g1, nil),
		d.media.EXPECT().Upload(gomock.Any(), fileNamed("two.png"), galleryCollection).Return(g2, nil),
		d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p domainproject.Project) (domainproject.Project, error) {
				return p, nil
			}),
		d.bus.EXPECT().Publish(gomock.Any(), matchEventType(event.TypeProjectCreated)).Return(nil),
	)

	b := file("banner.png")
	got, err := svc.Create(context.Background(), fullFields(), projectsvc.Files{
		Banner:  &b,
		Gallery: []portmedia.File{file("one.png"), file("two.png")},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Folio", got.Title)
	assert.Equal(t, banner, got.Banner)
	assert.Equal(t, []domainproject.Image{g1, g2}, got.Gallery)
}

func TestCreate_BannerOnlyHasEmptyGallery(t *testing.T) {
	svc, d := newProjectSvc(t)
	d.media.EXPECT().Upload(gomock.Any(), gomock.Any(), bannerCollection).
		Return(domainproject.Image{ID: "b", URL: "u"}, nil)
	d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p domainproject.Project) (domainproject.Project, error) {
			return p, nil
		})
	d.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	b := file("banner.png")
	got, err := svc.Create(context.Background(), fullFields(), projectsvc.Files{Banner: &b})
	require.NoError(t, err)
	require.NotNil(t, got.Gallery)
	assert.Empty(t, got.Gallery)
}

func TestCreate_NoFiles(t *testing.T) {
	svc, _ := newProjectSvc(t)

	_, err := svc.Create(context.Background(), fullFields(), projectsvc.Files{})
	var verr *domainproject.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domainproject.ReasonNoFiles, verr.Reason)
	assert.Equal(t, "Project Banner Image Required!", verr.Message)
}

func TestCreate_MissingFieldsRejectedBeforeUpload(t *testing.T) {
	svc, _ := newProjectSvc(t)
	fields := fullFields()
	fields.Stack = "   "
	fields.Deployed = ""

	b := file("banner.png")
	_, err := svc.Create(context.Background(), fields, projectsvc.Files{Banner: &b})
	var verr *domainproject.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domainproject.ReasonMissingField, verr.Reason)
	assert.Equal(t, []string{"stack", "deployed"}, verr.Fields)
	assert.Equal(t, "Please Provide All Details!", verr.Message)
}

func TestCreate_GalleryWithoutBanner(t *testing.T) {
	svc, _ := newProjectSvc(t)

	_, err := svc.Create(context.Background(), fullFields(), projectsvc.Files{
		Gallery: []portmedia.File{file("one.png")},
	})
	var verr *domainproject.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domainproject.ReasonMissingBanner, verr.Reason)
}

func TestCreate_BannerUploadFails(t *testing.T) {
	svc, d := newProjectSvc(t)
	d.media.EXPECT().Upload(gomock.Any(), gomock.Any(), bannerCollection).
		Return(domainproject.Image{}, errors.New("quota exceeded"))

	b := file("banner.png")
	_, err := svc.Create(context.Background(), fullFields(), projectsvc.Files{
		Banner:  &b,
		Gallery: []portmedia.File{file("one.png")},
	})
	var uerr *domainproject.UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, bannerCollection, uerr.Collection)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestCreate_GalleryUploadFailsSkipsInsert(t *testing.T) {
	svc, d := newProjectSvc(t)
	gomock.InOrder(
		d.media.EXPECT().Upload(gomock.Any(), gomock.Any(), bannerCollection).
			Return(domainproject.Image{ID: "b", URL: "u"}, nil),
		d.media.EXPECT().Upload(gomock.Any(), fileNamed("one.png"), galleryCollection).
			Return(domainproject.Image{ID: "g1", URL: "u1"}, nil),
		d.media.EXPECT().Upload(gomock.Any(), fileNamed("two.png"), galleryCollection).
			Return(domainproject.Image{}, errors.New("timeout")),
	)

	b := file("banner.png")
	_, err := svc.Create(context.Background(), fullFields(), projectsvc.Files{
		Banner:  &b,
		Gallery: []portmedia.File{file("one.png"), file("two.png"), file("three.png")},
	})
	var uerr *domainproject.UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, galleryCollection, uerr.Collection)
}

func TestCreate_UnusableReferenceIsUploadError(t *testing.T) {
	svc, d := newProjectSvc(t)
	d.media.EXPECT().Upload(gomock.Any(), gomock.Any(), bannerCollection).
		Return(domainproject.Image{ID: "b"}, nil)

	b := file("banner.png")
	_, err := svc.Create(context.Background(), fullFields(), projectsvc.Files{Banner: &b})
	var uerr *domainproject.UploadError
	require.ErrorAs(t, err, &uerr)
}

func TestCreate_RepoError(t *testing.T) {
	svc, d := newProjectSvc(t)
	d.media.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domainproject.Image{ID: "b", URL: "u"}, nil)
	d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(domainproject.Project{}, &domainproject.PersistenceError{Op: "insert", Code: "23514"})

	b := file("banner.png")
	_, err := svc.Create(context.Background(), fullFields(), projectsvc.Files{Banner: &b})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create project")
	var perr *domainproject.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.True(t, perr.Constraint())
}

func TestCreate_PublishFailureDoesNotFail(t *testing.T) {
	svc, d := newProjectSvc(t)
	d.media.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domainproject.Image{ID: "b", URL: "u"}, nil)
	d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p domainproject.Project) (domainproject.Project, error) {
			return p, nil
		})
	d.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("listener gone"))

	b := file("banner.png")
	_, err := svc.Create(context.Background(), fullFields(), projectsvc.Files{Banner: &b})
	require.NoError(t, err)
}

// ── Update ────────────────────────────────────────────────────────────────────

func TestUpdate_FieldsOnlyTouchesNoMedia(t *testing.T) {
	svc, d := newProjectSvc(t)
	current := storedProject()

	d.repo.EXPECT().FindByID(gomock.Any(), current.ID).Return(current, nil)
	d.repo.EXPECT().UpdateByID(gomock.Any(), current.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, patch domainproject.Patch) (domainproject.Project, error) {
			assert.Nil(t, patch.Banner)
			assert.Nil(t, patch.Gallery)
			require.NotNil(t, patch.Title)
			assert.Nil(t, patch.Stack)
			return testutil.ApplyPatch(current, patch), nil
		})
	d.bus.EXPECT().Publish(gomock.Any(), matchEventType(event.TypeProjectUpdated)).Return(nil)

	got, err := svc.Update(context.Background(), current.ID,
		domainproject.Patch{Title: strPtr("Folio v2")}, projectsvc.Files{})
	require.NoError(t, err)
	assert.Equal(t, "Folio v2", got.Title)
	assert.Equal(t, current.Stack, got.Stack)
	assert.Equal(t, current.Banner, got.Banner)
	assert.Equal(t, current.Gallery, got.Gallery)
}

func TestUpdate_ReplacesBannerAfterDestroyingOld(t *testing.T) {
	svc, d := newProjectSvc(t)
	current := storedProject()
	newBanner := domainproject.Image{ID: "portfolio-project-images/b2.png", URL: "https://cdn/b2.png"}

	gomock.InOrder(
		d.repo.EXPECT().FindByID(gomock.Any(), current.ID).Return(current, nil),
		d.media.EXPECT().Destroy(gomock.Any(), current.Banner.ID).Return(nil),
		d.media.EXPECT().Upload(gomock.Any(), fileNamed("new.png"), bannerCollection).Return(newBanner, nil),
		d.repo.EXPECT().UpdateByID(gomock.Any(), current.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, patch domainproject.Patch) (domainproject.Project, error) {
				require.NotNil(t, patch.Banner)
				assert.Equal(t, newBanner, *patch.Banner)
				assert.Nil(t, patch.Gallery)
				return testutil.ApplyPatch(current, patch), nil
			}),
		d.bus.EXPECT().Publish(gomock.Any(), matchEventType(event.TypeProjectUpdated)).Return(nil),
	)

	b := file("new.png")
	got, err := svc.Update(context.Background(), current.ID, domainproject.Patch{}, projectsvc.Files{Banner: &b})
	require.NoError(t, err)
	assert.Equal(t, newBanner, got.Banner)
	assert.Len(t, got.Gallery, 2)
}

func TestUpdate_AppendsGallery(t *testing.T) {
	svc, d := newProjectSvc(t)
	current := storedProject()
	added := domainproject.Image{ID: "portfolio-project-galleries/g3.png", URL: "https://cdn/g3.png"}

	d.repo.EXPECT().FindByID(gomock.Any(), current.ID).Return(current, nil)
	d.media.EXPECT().Upload(gomock.Any(), fileNamed("g3.png"), galleryCollection).Return(added, nil)
	d.repo.EXPECT().UpdateByID(gomock.Any(), current.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, patch domainproject.Patch) (domainproject.Project, error) {
			return testutil.ApplyPatch(current, patch), nil
		})
	d.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Update(context.Background(), current.ID, domainproject.Patch{},
		projectsvc.Files{Gallery: []portmedia.File{file("g3.png")}})
	require.NoError(t, err)
	require.Len(t, got.Gallery, 3)
	assert.Equal(t, current.Gallery[0], got.Gallery[0])
	assert.Equal(t, current.Gallery[1], got.Gallery[1])
	assert.Equal(t, added, got.Gallery[2])
	assert.Equal(t, current.Banner, got.Banner)
}

func TestUpdate_AppendsGalleryInSubmissionOrder(t *testing.T) {
	svc, d := newProjectSvc(t)
	current := storedProject()
	c := domainproject.Image{ID: "portfolio-project-galleries/c.png", URL: "https://cdn/c.png"}
	dd := domainproject.Image{ID: "portfolio-project-galleries/d.png", URL: "https://cdn/d.png"}

	gomock.InOrder(
		d.repo.EXPECT().FindByID(gomock.Any(), current.ID).Return(current, nil),
		d.media.EXPECT().Upload(gomock.Any(), fileNamed("c.png"), galleryCollection).Return(c, nil),
		d.media.EXPECT().Upload(gomock.Any(), fileNamed("d.png"), galleryCollection).Return(dd, nil),
		d.repo.EXPECT().UpdateByID(gomock.Any(), current.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, patch domainproject.Patch) (domainproject.Project, error) {
				return testutil.ApplyPatch(current, patch), nil
			}),
		d.bus.EXPECT().Publish(gomock.Any(), matchEventType(event.TypeProjectUpdated)).Return(nil),
	)

	got, err := svc.Update(context.Background(), current.ID, domainproject.Patch{},
		projectsvc.Files{Gallery: []portmedia.File{file("c.png"), file("d.png")}})
	require.NoError(t, err)
	assert.Equal(t, []domainproject.Image{current.Gallery[0], current.Gallery[1], c, dd}, got.Gallery)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, d := newProjectSvc(t)
	id := uuid.New()
	d.repo.EXPECT().FindByID(gomock.Any(), id).Return(domainproject.Project{}, domainproject.ErrNotFound)

	b := file("new.png")
	_, err := svc.Update(context.Background(), id, domainproject.Patch{}, projectsvc.Files{Banner: &b})
	assert.ErrorIs(t, err, domainproject.ErrNotFound)
}

func TestUpdate_BlankFieldRejectedBeforeMedia(t *testing.T) {
	svc, d := newProjectSvc(t)
	current := storedProject()
	d.repo.EXPECT().FindByID(gomock.Any(), current.ID).Return(current, nil)

	b := file("new.png")
	_, err := svc.Update(context.Background(), current.ID,
		domainproject.Patch{Title: strPtr(" ")}, projectsvc.Files{Banner: &b})
	var verr *domainproject.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"title"}, verr.Fields)
}

func TestUpdate_DestroyFailureStopsBeforeUpload(t *testing.T) {
	svc, d := newProjectSvc(t)
	current := storedProject()
	d.repo.EXPECT().FindByID(gomock.Any(), current.ID).Return(current, nil)
	d.media.EXPECT().Destroy(gomock.Any(), current.Banner.ID).Return(errors.New("denied"))

	b := file("new.png")
	_, err := svc.Update(context.Background(), current.ID, domainproject.Patch{}, projectsvc.Files{Banner: &b})
	var derr *domainproject.DestroyError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, current.Banner.ID, derr.ImageID)
}

func TestUpdate_ReplacementUploadFails(t *testing.T) {
	svc, d := newProjectSvc(t)
	current := storedProject()
	d.repo.EXPECT().FindByID(gomock.Any(), current.ID).Return(current, nil)
	d.media.EXPECT().Destroy(gomock.Any(), current.Banner.ID).Return(nil)
	d.media.EXPECT().Upload(gomock.Any(), gomock.Any(), bannerCollection).
		Return(domainproject.Image{}, errors.New("boom"))

	b := file("new.png")
	_, err := svc.Update(context.Background(), current.ID, domainproject.Patch{}, projectsvc.Files{Banner: &b})
	var uerr *domainproject.UploadError
	require.ErrorAs(t, err, &uerr)
}

// ── Delete ────────────────────────────────────────────────────────────────────

func TestDelete_DestroysEveryImageThenRecord(t *testing.T) {
	svc, d := newProjectSvc(t)
	current := storedProject()

	gomock.InOrder(
		d.repo.EXPECT().FindByID(gomock.Any(), current.ID).Return(current, nil),
		d.media.EXPECT().Destroy(gomock.Any(), current.Banner.ID).Return(nil),
		d.media.EXPECT().Destroy(gomock.Any(), current.Gallery[0].ID).Return(nil),
		d.media.EXPECT().Destroy(gomock.Any(), current.Gallery[1].ID).Return(nil),
		d.repo.EXPECT().Delete(gomock.Any(), current.ID).Return(nil),
		d.bus.EXPECT().Publish(gomock.Any(), matchEventType(event.TypeProjectDeleted)).Return(nil),
		d.repo.EXPECT().FindByID(gomock.Any(), current.ID).Return(domainproject.Project{}, domainproject.ErrNotFound),
	)

	require.NoError(t, svc.Delete(context.Background(), current.ID))

	got, err := svc.Get(context.Background(), current.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDelete_NotFound(t *testing.T) {
	svc, d := newProjectSvc(t)
	id := uuid.New()
	d.repo.EXPECT().FindByID(gomock.Any(), id).Return(domainproject.Project{}, domainproject.ErrNotFound)

	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, domainproject.ErrNotFound)
}

func TestDelete_DestroyFailureKeepsRecord(t *testing.T) {
	svc, d := newProjectSvc(t)
	current := storedProject()

	d.repo.EXPECT().FindByID(gomock.Any(), current.ID).Return(current, nil)
	d.media.EXPECT().Destroy(gomock.Any(), current.Banner.ID).Return(nil)
	d.media.EXPECT().Destroy(gomock.Any(), current.Gallery[0].ID).Return(errors.New("denied"))

	err := svc.Delete(context.Background(), current.ID)
	var derr *domainproject.DestroyError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, current.Gallery[0].ID, derr.ImageID)
}

// ── List / Get ────────────────────────────────────────────────────────────────

func TestList_EmptyIsNotNil(t *testing.T) {
	svc, d := newProjectSvc(t)
	d.repo.EXPECT().ListByUpdatedDesc(gomock.Any()).Return(nil, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_ServedFromCache(t *testing.T) {
	svc, d := newProjectSvc(t)
	p := storedProject()
	d.repo.EXPECT().ListByUpdatedDesc(gomock.Any()).Return([]domainproject.Project{p}, nil).Times(1)

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	second, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].Gallery, second[0].Gallery)
}

func TestList_InvalidatedByDelete(t *testing.T) {
	svc, d := newProjectSvc(t)
	p := storedProject()
	p.Gallery = []domainproject.Image{}

	d.repo.EXPECT().ListByUpdatedDesc(gomock.Any()).Return([]domainproject.Project{p}, nil)
	_, err := svc.List(context.Background())
	require.NoError(t, err)

	d.repo.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil)
	d.media.EXPECT().Destroy(gomock.Any(), p.Banner.ID).Return(nil)
	d.repo.EXPECT().Delete(gomock.Any(), p.ID).Return(nil)
	d.bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, svc.Delete(context.Background(), p.ID))

	d.repo.EXPECT().ListByUpdatedDesc(gomock.Any()).Return([]domainproject.Project{}, nil)
	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestList_RepoError(t *testing.T) {
	svc, d := newProjectSvc(t)
	d.repo.EXPECT().ListByUpdatedDesc(gomock.Any()).Return(nil, errors.New("db down"))

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list projects")
}

func TestGet_Success(t *testing.T) {
	svc, d := newProjectSvc(t)
	p := storedProject()
	d.repo.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil).Times(1)

	got, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)

	cached, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, p.Title, cached.Title)
}

func TestGet_AbsentIsNilAndNotCached(t *testing.T) {
	svc, d := newProjectSvc(t)
	id := uuid.New()
	d.repo.EXPECT().FindByID(gomock.Any(), id).Return(domainproject.Project{}, domainproject.ErrNotFound).Times(2)

	for range 2 {
		got, err := svc.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestGet_RepoError(t *testing.T) {
	svc, d := newProjectSvc(t)
	id := uuid.New()
	d.repo.EXPECT().FindByID(gomock.Any(), id).Return(domainproject.Project{}, errors.New("db down"))

	_, err := svc.Get(context.Background(), id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get project")
}

func TestForget_DropsCachedItem(t *testing.T) {
	svc, d := newProjectSvc(t)
	p := storedProject()
	d.repo.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil).Times(2)

	_, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	svc.Forget(context.Background(), p.ID)
	_, err = svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
}

func TestService_WorksWithoutBusOrCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockProjectRepository(ctrl)
	media := mocks.NewMockMediaStore(ctrl)
	svc := projectsvc.NewService(repo, media, nil, nil, projectsvc.Config{
		BannerCollection:  bannerCollection,
		GalleryCollection: galleryCollection,
	})
	p := storedProject()

	repo.EXPECT().FindByID(gomock.Any(), p.ID).Return(p, nil).Times(2)
	for range 2 {
		got, err := svc.Get(context.Background(), p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
	}
}
