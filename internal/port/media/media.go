package media

import (
	"context"
	"io"

	domainproject "github.com/alanyang/folio/internal/domain/project"
)

//go:generate mockgen -destination=../../mocks/media_store.go -package=mocks -mock_names=Store=MockMediaStore . Store

// File is an image payload waiting to be uploaded. Open may be called more than once.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Store is the remote object store holding banner and gallery images.
type Store interface {
	// Upload stores f under the logical collection and returns its id and public URL.
	Upload(ctx context.Context, f File, collection string) (domainproject.Image, error)
	// Destroy removes the object with the given id. Removing an absent id is not an error.
	Destroy(ctx context.Context, id string) error
}
