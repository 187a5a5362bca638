package minio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	domainproject "github.com/alanyang/folio/internal/domain/project"
	"github.com/alanyang/folio/internal/metrics"
	portmedia "github.com/alanyang/folio/internal/port/media"
)

var _ portmedia.Store = (*Store)(nil)

// sniffLen is how many leading bytes are inspected to detect the content type.
const sniffLen = 3072

// ErrUnsupportedType is returned when an upload is not an image.
var ErrUnsupportedType = errors.New("unsupported content type")

// Config holds MinIO connection settings.
type Config struct {
	Endpoint        string // e.g. "minio:9000" or "localhost:9000"
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Bucket          string
	// PublicURL is the base under which objects are served. Defaults to
	// the endpoint plus bucket.
	PublicURL string
}

// Store keeps project images in a single bucket, one key prefix per collection.
type Store struct {
	mc        *minio.Client
	bucket    string
	publicURL string
}

func New(cfg Config) (*Store, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, errors.New("minio: endpoint and bucket are required")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &Store{
		mc:        mc,
		bucket:    cfg.Bucket,
		publicURL: publicBase(cfg),
	}, nil
}

// EnsureBucket creates the bucket if it does not exist and makes its objects
// anonymously readable so image URLs can be embedded directly.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.mc.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("creating bucket %s: %w", s.bucket, err)
		}
	}
	if err := s.mc.SetBucketPolicy(ctx, s.bucket, readOnlyPolicy(s.bucket)); err != nil {
		return fmt.Errorf("setting policy on bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Ping reports whether the bucket is reachable.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.mc.BucketExists(ctx, s.bucket)
	return err
}

func (s *Store) Upload(ctx context.Context, f portmedia.File, collection string) (img domainproject.Image, err error) {
	defer func() {
		metrics.MediaOperations.WithLabelValues("upload", metrics.Result(err)).Inc()
	}()

	rc, err := f.Open()
	if err != nil {
		return domainproject.Image{}, fmt.Errorf("opening %s: %w", f.Filename, err)
	}
	defer rc.Close()

	mtype, body, err := sniff(rc)
	if err != nil {
		return domainproject.Image{}, fmt.Errorf("reading %s: %w", f.Filename, err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return domainproject.Image{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
	}

	size := f.Size
	if size <= 0 {
		size = -1
	}
	key := objectKey(collection, mtype.Extension())
	_, err = s.mc.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: mtype.String(),
		UserMetadata: map[string]string{
			"original-filename": f.Filename,
		},
	})
	if err != nil {
		return domainproject.Image{}, fmt.Errorf("putting object %s: %w", key, err)
	}

	return domainproject.Image{ID: key, URL: s.URL(key)}, nil
}

// Destroy removes the object. A missing object is not an error.
func (s *Store) Destroy(ctx context.Context, id string) (err error) {
	defer func() {
		metrics.MediaOperations.WithLabelValues("destroy", metrics.Result(err)).Inc()
	}()

	err = s.mc.RemoveObject(ctx, s.bucket, id, minio.RemoveObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
			return nil
		}
		return fmt.Errorf("removing object %s: %w", id, err)
	}
	return nil
}

// URL returns the public URL for an object key.
func (s *Store) URL(key string) string {
	return s.publicURL + "/" + key
}

func publicBase(cfg Config) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + cfg.Endpoint + "/" + cfg.Bucket
}

func objectKey(collection, ext string) string {
	collection = strings.Trim(collection, "/")
	if collection == "" {
		return uuid.NewString() + ext
	}
	return collection + "/" + uuid.NewString() + ext
}

// sniff detects the content type from the leading bytes of r and returns a
// reader that still yields the full stream.
func sniff(r io.Reader) (*mimetype.MIME, io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, nil, err
	}
	return mimetype.Detect(head), br, nil
}

func readOnlyPolicy(bucket string) string {
	return fmt.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"AWS": ["*"]},
    "Action": ["s3:GetObject"],
    "Resource": ["arn:aws:s3:::%s/*"]
  }]
}`, bucket)
}
