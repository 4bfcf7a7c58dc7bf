package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"time"

	"helperkit/core/storage"
	"helperkit/feature/crud"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrEmptyName is returned when an operation is called without an object name.
var ErrEmptyName = errors.New("object name must not be empty")

// defaultContentType is used when neither the caller nor the file extension
// provide one.
const defaultContentType = "application/octet-stream"

// FileInfo describes one stored object.
type FileInfo struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"contentType,omitempty"`
	LastModified time.Time `json:"lastModified"`
}

// Service handles file operations against the configured bucket.
type Service struct {
	client  storage.Client
	bucket  string
	logger  *zap.Logger
	records *crud.Actions[UploadRecord]
}

// NewService creates a new file service.
func NewService(client storage.Client, bucket string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, bucket: bucket, logger: logger}
}

// EnsureBucket creates the configured bucket if it does not exist yet.
func (s *Service) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("creating bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("bucket created", zap.String("bucket", s.bucket))
	return nil
}

// Upload stores the reader's content under name. size may be -1 when
// unknown; contentType falls back to the file extension.
func (s *Service) Upload(ctx context.Context, name string, r io.Reader, size int64, contentType string) (FileInfo, error) {
	if name == "" {
		return FileInfo{}, ErrEmptyName
	}
	if contentType == "" {
		contentType = sniffContentType(name)
	}

	info, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return FileInfo{}, fmt.Errorf("uploading %s: %w", name, err)
	}

	s.logger.Info("file uploaded",
		zap.String("name", name),
		zap.Int64("size", info.Size),
		zap.String("content_type", contentType))

	out := FileInfo{Name: name, Size: info.Size, ContentType: contentType, LastModified: info.LastModified}
	s.recordUpload(ctx, out)
	return out, nil
}

// Download returns a reader over the object's content. The caller closes it.
func (s *Service) Download(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", name, err)
	}
	return obj, nil
}

// Stat returns metadata for one object.
func (s *Service) Stat(ctx context.Context, name string) (FileInfo, error) {
	if name == "" {
		return FileInfo{}, ErrEmptyName
	}
	info, err := s.client.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		return FileInfo{}, fmt.Errorf("stat %s: %w", name, err)
	}
	return FileInfo{
		Name:         info.Key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
	}, nil
}

// List returns metadata for every object under the prefix.
func (s *Service) List(ctx context.Context, prefix string) ([]FileInfo, error) {
	out := []FileInfo{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("listing %s: %w", s.bucket, obj.Err)
		}
		out = append(out, FileInfo{
			Name:         obj.Key,
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			LastModified: obj.LastModified,
		})
	}
	return out, nil
}

// Delete removes one object.
func (s *Service) Delete(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("deleting %s: %w", name, err)
	}
	s.logger.Info("file deleted", zap.String("name", name))
	return nil
}

// DeleteMany removes the named objects in one bulk call and returns the
// first removal error, if any. An empty list is a no-op.
func (s *Service) DeleteMany(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(names))
	for _, name := range names {
		objectsCh <- minio.ObjectInfo{Key: name}
	}
	close(objectsCh)

	for rerr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil {
			return fmt.Errorf("deleting %s: %w", rerr.ObjectName, rerr.Err)
		}
	}
	return nil
}

// PresignedURL generates a time-limited download URL for the object.
func (s *Service) PresignedURL(ctx context.Context, name string, expiry time.Duration) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, name, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presigning %s: %w", name, err)
	}
	return u.String(), nil
}

// sniffContentType resolves a content type from the file extension.
func sniffContentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return defaultContentType
}
