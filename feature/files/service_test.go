package files

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"helperkit/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	t.Run("SniffsContentType", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PutObject", mock.Anything, "bucket", "report.json", mock.Anything, int64(4),
			mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
				return opts.ContentType == "application/json"
			})).Return(minio.UploadInfo{Size: 4}, nil)

		svc := NewService(client, "bucket", nil)
		info, err := svc.Upload(context.Background(), "report.json", strings.NewReader("{}  "), 4, "")
		assert.NoError(t, err)
		assert.Equal(t, "application/json", info.ContentType)
		client.AssertExpectations(t)
	})

	t.Run("UnknownExtensionFallsBack", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PutObject", mock.Anything, "bucket", "blob.xyzzy", mock.Anything, int64(1),
			mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
				return opts.ContentType == "application/octet-stream"
			})).Return(minio.UploadInfo{Size: 1}, nil)

		svc := NewService(client, "bucket", nil)
		_, err := svc.Upload(context.Background(), "blob.xyzzy", strings.NewReader("x"), 1, "")
		assert.NoError(t, err)
	})

	t.Run("EmptyName", func(t *testing.T) {
		svc := NewService(new(mocks.Client), "bucket", nil)
		_, err := svc.Upload(context.Background(), "", strings.NewReader("x"), 1, "")
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("PutError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PutObject", mock.Anything, "bucket", "f.txt", mock.Anything, int64(1), mock.Anything).
			Return(minio.UploadInfo{}, errors.New("connection reset"))

		svc := NewService(client, "bucket", nil)
		_, err := svc.Upload(context.Background(), "f.txt", strings.NewReader("x"), 1, "")
		assert.ErrorContains(t, err, "uploading f.txt")
	})
}

func TestDownload(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "bucket", "f.txt", mock.Anything).
		Return(io.NopCloser(strings.NewReader("content")), nil)

	svc := NewService(client, "bucket", nil)
	rc, err := svc.Download(context.Background(), "f.txt")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	assert.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestList(t *testing.T) {
	t.Run("CollectsObjects", func(t *testing.T) {
		ch := make(chan minio.ObjectInfo, 2)
		ch <- minio.ObjectInfo{Key: "a.txt", Size: 1}
		ch <- minio.ObjectInfo{Key: "b.txt", Size: 2}
		close(ch)

		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "bucket", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		svc := NewService(client, "bucket", nil)
		infos, err := svc.List(context.Background(), "")
		assert.NoError(t, err)
		require.Len(t, infos, 2)
		assert.Equal(t, "a.txt", infos[0].Name)
	})

	t.Run("PropagatesListError", func(t *testing.T) {
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("access denied")}
		close(ch)

		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "bucket", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		svc := NewService(client, "bucket", nil)
		_, err := svc.List(context.Background(), "")
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestDelete(t *testing.T) {
	t.Run("Single", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("RemoveObject", mock.Anything, "bucket", "f.txt", mock.Anything).Return(nil)

		svc := NewService(client, "bucket", nil)
		assert.NoError(t, svc.Delete(context.Background(), "f.txt"))
		client.AssertExpectations(t)
	})

	t.Run("ManyEmptyIsNoop", func(t *testing.T) {
		svc := NewService(new(mocks.Client), "bucket", nil)
		assert.NoError(t, svc.DeleteMany(context.Background(), nil))
	})

	t.Run("ManyReportsFirstError", func(t *testing.T) {
		errCh := make(chan minio.RemoveObjectError, 1)
		errCh <- minio.RemoveObjectError{ObjectName: "b.txt", Err: errors.New("locked")}
		close(errCh)

		client := new(mocks.Client)
		client.On("RemoveObjects", mock.Anything, "bucket", mock.Anything, mock.Anything).
			Return((<-chan minio.RemoveObjectError)(errCh))

		svc := NewService(client, "bucket", nil)
		err := svc.DeleteMany(context.Background(), []string{"a.txt", "b.txt"})
		assert.ErrorContains(t, err, "b.txt")
	})
}

func TestPresignedURL(t *testing.T) {
	u, _ := url.Parse("https://s3.example.com/bucket/f.txt?signed")

	client := new(mocks.Client)
	client.On("PresignedGetObject", mock.Anything, "bucket", "f.txt", 15*time.Minute, mock.Anything).
		Return(u, nil)

	svc := NewService(client, "bucket", nil)
	got, err := svc.PresignedURL(context.Background(), "f.txt", 15*time.Minute)
	assert.NoError(t, err)
	assert.Equal(t, u.String(), got)
}

func TestEnsureBucket(t *testing.T) {
	t.Run("AlreadyExists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "bucket").Return(true, nil)

		svc := NewService(client, "bucket", nil)
		assert.NoError(t, svc.EnsureBucket(context.Background()))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CreatesWhenMissing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "bucket").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "bucket", mock.Anything).Return(nil)

		svc := NewService(client, "bucket", nil)
		assert.NoError(t, svc.EnsureBucket(context.Background()))
		client.AssertExpectations(t)
	})
}
