package files

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"helperkit/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestApp(client *mocks.Client) *fiber.App {
	app := fiber.New()
	NewHandler(NewService(client, "bucket", nil)).RegisterRoutes(app)
	return app
}

func TestHandleUpload(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "bucket", "hello.txt", mock.Anything, int64(5), mock.Anything).
		Return(minio.UploadInfo{Size: 5}, nil)

	app := newTestApp(client)
	req := httptest.NewRequest("POST", "/files/hello.txt", strings.NewReader("hello"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var info FileInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "hello.txt", info.Name)
	assert.EqualValues(t, 5, info.Size)
}

func TestHandleDownload(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "bucket", "hello.txt", mock.Anything).
			Return(minio.ObjectInfo{Key: "hello.txt", Size: 5, ContentType: "text/plain"}, nil)
		client.On("GetObject", mock.Anything, "bucket", "hello.txt", mock.Anything).
			Return(io.NopCloser(strings.NewReader("hello")), nil)

		resp, err := newTestApp(client).Test(httptest.NewRequest("GET", "/files/hello.txt", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/plain")

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(body))
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "bucket", "nope.txt", mock.Anything).
			Return(minio.ObjectInfo{}, errors.New("not found"))

		resp, err := newTestApp(client).Test(httptest.NewRequest("GET", "/files/nope.txt", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestHandleList(t *testing.T) {
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Key: "a.txt", Size: 1}
	close(ch)

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "bucket", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "reports/"
	})).Return((<-chan minio.ObjectInfo)(ch))

	resp, err := newTestApp(client).Test(httptest.NewRequest("GET", "/files/?prefix=reports%2F", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var infos []FileInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "a.txt", infos[0].Name)
}

func TestHandleDelete(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("RemoveObject", mock.Anything, "bucket", "a.txt", mock.Anything).Return(nil)

		resp, err := newTestApp(client).Test(httptest.NewRequest("DELETE", "/files/a.txt", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	})

	t.Run("StorageError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("RemoveObject", mock.Anything, "bucket", "a.txt", mock.Anything).
			Return(errors.New("backend down"))

		resp, err := newTestApp(client).Test(httptest.NewRequest("DELETE", "/files/a.txt", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestHandlePresignedURL(t *testing.T) {
	client := new(mocks.Client)
	client.On("PresignedGetObject", mock.Anything, "bucket", "a.txt", mock.Anything, mock.Anything).
		Return(mustURL(t, "https://s3.example.com/bucket/a.txt?sig"), nil)

	resp, err := newTestApp(client).Test(httptest.NewRequest("GET", "/files/a.txt/url", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out["url"], "a.txt")
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
