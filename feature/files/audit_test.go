package files

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"helperkit/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newAuditDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestUploadAudit(t *testing.T) {
	t.Run("RecordsSuccessfulUploads", func(t *testing.T) {
		db := newAuditDB(t)
		require.NoError(t, db.AutoMigrate(&UploadRecord{}))

		client := new(mocks.Client)
		client.On("PutObject", mock.Anything, "bucket", "a.txt", mock.Anything, int64(5), mock.Anything).
			Return(minio.UploadInfo{Size: 5}, nil)

		svc := NewService(client, "bucket", nil).WithAuditLog(db)
		_, err := svc.Upload(context.Background(), "a.txt", strings.NewReader("hello"), 5, "text/plain")
		require.NoError(t, err)

		recs, err := svc.Uploads(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "a.txt", recs[0].Name)
		assert.Equal(t, int64(5), recs[0].Size)
		assert.Equal(t, "text/plain", recs[0].ContentType)
	})

	t.Run("DisabledWithoutDatabase", func(t *testing.T) {
		svc := NewService(new(mocks.Client), "bucket", nil)
		recs, err := svc.Uploads(context.Background(), 10)
		assert.NoError(t, err)
		assert.Nil(t, recs)
	})
}

func TestFeatureLoadMigratesAudit(t *testing.T) {
	db := newAuditDB(t)

	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "bucket", "b.txt", mock.Anything, int64(4), mock.Anything).
		Return(minio.UploadInfo{Size: 4}, nil)

	feat := NewFeature(client, "bucket", db, nil)
	app := fiber.New()
	require.NoError(t, feat.Load(app))

	req := httptest.NewRequest("POST", "/files/b.txt", strings.NewReader("data"))
	req.Header.Set(fiber.HeaderContentType, "text/plain")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/files/audit/uploads", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var recs []UploadRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "b.txt", recs[0].Name)
}
