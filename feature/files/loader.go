package files

import (
	"fmt"

	"helperkit/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	db      *gorm.DB
}

// NewFeature creates a new Files feature. db is optional; when present,
// uploads are audited through it.
func NewFeature(client storage.Client, bucket string, db *gorm.DB, logger *zap.Logger) *Feature {
	svc := NewService(client, bucket, logger)
	if db != nil {
		svc = svc.WithAuditLog(db)
	}
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h, db: db}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "files"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load migrates the audit table when a database is attached and registers
// the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if f.db != nil {
		if err := f.db.AutoMigrate(&UploadRecord{}); err != nil {
			return fmt.Errorf("migrating upload records: %w", err)
		}
	}
	f.handler.RegisterRoutes(app)
	return nil
}
