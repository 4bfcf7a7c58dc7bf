package files

import (
	"context"
	"time"

	"helperkit/feature/crud"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UploadRecord is the audit row written for each successful upload.
type UploadRecord struct {
	ID          uint `gorm:"primaryKey"`
	Name        string
	Size        int64
	ContentType string
	CreatedAt   time.Time
}

// WithAuditLog enables upload auditing on the given database connection.
// Audit writes are best effort and never fail the upload itself.
func (s *Service) WithAuditLog(db *gorm.DB) *Service {
	s.records = crud.New[UploadRecord](db, s.logger)
	return s
}

// Uploads returns the audit trail, newest first. Returns nil when
// auditing is disabled.
func (s *Service) Uploads(ctx context.Context, limit int) ([]UploadRecord, error) {
	if s.records == nil {
		return nil, nil
	}
	return s.records.GetAll(ctx,
		crud.WithOrder("created_at DESC"),
		crud.WithPaging(limit, 0))
}

func (s *Service) recordUpload(ctx context.Context, info FileInfo) {
	if s.records == nil {
		return
	}
	rec := UploadRecord{Name: info.Name, Size: info.Size, ContentType: info.ContentType}
	if err := s.records.Create(ctx, &rec); err != nil {
		s.logger.Warn("Failed to record upload", zap.String("name", info.Name), zap.Error(err))
	}
}
