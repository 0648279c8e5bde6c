package store

import (
	"context"
	"time"

	"pritapia/internal/domain"

	"gorm.io/gorm"
)

type AuditLogStore struct{ db *gorm.DB }

func (s *Store) AuditLogs() *AuditLogStore { return &AuditLogStore{s.DB} }

func (a *AuditLogStore) Create(ctx context.Context, log *domain.AuditLog) error {
	if log.ID == "" {
		log.ID = domain.NewID()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}
	return a.db.WithContext(ctx).Create(log).Error
}

func (a *AuditLogStore) GetByID(ctx context.Context, id string) (*domain.AuditLog, error) {
	var log domain.AuditLog
	if err := a.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &log, nil
}

// List returns audit rows newest first, optionally filtered by module.
func (a *AuditLogStore) List(ctx context.Context, module string, limit int) ([]domain.AuditLog, error) {
	q := a.db.WithContext(ctx).Model(&domain.AuditLog{}).Order("timestamp DESC")
	if module != "" {
		q = q.Where("module = ?", module)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []domain.AuditLog
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
