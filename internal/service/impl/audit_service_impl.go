package impl

import (
	"context"

	"pritapia/internal/domain"
	"pritapia/internal/dto"
	"pritapia/internal/store"
)

const defaultAuditLimit = 200

type AuditServiceImpl struct {
	store *store.Store
}

func NewAuditService(st *store.Store) *AuditServiceImpl {
	return &AuditServiceImpl{store: st}
}

func (s *AuditServiceImpl) List(ctx context.Context, q dto.AuditQuery) ([]domain.AuditLog, error) {
	limit := q.Limit
	if limit <= 0 || limit > defaultAuditLimit {
		limit = defaultAuditLimit
	}
	return s.store.AuditLogs().List(ctx, q.Module, limit)
}

func (s *AuditServiceImpl) Get(ctx context.Context, id string) (*domain.AuditLog, error) {
	return s.store.AuditLogs().GetByID(ctx, id)
}
