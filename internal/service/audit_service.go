package service

import (
	"context"

	"pritapia/internal/domain"
	"pritapia/internal/dto"
)

type AuditService interface {
	List(ctx context.Context, q dto.AuditQuery) ([]domain.AuditLog, error)
	Get(ctx context.Context, id string) (*domain.AuditLog, error)
}
