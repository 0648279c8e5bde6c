package service

import (
	"context"

	"pritapia/internal/domain"
)

// SessionService is the session-store capability: create an authenticated
// principal record behind an opaque token, resolve it, destroy it.
type SessionService interface {
	Issue(ctx context.Context, user *domain.User, ip, ua string) (*domain.Session, error)
	Get(ctx context.Context, token string) (*domain.Session, error)
	Destroy(ctx context.Context, token string) error
	// DestroyAll revokes every live session of the user and reports how
	// many were still live.
	DestroyAll(ctx context.Context, userID string) (int64, error)
}
