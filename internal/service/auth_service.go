package service

import (
	"context"

	"pritapia/internal/domain"
	"pritapia/internal/dto"
)

type AuthService interface {
	// Login runs the full credential + TOTP + activation check and, on
	// success, mints a session. Failures return the domain error taxonomy.
	Login(ctx context.Context, r dto.LoginRequest, ip, ua string) (*dto.LoginResponse, error)
	// Session resolves a bearer token to its principal snapshot.
	Session(ctx context.Context, token string) (*domain.Principal, error)
	// Logout destroys the session behind the token; idempotent.
	Logout(ctx context.Context, token string) error
	// LogoutAll revokes every live session of the token's user. The token
	// itself must resolve, so anonymous callers get ErrNotLoggedIn.
	LogoutAll(ctx context.Context, token string) error
	// Activate consumes an activation token and enables the account.
	Activate(ctx context.Context, token string) error
}
