package impl

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pritapia/internal/audit"
	"pritapia/internal/domain"
	"pritapia/internal/dto"
	"pritapia/internal/netutil"
	"pritapia/internal/observability/metrics"
	"pritapia/internal/ratelimit"
	"pritapia/internal/service"
	"pritapia/internal/store"
	"pritapia/internal/totp"
)

const auditModule = "Authentication"

// userStore is the slice of the store the auth flow touches; tests swap in
// an in-memory implementation.
type userStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
	UpdatePassword(ctx context.Context, userID string, hash string) error
	ActivateByToken(ctx context.Context, token string) error
}

type AuthServiceImpl struct {
	Users     userStore
	Passwords service.PasswordService
	Sessions  service.SessionService
	Audit     audit.Recorder
	Limiter   *ratelimit.Limiter // nil disables throttling
	TOTP      totp.Verifier
}

func NewAuthServiceImpl(st *store.Store, passwords service.PasswordService, sessions service.SessionService, recorder audit.Recorder, limiter *ratelimit.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{
		Users:     st.Users(),
		Passwords: passwords,
		Sessions:  sessions,
		Audit:     recorder,
		Limiter:   limiter,
		TOTP:      totp.Default(),
	}
}

// Login is a single pass with no state kept between calls:
// lookup -> password -> TOTP (if enabled) -> active -> side effects -> session.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (a *AuthServiceImpl) Login(ctx context.Context, r dto.LoginRequest, ip, ua string) (*dto.LoginResponse, error) {
	if r.Username == "" {
		return nil, &domain.MissingFieldError{Field: "username"}
	}
	if r.Password == "" {
		return nil, &domain.MissingFieldError{Field: "password"}
	}

	if normalized, ok := netutil.NormalizeIP(ip); ok {
		ip = normalized
	}
	ua = netutil.TruncateUserAgent(ua)

	result := "failure"
	defer func() {
		metrics.AuthLoginsTotal.WithLabelValues(result).Inc()
	}()

	if a.Limiter != nil && !a.Limiter.Allow(ratelimit.Key(r.Username, ip)) {
		slog.Warn("login throttled", "username", r.Username, "ip", ip)
		return nil, domain.ErrRateLimited
	}

	// Every rejection below records exactly one failure audit row; audit
	// problems never change the login outcome.
	fail := func(details string, cause error) error {
		a.Audit.Record(ctx, audit.Entry{
			Module:   auditModule,
			Actor:    r.Username,
			Details:  details,
			IP:       ip,
			Metadata: map[string]any{"userAgent": ua},
		})
		return cause
	}

	user, err := a.Users.GetByUsername(ctx, r.Username)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, fail("Failed login attempt", domain.ErrInvalidCredentials)
		}
		return nil, err
	}

	rehashNeeded, ok := a.Passwords.Verify(r.Password, user.Password)
	if !ok {
		return nil, fail("Failed login attempt", domain.ErrInvalidCredentials)
	}

	// 2FA is checked before the activation state, as the SPA expects:
	// an inactive account with a bad code sees 401, not 403.
	if user.TwoFactorEnabled {
		if r.Totp == "" || !a.TOTP.Verify(user.TwoFactorSecret, r.Totp) {
			return nil, fail("Failed login attempt: two-factor", domain.ErrTwoFactorInvalid)
		}
	}

	if !user.IsActive {
		return nil, fail("Login attempt on inactive account", domain.ErrAccountNotActivated)
	}

	if rehashNeeded {
		if newHash, err := a.Passwords.Hash(r.Password); err == nil {
			if err := a.Users.UpdatePassword(ctx, user.ID, newHash); err != nil {
				slog.Warn("password rehash failed", "user_id", user.ID, "error", err)
			}
		}
	}

	// Best effort: a stale lastLogin must not block the login.
	now := time.Now().UTC()
	if err := a.Users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		slog.Warn("last-login update failed", "user_id", user.ID, "error", err)
	}

	sess, err := a.Sessions.Issue(ctx, user, ip, ua)
	if err != nil {
		return nil, err
	}

	a.Audit.Record(ctx, audit.Entry{
		Module:   auditModule,
		Actor:    r.Username,
		Details:  "User logged in successfully",
		IP:       ip,
		Metadata: map[string]any{"userAgent": ua},
	})
	result = "success"

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)

	return &dto.LoginResponse{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		FullName:         user.FullName,
		Role:             user.Role,
		IsActive:         user.IsActive,
		TwoFactorEnabled: user.TwoFactorEnabled,
		CreatedAt:        user.CreatedAt,
		LastLogin:        &now,
		Token:            sess.Token,
	}, nil
}

func (a *AuthServiceImpl) Session(ctx context.Context, token string) (*domain.Principal, error) {
	sess, err := a.Sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	p := sess.Principal()
	return &p, nil
}

func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	return a.Sessions.Destroy(ctx, token)
}

// LogoutAll resolves the token to find out whose sessions to revoke, then
// revokes all of them, the presented one included.
func (a *AuthServiceImpl) LogoutAll(ctx context.Context, token string) error {
	sess, err := a.Sessions.Get(ctx, token)
	if err != nil {
		return err
	}
	n, err := a.Sessions.DestroyAll(ctx, sess.UserID)
	if err != nil {
		return err
	}
	slog.Info("user logged out everywhere", "user_id", sess.UserID, "sessions", n)
	return nil
}

func (a *AuthServiceImpl) Activate(ctx context.Context, token string) error {
	err := a.Users.ActivateByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return domain.ErrInvalidToken
		}
		return err
	}
	return nil
}
