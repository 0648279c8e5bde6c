package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"pritapia/internal/domain"
	"pritapia/internal/netutil"
	"pritapia/internal/observability/metrics"
	"pritapia/internal/store"

	"github.com/google/uuid"
)

type SessionServiceImpl struct {
	store *store.Store
	ttl   time.Duration
}

func NewSessionService(st *store.Store, ttl time.Duration) *SessionServiceImpl {
	return &SessionServiceImpl{store: st, ttl: ttl}
}

// Issue mints an opaque bearer token and persists the session row with a
// snapshot of the principal.
func (s *SessionServiceImpl) Issue(ctx context.Context, user *domain.User, ip, ua string) (*domain.Session, error) {
	if user == nil {
		return nil, ErrNilUser
	}

	result := "success"
	defer func() {
		metrics.SessionsIssuedTotal.WithLabelValues(result).Inc()
	}()

	token, err := newToken()
	if err != nil {
		result = "failure"
		return nil, err
	}

	if normalized, ok := netutil.NormalizeIP(ip); ok {
		ip = normalized
	}
	now := time.Now().UTC()
	sess := &domain.Session{
		ID:        uuid.New(),
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
		IP:        ip,
		UserAgent: netutil.TruncateUserAgent(ua),
	}
	if err := s.store.Sessions().Create(ctx, sess); err != nil {
		result = "failure"
		return nil, err
	}
	return sess, nil
}

func (s *SessionServiceImpl) Get(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrNotLoggedIn
	}
	sess, err := s.store.Sessions().GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrNotLoggedIn
		}
		return nil, err
	}
	return sess, nil
}

// Destroy revokes the session behind the token. Unknown tokens are a no-op:
// logout is idempotent.
func (s *SessionServiceImpl) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Sessions().RevokeByToken(ctx, token, time.Now().UTC())
}

// DestroyAll revokes every live session of the user in one transaction and
// sweeps out already-expired rows while it holds it.
func (s *SessionServiceImpl) DestroyAll(ctx context.Context, userID string) (int64, error) {
	var revoked int64
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		now := time.Now().UTC()
		if _, err := tx.Sessions().PurgeExpired(ctx, now); err != nil {
			return err
		}
		n, err := tx.Sessions().RevokeAllForUser(ctx, userID, now)
		if err != nil {
			return err
		}
		revoked = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return revoked, nil
}

// newToken returns 16 random bytes hex encoded, the token shape the SPA
// already stores.
func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
