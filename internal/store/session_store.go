package store

import (
	"context"
	"time"

	"pritapia/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionStore struct{ db *gorm.DB }

func (s *Store) Sessions() *SessionStore { return &SessionStore{s.DB} }

func (ss *SessionStore) Create(ctx context.Context, s *domain.Session) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return ss.db.WithContext(ctx).Create(s).Error
}

// GetByToken resolves a bearer token to its live session. Revoked or expired
// rows resolve to ErrRecordNotFound, same as an unknown token.
func (ss *SessionStore) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := ss.db.WithContext(ctx).
		First(&s, "token = ? AND revoked_at IS NULL AND expires_at > ?", token, time.Now().UTC()).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (ss *SessionStore) RevokeByToken(ctx context.Context, token string, at time.Time) error {
	return ss.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("token = ? AND revoked_at IS NULL", token).
		Update("revoked_at", at).Error
}

func (ss *SessionStore) RevokeAllForUser(ctx context.Context, userID string, at time.Time) (int64, error) {
	tx := ss.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", at)
	return tx.RowsAffected, tx.Error
}

// PurgeExpired deletes sessions whose expiry has passed. The janitor runs it
// on a timer; logout-everywhere batches it into its transaction.
func (ss *SessionStore) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	tx := ss.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&domain.Session{})
	return tx.RowsAffected, tx.Error
}
