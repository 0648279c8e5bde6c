package store

import (
	"context"
	"time"

	"pritapia/internal/domain"

	"gorm.io/gorm"
)

type UserStore struct{ db *gorm.DB }

func (s *Store) Users() *UserStore { return &UserStore{db: s.DB} }

func (u *UserStore) Create(ctx context.Context, usr *domain.User) error {
	if usr.ID == "" {
		usr.ID = domain.NewID()
	}
	if usr.CreatedAt.IsZero() {
		usr.CreatedAt = time.Now().UTC()
	}
	return u.db.WithContext(ctx).Create(usr).Error
}

func (u *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserStore) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	return u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Update("last_login", at).Error
}

func (u *UserStore) UpdatePassword(ctx context.Context, userID string, hash string) error {
	return u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Update("password", hash).Error
}

// ActivateByToken flips isActive and consumes the activation token. Returns
// ErrRecordNotFound when no row carries the token (already used or bogus).
func (u *UserStore) ActivateByToken(ctx context.Context, token string) error {
	tx := u.db.WithContext(ctx).Model(&domain.User{}).
		Where("activation_token = ?", token).
		Updates(map[string]interface{}{
			"is_active":        true,
			"activation_token": nil,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
