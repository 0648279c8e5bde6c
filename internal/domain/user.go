package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID               string     `gorm:"type:varchar(32);primaryKey" db:"id" json:"id"`
	Username         string     `gorm:"type:text;uniqueIndex:ux_users_username" db:"username" json:"username"`
	Email            string     `gorm:"type:text" db:"email" json:"email"`
	FullName         string     `gorm:"type:text" db:"full_name" json:"fullName"`
	Password         string     `gorm:"type:text;not null" db:"password" json:"-"` // bcrypt hash; legacy rows may hold plaintext
	Role             Role       `gorm:"type:text;not null;default:user" db:"role" json:"role"`
	IsActive         bool       `gorm:"not null;default:false" db:"is_active" json:"isActive"`
	ActivationToken  *string    `gorm:"type:text;index" db:"activation_token" json:"-"`
	TwoFactorEnabled bool       `gorm:"not null;default:false" db:"two_factor_enabled" json:"twoFactorEnabled"`
	TwoFactorSecret  string     `gorm:"type:text" db:"two_factor_secret" json:"-"`
	CreatedAt        time.Time  `gorm:"not null" db:"created_at" json:"createdAt"`
	LastLogin        *time.Time `db:"last_login" json:"lastLogin"`
}

func (User) TableName() string { return "users" }
