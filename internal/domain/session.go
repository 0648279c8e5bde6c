package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record behind an opaque bearer token. The
// principal fields are a snapshot taken at login time; role changes do not
// propagate into live sessions.
type Session struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" db:"id"`
	Token     string     `gorm:"type:text;uniqueIndex:ux_sessions_token" db:"token"`
	UserID    string     `gorm:"type:varchar(32);index" db:"user_id"`
	Username  string     `gorm:"type:text;not null" db:"username"`
	Role      Role       `gorm:"type:text;not null" db:"role"`
	IssuedAt  time.Time  `gorm:"not null" db:"issued_at"`
	ExpiresAt time.Time  `gorm:"not null" db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
	IP        string     `gorm:"type:text" db:"ip"`
	UserAgent string     `gorm:"type:text" db:"user_agent"`
}

func (Session) TableName() string { return "sessions" }

// Principal is the public snapshot the session endpoint returns.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func (s *Session) Principal() Principal {
	return Principal{ID: s.UserID, Username: s.Username, Role: s.Role}
}
