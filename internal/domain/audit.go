package domain

import "time"

type AuditLog struct {
	ID        string    `gorm:"type:varchar(32);primaryKey" db:"id" json:"id"`
	Action    string    `gorm:"type:text;not null" db:"action" json:"action"`
	Actor     string    `gorm:"type:text;not null" db:"actor" json:"user"`
	Timestamp time.Time `gorm:"not null;index" db:"timestamp" json:"timestamp"`
	Details   string    `gorm:"type:text" db:"details" json:"details"`
	Module    string    `gorm:"type:text;not null;index" db:"module" json:"module"`
	IPAddress string    `gorm:"type:text" db:"ip_address" json:"ipAddress"`
	Metadata  JSON      `gorm:"type:jsonb" db:"metadata" json:"metadata,omitempty"`
}

func (AuditLog) TableName() string { return "audit_logs" }
