package entities

import (
	"time"
)

// Role is a per-tenant authorization grant level
type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

// AccessEntry grants a user management rights over one bot
type AccessEntry struct {
	BotKey    string    `gorm:"primaryKey"`
	UserID    int64     `gorm:"primaryKey;autoIncrement:false"`
	Role      Role      `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for AccessEntry
func (AccessEntry) TableName() string {
	return "access_entries"
}
