package entities

import (
	"time"
)

// BotIdentity represents one registered tenant bot credential
type BotIdentity struct {
	BotKey    string    `gorm:"primaryKey"`
	Token     string    `gorm:"not null"`
	Username  string    `gorm:"not null"`
	Enabled   bool      `gorm:"not null;default:true"`
	OwnerID   int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for BotIdentity
func (BotIdentity) TableName() string {
	return "bots"
}

// WorkerState describes the lifecycle state of a running worker
type WorkerState string

const (
	WorkerStopped  WorkerState = "stopped"
	WorkerStarting WorkerState = "starting"
	WorkerRunning  WorkerState = "running"
	WorkerStopping WorkerState = "stopping"
)

// BotStatus is a read model combining the persisted identity with runtime state
type BotStatus struct {
	BotKey   string
	Username string
	Enabled  bool
	Running  bool
}
