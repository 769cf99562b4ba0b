package entities

import (
	"time"
)

// BotConfig is one per-bot configuration key/value pair
type BotConfig struct {
	BotKey string `gorm:"primaryKey"`
	CfgKey string `gorm:"primaryKey"`
	CfgVal string `gorm:"not null"`
}

// TableName returns the table name for BotConfig
func (BotConfig) TableName() string {
	return "bot_config"
}

// GlobalSetting is one deployment-wide key/value setting
type GlobalSetting struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

// TableName returns the table name for GlobalSetting
func (GlobalSetting) TableName() string {
	return "settings"
}

// PendingAction is per-conversation admin input state keyed by (bot, admin)
type PendingAction struct {
	BotKey    string    `gorm:"primaryKey"`
	AdminID   int64     `gorm:"primaryKey;autoIncrement:false"`
	Action    string    `gorm:"not null"`
	Payload   string    `gorm:"not null;default:''"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for PendingAction
func (PendingAction) TableName() string {
	return "pending_actions"
}
