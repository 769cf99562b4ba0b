package entities

import (
	"time"
)

// RequiredChannel is one force-subscribe channel of a bot.
// Insertion order defines the rotation base.
type RequiredChannel struct {
	BotKey    string    `gorm:"primaryKey"`
	Channel   string    `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for RequiredChannel
func (RequiredChannel) TableName() string {
	return "required_channels"
}

// GateState holds the per-(bot, token, user) rotation offset
type GateState struct {
	BotKey    string    `gorm:"primaryKey"`
	Token     string    `gorm:"primaryKey"`
	UserID    int64     `gorm:"primaryKey;autoIncrement:false"`
	Offset    int       `gorm:"column:rotation_offset;not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GateState
func (GateState) TableName() string {
	return "gate_state"
}

// JoinLink caches an invite link for a private channel
type JoinLink struct {
	BotKey     string    `gorm:"primaryKey"`
	ChannelKey string    `gorm:"primaryKey"`
	InviteLink string    `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for JoinLink
func (JoinLink) TableName() string {
	return "join_links"
}
