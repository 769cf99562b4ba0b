package entities

import (
	"time"
)

// ContentItem maps a minted token to a message archived in the DB channel
type ContentItem struct {
	BotKey           string    `gorm:"primaryKey"`
	Token            string    `gorm:"primaryKey"`
	ArchiveMessageID int       `gorm:"not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for ContentItem
func (ContentItem) TableName() string {
	return "content_tokens"
}

// UploadSession is the transient state between ingestion and publish/cancel
type UploadSession struct {
	BotKey      string    `gorm:"primaryKey"`
	Token       string    `gorm:"primaryKey"`
	UploaderID  int64     `gorm:"not null"`
	ThumbFileID string    `gorm:"not null;default:''"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for UploadSession
func (UploadSession) TableName() string {
	return "upload_sessions"
}

// PostChannel is one publish target of a bot
type PostChannel struct {
	BotKey    string    `gorm:"primaryKey"`
	ChannelID int64     `gorm:"primaryKey;autoIncrement:false"`
	Title     string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for PostChannel
func (PostChannel) TableName() string {
	return "post_channels"
}
