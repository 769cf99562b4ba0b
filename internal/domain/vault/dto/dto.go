package dto

import (
	"github.com/iyann1255/fsubmul/internal/domain/vault/entities"
)

// PublishRequest describes one publish attempt
type PublishRequest struct {
	BotKey      string
	BotUsername string
	Token       string
	Targets     []entities.PostChannel
}

// PublishResult reports per-target outcomes of a publish attempt
type PublishResult struct {
	Total     int
	Succeeded int
	Failures  []string
}
