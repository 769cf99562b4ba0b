package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iyann1255/fsubmul/config"
	accessent "github.com/iyann1255/fsubmul/internal/domain/access/entities"
	fleetent "github.com/iyann1255/fsubmul/internal/domain/fleet/entities"
	gateent "github.com/iyann1255/fsubmul/internal/domain/gate/entities"
	settingsent "github.com/iyann1255/fsubmul/internal/domain/settings/entities"
	vaultent "github.com/iyann1255/fsubmul/internal/domain/vault/entities"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&fleetent.BotIdentity{},
		&vaultent.ContentItem{},
		&vaultent.UploadSession{},
		&vaultent.PostChannel{},
		&gateent.RequiredChannel{},
		&gateent.GateState{},
		&gateent.JoinLink{},
		&accessent.AccessEntry{},
		&settingsent.BotConfig{},
		&settingsent.GlobalSetting{},
		&settingsent.PendingAction{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	return db, nil
}
