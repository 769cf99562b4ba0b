package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the fsubmul host process
type Config struct {
	Telegram TelegramConfig
	Archive  ArchiveConfig
	Access   AccessConfig
	Gate     GateConfig
	Publish  PublishConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Logging  LoggingConfig
	Service  ServiceConfig
}

// TelegramConfig holds root bot credentials and platform call bounds
type TelegramConfig struct {
	RootToken    string
	RootUsername string
	CallTimeout  time.Duration
}

// ArchiveConfig holds the archive channel where content is stored
type ArchiveConfig struct {
	ChannelID int64
}

// AccessConfig holds the deployment-wide superadmin set
type AccessConfig struct {
	SuperadminIDs []int64
}

// GateConfig holds force-subscribe defaults
type GateConfig struct {
	DefaultShowCount int
}

// PublishConfig holds publish presentation settings
type PublishConfig struct {
	CaptionTemplate string
	ButtonLabel     string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers []string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name string
}

// Result is fx.Out struct for providing config dependencies
type Result struct {
	fx.Out

	Config         *Config
	TelegramConfig *TelegramConfig
	ArchiveConfig  *ArchiveConfig
	AccessConfig   *AccessConfig
	GateConfig     *GateConfig
	PublishConfig  *PublishConfig
	DatabaseConfig *DatabaseConfig
	KafkaConfig    *KafkaConfig
	LoggingConfig  *LoggingConfig
	ServiceConfig  *ServiceConfig
}

// Out returns fx-compatible config result
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:         cfg,
		TelegramConfig: &cfg.Telegram,
		ArchiveConfig:  &cfg.Archive,
		AccessConfig:   &cfg.Access,
		GateConfig:     &cfg.Gate,
		PublishConfig:  &cfg.Publish,
		DatabaseConfig: &cfg.Database,
		KafkaConfig:    &cfg.Kafka,
		LoggingConfig:  &cfg.Logging,
		ServiceConfig:  &cfg.Service,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Telegram: TelegramConfig{
			RootToken:    strings.TrimSpace(getEnv("BOT_TOKEN", "")),
			RootUsername: strings.TrimPrefix(strings.TrimSpace(getEnv("BOT_USERNAME", "")), "@"),
			CallTimeout:  getEnvDuration("TELEGRAM_CALL_TIMEOUT", 10*time.Second),
		},
		Archive: ArchiveConfig{
			ChannelID: getEnvInt64("DB_CHANNEL_ID", 0),
		},
		Access: AccessConfig{
			SuperadminIDs: parseIDList(getEnv("ADMIN_IDS", "")),
		},
		Gate: GateConfig{
			DefaultShowCount: getEnvInt("FSUB_SHOW_N", 4),
		},
		Publish: PublishConfig{
			CaptionTemplate: getEnv("CAPTION_TEMPLATE", "🎬 <b>Video baru</b>\n📅 {date}\n\nKlik tombol di bawah untuk ambil videonya."),
			ButtonLabel:     getEnv("PUBLISH_BUTTON_LABEL", "⬇️ Ambil Video"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			User:     getEnv("DATABASE_USER", "fsubmul_user"),
			Password: getEnv("DATABASE_PASSWORD", "fsubmul_pass"),
			DBName:   getEnv("DATABASE_NAME", "fsubmul_db"),
			SSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9093"), ","),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Service: ServiceConfig{
			Name: getEnv("SERVICE_NAME", "fsubmul"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.RootToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}

	if c.Telegram.RootUsername == "" {
		return fmt.Errorf("BOT_USERNAME is required")
	}

	if c.Archive.ChannelID == 0 {
		return fmt.Errorf("DB_CHANNEL_ID is required")
	}

	if c.Gate.DefaultShowCount < 1 {
		return fmt.Errorf("FSUB_SHOW_N must be positive")
	}

	return nil
}

// GetDSN returns database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets integer environment variable with default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvInt64 gets int64 environment variable with default value
func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvDuration gets duration environment variable with default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// parseIDList parses a comma-separated list of user IDs
func parseIDList(s string) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
