package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/iyann1255/fsubmul/config"
)

const (
	topicBotLifecycle  = "fsubmul.bot.lifecycle"
	topicPublishResult = "fsubmul.publish.result"
)

// BotLifecycleMessage is emitted when a tenant bot changes lifecycle state
type BotLifecycleMessage struct {
	Event     string `json:"event"`
	BotKey    string `json:"bot_key"`
	Timestamp int64  `json:"timestamp"`
}

// PublishResultMessage is emitted after a publish attempt completes
type PublishResultMessage struct {
	BotKey    string   `json:"bot_key"`
	Token     string   `json:"token"`
	Succeeded int      `json:"succeeded"`
	Failures  []string `json:"failures"`
	Timestamp int64    `json:"timestamp"`
}

// Producer publishes audit events. Writes are best-effort: the writer is lazy
// and failures are logged by callers, never surfaced to users.
type Producer struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

// NewProducer creates a Kafka audit event producer
func NewProducer(cfg *config.KafkaConfig, logger zerolog.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Msg("Kafka producer initialized")

	return &Producer{
		writer: writer,
		logger: logger,
	}, nil
}

// SendBotLifecycle sends a bot lifecycle event
func (p *Producer) SendBotLifecycle(ctx context.Context, event, botKey string) error {
	msg := BotLifecycleMessage{
		Event:     event,
		BotKey:    botKey,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topicBotLifecycle,
		Key:   []byte(botKey),
		Value: data,
	})
	if err != nil {
		p.logger.Error().Err(err).
			Str("event", event).
			Str("bot_key", botKey).
			Msg("Failed to send bot lifecycle event")
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// SendPublishResult sends the outcome of a publish attempt
func (p *Producer) SendPublishResult(ctx context.Context, botKey, token string, succeeded int, failures []string) error {
	msg := PublishResultMessage{
		BotKey:    botKey,
		Token:     token,
		Succeeded: succeeded,
		Failures:  failures,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topicPublishResult,
		Key:   []byte(botKey),
		Value: data,
	})
	if err != nil {
		p.logger.Error().Err(err).
			Str("bot_key", botKey).
			Str("token", token).
			Msg("Failed to send publish result event")
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// Close closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
