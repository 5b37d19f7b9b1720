package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"atelier/internal/shared/config"
	"atelier/pkg/logger"
)

// Sender delivers a consumed notification to its final channel. The default
// implementation only logs; a real deployment plugs in an email provider.
type Sender interface {
	Send(ctx context.Context, notification *Notification) error
}

type logSender struct {
	log *logger.Logger
}

func NewLogSender(log *logger.Logger) Sender {
	return &logSender{log: log}
}

func (s *logSender) Send(ctx context.Context, notification *Notification) error {
	s.log.InfoContext(ctx, "Notification delivered",
		"type", string(notification.Type),
		"recipient_id", notification.RecipientID.String(),
		"subject", notification.Subject,
	)
	return nil
}

// Consumer runs a consumer group worker that hands messages to the Sender
type Consumer struct {
	group  sarama.ConsumerGroup
	topics []string
	sender Sender
	log    *logger.Logger
}

func NewConsumer(cfg config.KafkaConfig, sender Sender, log *logger.Logger) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{
		group:  group,
		topics: []string{cfg.NotificationTopic, cfg.AlertTopic},
		sender: sender,
		log:    log,
	}, nil
}

// Start consumes until the context is cancelled. Runs in its own goroutine.
func (c *Consumer) Start(ctx context.Context) {
	handler := &consumerHandler{sender: c.sender, log: c.log}

	go func() {
		for {
			if err := c.group.Consume(ctx, c.topics, handler); err != nil {
				c.log.ErrorContext(ctx, "Consumer group error", "error", err.Error())
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

type consumerHandler struct {
	sender Sender
	log    *logger.Logger
}

func (h *consumerHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var notification Notification
		if err := json.Unmarshal(message.Value, &notification); err != nil {
			h.log.Error("Failed to decode notification", "error", err.Error(), "offset", message.Offset)
			session.MarkMessage(message, "")
			continue
		}

		if err := h.sender.Send(session.Context(), &notification); err != nil {
			h.log.Error("Failed to deliver notification",
				"type", string(notification.Type),
				"error", err.Error(),
			)
		}

		session.MarkMessage(message, "")
	}
	return nil
}
