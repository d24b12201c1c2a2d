package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/apper-canvas/staffsync-program-correct/internal/bootstrap"
	"github.com/apper-canvas/staffsync-program-correct/internal/config"
	"github.com/apper-canvas/staffsync-program-correct/internal/events"
	"github.com/apper-canvas/staffsync-program-correct/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer turns employee lifecycle events into audited notifications
// until SIGINT or SIGTERM.
func RunConsumer(cfg *config.Configuration) error {
	logger := zap.L().Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.EmployeeLifecycleTopic,
		GroupID:        cfg.Kafka.NotificationGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeEmployeeNotifications(ctx, reader, bootstrap.NewStdoutAuditLogger(), logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
