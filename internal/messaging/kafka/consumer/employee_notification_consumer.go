package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apper-canvas/staffsync-program-correct/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type Notification struct {
	EventType  string
	EmployeeID int64
	ActorID    string
	Message    string
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotificationFor renders the message shown to other members for a lifecycle
// event. Unknown event types yield ok=false.
func NotificationFor(event events.EmployeeLifecycleEvent) (Notification, bool) {
	n := Notification{EventType: event.EventType, EmployeeID: event.EmployeeID, ActorID: event.ActorID}

	switch event.EventType {
	case events.EmployeeCreated:
		n.Message = fmt.Sprintf("%s has been added successfully", event.FullName)
	case events.EmployeeUpdated:
		n.Message = fmt.Sprintf("%s has been updated successfully", event.FullName)
	case events.EmployeeDeleted:
		n.Message = "Employee deleted successfully"
	default:
		return Notification{}, false
	}
	return n, true
}

func ConsumeEmployeeNotifications(
	ctx context.Context,
	reader MessageReader,
	notifier Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_notifications")
	log.Info("employee notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee notification consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		n, ok := NotificationFor(event)
		if !ok {
			log.Warn("unknown employee lifecycle event, skipping", zap.String("event_type", event.EventType))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notifier.Notify(ctx, n); err != nil {
			log.Error("deliver employee notification failed",
				zap.String("event_type", event.EventType),
				zap.Int64("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("employee notification delivered",
			zap.String("event_type", event.EventType),
			zap.Int64("employee_id", event.EmployeeID),
			zap.String("request_id", event.RequestID),
		)
	}
}
