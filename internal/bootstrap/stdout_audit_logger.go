package bootstrap

import (
	"context"
	"time"

	"github.com/apper-canvas/staffsync-program-correct/internal/messaging/kafka/consumer"
	"github.com/apper-canvas/staffsync-program-correct/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes audit entries to the process log. It also
// delivers employee notifications by auditing them.
type StdoutAuditLogger struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewStdoutAuditLogger(logger ...*zap.Logger) *StdoutAuditLogger {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit")
	}
	return &StdoutAuditLogger{logger: l, now: time.Now}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("timestamp", l.now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}
	l.logger.Info("audit event", fields...)
}

// Notify implements consumer.Notifier.
func (l *StdoutAuditLogger) Notify(ctx context.Context, n consumer.Notification) error {
	l.Log(ctx, AuditLog{
		Action:  "EMPLOYEE_NOTIFICATION",
		Message: n.Message,
		Meta: map[string]any{
			"event_type":  n.EventType,
			"employee_id": n.EmployeeID,
			"actor_id":    n.ActorID,
		},
	})
	return nil
}
