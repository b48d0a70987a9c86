package notification

import (
	"context"
	"log/slog"
)

const (
	// KindTransactionRecorded indicates a ledger entry was recorded.
	KindTransactionRecorded = "transaction_recorded"
	// KindChildRemoved indicates a child was deleted from the registry.
	KindChildRemoved = "child_removed"
)

// Message describes a notification payload.
type Message struct {
	Kind string
	Body string
}

// Notifier delivers household notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier writes notifications to the structured log. It stands in
// for a real delivery channel (email, chat webhook) in development.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(ctx context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.InfoContext(ctx, "notification", "kind", message.Kind, "body", message.Body)
	return nil
}
