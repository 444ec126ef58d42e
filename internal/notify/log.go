package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes every event to the logger.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Publish(_ context.Context, e Event) error {
	fields := []zap.Field{
		zap.String("event_id", e.ID),
		zap.String("type", string(e.Type)),
		zap.String("session_id", e.SessionID),
		zap.Int("item_count", e.Snapshot.ItemCount),
		zap.String("total", e.Snapshot.Total.String()),
	}
	if e.ProductID != "" {
		fields = append(fields, zap.String("product_id", e.ProductID))
	}
	if e.Receipt != nil {
		fields = append(fields,
			zap.String("order_id", e.Receipt.OrderID),
			zap.String("order_total", e.Receipt.Total.String()),
		)
	}
	l.logger.Info("cart event", fields...)
	return nil
}

func (l *LogNotifier) Close() error {
	return nil
}
