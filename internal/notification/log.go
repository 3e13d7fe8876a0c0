package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogEmitter writes events to the application log. It stands in for the
// Kafka emitter when no broker is configured, so local development keeps
// the full placement path observable.
type LogEmitter struct {
	log *zap.Logger
}

func NewLogEmitter(log *zap.Logger) *LogEmitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogEmitter{log: log}
}

func (e *LogEmitter) Emit(_ context.Context, ev Event) error {
	e.log.Info("event",
		zap.String("kind", string(ev.Kind)),
		zap.Int("orderID", ev.OrderID),
		zap.Int("userID", ev.UserID),
		zap.Any("payload", ev.Payload))
	return nil
}
