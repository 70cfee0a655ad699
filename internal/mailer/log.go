package mailer

import (
	"context"

	"go.uber.org/zap"
)

// LogTransport writes messages to the logger instead of delivering them.
type LogTransport struct {
	logger *zap.Logger
}

func NewLogTransport(logger *zap.Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

func (l *LogTransport) Send(_ context.Context, msg Message) error {
	l.logger.Info("email (log transport)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text))
	return nil
}
