package mailer

import (
	"context"
	"log/slog"

	"github.com/polkiloo/bakery/internal/domain/model"
)

// LogSender records messages instead of delivering them. Used when no provider is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg model.Message) error {
	if err := validate(msg); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "mail not delivered, no provider configured",
		slog.Any("to", recipients(msg)),
		slog.String("subject", msg.Subject),
		slog.String("reply_to", msg.ReplyTo),
	)
	return nil
}
