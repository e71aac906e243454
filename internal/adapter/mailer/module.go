package mailer

import (
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/bakery/internal/config"
)

// Module exposes the configured mail sender to fx graph.
var Module = fx.Provide(newSender)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) (Sender, error) {
	cfg := p.Config
	p.Logger.Info("mail provider configured", slog.String("provider", cfg.MailProvider))

	switch cfg.MailProvider {
	case config.MailProviderSMTP:
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	case config.MailProviderResend:
		return NewResendSender(cfg.ResendAPIKey, cfg.MailFrom), nil
	case config.MailProviderLog, "":
		return NewLogSender(p.Logger), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
	}
}
