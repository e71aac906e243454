package mailer

import (
	"context"
	"errors"

	"github.com/polkiloo/bakery/internal/domain/model"
)

// Sender delivers a single HTML e-mail.
type Sender interface {
	Send(ctx context.Context, msg model.Message) error
}

// ErrNoRecipients is returned when a message has nobody to deliver to.
var ErrNoRecipients = errors.New("message has no recipients")

func validate(msg model.Message) error {
	for _, to := range msg.To {
		if to != "" {
			return nil
		}
	}
	return ErrNoRecipients
}

func recipients(msg model.Message) []string {
	out := make([]string, 0, len(msg.To))
	for _, to := range msg.To {
		if to != "" {
			out = append(out, to)
		}
	}
	return out
}
