package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/polkiloo/bakery/internal/domain/model"
)

type resendEmails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendSender delivers mail through the Resend HTTP API.
type ResendSender struct {
	emails resendEmails
	from   string
}

// NewResendSender creates a sender authenticated with apiKey.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{emails: resend.NewClient(apiKey).Emails, from: from}
}

func (s *ResendSender) Send(ctx context.Context, msg model.Message) error {
	if err := validate(msg); err != nil {
		return err
	}

	_, err := s.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      recipients(msg),
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}
