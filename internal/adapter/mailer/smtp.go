package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/polkiloo/bakery/internal/domain/model"
)

type smtpClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPSender sends mail through an authenticated SMTP relay such as Gmail with an app password.
type SMTPSender struct {
	client smtpClient
	from   string
}

// NewSMTPSender configures a client with PLAIN auth and mandatory TLS.
func NewSMTPSender(host string, port int, username, password, from string) (*SMTPSender, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPSender{client: client, from: from}, nil
}

// Send builds the MIME message and delivers it in a single session.
func (s *SMTPSender) Send(ctx context.Context, msg model.Message) error {
	if err := validate(msg); err != nil {
		return err
	}

	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := m.To(recipients(msg)...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("set reply-to: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
