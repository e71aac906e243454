package notification

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"strings"

	"go.uber.org/fx"

	"github.com/polkiloo/bakery/internal/adapter/mailer"
	"github.com/polkiloo/bakery/internal/config"
	"github.com/polkiloo/bakery/internal/domain/model"
)

// Notifier renders storefront e-mails and hands them to a mail sender.
type Notifier struct {
	sender   mailer.Sender
	store    string
	operator string
	baseURL  string
	logger   *slog.Logger
}

// Params groups notifier dependencies.
type Params struct {
	fx.In

	Sender mailer.Sender
	Config *config.Config
	Logger *slog.Logger
}

// NewNotifier constructs Notifier.
func NewNotifier(p Params) *Notifier {
	return &Notifier{
		sender:   p.Sender,
		store:    p.Config.StoreName,
		operator: p.Config.OperatorEmail,
		baseURL:  p.Config.PublicBaseURL,
		logger:   p.Logger,
	}
}

// OrderPlaced confirms the order to the customer and alerts the operator.
// Both sends are attempted; failures are joined.
func (n *Notifier) OrderPlaced(ctx context.Context, order *model.Order) error {
	data := struct {
		Store         string
		Order         *model.Order
		ScreenshotURL string
	}{Store: n.store, Order: order, ScreenshotURL: n.absoluteURL(ctx, order.Screenshot)}

	var errs []error

	if order.Email != "" {
		if err := n.send(ctx, customerOrderTmpl, data, model.Message{
			To:      []string{order.Email},
			ReplyTo: n.operator,
			Subject: fmt.Sprintf("%s: order #%s received", n.store, order.ID),
		}); err != nil {
			errs = append(errs, fmt.Errorf("customer confirmation: %w", err))
		}
	}

	if n.operator != "" {
		if err := n.send(ctx, operatorOrderTmpl, data, model.Message{
			To:      []string{n.operator},
			ReplyTo: order.Email,
			Subject: fmt.Sprintf("New order #%s from %s", order.ID, order.FullName),
		}); err != nil {
			errs = append(errs, fmt.Errorf("operator alert: %w", err))
		}
	} else {
		n.logger.WarnContext(ctx, "operator e-mail not configured, skipping order alert", slog.String("order_id", order.ID))
	}

	return errors.Join(errs...)
}

// ContactSubmitted forwards a contact-form message to the operator.
func (n *Notifier) ContactSubmitted(ctx context.Context, msg model.ContactMessage) error {
	if n.operator == "" {
		return errors.New("operator e-mail not configured")
	}
	subject := msg.Subject
	if subject == "" {
		subject = "(no subject)"
	}
	return n.send(ctx, contactTmpl, msg, model.Message{
		To:      []string{n.operator},
		ReplyTo: msg.Email,
		Subject: fmt.Sprintf("%s contact: %s", n.store, subject),
	})
}

// absoluteURL resolves a stored asset against the public base URL so that
// mail clients can load it. Empty when the asset cannot be reached from outside.
func (n *Notifier) absoluteURL(ctx context.Context, asset *model.Asset) string {
	if asset == nil || asset.URL == "" {
		return ""
	}
	u, err := url.Parse(asset.URL)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return asset.URL
	}
	if n.baseURL == "" {
		n.logger.WarnContext(ctx, "PUBLIC_BASE_URL not configured, screenshot not embedded", slog.String("url", asset.URL))
		return ""
	}
	return n.baseURL + "/" + strings.TrimLeft(asset.URL, "/")
}

func (n *Notifier) send(ctx context.Context, tmpl *template.Template, data any, msg model.Message) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	msg.HTML = body.String()
	return n.sender.Send(ctx, msg)
}
