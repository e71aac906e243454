package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/bakery/internal/domain/errors"
	"github.com/polkiloo/bakery/internal/domain/model"
)

// ContactUseCase forwards storefront contact messages to the operator.
type ContactUseCase struct {
	notifier Notifier
	tasks    TaskSubmitter
	logger   *slog.Logger
}

func NewContactUseCase(notifier Notifier, tasks TaskSubmitter, logger *slog.Logger) *ContactUseCase {
	return &ContactUseCase{notifier: notifier, tasks: tasks, logger: logger}
}

// Submit validates the message and schedules its delivery.
func (u *ContactUseCase) Submit(ctx context.Context, msg model.ContactMessage) error {
	msg = model.ContactMessage{
		Name:    strings.TrimSpace(msg.Name),
		Email:   strings.TrimSpace(msg.Email),
		Subject: strings.TrimSpace(msg.Subject),
		Message: strings.TrimSpace(msg.Message),
	}
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return fmt.Errorf("%w: name, email and message are required", domainErrors.ErrInvalidInput)
	}

	u.logger.InfoContext(ctx, "contact message received", slog.String("email", msg.Email))
	u.tasks.Submit("contact notification", func(ctx context.Context) error {
		return u.notifier.ContactSubmitted(ctx, msg)
	})
	return nil
}
