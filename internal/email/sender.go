package email

import (
	"context"
	"errors"
)

// Sender delivers the daily habit reminder mail.
type Sender interface {
	SendDailyReminder(ctx context.Context, toEmail, displayName, reminder string, actions []string) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendDailyReminder(_ context.Context, _, _, _ string, _ []string) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
