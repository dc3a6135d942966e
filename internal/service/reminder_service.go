package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"evolve-coach/internal/email"
	"evolve-coach/internal/repository"
)

var dailyReminderLines = []string{
	"今日の小さな一歩を踏み出しましょう",
	"継続は力なり。今日も頑張りましょう",
	"習慣化まであと少し。今日も続けましょう",
}

// ReminderService mails each daily-reminder user their pending actions.
// Send failures are per-user: one bad address never stops the batch.
type ReminderService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	actions repository.ActionRepository
	sender  email.Sender
}

func NewReminderService(logger *zap.Logger, users repository.UserRepository, actions repository.ActionRepository, sender email.Sender) *ReminderService {
	return &ReminderService{
		logger:  logger,
		users:   users,
		actions: actions,
		sender:  sender,
	}
}

func (s *ReminderService) SendDailyReminders(ctx context.Context) error {
	users, err := s.users.ListByReminderFrequency(ctx, "daily")
	if err != nil {
		return err
	}

	line := dailyReminderLines[time.Now().UTC().YearDay()%len(dailyReminderLines)]
	for _, user := range users {
		actions, err := s.actions.ListDueByUser(ctx, user.ID, 5)
		if err != nil {
			s.logger.Warn("reminder action lookup failed", zap.String("user_id", user.ID), zap.Error(err))
			continue
		}
		descriptions := make([]string, 0, len(actions))
		for _, a := range actions {
			descriptions = append(descriptions, a.Description)
		}
		if err := s.sender.SendDailyReminder(ctx, user.Email, user.DisplayName, line, descriptions); err != nil {
			s.logger.Warn("reminder send failed", zap.String("user_id", user.ID), zap.Error(err))
		}
	}
	return nil
}

// RunDaily fires SendDailyReminders every 24h until the context is done.
func (s *ReminderService) RunDaily(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SendDailyReminders(ctx); err != nil {
				s.logger.Error("daily reminder batch failed", zap.Error(err))
			}
		}
	}
}
