package service

import (
	"fmt"

	"guildboard/internal/domain"
	"guildboard/internal/repository"

	"go.uber.org/zap"
)

// ReminderService finds users overdue for an onboarding nudge and
// records sent reminders
type ReminderService struct {
	stateRepo  repository.UserStateRepository
	configRepo repository.GuildConfigRepository
	logger     *zap.Logger
}

// NewReminderService creates a new reminder service
func NewReminderService(
	stateRepo repository.UserStateRepository,
	configRepo repository.GuildConfigRepository,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		stateRepo:  stateRepo,
		configRepo: configRepo,
		logger:     logger,
	}
}

// UsersDue returns the guild's users currently eligible for a reminder.
// The reminder cap comes from the guild config (or the default when the
// guild has none); the 24h idle threshold is the store's own.
func (s *ReminderService) UsersDue(guildID string) ([]*domain.UserState, error) {
	maxReminders := domain.DefaultMaxReminders

	cfg, err := s.configRepo.Get(guildID)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		maxReminders = cfg.MaxReminders
	}

	due, err := s.stateRepo.NeedingReminders(guildID, maxReminders)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reminder sweep completed",
		zap.String("guild_id", guildID),
		zap.Int("due", len(due)),
	)
	return due, nil
}

// MarkSent increments the user's reminder counter after a reminder was
// actually delivered
func (s *ReminderService) MarkSent(userID, guildID string) (*domain.UserState, error) {
	state, err := s.stateRepo.Get(userID, guildID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, fmt.Errorf("no onboarding state for user %s in guild %s", userID, guildID)
	}

	sent := state.RemindersSent + 1
	return s.stateRepo.Update(userID, guildID, domain.UserStatePatch{RemindersSent: &sent})
}
