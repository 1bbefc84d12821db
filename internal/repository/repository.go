package repository

import (
	"guildboard/internal/domain"
)

// UserStateRepository defines onboarding state data operations
type UserStateRepository interface {
	Get(userID, guildID string) (*domain.UserState, error)
	Update(userID, guildID string, patch domain.UserStatePatch) (*domain.UserState, error)
	SetStep(userID, guildID string, step domain.Step) (*domain.UserState, error)
	CompleteStep(userID, guildID string, step domain.Step) (*domain.UserState, error)
	ListGuild(guildID string) ([]*domain.UserState, error)
	Delete(userID, guildID string) error
	NeedingReminders(guildID string, maxReminders int) ([]*domain.UserState, error)
}

// GuildConfigRepository defines guild onboarding config operations
type GuildConfigRepository interface {
	Get(guildID string) (*domain.OnboardingConfig, error)
	Update(guildID string, patch domain.OnboardingConfigPatch) (*domain.OnboardingConfig, error)
	List() ([]*domain.OnboardingConfig, error)
	Delete(guildID string) error
}
