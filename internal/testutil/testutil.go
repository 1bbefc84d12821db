package testutil

import (
	"time"

	"guildboard/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUserState creates a test onboarding record started at the
// given time
func NewTestUserState(userID, guildID string, startedAt time.Time) *domain.UserState {
	state := domain.NewUserState(userID, guildID)
	state.OnboardingStartedAt = startedAt
	return state
}

// NewTestConfig creates a test guild config with defaults
func NewTestConfig(guildID string) *domain.OnboardingConfig {
	return domain.NewOnboardingConfig(guildID)
}
