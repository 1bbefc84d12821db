package service

import (
	"errors"
	"testing"

	"guildboard/internal/domain"
	"guildboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReminderService_UsersDue(t *testing.T) {
	tests := []struct {
		name        string
		config      *domain.OnboardingConfig
		expectedMax int
	}{
		{
			name: "cap comes from guild config",
			config: &domain.OnboardingConfig{
				GuildID:      "guild1",
				MaxReminders: 5,
			},
			expectedMax: 5,
		},
		{
			name:        "default cap when guild has no config",
			config:      nil,
			expectedMax: domain.DefaultMaxReminders,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStates := new(testutil.MockUserStateRepository)
			mockConfigs := new(testutil.MockGuildConfigRepository)

			mockConfigs.On("Get", "guild1").Return(tt.config, nil)

			due := []*domain.UserState{domain.NewUserState("user1", "guild1")}
			mockStates.On("NeedingReminders", "guild1", tt.expectedMax).Return(due, nil)

			service := NewReminderService(mockStates, mockConfigs, testutil.NewTestLogger())

			got, err := service.UsersDue("guild1")

			require.NoError(t, err)
			assert.Len(t, got, 1)
			mockStates.AssertExpectations(t)
			mockConfigs.AssertExpectations(t)
		})
	}
}

func TestReminderService_UsersDueConfigError(t *testing.T) {
	mockStates := new(testutil.MockUserStateRepository)
	mockConfigs := new(testutil.MockGuildConfigRepository)
	mockConfigs.On("Get", "guild1").Return(nil, errors.New("read failed"))

	service := NewReminderService(mockStates, mockConfigs, testutil.NewTestLogger())

	_, err := service.UsersDue("guild1")

	assert.Error(t, err)
	mockStates.AssertNotCalled(t, "NeedingReminders", mock.Anything, mock.Anything)
}

func TestReminderService_MarkSent(t *testing.T) {
	mockStates := new(testutil.MockUserStateRepository)
	mockConfigs := new(testutil.MockGuildConfigRepository)

	state := domain.NewUserState("user1", "guild1")
	state.RemindersSent = 1
	mockStates.On("Get", "user1", "guild1").Return(state, nil)

	updated := domain.NewUserState("user1", "guild1")
	updated.RemindersSent = 2
	mockStates.On("Update", "user1", "guild1", mock.MatchedBy(func(p domain.UserStatePatch) bool {
		return p.RemindersSent != nil && *p.RemindersSent == 2
	})).Return(updated, nil)

	service := NewReminderService(mockStates, mockConfigs, testutil.NewTestLogger())

	got, err := service.MarkSent("user1", "guild1")

	require.NoError(t, err)
	assert.Equal(t, 2, got.RemindersSent)
	mockStates.AssertExpectations(t)
}

func TestReminderService_MarkSentUnknownUser(t *testing.T) {
	mockStates := new(testutil.MockUserStateRepository)
	mockConfigs := new(testutil.MockGuildConfigRepository)
	mockStates.On("Get", "user1", "guild1").Return(nil, nil)

	service := NewReminderService(mockStates, mockConfigs, testutil.NewTestLogger())

	_, err := service.MarkSent("user1", "guild1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no onboarding state")
	mockStates.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
