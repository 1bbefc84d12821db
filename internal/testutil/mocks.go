package testutil

import (
	"guildboard/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserStateRepository is a mock for UserStateRepository
type MockUserStateRepository struct {
	mock.Mock
}

func (m *MockUserStateRepository) Get(userID, guildID string) (*domain.UserState, error) {
	args := m.Called(userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserState), args.Error(1)
}

func (m *MockUserStateRepository) Update(userID, guildID string, patch domain.UserStatePatch) (*domain.UserState, error) {
	args := m.Called(userID, guildID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserState), args.Error(1)
}

func (m *MockUserStateRepository) SetStep(userID, guildID string, step domain.Step) (*domain.UserState, error) {
	args := m.Called(userID, guildID, step)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserState), args.Error(1)
}

func (m *MockUserStateRepository) CompleteStep(userID, guildID string, step domain.Step) (*domain.UserState, error) {
	args := m.Called(userID, guildID, step)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserState), args.Error(1)
}

func (m *MockUserStateRepository) ListGuild(guildID string) ([]*domain.UserState, error) {
	args := m.Called(guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserState), args.Error(1)
}

func (m *MockUserStateRepository) Delete(userID, guildID string) error {
	args := m.Called(userID, guildID)
	return args.Error(0)
}

func (m *MockUserStateRepository) NeedingReminders(guildID string, maxReminders int) ([]*domain.UserState, error) {
	args := m.Called(guildID, maxReminders)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserState), args.Error(1)
}

// MockGuildConfigRepository is a mock for GuildConfigRepository
type MockGuildConfigRepository struct {
	mock.Mock
}

func (m *MockGuildConfigRepository) Get(guildID string) (*domain.OnboardingConfig, error) {
	args := m.Called(guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OnboardingConfig), args.Error(1)
}

func (m *MockGuildConfigRepository) Update(guildID string, patch domain.OnboardingConfigPatch) (*domain.OnboardingConfig, error) {
	args := m.Called(guildID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OnboardingConfig), args.Error(1)
}

func (m *MockGuildConfigRepository) List() ([]*domain.OnboardingConfig, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OnboardingConfig), args.Error(1)
}

func (m *MockGuildConfigRepository) Delete(guildID string) error {
	args := m.Called(guildID)
	return args.Error(0)
}
