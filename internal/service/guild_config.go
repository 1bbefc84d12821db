package service

import (
	"guildboard/internal/domain"
	"guildboard/internal/repository"

	"go.uber.org/zap"
)

// ConfigService exposes guild onboarding settings to command handlers
type ConfigService struct {
	configRepo repository.GuildConfigRepository
	logger     *zap.Logger
}

// NewConfigService creates a new config service
func NewConfigService(configRepo repository.GuildConfigRepository, logger *zap.Logger) *ConfigService {
	return &ConfigService{configRepo: configRepo, logger: logger}
}

// Get returns the guild's saved config, or a default one if the guild
// has never been configured. The default is not persisted.
func (s *ConfigService) Get(guildID string) (*domain.OnboardingConfig, error) {
	cfg, err := s.configRepo.Get(guildID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = domain.NewOnboardingConfig(guildID)
	}
	return cfg, nil
}

// Update applies the patch and persists the result. Validation here is
// advisory: an invalid config is logged but saved anyway, matching the
// store's contract.
func (s *ConfigService) Update(guildID string, patch domain.OnboardingConfigPatch) (*domain.OnboardingConfig, error) {
	cfg, err := s.configRepo.Update(guildID, patch)
	if err != nil {
		return nil, err
	}

	if result := cfg.Validate(); !result.IsValid {
		s.logger.Warn("Saved guild config fails validation",
			zap.String("guild_id", guildID),
			zap.Strings("errors", result.Errors),
		)
	}
	return cfg, nil
}

// Validate checks the guild's effective config without persisting
func (s *ConfigService) Validate(guildID string) (domain.ValidationResult, error) {
	cfg, err := s.Get(guildID)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	return cfg.Validate(), nil
}

// Messages returns the guild's onboarding message catalog
func (s *ConfigService) Messages(guildID string) (map[string]string, error) {
	cfg, err := s.Get(guildID)
	if err != nil {
		return nil, err
	}
	return cfg.Messages(), nil
}
