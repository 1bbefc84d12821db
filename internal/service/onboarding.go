package service

import (
	"guildboard/internal/domain"
	"guildboard/internal/repository"
)

// OnboardingService drives users through the onboarding progression
type OnboardingService struct {
	stateRepo repository.UserStateRepository
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(stateRepo repository.UserStateRepository) *OnboardingService {
	return &OnboardingService{stateRepo: stateRepo}
}

// Begin ensures the user has an onboarding record, creating one at the
// welcome step if needed
func (s *OnboardingService) Begin(userID, guildID string) (*domain.UserState, error) {
	return s.stateRepo.Update(userID, guildID, domain.UserStatePatch{})
}

// Progress returns the user's current onboarding state, or nil if the
// user never started
func (s *OnboardingService) Progress(userID, guildID string) (*domain.UserState, error) {
	return s.stateRepo.Get(userID, guildID)
}

// AcknowledgeRules records the user's acceptance of the rules and moves
// them to the GitHub step
func (s *OnboardingService) AcknowledgeRules(userID, guildID string) (*domain.UserState, error) {
	return s.stateRepo.CompleteStep(userID, guildID, domain.StepRules)
}

// ConnectGitHub stores the user's GitHub identity and moves them past
// the GitHub step. The step transition itself never touches the GitHub
// fields; they are set here.
func (s *OnboardingService) ConnectGitHub(userID, guildID, username string) (*domain.UserState, error) {
	connected := true
	_, err := s.stateRepo.Update(userID, guildID, domain.UserStatePatch{
		GithubConnected: &connected,
		GithubUsername:  &username,
	})
	if err != nil {
		return nil, err
	}
	return s.stateRepo.CompleteStep(userID, guildID, domain.StepGithub)
}

// SkipGitHub moves the user past the GitHub step without connecting an
// account
func (s *OnboardingService) SkipGitHub(userID, guildID string) (*domain.UserState, error) {
	return s.stateRepo.CompleteStep(userID, guildID, domain.StepGithub)
}

// CompleteTutorial marks the tutorial done, which finishes onboarding
func (s *OnboardingService) CompleteTutorial(userID, guildID string) (*domain.UserState, error) {
	return s.stateRepo.CompleteStep(userID, guildID, domain.StepTutorial)
}

// GuildRoster returns every onboarding record for the guild
func (s *OnboardingService) GuildRoster(guildID string) ([]*domain.UserState, error) {
	return s.stateRepo.ListGuild(guildID)
}

// Reset discards the user's onboarding record
func (s *OnboardingService) Reset(userID, guildID string) error {
	return s.stateRepo.Delete(userID, guildID)
}
