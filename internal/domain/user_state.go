package domain

import "time"

// Step is one position in the fixed onboarding progression
type Step string

const (
	StepWelcome  Step = "welcome"
	StepRules    Step = "rules"
	StepGithub   Step = "github"
	StepTutorial Step = "tutorial"
	StepComplete Step = "complete"
)

// UserState tracks onboarding progress for one user in one guild
type UserState struct {
	UserID                string     `json:"userId"`
	GuildID               string     `json:"guildId"`
	OnboardingStep        Step       `json:"onboardingStep"`
	RulesAcknowledged     bool       `json:"rulesAcknowledged"`
	RulesAcknowledgedAt   *time.Time `json:"rulesAcknowledgedAt"`
	GithubConnected       bool       `json:"githubConnected"`
	GithubUsername        *string    `json:"githubUsername"`
	TutorialCompleted     bool       `json:"tutorialCompleted"`
	OnboardingStartedAt   time.Time  `json:"onboardingStartedAt"`
	OnboardingCompletedAt *time.Time `json:"onboardingCompletedAt"`
	RemindersSent         int        `json:"remindersSent"`
}

// NewUserState creates a fresh record at the welcome step
func NewUserState(userID, guildID string) *UserState {
	return &UserState{
		UserID:              userID,
		GuildID:             guildID,
		OnboardingStep:      StepWelcome,
		OnboardingStartedAt: time.Now(),
	}
}

// CompleteStep applies the transition for the step being completed.
// The table is keyed by the target step and does not check the record's
// current step, so completing a later step skips the ones before it.
// Unknown steps are a silent no-op.
func (s *UserState) CompleteStep(step Step) {
	switch step {
	case StepRules:
		now := time.Now()
		s.RulesAcknowledged = true
		s.RulesAcknowledgedAt = &now
		s.OnboardingStep = StepGithub
	case StepGithub:
		// Whether GitHub was actually connected is tracked separately
		// by GithubConnected/GithubUsername, set by the caller.
		s.OnboardingStep = StepTutorial
	case StepTutorial:
		now := time.Now()
		s.TutorialCompleted = true
		s.OnboardingStep = StepComplete
		s.OnboardingCompletedAt = &now
	}
}

// IsComplete reports whether the user finished onboarding
func (s *UserState) IsComplete() bool {
	return s.OnboardingStep == StepComplete
}

// UserStatePatch holds optional field overrides for a UserState.
// Only non-nil fields are applied.
type UserStatePatch struct {
	OnboardingStep        *Step
	RulesAcknowledged     *bool
	RulesAcknowledgedAt   *time.Time
	GithubConnected       *bool
	GithubUsername        *string
	TutorialCompleted     *bool
	OnboardingCompletedAt *time.Time
	RemindersSent         *int
}

// Apply overwrites the record's fields with the patch's non-nil values
func (p UserStatePatch) Apply(s *UserState) {
	if p.OnboardingStep != nil {
		s.OnboardingStep = *p.OnboardingStep
	}
	if p.RulesAcknowledged != nil {
		s.RulesAcknowledged = *p.RulesAcknowledged
	}
	if p.RulesAcknowledgedAt != nil {
		s.RulesAcknowledgedAt = p.RulesAcknowledgedAt
	}
	if p.GithubConnected != nil {
		s.GithubConnected = *p.GithubConnected
	}
	if p.GithubUsername != nil {
		s.GithubUsername = p.GithubUsername
	}
	if p.TutorialCompleted != nil {
		s.TutorialCompleted = *p.TutorialCompleted
	}
	if p.OnboardingCompletedAt != nil {
		s.OnboardingCompletedAt = p.OnboardingCompletedAt
	}
	if p.RemindersSent != nil {
		s.RemindersSent = *p.RemindersSent
	}
}
