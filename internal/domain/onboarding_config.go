package domain

import "strings"

// Default onboarding settings for a guild
const (
	DefaultReminderIntervalHours = 24
	DefaultMaxReminders          = 3
)

// DefaultWelcomeMessage is the built-in welcome template for new guilds
const DefaultWelcomeMessage = "Welcome to the server, {user}! " +
	"We're glad to have you here. Please take a moment to read the rules, " +
	"connect your GitHub account and walk through the short tutorial to get started."

// DefaultRulesContent is the built-in rules template for new guilds
const DefaultRulesContent = "1. Be respectful to other members.\n" +
	"2. Keep discussions on topic and use the right channels.\n" +
	"3. No spam, advertising or self-promotion without permission.\n" +
	"4. Follow the platform's terms of service.\n\n" +
	"React below to confirm you have read and accept the rules."

// OnboardingConfig holds per-guild onboarding settings
type OnboardingConfig struct {
	GuildID                  string  `json:"guildId"`
	WelcomeChannelID         *string `json:"welcomeChannelId"`
	RulesChannelID           *string `json:"rulesChannelId"`
	WelcomeMessage           string  `json:"welcomeMessage"`
	RulesContent             string  `json:"rulesContent"`
	GithubIntegrationEnabled bool    `json:"githubIntegrationEnabled"`
	TutorialEnabled          bool    `json:"tutorialEnabled"`
	ReminderIntervalHours    int     `json:"reminderIntervalHours"`
	MaxReminders             int     `json:"maxReminders"`
}

// NewOnboardingConfig creates a config with default settings for a guild
func NewOnboardingConfig(guildID string) *OnboardingConfig {
	return &OnboardingConfig{
		GuildID:                  guildID,
		WelcomeMessage:           DefaultWelcomeMessage,
		RulesContent:             DefaultRulesContent,
		GithubIntegrationEnabled: true,
		TutorialEnabled:          true,
		ReminderIntervalHours:    DefaultReminderIntervalHours,
		MaxReminders:             DefaultMaxReminders,
	}
}

// OnboardingConfigPatch holds optional field overrides for an OnboardingConfig.
// Only non-nil fields are applied.
type OnboardingConfigPatch struct {
	WelcomeChannelID         *string
	RulesChannelID           *string
	WelcomeMessage           *string
	RulesContent             *string
	GithubIntegrationEnabled *bool
	TutorialEnabled          *bool
	ReminderIntervalHours    *int
	MaxReminders             *int
}

// Apply overwrites the config's fields with the patch's non-nil values
func (p OnboardingConfigPatch) Apply(c *OnboardingConfig) {
	if p.WelcomeChannelID != nil {
		c.WelcomeChannelID = p.WelcomeChannelID
	}
	if p.RulesChannelID != nil {
		c.RulesChannelID = p.RulesChannelID
	}
	if p.WelcomeMessage != nil {
		c.WelcomeMessage = *p.WelcomeMessage
	}
	if p.RulesContent != nil {
		c.RulesContent = *p.RulesContent
	}
	if p.GithubIntegrationEnabled != nil {
		c.GithubIntegrationEnabled = *p.GithubIntegrationEnabled
	}
	if p.TutorialEnabled != nil {
		c.TutorialEnabled = *p.TutorialEnabled
	}
	if p.ReminderIntervalHours != nil {
		c.ReminderIntervalHours = *p.ReminderIntervalHours
	}
	if p.MaxReminders != nil {
		c.MaxReminders = *p.MaxReminders
	}
}

// ValidationResult collects the outcome of a config validation pass
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// Validate checks the config and collects every violation in fixed order.
// It is advisory: nothing prevents persisting an invalid config.
func (c *OnboardingConfig) Validate() ValidationResult {
	var errs []string

	if c.GuildID == "" {
		errs = append(errs, "guild ID is required")
	}
	if c.ReminderIntervalHours < 1 || c.ReminderIntervalHours > 168 {
		errs = append(errs, "reminder interval must be between 1 and 168 hours")
	}
	if c.MaxReminders < 0 || c.MaxReminders > 10 {
		errs = append(errs, "max reminders must be between 0 and 10")
	}
	if strings.TrimSpace(c.WelcomeMessage) == "" {
		errs = append(errs, "welcome message cannot be empty")
	}
	if strings.TrimSpace(c.RulesContent) == "" {
		errs = append(errs, "rules content cannot be empty")
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// Messages returns the fixed catalog of onboarding message strings.
// The catalog is static: it does not read WelcomeMessage or RulesContent.
func (c *OnboardingConfig) Messages() map[string]string {
	return map[string]string{
		"welcome_title":      "Welcome aboard!",
		"rules_prompt":       "Please read the server rules and confirm you accept them.",
		"rules_accepted":     "Thanks for accepting the rules! Next up: connect your GitHub account.",
		"github_prompt":      "Connect your GitHub account to unlock the developer channels.",
		"github_connected":   "GitHub connected! One last thing: a quick tutorial.",
		"github_skipped":     "No problem, you can connect GitHub later. On to the tutorial.",
		"tutorial_prompt":    "Follow the short tutorial to learn how the server works.",
		"tutorial_completed": "Tutorial done! You're all set.",
		"onboarding_done":    "Onboarding complete. Enjoy the server!",
		"reminder":           "Friendly reminder: you haven't accepted the server rules yet. Please finish onboarding so you can access all channels.",
	}
}
