package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"guildboard/internal/domain"
	"guildboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStateStore(t *testing.T) (*UserStateStore, string) {
	t.Helper()
	dir := t.TempDir()
	return NewUserStateStore(dir, testutil.NewTestLogger()), dir
}

func TestUserKey(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		guildID  string
		expected string
	}{
		{
			name:     "plain ids",
			userID:   "user1",
			guildID:  "guild1",
			expected: "guild1-user1",
		},
		{
			name:     "numeric snowflakes",
			userID:   "111222333",
			guildID:  "999888777",
			expected: "999888777-111222333",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserKey(tt.userID, tt.guildID))
		})
	}
}

func TestUserStateStore_GetAbsent(t *testing.T) {
	store, _ := newTestStateStore(t)

	state, err := store.Get("user1", "guild1")

	assert.NoError(t, err)
	assert.Nil(t, state)
}

func TestUserStateStore_UpdateCreatesWithDefaults(t *testing.T) {
	store, _ := newTestStateStore(t)

	sent := 1
	state, err := store.Update("user1", "guild1", domain.UserStatePatch{RemindersSent: &sent})

	require.NoError(t, err)
	assert.Equal(t, "user1", state.UserID)
	assert.Equal(t, "guild1", state.GuildID)
	assert.Equal(t, domain.StepWelcome, state.OnboardingStep)
	assert.Equal(t, 1, state.RemindersSent)
	assert.False(t, state.OnboardingStartedAt.IsZero())
}

func TestUserStateStore_UpdateMergesPatches(t *testing.T) {
	store, _ := newTestStateStore(t)

	step := domain.StepRules
	_, err := store.Update("user1", "guild1", domain.UserStatePatch{OnboardingStep: &step})
	require.NoError(t, err)

	username := "octocat"
	state, err := store.Update("user1", "guild1", domain.UserStatePatch{GithubUsername: &username})
	require.NoError(t, err)

	// Earlier patch fields survive the later patch
	assert.Equal(t, domain.StepRules, state.OnboardingStep)
	require.NotNil(t, state.GithubUsername)
	assert.Equal(t, "octocat", *state.GithubUsername)
}

func TestUserStateStore_SetStep(t *testing.T) {
	store, _ := newTestStateStore(t)

	state, err := store.SetStep("user1", "guild1", domain.StepTutorial)

	require.NoError(t, err)
	assert.Equal(t, domain.StepTutorial, state.OnboardingStep)
}

func TestUserStateStore_CompleteStepChain(t *testing.T) {
	store, _ := newTestStateStore(t)

	state, err := store.CompleteStep("user1", "guild1", domain.StepRules)
	require.NoError(t, err)
	assert.True(t, state.RulesAcknowledged)
	require.NotNil(t, state.RulesAcknowledgedAt)
	assert.Equal(t, domain.StepGithub, state.OnboardingStep)

	_, err = store.CompleteStep("user1", "guild1", domain.StepGithub)
	require.NoError(t, err)

	state, err = store.CompleteStep("user1", "guild1", domain.StepTutorial)
	require.NoError(t, err)
	assert.True(t, state.IsComplete())
	assert.True(t, state.TutorialCompleted)
	assert.NotNil(t, state.OnboardingCompletedAt)
}

func TestUserStateStore_ListGuild(t *testing.T) {
	store, _ := newTestStateStore(t)

	for _, ids := range [][2]string{
		{"user1", "guild1"},
		{"user2", "guild2"},
		{"user3", "guild1"},
		{"user4", "guild1"},
	} {
		_, err := store.Update(ids[0], ids[1], domain.UserStatePatch{})
		require.NoError(t, err)
	}

	states, err := store.ListGuild("guild1")

	require.NoError(t, err)
	require.Len(t, states, 3)
	// Insertion order is preserved
	assert.Equal(t, "user1", states[0].UserID)
	assert.Equal(t, "user3", states[1].UserID)
	assert.Equal(t, "user4", states[2].UserID)
}

func TestUserStateStore_Delete(t *testing.T) {
	store, _ := newTestStateStore(t)

	_, err := store.Update("user1", "guild1", domain.UserStatePatch{})
	require.NoError(t, err)

	require.NoError(t, store.Delete("user1", "guild1"))

	state, err := store.Get("user1", "guild1")
	assert.NoError(t, err)
	assert.Nil(t, state)

	// Deleting an absent key is not an error
	assert.NoError(t, store.Delete("ghost", "guild1"))
}

func TestUserStateStore_NeedingReminders(t *testing.T) {
	store, _ := newTestStateStore(t)

	old := time.Now().Add(-25 * time.Hour)
	recent := time.Now().Add(-1 * time.Hour)

	// A: unacknowledged, started >24h ago, no reminders yet -> due
	_, err := store.Update("alice", "guild1", domain.UserStatePatch{})
	require.NoError(t, err)
	seedStartedAt(t, store, "alice", "guild1", old)

	// B: acknowledged -> not due
	_, err = store.CompleteStep("bob", "guild1", domain.StepRules)
	require.NoError(t, err)
	seedStartedAt(t, store, "bob", "guild1", old)

	// C: unacknowledged but started recently -> not due
	_, err = store.Update("carol", "guild1", domain.UserStatePatch{})
	require.NoError(t, err)
	seedStartedAt(t, store, "carol", "guild1", recent)

	// D: other guild -> not due here
	_, err = store.Update("dave", "guild2", domain.UserStatePatch{})
	require.NoError(t, err)
	seedStartedAt(t, store, "dave", "guild2", old)

	due, err := store.NeedingReminders("guild1", domain.DefaultMaxReminders)

	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "alice", due[0].UserID)
	// The query itself never bumps the counter
	assert.Equal(t, 0, due[0].RemindersSent)
}

func TestUserStateStore_NeedingRemindersCapBoundary(t *testing.T) {
	store, _ := newTestStateStore(t)

	sent := 3
	_, err := store.Update("alice", "guild1", domain.UserStatePatch{RemindersSent: &sent})
	require.NoError(t, err)
	seedStartedAt(t, store, "alice", "guild1", time.Now().Add(-48*time.Hour))

	// remindersSent == max is excluded; the test is strictly less-than
	due, err := store.NeedingReminders("guild1", 3)
	require.NoError(t, err)
	assert.Empty(t, due)

	due, err = store.NeedingReminders("guild1", 4)
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestUserStateStore_PersistsAcrossInstances(t *testing.T) {
	store, dir := newTestStateStore(t)

	username := "octocat"
	connected := true
	_, err := store.Update("user1", "guild1", domain.UserStatePatch{
		GithubConnected: &connected,
		GithubUsername:  &username,
	})
	require.NoError(t, err)
	_, err = store.CompleteStep("user2", "guild1", domain.StepRules)
	require.NoError(t, err)

	reopened := NewUserStateStore(dir, testutil.NewTestLogger())

	state, err := reopened.Get("user1", "guild1")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.True(t, state.GithubConnected)
	require.NotNil(t, state.GithubUsername)
	assert.Equal(t, "octocat", *state.GithubUsername)

	// File order becomes the reopened store's insertion order
	states, err := reopened.ListGuild("guild1")
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, "user1", states[0].UserID)
	assert.Equal(t, "user2", states[1].UserID)
}

func TestUserStateStore_FileFormat(t *testing.T) {
	store, dir := newTestStateStore(t)

	_, err := store.Update("user1", "guild1", domain.UserStatePatch{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, userStatesFile))
	require.NoError(t, err)

	var doc map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Contains(t, doc, "guild1-user1")

	entry := doc["guild1-user1"]
	assert.Equal(t, "user1", entry["userId"])
	assert.Equal(t, "guild1", entry["guildId"])
	assert.Equal(t, "welcome", entry["onboardingStep"])

	// Pretty-printed, not a single line
	assert.Contains(t, string(data), "\n  ")
}

func TestUserStateStore_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, userStatesFile), []byte("{not json"), 0o644))

	store := NewUserStateStore(dir, testutil.NewTestLogger())

	_, err := store.Get("user1", "guild1")
	assert.Error(t, err)
}

// seedStartedAt rewinds a record's start time directly in the store so
// reminder tests don't have to wait out the threshold.
func seedStartedAt(t *testing.T, store *UserStateStore, userID, guildID string, startedAt time.Time) {
	t.Helper()

	store.mu.Lock()
	defer store.mu.Unlock()

	state, ok := store.states[UserKey(userID, guildID)]
	require.True(t, ok)
	state.OnboardingStartedAt = startedAt
}
