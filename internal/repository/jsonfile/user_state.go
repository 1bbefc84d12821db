package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"guildboard/internal/domain"

	"go.uber.org/zap"
)

const userStatesFile = "user_states.json"

// reminderThreshold is how long a user must sit at the rules step before
// qualifying for a reminder. Deliberately not read from the guild config.
const reminderThreshold = 24 * time.Hour

// UserStateStore implements repository.UserStateRepository on a single
// JSON file. The whole map lives in memory and every mutation rewrites
// the file.
type UserStateStore struct {
	mu     sync.Mutex
	dir    string
	path   string
	logger *zap.Logger

	loaded bool
	states map[string]*domain.UserState
	order  []string
}

// NewUserStateStore creates a store rooted at dir. The directory is
// created and the file loaded lazily on first use.
func NewUserStateStore(dir string, logger *zap.Logger) *UserStateStore {
	return &UserStateStore{
		dir:    dir,
		path:   filepath.Join(dir, userStatesFile),
		logger: logger,
		states: make(map[string]*domain.UserState),
	}
}

// UserKey builds the composite lookup key for a user in a guild
func UserKey(userID, guildID string) string {
	return guildID + "-" + userID
}

// ensureLoaded initializes the store on first use. A missing file means
// an empty store; any other failure is logged and propagated. Callers
// must hold the mutex.
func (s *UserStateStore) ensureLoaded() error {
	if s.loaded {
		return nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error("Failed to create storage directory", zap.String("dir", s.dir), zap.Error(err))
		return fmt.Errorf("create storage directory: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.loaded = true
		return nil
	}
	if err != nil {
		s.logger.Error("Failed to read user states", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("read user states: %w", err)
	}

	err = decodeOrdered(data, func(key string, raw json.RawMessage) error {
		var state domain.UserState
		if err := json.Unmarshal(raw, &state); err != nil {
			return fmt.Errorf("decode state %q: %w", key, err)
		}
		s.states[key] = &state
		s.order = append(s.order, key)
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to parse user states", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("parse user states: %w", err)
	}

	s.loaded = true
	s.logger.Info("User states loaded", zap.Int("count", len(s.states)))
	return nil
}

// persist rewrites the whole file in insertion order. Callers must hold
// the mutex.
func (s *UserStateStore) persist() error {
	data, err := encodeOrdered(s.order, func(key string) interface{} {
		return s.states[key]
	})
	if err != nil {
		s.logger.Error("Failed to encode user states", zap.Error(err))
		return fmt.Errorf("encode user states: %w", err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		s.logger.Error("Failed to write user states", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("write user states: %w", err)
	}

	return nil
}

// getOrCreate returns the stored record for the key, creating a fresh
// one if absent. Callers must hold the mutex.
func (s *UserStateStore) getOrCreate(userID, guildID string) *domain.UserState {
	key := UserKey(userID, guildID)
	state, ok := s.states[key]
	if !ok {
		state = domain.NewUserState(userID, guildID)
		s.states[key] = state
		s.order = append(s.order, key)
	}
	return state
}

func cloneState(state *domain.UserState) *domain.UserState {
	c := *state
	return &c
}

// Get returns the user's onboarding state, or nil if none exists
func (s *UserStateStore) Get(userID, guildID string) (*domain.UserState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	state, ok := s.states[UserKey(userID, guildID)]
	if !ok {
		return nil, nil
	}
	return cloneState(state), nil
}

// Update applies the patch to the user's state, creating the record with
// defaults first if absent, and persists the store
func (s *UserStateStore) Update(userID, guildID string, patch domain.UserStatePatch) (*domain.UserState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	state := s.getOrCreate(userID, guildID)
	patch.Apply(state)

	if err := s.persist(); err != nil {
		return nil, err
	}
	return cloneState(state), nil
}

// SetStep moves the user to the given onboarding step
func (s *UserStateStore) SetStep(userID, guildID string, step domain.Step) (*domain.UserState, error) {
	return s.Update(userID, guildID, domain.UserStatePatch{OnboardingStep: &step})
}

// CompleteStep runs the step transition on the user's state, creating
// the record first if absent, and persists the store
func (s *UserStateStore) CompleteStep(userID, guildID string, step domain.Step) (*domain.UserState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	state := s.getOrCreate(userID, guildID)
	state.CompleteStep(step)

	if err := s.persist(); err != nil {
		return nil, err
	}
	return cloneState(state), nil
}

// ListGuild returns all states belonging to the guild in insertion order
func (s *UserStateStore) ListGuild(guildID string) ([]*domain.UserState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	var states []*domain.UserState
	for _, key := range s.order {
		if state := s.states[key]; state.GuildID == guildID {
			states = append(states, cloneState(state))
		}
	}
	return states, nil
}

// Delete removes the user's state and persists the store. Deleting an
// absent key is not an error.
func (s *UserStateStore) Delete(userID, guildID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return err
	}

	key := UserKey(userID, guildID)
	if _, ok := s.states[key]; ok {
		delete(s.states, key)
		for i, k := range s.order {
			if k == key {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}

	return s.persist()
}

// NeedingReminders returns the guild's users who have not acknowledged
// the rules, are under the reminder cap and started onboarding at least
// 24 hours ago. RemindersSent is not touched; incrementing it after a
// send is the caller's job.
func (s *UserStateStore) NeedingReminders(guildID string, maxReminders int) ([]*domain.UserState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	now := time.Now()

	var states []*domain.UserState
	for _, key := range s.order {
		state := s.states[key]
		if state.GuildID != guildID {
			continue
		}
		if state.RulesAcknowledged {
			continue
		}
		if state.RemindersSent >= maxReminders {
			continue
		}
		if now.Sub(state.OnboardingStartedAt) < reminderThreshold {
			continue
		}
		states = append(states, cloneState(state))
	}
	return states, nil
}
