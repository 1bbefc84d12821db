package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"guildboard/internal/domain"

	"go.uber.org/zap"
)

const guildConfigsFile = "guild_configs.json"

// GuildConfigStore implements repository.GuildConfigRepository on a
// single JSON file keyed by guild ID, with the same lazy-load and
// full-rewrite behavior as UserStateStore.
type GuildConfigStore struct {
	mu     sync.Mutex
	dir    string
	path   string
	logger *zap.Logger

	loaded  bool
	configs map[string]*domain.OnboardingConfig
	order   []string
}

// NewGuildConfigStore creates a store rooted at dir
func NewGuildConfigStore(dir string, logger *zap.Logger) *GuildConfigStore {
	return &GuildConfigStore{
		dir:     dir,
		path:    filepath.Join(dir, guildConfigsFile),
		logger:  logger,
		configs: make(map[string]*domain.OnboardingConfig),
	}
}

// ensureLoaded initializes the store on first use. Callers must hold
// the mutex.
func (s *GuildConfigStore) ensureLoaded() error {
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
		s.logger.Error("Failed to read guild configs", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("read guild configs: %w", err)
	}

	err = decodeOrdered(data, func(key string, raw json.RawMessage) error {
		var cfg domain.OnboardingConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("decode config %q: %w", key, err)
		}
		s.configs[key] = &cfg
		s.order = append(s.order, key)
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to parse guild configs", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("parse guild configs: %w", err)
	}

	s.loaded = true
	s.logger.Info("Guild configs loaded", zap.Int("count", len(s.configs)))
	return nil
}

// persist rewrites the whole file in insertion order. Callers must hold
// the mutex.
func (s *GuildConfigStore) persist() error {
	data, err := encodeOrdered(s.order, func(key string) interface{} {
		return s.configs[key]
	})
	if err != nil {
		s.logger.Error("Failed to encode guild configs", zap.Error(err))
		return fmt.Errorf("encode guild configs: %w", err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		s.logger.Error("Failed to write guild configs", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("write guild configs: %w", err)
	}

	return nil
}

func cloneConfig(cfg *domain.OnboardingConfig) *domain.OnboardingConfig {
	c := *cfg
	return &c
}

// Get returns the guild's config, or nil if none has been saved
func (s *GuildConfigStore) Get(guildID string) (*domain.OnboardingConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	cfg, ok := s.configs[guildID]
	if !ok {
		return nil, nil
	}
	return cloneConfig(cfg), nil
}

// Update applies the patch to the guild's config, creating it with
// defaults first if absent, and persists the store. No validation is
// performed; callers decide what to do with an invalid config.
func (s *GuildConfigStore) Update(guildID string, patch domain.OnboardingConfigPatch) (*domain.OnboardingConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	cfg, ok := s.configs[guildID]
	if !ok {
		cfg = domain.NewOnboardingConfig(guildID)
		s.configs[guildID] = cfg
		s.order = append(s.order, guildID)
	}
	patch.Apply(cfg)

	if err := s.persist(); err != nil {
		return nil, err
	}
	return cloneConfig(cfg), nil
}

// List returns every saved guild config in insertion order
func (s *GuildConfigStore) List() ([]*domain.OnboardingConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	var configs []*domain.OnboardingConfig
	for _, key := range s.order {
		configs = append(configs, cloneConfig(s.configs[key]))
	}
	return configs, nil
}

// Delete removes the guild's config and persists the store. Deleting an
// absent guild is not an error.
func (s *GuildConfigStore) Delete(guildID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return err
	}

	if _, ok := s.configs[guildID]; ok {
		delete(s.configs, guildID)
		for i, k := range s.order {
			if k == guildID {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}

	return s.persist()
}
