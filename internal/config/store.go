package config

import (
	"sync"
	"sync/atomic"

	"github.com/KirkDiggler/tiertest/internal/common/clock"
	"github.com/rs/zerolog"
)

// StoreConfig holds configuration for the settings store
type StoreConfig struct {
	// Path of the configuration document
	Path string

	// Clock stamps LoadedAt; defaults to the system clock
	Clock clock.Clock

	Logger zerolog.Logger
}

// Store holds the active Settings. Readers never block on a reload and always
// see a complete document.
type Store struct {
	path   string
	clock  clock.Clock
	logger zerolog.Logger

	current atomic.Pointer[Settings]

	// reloadMu serializes writers
	reloadMu sync.Mutex
}

// NewStore loads the document once; a failure here is fatal to startup
func NewStore(cfg *StoreConfig) (*Store, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Path == "" {
		return nil, ErrEmptyPath
	}

	s := &Store{
		path:   cfg.Path,
		clock:  cfg.Clock,
		logger: cfg.Logger,
	}
	if s.clock == nil {
		s.clock = clock.New()
	}

	settings, err := s.load()
	if err != nil {
		return nil, err
	}
	s.current.Store(settings)

	s.logger.Info().
		Str("path", s.path).
		Int("gamemodes", len(settings.Gamemodes)).
		Int("tiers", len(settings.Tiers)).
		Msg("configuration loaded")

	return s, nil
}

// Current returns the active settings
func (s *Store) Current() *Settings {
	return s.current.Load()
}

// Path returns the document location
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the document and swaps it in only if it is valid. On error
// the previous settings stay active.
func (s *Store) Reload() (*Settings, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	settings, err := s.load()
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("configuration reload failed, keeping previous settings")
		return nil, err
	}

	previous := s.current.Swap(settings)
	if previous != nil {
		if previous.Database != settings.Database {
			s.logger.Warn().Msg("database location changed; takes effect after restart")
		}
		if previous.Token != settings.Token {
			s.logger.Warn().Msg("token changed; takes effect after restart")
		}
	}

	s.logger.Info().
		Str("path", s.path).
		Int("gamemodes", len(settings.Gamemodes)).
		Int("tiers", len(settings.Tiers)).
		Msg("configuration reloaded")

	return settings, nil
}

func (s *Store) load() (*Settings, error) {
	settings, err := Load(s.path)
	if err != nil {
		return nil, err
	}
	settings.LoadedAt = s.clock.Now()
	return settings, nil
}
