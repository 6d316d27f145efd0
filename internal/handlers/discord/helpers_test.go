package discord

import (
	"testing"

	"github.com/KirkDiggler/tiertest/internal/config"
	"github.com/stretchr/testify/require"
)

const testConfig = `{
  "token": "test-token",
  "database": "tiertests.db",
  "emojis": {"test_passed": "✅", "leaderboard": "🏆", "tier_entry": "•"},
  "gamemodes": [{"name": "UHC", "value": "uhc"}, {"name": "Sky Wars", "value": "sky wars"}],
  "tiers": ["S", "A", "B"],
  "colors": {"embed": "0x5865F2"},
  "bot_status": "tier tests"
}`

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	settings, err := config.Parse("config.json", []byte(testConfig))
	require.NoError(t, err)
	return settings
}

type staticStore struct {
	settings *config.Settings
}

func (s *staticStore) Current() *config.Settings {
	return s.settings
}

func (s *staticStore) Reload() (*config.Settings, error) {
	return s.settings, nil
}
