package config

import (
	"slices"
	"time"
)

// DefaultEmbedColor is used when colors.embed is not configured
const DefaultEmbedColor = 0x00ff00

// Gamemode is one selectable gamemode
type Gamemode struct {
	// Name is the label shown in the command choice list
	Name string `yaml:"name"`

	// Value is what gets stored with each record
	Value string `yaml:"value"`
}

// Emojis are the cosmetic prefixes used in embeds
type Emojis struct {
	TestPassed  string
	Leaderboard string
	TierEntry   string
}

// Settings is one loaded configuration document. A Settings value is never
// mutated after Load returns it.
type Settings struct {
	// Token is the Discord bot token
	Token string

	// Database is a SQLite file path or a redis:// URL
	Database string

	Emojis Emojis

	// Gamemodes in configured order
	Gamemodes []Gamemode

	// Tiers in configured (display) order
	Tiers []string

	// BotStatus is shown as the "Watching ..." presence
	BotStatus string

	// Path the document was read from
	Path string

	// LoadedAt is set by the Store when the settings become active
	LoadedAt time.Time

	embedColor int
}

// EmbedColor returns the configured embed color
func (s *Settings) EmbedColor() int {
	return s.embedColor
}

// HasTier reports whether tier is a configured tier label
func (s *Settings) HasTier(tier string) bool {
	return slices.Contains(s.Tiers, tier)
}

// Gamemode returns the configured gamemode with the given value
func (s *Settings) Gamemode(value string) (Gamemode, bool) {
	for _, gm := range s.Gamemodes {
		if gm.Value == value {
			return gm, true
		}
	}
	return Gamemode{}, false
}

// TierList returns a copy of the configured tier order
func (s *Settings) TierList() []string {
	return slices.Clone(s.Tiers)
}
