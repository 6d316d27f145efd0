package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxChoices is Discord's limit on slash command option choices
const maxChoices = 25

// document mirrors the on-disk layout. JSON documents parse as YAML.
type document struct {
	Token     string            `yaml:"token"`
	Database  string            `yaml:"database"`
	Emojis    map[string]string `yaml:"emojis"`
	Gamemodes []Gamemode        `yaml:"gamemodes"`
	Tiers     []string          `yaml:"tiers"`
	Colors    map[string]string `yaml:"colors"`
	BotStatus string            `yaml:"bot_status"`
}

// Load reads and validates the configuration document at path
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigError{Path: path, Reason: "file not found", Err: err}
		}
		return nil, &ConfigError{Path: path, Reason: "failed to read file", Err: err}
	}

	return Parse(path, data)
}

// Parse validates a configuration document; path is only used in errors
func Parse(path string, data []byte) (*Settings, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Path: path, Reason: "malformed document", Err: err}
	}

	if err := doc.validate(); err != nil {
		return nil, &ConfigError{Path: path, Reason: err.Error()}
	}

	color, err := parseColor(doc.Colors["embed"])
	if err != nil {
		return nil, &ConfigError{Path: path, Reason: "invalid colors.embed", Err: err}
	}

	return &Settings{
		Token:    doc.Token,
		Database: doc.Database,
		Emojis: Emojis{
			TestPassed:  doc.Emojis["test_passed"],
			Leaderboard: doc.Emojis["leaderboard"],
			TierEntry:   doc.Emojis["tier_entry"],
		},
		Gamemodes:  doc.Gamemodes,
		Tiers:      doc.Tiers,
		BotStatus:  doc.BotStatus,
		Path:       path,
		embedColor: color,
	}, nil
}

func (d *document) validate() error {
	switch {
	case strings.TrimSpace(d.Token) == "":
		return missingKey("token")
	case strings.TrimSpace(d.Database) == "":
		return missingKey("database")
	case d.Emojis == nil:
		return missingKey("emojis")
	case len(d.Gamemodes) == 0:
		return missingKey("gamemodes")
	case len(d.Tiers) == 0:
		return missingKey("tiers")
	}

	if len(d.Gamemodes) > maxChoices {
		return fmt.Errorf("at most %d gamemodes are supported, got %d", maxChoices, len(d.Gamemodes))
	}
	if len(d.Tiers) > maxChoices {
		return fmt.Errorf("at most %d tiers are supported, got %d", maxChoices, len(d.Tiers))
	}

	seen := make(map[string]bool, len(d.Gamemodes))
	for i, gm := range d.Gamemodes {
		if gm.Name == "" || gm.Value == "" {
			return fmt.Errorf("gamemodes[%d] needs both name and value", i)
		}
		if seen[gm.Value] {
			return fmt.Errorf("duplicate gamemode value %q", gm.Value)
		}
		seen[gm.Value] = true
	}

	seen = make(map[string]bool, len(d.Tiers))
	for i, tier := range d.Tiers {
		if strings.TrimSpace(tier) == "" {
			return fmt.Errorf("tiers[%d] is empty", i)
		}
		if seen[tier] {
			return fmt.Errorf("duplicate tier %q", tier)
		}
		seen[tier] = true
	}

	return nil
}

func missingKey(key string) error {
	return fmt.Errorf("missing required config key: %s", key)
}

// parseColor accepts "0x5865F2", "#5865F2" or "5865F2"
func parseColor(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultEmbedColor, nil
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(raw), "0x"), "#")
	v, err := strconv.ParseUint(hex, 16, 24)
	if err != nil {
		return 0, fmt.Errorf("%q is not a 24-bit hex color: %w", raw, err)
	}
	return int(v), nil
}
