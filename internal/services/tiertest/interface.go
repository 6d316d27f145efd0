package tiertest

import (
	"context"

	"github.com/KirkDiggler/tiertest/internal/config"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/tiertest/internal/services/tiertest Service,SettingsProvider

// Service defines the tier test operations behind the slash commands
type Service interface {
	// Submit records a tier test result. Tier and gamemode must already be
	// validated against the active configuration by the caller.
	Submit(ctx context.Context, input *SubmitInput) (*SubmitOutput, error)

	// GetLeaderboard groups a gamemode's records by tier and, when a guild is
	// supplied, syncs tier roles. Returns ErrNoRecords when there is nothing to show.
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)
}

// SettingsProvider supplies the active configuration
type SettingsProvider interface {
	Current() *config.Settings
}
