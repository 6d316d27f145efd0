package tiertest

import (
	"github.com/KirkDiggler/tiertest/internal/common/uuid"
	"github.com/KirkDiggler/tiertest/internal/metrics"
	"github.com/KirkDiggler/tiertest/internal/models"
	tiertestRepo "github.com/KirkDiggler/tiertest/internal/repositories/tiertest"
	"github.com/KirkDiggler/tiertest/internal/services/rolesync"
	"github.com/rs/zerolog"
)

// Config holds configuration for the tier test service
type Config struct {
	// Repository dependencies
	Repository tiertestRepo.Repository

	// Service dependencies
	RoleSync      rolesync.Service
	Settings      SettingsProvider
	UUIDGenerator uuid.UUID

	Logger zerolog.Logger

	// Metrics is optional
	Metrics *metrics.Metrics
}

// SubmitInput contains parameters for submitting a tier test result
type SubmitInput struct {
	// IGN is the in-game name of the tested player
	IGN string

	// PlayerID is the Discord user ID of the tested player
	PlayerID string

	// Gamemode is the configured gamemode value
	Gamemode string

	// Score is the free-text result, e.g. "3-0"
	Score string

	// Tier is the configured tier label
	Tier string

	// Comments is optional; models.DefaultComments when empty
	Comments string

	// TesterID is the Discord user ID of the submitting tester
	TesterID string
}

// SubmitOutput contains the stored record
type SubmitOutput struct {
	Record *models.TierTestRecord
}

// GetLeaderboardInput contains parameters for building a leaderboard
type GetLeaderboardInput struct {
	Gamemode string

	// Guild is used for role sync; nil skips the sync pass
	Guild rolesync.Guild
}

// GetLeaderboardOutput contains a gamemode's leaderboard
type GetLeaderboardOutput struct {
	Gamemode string

	// Tiers in configured order, empty tiers omitted
	Tiers []*models.TierGroup

	// Sync is the role sync summary; nil when no sync ran
	Sync *rolesync.SyncResult
}
