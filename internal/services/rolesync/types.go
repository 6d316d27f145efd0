package rolesync

import (
	"slices"

	"github.com/KirkDiggler/tiertest/internal/metrics"
	"github.com/KirkDiggler/tiertest/internal/models"
	"github.com/rs/zerolog"
)

// DefaultConcurrency bounds parallel member/role operations
const DefaultConcurrency = 4

// Member is a guild member as seen by the synchronizer
type Member struct {
	// ID is the Discord user ID
	ID string

	// RoleIDs are the roles the member currently holds
	RoleIDs []string
}

// HasRole reports whether roleID is among the member's roles
func (m *Member) HasRole(roleID string) bool {
	return m != nil && slices.Contains(m.RoleIDs, roleID)
}

// Role is a guild role
type Role struct {
	ID   string
	Name string
}

// Config holds configuration for the synchronizer
type Config struct {
	// Concurrency is the number of pairs processed at once; defaults to DefaultConcurrency
	Concurrency int

	Logger zerolog.Logger

	// Metrics is optional
	Metrics *metrics.Metrics
}

// SyncInput contains parameters for a sync pass
type SyncInput struct {
	// Gamemode is the gamemode value the groups were built for
	Gamemode string

	// Groups is the leaderboard grouping to mirror as roles
	Groups []*models.TierGroup

	// Guild resolves and grants roles
	Guild Guild
}

// SyncResult summarizes a sync pass
type SyncResult struct {
	// Pairs is the number of distinct member/role pairs processed
	Pairs int

	Granted       int
	AlreadyHeld   int
	MemberMissing int
	RoleMissing   int

	// Failures lists pairs that could not be resolved or granted
	Failures []*RoleSyncError
}
