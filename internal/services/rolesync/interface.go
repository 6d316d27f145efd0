package rolesync

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_rolesync.go github.com/KirkDiggler/tiertest/internal/services/rolesync Guild,Service

// Guild is the platform capability the synchronizer works through. It is
// implemented by the Discord handler layer; the synchronizer does no I/O itself.
type Guild interface {
	// ResolveMember looks up a member by user ID; ErrMemberNotFound when absent
	ResolveMember(ctx context.Context, userID string) (*Member, error)

	// ResolveRole looks up a role by exact name; ErrRoleNotFound when absent
	ResolveRole(ctx context.Context, name string) (*Role, error)

	// MemberHasRole reports whether the member already holds the role
	MemberHasRole(member *Member, role *Role) bool

	// GrantRole adds the role to the member
	GrantRole(ctx context.Context, member *Member, role *Role) error
}

// Service syncs tier roles for a leaderboard
type Service interface {
	// Sync ensures every listed player holds the "<Gamemode> <Tier>" role for
	// each tier they appear in. Per-pair failures are reported in the result,
	// never returned.
	Sync(ctx context.Context, input *SyncInput) (*SyncResult, error)
}
