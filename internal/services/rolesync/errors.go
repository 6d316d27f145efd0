package rolesync

import "fmt"

// SyncError is a sentinel error of the synchronizer
type SyncError string

// Error implements the error interface
func (e SyncError) Error() string {
	return string(e)
}

const (
	ErrMemberNotFound SyncError = "member not found"
	ErrRoleNotFound   SyncError = "role not found"
	ErrNilConfig      SyncError = "config cannot be nil"
	ErrNilInput       SyncError = "input cannot be nil"
	ErrNilGuild       SyncError = "guild cannot be nil"
)

// RoleSyncError is one member/role pair that failed
type RoleSyncError struct {
	PlayerID string
	RoleName string
	Err      error
}

// Error implements the error interface
func (e *RoleSyncError) Error() string {
	return fmt.Sprintf("role sync %q for %s: %v", e.RoleName, e.PlayerID, e.Err)
}

// Unwrap returns the underlying error
func (e *RoleSyncError) Unwrap() error {
	return e.Err
}
