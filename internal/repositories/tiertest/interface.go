package tiertest

import (
	"context"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/tiertest/internal/repositories/tiertest Repository

// Repository defines the interface for tier test record persistence. Records
// are append-only: there is no update or delete.
type Repository interface {
	// Initialize ensures the backing schema exists; safe on every startup
	Initialize(ctx context.Context) error

	// Insert persists a record and returns it with its assigned ID
	Insert(ctx context.Context, input *InsertInput) (*InsertOutput, error)

	// QueryByGamemode returns all records for a gamemode in ascending ID order
	QueryByGamemode(ctx context.Context, input *QueryByGamemodeInput) (*QueryByGamemodeOutput, error)

	// Close releases the underlying connection
	Close() error
}
