package tiertest

import "fmt"

// StorageError wraps a failure of the underlying medium: unreachable, or a
// write that could not be committed.
type StorageError struct {
	// Op is the repository operation that failed
	Op string

	Err error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// RepositoryError is returned for invalid arguments
type RepositoryError string

// Error implements the error interface
func (e RepositoryError) Error() string {
	return string(e)
}

const (
	ErrNilConfig      RepositoryError = "config cannot be nil"
	ErrNilDB          RepositoryError = "database cannot be nil"
	ErrNilRedisClient RepositoryError = "redis client cannot be nil"
	ErrNilInput       RepositoryError = "input and record cannot be nil"
	ErrEmptyGamemode  RepositoryError = "gamemode cannot be empty"
	ErrEmptyLocation  RepositoryError = "storage location cannot be empty"
)
