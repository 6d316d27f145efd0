package tiertest

// ServiceError is a sentinel error of the tier test service
type ServiceError string

// Error implements the error interface
func (e ServiceError) Error() string {
	return string(e)
}

const (
	ErrNoRecords        ServiceError = "no records found"
	ErrNilConfig        ServiceError = "config cannot be nil"
	ErrNilRepository    ServiceError = "repository cannot be nil"
	ErrNilRoleSync      ServiceError = "role sync service cannot be nil"
	ErrNilSettings      ServiceError = "settings provider cannot be nil"
	ErrNilUUIDGenerator ServiceError = "UUID generator cannot be nil"
	ErrNilInput         ServiceError = "input cannot be nil"
	ErrEmptyGamemode    ServiceError = "gamemode cannot be empty"
)
