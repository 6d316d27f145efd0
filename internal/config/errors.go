package config

import "fmt"

// ConfigError reports a configuration document that is absent, malformed or
// missing a required key.
type ConfigError struct {
	// Path is the document location
	Path string

	// Reason describes what is wrong
	Reason string

	// Err is the underlying error, if any
	Err error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("config %s: %s", e.Path, e.Reason)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// StoreError is returned for invalid Store construction
type StoreError string

// Error implements the error interface
func (e StoreError) Error() string {
	return string(e)
}

const (
	ErrNilConfig StoreError = "config cannot be nil"
	ErrEmptyPath StoreError = "config path cannot be empty"
)
