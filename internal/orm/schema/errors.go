package schema

import (
	"errors"
	"fmt"
)

// Common schema error types
var (
	// ErrUnknownType is returned when an entity type has not been defined
	ErrUnknownType = errors.New("unknown entity type")

	// ErrDuplicateType is returned when an entity type is defined twice
	ErrDuplicateType = errors.New("entity type already defined")

	// ErrInvalidTypeName is returned when an entity type name is empty
	ErrInvalidTypeName = errors.New("invalid entity type name")

	// ErrInvalidKeyName is returned when convention resolution yields an unusable column name
	ErrInvalidKeyName = errors.New("invalid primary key name")

	// ErrUnknownPolicy is returned for naming policy values outside the enum
	ErrUnknownPolicy = errors.New("unknown naming policy")
)

// ConfigurationError reports a primary key name that could not be derived
// from the naming convention. It is never recovered from by falling back
// to the default "id".
type ConfigurationError struct {
	BaseName string
	Policy   NamingPolicy
	Name     string // the rejected name, if any
	Err      error
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("primary key for %s (policy %s): %v", e.BaseName, e.Policy, e.Err)
	}
	return fmt.Sprintf("primary key for %s (policy %s): %q: %v", e.BaseName, e.Policy, e.Name, e.Err)
}

// Unwrap returns the underlying cause
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ComputeFunctionError wraps a failure returned by a computed primary key override.
type ComputeFunctionError struct {
	Type string
	Err  error
}

// Error implements the error interface
func (e *ComputeFunctionError) Error() string {
	return fmt.Sprintf("computing primary key for %s: %v", e.Type, e.Err)
}

// Unwrap returns the error returned by the compute function
func (e *ComputeFunctionError) Unwrap() error {
	return e.Err
}

// IsConfigurationError returns true if err is or wraps a *ConfigurationError
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// IsComputeFunctionError returns true if err is or wraps a *ComputeFunctionError
func IsComputeFunctionError(err error) bool {
	var fnErr *ComputeFunctionError
	return errors.As(err, &fnErr)
}

// IsUnknownType returns true if the error is ErrUnknownType
func IsUnknownType(err error) bool {
	return errors.Is(err, ErrUnknownType)
}
