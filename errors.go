package crosslight

import "fmt"

// The control path itself is total: phases always run to completion and
// every input is a pre-validated boolean level. Errors therefore only
// arise at the edges, from configuration and from hardware setup.

// ConfigurationError reports an invalid controller configuration.
type ConfigurationError struct {
	Component string
	Issue     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Issue)
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(component, issue string) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Issue:     issue,
	}
}

// DriverError reports a hardware driver that could not be initialized.
type DriverError struct {
	Driver      string
	Issue       string
	OriginalErr error
}

func (e *DriverError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("driver error in %s: %s: %v", e.Driver, e.Issue, e.OriginalErr)
	}
	return fmt.Sprintf("driver error in %s: %s", e.Driver, e.Issue)
}

func (e *DriverError) Unwrap() error {
	return e.OriginalErr
}

// NewDriverError creates a new driver error.
func NewDriverError(driver, issue string, err error) *DriverError {
	return &DriverError{
		Driver:      driver,
		Issue:       issue,
		OriginalErr: err,
	}
}

// IsConfigurationError checks if an error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	_, ok := err.(*ConfigurationError)
	return ok
}

// IsDriverError checks if an error is a DriverError.
func IsDriverError(err error) bool {
	_, ok := err.(*DriverError)
	return ok
}
