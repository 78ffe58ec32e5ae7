package vehicle

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every ConfigurationError, including those
// wrapping a tyre coefficient error.
var ErrConfiguration = errors.New("invalid vehicle configuration")

// ConfigurationError reports a construction parameter that would make the
// model physically meaningless. It is fatal: no Car is built.
type ConfigurationError struct {
	Field  string
	Value  float64
	Reason string
	Err    error // underlying cause, e.g. a tyre.CoefficientError
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %s, got %v", e.Field, e.Reason, e.Value)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func (e *ConfigurationError) Unwrap() error { return e.Err }
