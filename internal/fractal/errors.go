package fractal

import (
	"errors"
	"fmt"
)

// Domain errors for generation.
var (
	// ErrConfiguration indicates parameters outside the generator's domain,
	// for example a branch scaling factor that would never terminate.
	ErrConfiguration = errors.New("fractal: invalid configuration")

	// ErrUnknownKind indicates a fractal name that no generator answers to.
	ErrUnknownKind = errors.New("fractal: unknown fractal kind")
)

// ConfigError describes the offending parameter.
type ConfigError struct {
	Generator string
	Field     string
	Value     float64
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("fractal: %s: %s=%g %s", e.Generator, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

func configError(generator, field string, value float64, reason string) error {
	return &ConfigError{Generator: generator, Field: field, Value: value, Reason: reason}
}
