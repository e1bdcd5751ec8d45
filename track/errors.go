package track

import "fmt"

// ConfigError reports an invalid configuration or channel binding,
// grounded on sdrinit.go's ChkInitValue but returned as a typed error
// rather than a bare errors.New so callers can distinguish
// configuration failures from runtime conditions.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("track: invalid %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, a ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, a...)}
}
