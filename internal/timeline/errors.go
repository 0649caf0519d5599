package timeline

import "fmt"

// ConfigError reports an invalid configuration value. Configuration errors
// are surfaced immediately and never retried.
type ConfigError struct {
	Setting string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Setting, e.Reason)
}

// ParseError reports a field value that could not be normalized to a
// timestamp.
type ParseError struct {
	Field string
	Raw   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse timestamp %q in column %q", e.Raw, e.Field)
}
