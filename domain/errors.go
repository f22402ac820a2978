package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrNoSegments      = errors.New("project has no segments")
	ErrExportNotFound  = errors.New("export not found")
)

// ConfigurationError reports a violated precondition, i.e. a caller bug
// rather than bad-but-recoverable timing data.
type ConfigurationError struct {
	Field  string
	Index  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("configuration error: %s[%d]: %s", e.Field, e.Index, e.Reason)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
