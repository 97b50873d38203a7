package affiliations

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration   = errors.New("bank affiliation configuration error")
	ErrDuplicateLabel  = errors.New("duplicate affiliation label")
	ErrDuplicatePrefix = errors.New("duplicate affiliation BIC prefix")
	ErrUnsupportedType = errors.New("unsupported affiliation source type")
)

// ConfigurationError reports an affiliation source that is missing or malformed.
// The directory cannot be built without it.
type ConfigurationError struct {
	Source string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("bank affiliations %q: %v", e.Source, e.Err)
}

func (e *ConfigurationError) Unwrap() []error {
	return []error{ErrConfiguration, e.Err}
}
