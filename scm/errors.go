package scm

import "fmt"

// Reason describes why a configuration field was rejected.
type Reason int

const (
	ReasonEmpty Reason = iota
	ReasonWrongSegmentCount
	ReasonMissingHost
	ReasonMissingPort
	ReasonNonNumericPort
	ReasonNotAlphanumeric
	ReasonUnknownCodePage
)

var reasonMessages = map[Reason]string{
	ReasonEmpty:             "must not be empty",
	ReasonWrongSegmentCount: "must be in HOST:PORT format",
	ReasonMissingHost:       "host must not be empty",
	ReasonMissingPort:       "port must not be empty",
	ReasonNonNumericPort:    "port must be numeric",
	ReasonNotAlphanumeric:   "must contain only letters and digits",
	ReasonUnknownCodePage:   "is not a supported code page",
}

func (r Reason) String() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return "is invalid"
}

// ValidationError is a recoverable, per-field configuration failure. The
// caller renders one message per field, nothing is escalated.
type ValidationError struct {
	Field  string
	Reason Reason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func newValidationError(field string, reason Reason) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
