package service

// Validation error kinds that callers may want to act on specifically.
const (
	KindIncompletePOGroup = "IncompletePOGroup"
	KindPRValueMismatch   = "PRValueMismatch"
)

// ValidationError reports a field-level rule violation. The write that
// triggered it is rejected entirely; there is no partial persistence.
type ValidationError struct {
	Kind    string `json:"kind,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
