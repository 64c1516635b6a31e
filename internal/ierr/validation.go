package ierr

// FieldViolation scopes a validation failure to a single input field.
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationError carries one violation per bad field so handlers can return
// a structured list instead of a single opaque message.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}
