package errors

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors keeps at most one message per field; the first one wins.
type FieldErrors []FieldError

// Add records message for field unless the field already failed.
func (f FieldErrors) Add(field, message string) FieldErrors {
	for _, existing := range f {
		if existing.Field == field {
			return f
		}
	}
	return append(f, FieldError{Field: field, Message: message})
}

// Err returns nil when no field failed, otherwise a CodeValidation error
// carrying the collected fields as details.
func (f FieldErrors) Err(message string) error {
	if len(f) == 0 {
		return nil
	}
	return New(CodeValidation, message).WithDetails(f)
}
