package errs

import "errors"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

type ForbiddenError struct {
	ErrorMessage
}

// ExtractionError is returned when the language model could not turn the
// user's text into an expense.
type ExtractionError struct {
	ErrorMessage
	Err error
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// DatabaseError wraps a failure of the document store.
type DatabaseError struct {
	Operation string
	Message   string
	Err       error
}

func (e *DatabaseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// ExternalServiceError wraps a failure of an upstream API. Transient errors
// (rate limits, temporary unavailability) are worth retrying.
type ExternalServiceError struct {
	Service   string
	Message   string
	Transient bool
	Err       error
}

func (e *ExternalServiceError) Error() string {
	if e.Err != nil {
		return e.Service + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Service + ": " + e.Message
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewExtractionError(message string, err error) *ExtractionError {
	return &ExtractionError{
		ErrorMessage: ErrorMessage{Message: "Failed to parse expense: " + message},
		Err:          err,
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

func NewExternalServiceError(service, message string, transient bool, err error) *ExternalServiceError {
	return &ExternalServiceError{
		Service:   service,
		Message:   message,
		Transient: transient,
		Err:       err,
	}
}

// IsTransient reports whether err carries a transient upstream failure.
func IsTransient(err error) bool {
	var ext *ExternalServiceError
	if errors.As(err, &ext) {
		return ext.Transient
	}
	return false
}
