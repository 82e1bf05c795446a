package shared

import "errors"

// Error codes shared by every bounded context
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeAuth        = "AUTH_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodePersistence = "PERSISTENCE_ERROR"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code and message
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError reports bad or missing input
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewAuthError reports rejected credentials
func NewAuthError(message string) *DomainError {
	return NewDomainError(CodeAuth, message)
}

// NewPersistenceError wraps a store failure. The store message is kept verbatim
// so it can be surfaced to the caller.
func NewPersistenceError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	return &DomainError{
		Code:    CodePersistence,
		Message: err.Error(),
		Err:     err,
	}
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError(CodeNotFound, "resource not found")
	ErrInvalidInput = NewValidationError("invalid input")
	ErrUnauthorized = NewAuthError("unauthorized")
)

// IsCode reports whether err is a DomainError carrying code
func IsCode(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}
