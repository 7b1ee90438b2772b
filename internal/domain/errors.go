package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrBusinessRule is matched by every *BusinessRuleError via errors.Is.
	ErrBusinessRule = errors.New("business rule violation")

	// ErrAuthentication is matched by every *AuthenticationError via errors.Is.
	ErrAuthentication = errors.New("authentication failed")

	// ErrMissingIdentity is returned when an operation that requires a
	// persisted entity receives one without an ID. It signals a caller bug,
	// not a business rule violation.
	ErrMissingIdentity = errors.New("entity identity is required")
)

// BusinessRuleError reports a validation or uniqueness failure. Message is
// user-facing and returned verbatim by the API.
type BusinessRuleError struct {
	Message string
}

// NewBusinessRuleError creates a BusinessRuleError with the given message.
func NewBusinessRuleError(message string) *BusinessRuleError {
	return &BusinessRuleError{Message: message}
}

// Error implements the error interface.
func (e *BusinessRuleError) Error() string {
	return e.Message
}

// Is reports whether target is ErrBusinessRule.
func (e *BusinessRuleError) Is(target error) bool {
	return target == ErrBusinessRule
}

// AuthenticationError reports a failed login. Unknown email and wrong
// password share this type and differ only in Message.
type AuthenticationError struct {
	Message string
}

// NewAuthenticationError creates an AuthenticationError with the given message.
func NewAuthenticationError(message string) *AuthenticationError {
	return &AuthenticationError{Message: message}
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return e.Message
}

// Is reports whether target is ErrAuthentication.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}
