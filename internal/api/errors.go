package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dreis/minhasfinancas-api/internal/api/shared"
	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/dreis/minhasfinancas-api/internal/service/auth"
	"github.com/dreis/minhasfinancas-api/internal/store"
)

// Generic client messages
const (
	msgUnexpected      = "An unexpected error occurred"
	msgEntryNotFound   = "Entry not found"
	msgUserNotFound    = "User not found"
	msgMissingIdentity = "Entry identity is required"
	msgInvalidToken    = "Invalid token"
	msgInvalidRequest  = "Invalid request format"
	msgInvalidEntity   = "Invalid entity data"
	msgUnauthenticated = "User ID not found or invalid"
)

// errNotOwned marks an entry that belongs to another user. It is reported
// exactly like a missing entry.
var errNotOwned = errors.New("entry not owned by caller")

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking their types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrBusinessRule),
		errors.Is(err, domain.ErrMissingIdentity),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAuthentication),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, errNotOwned), store.IsNotFoundError(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message a client may see for err.
// Business rule and authentication failures keep their exact message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var ruleErr *domain.BusinessRuleError
	if errors.As(err, &ruleErr) {
		return ruleErr.Message
	}
	var authErr *domain.AuthenticationError
	if errors.As(err, &authErr) {
		return authErr.Message
	}

	switch {
	case errors.Is(err, domain.ErrMissingIdentity):
		return msgMissingIdentity
	case errors.Is(err, store.ErrInvalidEntity):
		return msgInvalidEntity
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpiredToken):
		return msgInvalidToken
	case errors.Is(err, errNotOwned), errors.Is(err, store.ErrEntryNotFound):
		return msgEntryNotFound
	case errors.Is(err, store.ErrUserNotFound):
		return msgUserNotFound
	default:
		return msgUnexpected
	}
}

// HandleAPIError writes the response for err, logging the full error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// SanitizeValidationError turns a validator error into a short client message
// like "Invalid Email: invalid email format".
func SanitizeValidationError(err error) string {
	errMsg := err.Error()
	if !strings.Contains(errMsg, "Field validation") {
		return "Validation error"
	}

	// Key: 'RegisterRequest.Email' Error:Field validation for 'Email' failed on the 'email' tag
	_, detail, found := strings.Cut(errMsg, "Error:")
	if !found {
		return "Validation error"
	}
	parts := strings.Split(detail, "'")
	if len(parts) < 3 {
		return "Validation error"
	}
	field := parts[1]
	if len(parts) >= 5 {
		return fmt.Sprintf("Invalid %s: %s", field, validationTagMessage(parts[3]))
	}
	return fmt.Sprintf("Invalid %s", field)
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
