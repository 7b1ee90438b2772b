package auth

import "errors"

// Token validation failures. The API reports ErrExpiredToken separately so
// clients know to log in again; the rest collapse to "invalid token".
var (
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")
	ErrMissingToken     = errors.New("authentication token is missing")
)
