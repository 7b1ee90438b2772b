package api

import (
	"time"

	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/shopspring/decimal"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"max=150"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// AuthenticateRequest defines the payload for the authentication endpoint.
type AuthenticateRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user. Credentials never leave the server.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse defines the successful response of the authentication endpoint.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// EntryRequest is the body of entry create and update requests. Fields are
// checked by the entry rules, not by struct tags, so clients get the
// business messages.
type EntryRequest struct {
	Description string          `json:"description"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Value       decimal.Decimal `json:"value"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
}

// StatusRequest is the body of the status change endpoint.
type StatusRequest struct {
	Status string `json:"status"`
}

// EntryResponse represents the response data for an entry.
type EntryResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	Value       string    `json:"value"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func entryToResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		ID:          e.ID.String(),
		UserID:      e.UserID.String(),
		Description: e.Description,
		Month:       e.Month,
		Year:        e.Year,
		Value:       e.Value.StringFixed(2),
		Type:        string(e.Type),
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
	}
}

func entriesToResponse(entries []*domain.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryToResponse(e))
	}
	return out
}
