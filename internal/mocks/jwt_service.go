package mocks

import (
	"context"

	"github.com/dreis/minhasfinancas-api/internal/service/auth"
	"github.com/google/uuid"
)

// MockJWTService is a function-field auth.JWTService. Without functions set
// it returns Token from GenerateToken and Claims/ValidateErr from
// ValidateToken.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	Token       string
	Err         error
	Claims      *auth.Claims
	ValidateErr error
}

func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn == nil {
		return m.Token, m.Err
	}
	return m.GenerateTokenFn(ctx, userID)
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn == nil {
		return m.Claims, m.ValidateErr
	}
	return m.ValidateTokenFn(ctx, tokenString)
}
