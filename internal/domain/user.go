package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Authentication and registration messages. They are part of the public
// contract and must not change.
const (
	MsgEmailAlreadyRegistered = "Já existe um usuário cadastrado com este email."
	MsgUserNotFoundForEmail   = "Usuário não encontrado para o email informado."
	MsgInvalidPassword        = "Senha inválida."
)

// Structural validation errors for users about to be persisted.
var (
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered owner of financial entries.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only present during registration
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a User holding the plaintext password.
// The caller is responsible for hashing it before storage.
func NewUser(name, email, password string) *User {
	return &User{
		Name:     name,
		Email:    strings.TrimSpace(email),
		Password: password,
	}
}

// Validate checks that the user can be written to storage: it needs an email
// and a hashed credential.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}

	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}
