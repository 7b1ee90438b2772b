package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/dreis/minhasfinancas-api/internal/mocks"
	"github.com/dreis/minhasfinancas-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	store    *mocks.TestifyMockUserStore
	tx       *mocks.MockTxRunner
	verifier *mocks.MockPasswordVerifier
	svc      AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		store:    &mocks.TestifyMockUserStore{},
		tx:       &mocks.MockTxRunner{},
		verifier: &mocks.MockPasswordVerifier{},
	}
	f.svc = NewAuthService(f.store, f.tx, f.verifier, f.verifier, nil)
	return f
}

func requireAuthMessage(t *testing.T, err error, msg string) {
	t.Helper()
	var ae *domain.AuthenticationError
	require.True(t, errors.As(err, &ae), "expected AuthenticationError, got %v", err)
	assert.Equal(t, msg, ae.Message)
}

func TestAuthService_ValidateEmailUnique(t *testing.T) {
	t.Run("free email passes", func(t *testing.T) {
		f := newAuthFixture()
		f.store.On("ExistsByEmail", mock.Anything, "usuario@email.com").Return(false, nil).Once()

		assert.NoError(t, f.svc.ValidateEmailUnique(context.Background(), "usuario@email.com"))
	})

	t.Run("taken email is a business rule violation", func(t *testing.T) {
		f := newAuthFixture()
		f.store.On("ExistsByEmail", mock.Anything, "usuario@email.com").Return(true, nil).Once()

		err := f.svc.ValidateEmailUnique(context.Background(), "usuario@email.com")

		requireBusinessMessage(t, err, "Já existe um usuário cadastrado com este email.")
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		f := newAuthFixture()
		f.store.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, errors.New("db down")).Once()

		err := f.svc.ValidateEmailUnique(context.Background(), "usuario@email.com")

		var svcErr *ServiceError
		assert.True(t, errors.As(err, &svcErr))
		assert.False(t, errors.Is(err, domain.ErrBusinessRule))
	})
}

func TestAuthService_Register(t *testing.T) {
	t.Run("hashes and saves", func(t *testing.T) {
		f := newAuthFixture()
		user := domain.NewUser("Usuario", "usuario@email.com", "senha")
		f.store.On("ExistsByEmail", mock.Anything, "usuario@email.com").Return(false, nil).Once()
		f.store.On("Save", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.HashedPassword == "hashed:senha" && u.Password == ""
		})).Return(func() *domain.User {
			u := *user
			u.ID = uuid.New()
			u.HashedPassword = "hashed:senha"
			u.Password = ""
			return &u
		}(), nil).Once()

		saved, err := f.svc.Register(context.Background(), user)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, saved.ID)
		assert.Equal(t, 1, f.verifier.HashCallCount)
		assert.Equal(t, 1, f.tx.Calls())
		f.store.AssertExpectations(t)
	})

	t.Run("duplicate email never saves", func(t *testing.T) {
		f := newAuthFixture()
		f.store.On("ExistsByEmail", mock.Anything, "usuario@email.com").Return(true, nil).Once()

		saved, err := f.svc.Register(context.Background(), domain.NewUser("Usuario", "usuario@email.com", "senha"))

		assert.Nil(t, saved)
		requireBusinessMessage(t, err, domain.MsgEmailAlreadyRegistered)
		f.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		assert.Equal(t, 0, f.verifier.HashCallCount)
	})

	t.Run("unique index race maps to the same message", func(t *testing.T) {
		f := newAuthFixture()
		f.store.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil).Once()
		f.store.On("Save", mock.Anything, mock.Anything).Return(nil, store.ErrEmailExists).Once()

		_, err := f.svc.Register(context.Background(), domain.NewUser("Usuario", "usuario@email.com", "senha"))

		requireBusinessMessage(t, err, domain.MsgEmailAlreadyRegistered)
	})

	t.Run("hash failure", func(t *testing.T) {
		f := newAuthFixture()
		f.verifier.HashFn = func(string) (string, error) { return "", errors.New("too long") }
		f.store.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil).Once()

		_, err := f.svc.Register(context.Background(), domain.NewUser("Usuario", "usuario@email.com", "senha"))

		var svcErr *ServiceError
		assert.True(t, errors.As(err, &svcErr))
		f.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	stored := &domain.User{
		ID:             uuid.New(),
		Name:           "Usuario",
		Email:          "usuario@email.com",
		HashedPassword: "hashed:senha",
	}

	t.Run("success", func(t *testing.T) {
		f := newAuthFixture()
		f.store.On("FindByEmail", mock.Anything, "usuario@email.com").Return(stored, nil).Once()

		user, err := f.svc.Authenticate(context.Background(), "usuario@email.com", "senha")

		require.NoError(t, err)
		assert.Same(t, stored, user)
		assert.Equal(t, "hashed:senha", f.verifier.CompareCalledWith.HashedPassword)
		assert.Equal(t, "senha", f.verifier.CompareCalledWith.Password)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture()
		f.store.On("FindByEmail", mock.Anything, "outro@email.com").Return(nil, store.ErrUserNotFound).Once()

		user, err := f.svc.Authenticate(context.Background(), "outro@email.com", "senha")

		assert.Nil(t, user)
		requireAuthMessage(t, err, "Usuário não encontrado para o email informado.")
		assert.Equal(t, 0, f.verifier.CompareCallCount)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture()
		f.store.On("FindByEmail", mock.Anything, "usuario@email.com").Return(stored, nil).Once()

		user, err := f.svc.Authenticate(context.Background(), "usuario@email.com", "123")

		assert.Nil(t, user)
		requireAuthMessage(t, err, "Senha inválida.")
		assert.True(t, errors.Is(err, domain.ErrAuthentication))
	})

	t.Run("lookup failure is not an authentication error", func(t *testing.T) {
		f := newAuthFixture()
		f.store.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

		_, err := f.svc.Authenticate(context.Background(), "usuario@email.com", "senha")

		assert.False(t, errors.Is(err, domain.ErrAuthentication))
		var svcErr *ServiceError
		assert.True(t, errors.As(err, &svcErr))
	})
}

func TestAuthService_GetUser(t *testing.T) {
	f := newAuthFixture()
	user := &domain.User{ID: uuid.New(), Email: "usuario@email.com"}
	f.store.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()
	missing := uuid.New()
	f.store.On("GetByID", mock.Anything, missing).Return(nil, store.ErrUserNotFound).Once()

	got, err := f.svc.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Same(t, user, got)

	_, err = f.svc.GetUser(context.Background(), missing)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
