package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/dreis/minhasfinancas-api/internal/platform/logger"
	"github.com/dreis/minhasfinancas-api/internal/service/auth"
	"github.com/dreis/minhasfinancas-api/internal/store"
	"github.com/google/uuid"
)

const authServiceName = "auth"

// AuthService registers users and verifies their credentials.
type AuthService interface {
	// Register checks email uniqueness, hashes the credential and persists the user.
	Register(ctx context.Context, user *domain.User) (*domain.User, error)

	// ValidateEmailUnique fails with a business rule error when the email is taken.
	ValidateEmailUnique(ctx context.Context, email string) error

	// Authenticate returns the user owning email when password matches.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type authServiceImpl struct {
	userStore store.UserStore
	txRunner  store.TxRunner
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userStore store.UserStore,
	txRunner store.TxRunner,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authServiceImpl{
		userStore: userStore,
		txRunner:  txRunner,
		hasher:    hasher,
		verifier:  verifier,
		logger:    logger.With("component", "auth_service"),
	}
}

// ValidateEmailUnique reports a taken email as a business rule violation.
func (s *authServiceImpl) ValidateEmailUnique(ctx context.Context, email string) error {
	exists, err := s.userStore.ExistsByEmail(ctx, email)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check email uniqueness", "error", err)
		return NewServiceError(authServiceName, "validate_email", err)
	}
	if exists {
		return domain.NewBusinessRuleError(domain.MsgEmailAlreadyRegistered)
	}
	return nil
}

// Register persists a new user after the uniqueness check.
// The check and the insert are not atomic; the unique index on email
// catches a concurrent registration and yields the same error.
func (s *authServiceImpl) Register(ctx context.Context, user *domain.User) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.ValidateEmailUnique(ctx, user.Email); err != nil {
		log.Debug("registration rejected", "error", err)
		return nil, err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, NewServiceError(authServiceName, "register", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	var saved *domain.User
	err = s.txRunner.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		saved, err = s.userStore.WithTx(tx).Save(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("concurrent registration with the same email")
			return nil, domain.NewBusinessRuleError(domain.MsgEmailAlreadyRegistered)
		}
		log.Error("failed to save user", "error", err)
		return nil, NewServiceError(authServiceName, "register", err)
	}

	log.Info("user registered", "user_id", saved.ID)
	return saved, nil
}

// Authenticate checks existence first, then the credential.
func (s *authServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("authentication failed: unknown email")
			return nil, domain.NewAuthenticationError(domain.MsgUserNotFoundForEmail)
		}
		log.Error("failed to look up user for authentication", "error", err)
		return nil, NewServiceError(authServiceName, "authenticate", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("authentication failed: credential mismatch", "user_id", user.ID)
		return nil, domain.NewAuthenticationError(domain.MsgInvalidPassword)
	}

	log.Debug("user authenticated", "user_id", user.ID)
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *authServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve user",
				"error", err,
				"user_id", id)
		}
		return nil, NewServiceError(authServiceName, "get_user", err)
	}
	return user, nil
}
