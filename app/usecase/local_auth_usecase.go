package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"auth-gateway/app/domain"
	"auth-gateway/app/port"
	"auth-gateway/app/utils/logger"
)

// dummyHash is compared against when the email is unknown so that failed
// logins cost the same whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// LocalAuthUseCase implements email and password authentication against
// the local credential store.
type LocalAuthUseCase struct {
	users  port.UserRepository
	logger *slog.Logger
}

func NewLocalAuthUseCase(users port.UserRepository, log *slog.Logger) *LocalAuthUseCase {
	return &LocalAuthUseCase{
		users:  users,
		logger: logger.WithComponent(log, "local_auth_usecase"),
	}
}

// Login verifies the password for the account identified by email. Unknown
// accounts, federated-only accounts and wrong passwords all collapse into
// domain.ErrInvalidCredentials so the response never reveals which field
// was wrong.
func (uc *LocalAuthUseCase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a bcrypt comparison anyway to keep timing uniform.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.HasPassword() {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		uc.logger.Info("Login attempt against passwordless account", "user_id", user.PublicID)
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		uc.logger.Info("Password mismatch", "user_id", user.PublicID)
		return nil, domain.ErrInvalidCredentials
	}

	user.RecordLogin()
	if err := uc.users.RecordLogin(ctx, user.ID); err != nil {
		uc.logger.Warn("Failed to record login timestamp", "user_id", user.PublicID, "error", err)
	}

	uc.logger.Info("Local login succeeded", "user_id", user.PublicID)
	return user, nil
}

// Register creates a local account with a bcrypt password hash. A duplicate
// email surfaces as domain.ErrUserAlreadyExists from the store.
func (uc *LocalAuthUseCase) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := domain.NewLocalUser(email, name, string(hash))
	if err != nil {
		return nil, err
	}

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("Local account registered", "user_id", user.PublicID)
	return user, nil
}
