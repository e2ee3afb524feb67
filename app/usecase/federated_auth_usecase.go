package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"auth-gateway/app/domain"
	"auth-gateway/app/port"
	"auth-gateway/app/utils/logger"
	"auth-gateway/app/utils/security"
)

const csrfStateBytes = 32

// FederatedAuthUseCase drives the authorization-code flow: it issues the
// CSRF state bound to the caller's session, and on callback consumes that
// state, redeems the code and resolves the federated identity to a local
// account.
type FederatedAuthUseCase struct {
	provider port.ProviderGateway
	sessions port.SessionRepository
	users    port.UserRepository
	linker   *AccountLinker
	logger   *slog.Logger
}

func NewFederatedAuthUseCase(
	provider port.ProviderGateway,
	sessions port.SessionRepository,
	users port.UserRepository,
	linker *AccountLinker,
	log *slog.Logger,
) *FederatedAuthUseCase {
	return &FederatedAuthUseCase{
		provider: provider,
		sessions: sessions,
		users:    users,
		linker:   linker,
		logger:   logger.WithComponent(log, "federated_auth_usecase"),
	}
}

// Enabled reports whether federated login is configured.
func (uc *FederatedAuthUseCase) Enabled() bool {
	return uc.provider != nil && uc.provider.Enabled()
}

// Begin generates a fresh CSRF state, persists it on the session and
// returns the provider authorization URL. The state must be durable
// before the browser leaves for the provider, so a persistence failure
// aborts the flow.
func (uc *FederatedAuthUseCase) Begin(ctx context.Context, session *domain.Session) (string, error) {
	if !uc.Enabled() {
		return "", domain.ErrFederatedDisabled
	}

	state, err := security.GenerateToken(csrfStateBytes)
	if err != nil {
		return "", err
	}

	session.SetCSRFState(state)
	if err := uc.sessions.Update(ctx, session); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSessionPersistence, err)
	}

	uc.logger.Info("Federated login started",
		"session_id", logger.TruncateToken(session.ID))
	return uc.provider.AuthCodeURL(state), nil
}

// Complete finishes the callback leg. The stored state is consumed and the
// cleared value persisted before the outcome is evaluated, so a replayed
// callback can never reuse it. Only then is the state compared and the
// code exchanged.
func (uc *FederatedAuthUseCase) Complete(ctx context.Context, session *domain.Session, state, code string) (*domain.User, error) {
	if !uc.Enabled() {
		return nil, domain.ErrFederatedDisabled
	}

	storedState, hadState := session.ConsumeCSRFState()
	if err := uc.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionPersistence, err)
	}

	if !hadState || state == "" || !security.ConstantTimeEquals(storedState, state) {
		uc.logger.Warn("CSRF state mismatch on callback",
			"session_id", logger.TruncateToken(session.ID))
		return nil, domain.ErrStateMismatch
	}

	identity, err := uc.provider.Authenticate(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := uc.linker.Resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	user.RecordLogin()
	if err := uc.users.RecordLogin(ctx, user.ID); err != nil {
		uc.logger.Warn("Failed to record login timestamp", "user_id", user.PublicID, "error", err)
	}

	uc.logger.Info("Federated login completed",
		"user_id", user.PublicID, "issuer", identity.Issuer)
	return user, nil
}

// ProviderLogoutURL returns the provider logout endpoint, empty when none
// is configured.
func (uc *FederatedAuthUseCase) ProviderLogoutURL() string {
	if !uc.Enabled() {
		return ""
	}
	return uc.provider.LogoutURL()
}
