package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"auth-gateway/app/domain"
	"auth-gateway/app/port"
	"auth-gateway/app/utils/logger"
)

// SessionUseCase owns the server-side session lifecycle: creation,
// lookup with expiry enforcement, the login-time rotation that defeats
// session fixation, and the per-request consistency check against the
// identity asserted by the fronting proxy.
type SessionUseCase struct {
	sessions port.SessionRepository
	users    port.UserRepository
	timeout  time.Duration
	logger   *slog.Logger
}

func NewSessionUseCase(sessions port.SessionRepository, users port.UserRepository, timeout time.Duration, log *slog.Logger) *SessionUseCase {
	return &SessionUseCase{
		sessions: sessions,
		users:    users,
		timeout:  timeout,
		logger:   logger.WithComponent(log, "session_usecase"),
	}
}

// Start creates and persists a fresh anonymous session.
func (uc *SessionUseCase) Start(ctx context.Context) (*domain.Session, error) {
	session, err := domain.NewSession(uc.timeout)
	if err != nil {
		return nil, err
	}

	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionPersistence, err)
	}

	uc.logger.Debug("Session started", "session_id", logger.TruncateToken(session.ID))
	return session, nil
}

// Get loads a session by ID. Expired sessions are deleted on sight and
// reported as domain.ErrSessionExpired.
func (uc *SessionUseCase) Get(ctx context.Context, id string) (*domain.Session, error) {
	session, err := uc.sessions.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.IsExpired() {
		if err := uc.sessions.Delete(ctx, session.ID); err != nil {
			uc.logger.Warn("Failed to delete expired session",
				"session_id", logger.TruncateToken(session.ID), "error", err)
		}
		return nil, domain.ErrSessionExpired
	}

	return session, nil
}

// Save persists in-memory session mutations.
func (uc *SessionUseCase) Save(ctx context.Context, session *domain.Session) error {
	session.UpdatedAt = time.Now()
	if err := uc.sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSessionPersistence, err)
	}
	return nil
}

// Login binds a user to a brand-new session and discards the
// pre-authentication one, so a session ID captured before login is
// worthless afterwards. The new session is persisted before the old one
// goes away; a persistence failure aborts the login.
func (uc *SessionUseCase) Login(ctx context.Context, old *domain.Session, userID uuid.UUID, federated bool) (*domain.Session, error) {
	session, err := domain.NewSession(uc.timeout)
	if err != nil {
		return nil, err
	}
	session.Attach(userID, federated)

	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionPersistence, err)
	}

	if old != nil {
		if err := uc.sessions.Delete(ctx, old.ID); err != nil {
			uc.logger.Warn("Failed to delete pre-login session",
				"session_id", logger.TruncateToken(old.ID), "error", err)
		}
	}

	uc.logger.Info("Session rotated on login",
		"session_id", logger.TruncateToken(session.ID),
		"federated", federated)
	return session, nil
}

// Destroy removes a session from the store.
func (uc *SessionUseCase) Destroy(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return nil
	}
	if err := uc.sessions.Delete(ctx, session.ID); err != nil {
		return err
	}
	uc.logger.Info("Session destroyed", "session_id", logger.TruncateToken(session.ID))
	return nil
}

// CurrentUser resolves the authenticated user bound to the session.
func (uc *SessionUseCase) CurrentUser(ctx context.Context, session *domain.Session) (*domain.User, error) {
	if session == nil || !session.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}
	return uc.users.FindByID(ctx, *session.UserID)
}

// ValidateConsistency compares the session's user against the identity the
// fronting proxy asserted for this request. The check only binds federated
// accounts; local accounts and requests without an asserted identity pass
// untouched. A mismatch means the proxy re-authenticated the browser as
// someone else, so the session must not continue.
func (uc *SessionUseCase) ValidateConsistency(ctx context.Context, user *domain.User, assertedIdentity string) error {
	if user == nil || !user.IsFederated() {
		return nil
	}
	if assertedIdentity == "" {
		return nil
	}

	if !user.MatchesAssertedIdentity(assertedIdentity) {
		uc.logger.Warn("Asserted identity does not match session user",
			"user_id", user.PublicID,
			"asserted", assertedIdentity)
		return domain.ErrSSOUserMismatch
	}

	return nil
}

// PurgeExpired deletes every expired session row and returns the count.
func (uc *SessionUseCase) PurgeExpired(ctx context.Context) (int64, error) {
	count, err := uc.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		uc.logger.Info("Purged expired sessions", "count", count)
	}
	return count, nil
}
