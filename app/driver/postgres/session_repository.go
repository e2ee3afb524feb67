package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"auth-gateway/app/domain"
	"auth-gateway/app/port"
	"auth-gateway/app/utils/logger"

	"github.com/jackc/pgx/v5"
)

// SessionRepository implements port.SessionRepository for PostgreSQL
type SessionRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewSessionRepository creates a new PostgreSQL session repository
func NewSessionRepository(db DatabaseIface, logger *slog.Logger) port.SessionRepository {
	return &SessionRepository{
		db:     db,
		logger: logger.With("component", "session_repository"),
	}
}

const sessionColumns = `id, user_id, csrf_state, federated_login, created_at, updated_at, expires_at`

// Create inserts a new session row
func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (
			id, user_id, csrf_state, federated_login, created_at, updated_at, expires_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.CSRFState,
		session.FederatedLogin,
		session.CreatedAt,
		session.UpdatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		r.logger.Error("failed to create session",
			"session_id", logger.TruncateToken(session.ID), "error", err)
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Find retrieves a session by its opaque identifier
func (r *SessionRepository) Find(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	session := &domain.Session{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.CSRFState,
		&session.FederatedLogin,
		&session.CreatedAt,
		&session.UpdatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return session, nil
}

// Update persists the mutable session fields
func (r *SessionRepository) Update(ctx context.Context, session *domain.Session) error {
	query := `
		UPDATE sessions
		SET user_id = $2, csrf_state = $3, federated_login = $4, updated_at = $5, expires_at = $6
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.CSRFState,
		session.FederatedLogin,
		session.UpdatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		r.logger.Error("failed to update session",
			"session_id", logger.TruncateToken(session.ID), "error", err)
		return fmt.Errorf("failed to update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Delete removes a session row
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.logger.Error("failed to delete session",
			"session_id", logger.TruncateToken(id), "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes all sessions past their expiry
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at < $1`

	tag, err := r.db.Exec(ctx, query, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
