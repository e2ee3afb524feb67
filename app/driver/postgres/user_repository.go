package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"auth-gateway/app/domain"
	"auth-gateway/app/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error code for unique constraint violations
const uniqueViolation = "23505"

// UserRepository implements port.UserRepository for PostgreSQL
type UserRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db DatabaseIface, logger *slog.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.With("component", "user_repository"),
	}
}

const userColumns = `id, public_id, email, name, password_hash, federated_subject, federated_issuer, created_at, updated_at, last_login_at`

// Create inserts a new user row. The unique constraints on email and on the
// federated identity pair arbitrate concurrent first-time logins; a loser of
// that race receives domain.ErrUserAlreadyExists and re-reads the winner.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			id, public_id, email, name, password_hash,
			federated_subject, federated_issuer, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.PublicID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.FederatedSubject,
		user.FederatedIssuer,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		r.logger.Error("failed to create user", "email", user.Email, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info("user created", "user_id", user.ID, "email", user.Email, "federated", user.IsFederated())
	return nil
}

// FindByID retrieves a user by internal identifier
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

// FindByEmail retrieves a user by email (case-sensitive, as stored)
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

// FindByFederated retrieves a user by the provider's subject and issuer pair
func (r *UserRepository) FindByFederated(ctx context.Context, subject, issuer string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE federated_subject = $1 AND federated_issuer = $2`
	return r.scanUser(r.db.QueryRow(ctx, query, subject, issuer))
}

// LinkFederated attaches a federated identity to an existing row. The WHERE
// clause only matches an unlinked row, so a concurrent link of the same user
// cannot silently overwrite a different subject.
func (r *UserRepository) LinkFederated(ctx context.Context, userID uuid.UUID, subject, issuer string) error {
	query := `
		UPDATE users
		SET federated_subject = $2, federated_issuer = $3, updated_at = $4
		WHERE id = $1 AND federated_subject IS NULL`

	tag, err := r.db.Exec(ctx, query, userID, subject, issuer, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		r.logger.Error("failed to link federated identity", "user_id", userID, "error", err)
		return fmt.Errorf("failed to link federated identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}

	r.logger.Info("federated identity linked", "user_id", userID, "issuer", issuer)
	return nil
}

// RecordLogin stamps the last successful login
func (r *UserRepository) RecordLogin(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE users SET last_login_at = $2, updated_at = $2 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, userID, time.Now()); err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.PublicID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.FederatedSubject,
		&user.FederatedIssuer,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
