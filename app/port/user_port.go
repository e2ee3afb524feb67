package port

//go:generate mockgen -source=user_port.go -destination=../mocks/mock_user_port.go

import (
	"context"

	"auth-gateway/app/domain"

	"github.com/google/uuid"
)

// UserRepository defines the interface for credential store operations.
// Uniqueness of email and of the (subject, issuer) pair is enforced by the
// store itself; implementations translate duplicate-key failures into
// domain.ErrUserAlreadyExists so callers can resolve create/link races by
// re-reading the winner's row.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByFederated(ctx context.Context, subject, issuer string) (*domain.User, error)
	LinkFederated(ctx context.Context, userID uuid.UUID, subject, issuer string) error
	RecordLogin(ctx context.Context, userID uuid.UUID) error
}
