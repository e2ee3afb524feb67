package port

//go:generate mockgen -source=session_port.go -destination=../mocks/mock_session_port.go

import (
	"context"

	"auth-gateway/app/domain"
)

// SessionRepository defines the interface for the server-side session store
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	Find(ctx context.Context, id string) (*domain.Session, error)
	Update(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
