package port

//go:generate mockgen -source=auth_port.go -destination=../mocks/mock_auth_port.go

import (
	"context"

	"auth-gateway/app/domain"

	"github.com/google/uuid"
)

// LocalAuthUsecase implements email+password authentication against the
// credential store
type LocalAuthUsecase interface {
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
}

// FederatedAuthUsecase drives the OAuth2/OIDC authorization-code flow
type FederatedAuthUsecase interface {
	Enabled() bool
	Begin(ctx context.Context, session *domain.Session) (string, error)
	Complete(ctx context.Context, session *domain.Session, state, code string) (*domain.User, error)
	ProviderLogoutURL() string
}

// SessionUsecase owns session lifecycle and the per-request consistency gate
type SessionUsecase interface {
	Start(ctx context.Context) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Login(ctx context.Context, old *domain.Session, userID uuid.UUID, federated bool) (*domain.Session, error)
	Destroy(ctx context.Context, session *domain.Session) error
	CurrentUser(ctx context.Context, session *domain.Session) (*domain.User, error)
	ValidateConsistency(ctx context.Context, user *domain.User, assertedIdentity string) error
	PurgeExpired(ctx context.Context) (int64, error)
}
