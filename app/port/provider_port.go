package port

//go:generate mockgen -source=provider_port.go -destination=../mocks/mock_provider_port.go

import (
	"context"

	"auth-gateway/app/domain"
)

// ProviderClient is the low-level OIDC driver: authorization URL construction
// and the code-for-claims exchange. Implementations translate transport
// failures into domain.ErrProviderUnavailable.
type ProviderClient interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*domain.ProviderClaims, error)
	Issuer() string
	LogoutURL() string
}

// ProviderGateway is the application-facing federated identity source. It
// applies the claim-mapping policy (email fallback, display-name derivation)
// on top of a ProviderClient.
type ProviderGateway interface {
	Enabled() bool
	AuthCodeURL(state string) string
	Authenticate(ctx context.Context, code string) (*domain.FederatedIdentity, error)
	LogoutURL() string
}
