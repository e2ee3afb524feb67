package gateway

import (
	"context"
	"log/slog"
	"strings"

	"auth-gateway/app/domain"
	"auth-gateway/app/port"
	"auth-gateway/app/utils/logger"
)

// ProviderGateway implements port.ProviderGateway. It is the
// anti-corruption layer between the account linker and the raw OIDC
// driver: provider claim sets go in, a resolved FederatedIdentity with a
// guaranteed email and display name comes out.
type ProviderGateway struct {
	client port.ProviderClient
	logger *slog.Logger
}

func NewProviderGateway(client port.ProviderClient, log *slog.Logger) *ProviderGateway {
	return &ProviderGateway{
		client: client,
		logger: logger.WithComponent(log, "provider_gateway"),
	}
}

// Enabled reports whether a provider client is configured.
func (g *ProviderGateway) Enabled() bool {
	return g.client != nil
}

// AuthCodeURL builds the provider authorization URL for the given state.
func (g *ProviderGateway) AuthCodeURL(state string) string {
	return g.client.AuthCodeURL(state)
}

// Authenticate redeems the authorization code and maps the provider claims
// to a federated identity. The email claim is mandatory; when absent,
// preferred_username is accepted if it is itself an email address.
func (g *ProviderGateway) Authenticate(ctx context.Context, code string) (*domain.FederatedIdentity, error) {
	claims, err := g.client.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(claims.Email)
	if email == "" && strings.Contains(claims.PreferredUsername, "@") {
		email = strings.TrimSpace(claims.PreferredUsername)
	}
	if email == "" {
		g.logger.Warn("Provider returned no usable email claim", "subject", claims.Subject)
		return nil, domain.ErrMissingEmailClaim
	}

	issuer := claims.Issuer
	if issuer == "" {
		issuer = g.client.Issuer()
	}

	identity := &domain.FederatedIdentity{
		Subject: claims.Subject,
		Issuer:  issuer,
		Email:   strings.ToLower(email),
		Name:    strings.TrimSpace(claims.Name),
	}

	g.logger.Info("Federated identity resolved",
		"subject", identity.Subject,
		"issuer", identity.Issuer)
	return identity, nil
}

// LogoutURL returns the provider logout endpoint, empty when the provider
// does not advertise one.
func (g *ProviderGateway) LogoutURL() string {
	return g.client.LogoutURL()
}
