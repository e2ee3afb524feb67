package oidc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"auth-gateway/app/config"
	"auth-gateway/app/domain"
)

// Client performs the OIDC authorization code flow against a single
// provider discovered from the issuer URL. All outbound calls are bounded
// by the configured request timeout, and transport failures surface as
// domain.ErrProviderUnavailable so callers never leak provider errors to
// end users.
type Client struct {
	provider    *gooidc.Provider
	verifier    *gooidc.IDTokenVerifier
	oauthConfig *oauth2.Config
	issuerURL   string
	logoutURL   string
	timeout     time.Duration
	logger      *slog.Logger
}

// NewClient discovers the provider endpoints from the issuer's
// well-known configuration document.
func NewClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	discoverCtx, cancel := context.WithTimeout(ctx, cfg.SSORequestTimeout)
	defer cancel()

	provider, err := gooidc.NewProvider(discoverCtx, cfg.SSOIssuerURL)
	if err != nil {
		return nil, fmt.Errorf("%w: provider discovery failed: %v", domain.ErrProviderUnavailable, err)
	}

	endpoint := provider.Endpoint()
	switch cfg.SSOTokenAuthMethod {
	case config.TokenAuthPost:
		endpoint.AuthStyle = oauth2.AuthStyleInParams
	default:
		endpoint.AuthStyle = oauth2.AuthStyleInHeader
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.SSOClientID,
		ClientSecret: cfg.SSOClientSecret,
		RedirectURL:  cfg.SSOCallbackURL,
		Endpoint:     endpoint,
		Scopes:       cfg.SSOScopes,
	}

	logger.Info("OIDC provider discovered",
		"issuer", cfg.SSOIssuerURL,
		"token_auth_method", cfg.SSOTokenAuthMethod,
		"scopes", cfg.SSOScopes)

	return &Client{
		provider:    provider,
		verifier:    provider.Verifier(&gooidc.Config{ClientID: cfg.SSOClientID}),
		oauthConfig: oauthConfig,
		issuerURL:   cfg.SSOIssuerURL,
		logoutURL:   cfg.SSOLogoutURL,
		timeout:     cfg.SSORequestTimeout,
		logger:      logger.With("component", "oidc_client"),
	}, nil
}

// AuthCodeURL builds the provider authorization URL carrying the CSRF state.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauthConfig.AuthCodeURL(state)
}

// Exchange redeems an authorization code and returns the provider's identity
// claims. Claims come from the verified ID token when present, falling back
// to the UserInfo endpoint otherwise.
func (c *Client) Exchange(ctx context.Context, code string) (*domain.ProviderClaims, error) {
	exchangeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	token, err := c.oauthConfig.Exchange(exchangeCtx, code)
	if err != nil {
		c.logger.Warn("Token exchange failed", "error", err)
		return nil, fmt.Errorf("%w: token exchange failed: %v", domain.ErrProviderUnavailable, err)
	}

	if rawIDToken, ok := token.Extra("id_token").(string); ok && rawIDToken != "" {
		claims, err := c.claimsFromIDToken(exchangeCtx, rawIDToken)
		if err != nil {
			return nil, err
		}
		return claims, nil
	}

	return c.claimsFromUserInfo(exchangeCtx, token)
}

// Issuer returns the configured issuer URL.
func (c *Client) Issuer() string {
	return c.issuerURL
}

// LogoutURL returns the provider's logout endpoint, empty when unset.
func (c *Client) LogoutURL() string {
	return c.logoutURL
}

func (c *Client) claimsFromIDToken(ctx context.Context, rawIDToken string) (*domain.ProviderClaims, error) {
	idToken, err := c.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		c.logger.Warn("ID token verification failed", "error", err)
		return nil, fmt.Errorf("%w: id token verification failed: %v", domain.ErrProviderUnavailable, err)
	}

	var claims domain.ProviderClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: malformed id token claims: %v", domain.ErrProviderUnavailable, err)
	}

	claims.Subject = idToken.Subject
	claims.Issuer = idToken.Issuer
	return &claims, nil
}

func (c *Client) claimsFromUserInfo(ctx context.Context, token *oauth2.Token) (*domain.ProviderClaims, error) {
	userInfo, err := c.provider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		c.logger.Warn("UserInfo request failed", "error", err)
		return nil, fmt.Errorf("%w: userinfo request failed: %v", domain.ErrProviderUnavailable, err)
	}

	var claims domain.ProviderClaims
	if err := userInfo.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: malformed userinfo claims: %v", domain.ErrProviderUnavailable, err)
	}

	claims.Subject = userInfo.Subject
	claims.Issuer = c.issuerURL
	return &claims, nil
}
