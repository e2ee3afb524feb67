package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"auth-gateway/app/config"
	"auth-gateway/app/driver/oidc"
	"auth-gateway/app/driver/postgres"
	"auth-gateway/app/gateway"
	"auth-gateway/app/port"
	"auth-gateway/app/rest"
	"auth-gateway/app/usecase"
)

// Container holds all dependencies for the application.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB         *postgres.DB
	OIDCClient *oidc.Client

	// Repositories
	UserRepository    port.UserRepository
	SessionRepository port.SessionRepository

	// Usecases
	LocalAuth      port.LocalAuthUsecase
	FederatedAuth  port.FederatedAuthUsecase
	SessionUsecase port.SessionUsecase
}

// NewContainer creates and initializes the dependency container. The OIDC
// client is only constructed when federated login is enabled; the rest of
// the service runs fine without a provider.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var err error
	container.DB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	container.UserRepository = postgres.NewUserRepository(container.DB.Pool(), logger)
	container.SessionRepository = postgres.NewSessionRepository(container.DB.Pool(), logger)

	var providerGateway port.ProviderGateway
	if cfg.SSOEnabled {
		container.OIDCClient, err = oidc.NewClient(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OIDC client: %w", err)
		}
		providerGateway = gateway.NewProviderGateway(container.OIDCClient, logger)
	} else {
		providerGateway = gateway.NewProviderGateway(nil, logger)
	}

	linker := usecase.NewAccountLinker(container.UserRepository, cfg.SSOAutoLinkByEmail, logger)

	container.LocalAuth = usecase.NewLocalAuthUseCase(container.UserRepository, logger)
	container.FederatedAuth = usecase.NewFederatedAuthUseCase(
		providerGateway, container.SessionRepository, container.UserRepository, linker, logger)
	container.SessionUsecase = usecase.NewSessionUseCase(
		container.SessionRepository, container.UserRepository, cfg.SessionTimeout, logger)

	logger.Info("Container initialized",
		"sso_enabled", cfg.SSOEnabled,
		"proxy_auth_enabled", cfg.ProxyAuthEnabled)

	return container, nil
}

// CreateRouter creates a fully configured Echo router.
func (c *Container) CreateRouter() *echo.Echo {
	return rest.NewRouter(rest.RouterConfig{
		Config:         c.Config,
		Logger:         c.Logger,
		LocalAuth:      c.LocalAuth,
		FederatedAuth:  c.FederatedAuth,
		SessionUsecase: c.SessionUsecase,
		DB:             c.DB,
	})
}

// Close releases all held resources.
func (c *Container) Close() {
	if c.DB != nil {
		c.DB.Close()
	}
}
