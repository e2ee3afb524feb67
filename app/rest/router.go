package rest

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"auth-gateway/app/config"
	"auth-gateway/app/port"
	"auth-gateway/app/rest/handlers"
	custommw "auth-gateway/app/rest/middleware"
	apperrors "auth-gateway/app/utils/errors"
)

// RouterConfig holds everything the router needs to wire handlers and
// middleware.
type RouterConfig struct {
	Config         *config.Config
	Logger         *slog.Logger
	LocalAuth      port.LocalAuthUsecase
	FederatedAuth  port.FederatedAuthUsecase
	SessionUsecase port.SessionUsecase
	DB             handlers.Pinger
}

// NewRouter creates and configures the Echo router.
func NewRouter(rc RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler(rc.Logger)

	cfg := rc.Config

	sessionMW := custommw.NewSessionMiddleware(
		rc.SessionUsecase, cfg.SessionCookieName, cfg.SessionSecret, rc.Logger)
	authMW := custommw.NewAuthMiddleware(
		rc.SessionUsecase, sessionMW, cfg.ProxyAuthEnabled, cfg.ProxyUserHeader, rc.Logger)
	rateLimiter := custommw.NewRateLimiter()

	authHandler := handlers.NewAuthHandler(
		rc.LocalAuth, rc.SessionUsecase, sessionMW, authMW, rc.Logger)
	federatedHandler := handlers.NewFederatedHandler(
		rc.FederatedAuth, rc.SessionUsecase, sessionMW, cfg.FrontendURL, rc.Logger)
	healthHandler := handlers.NewHealthHandler(rc.DB, rc.Logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.NewCORSMiddleware(custommw.DefaultCORSConfig(cfg.FrontendURL)))
	e.Use(custommw.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())

	v1 := e.Group("/v1")

	// Health endpoints stay outside the session middleware so probes do
	// not create session rows.
	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/live", healthHandler.LivenessCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)

	// Everything below carries a session.
	sessioned := v1.Group("", sessionMW.Load())

	sessioned.GET("/current_user", authHandler.CurrentUser)

	auth := sessioned.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.GET("/logout", authHandler.Logout)

	sso := auth.Group("/sso")
	sso.GET("/config", federatedHandler.Config)
	sso.GET("/login", federatedHandler.Login)
	sso.GET("/callback", federatedHandler.Callback)
	sso.GET("/logout", federatedHandler.Logout)
	sso.GET("/logout/local", federatedHandler.LogoutLocal)

	return e
}

// httpErrorHandler renders uncaught errors as the shared JSON error shape.
// Handlers mostly answer errors themselves; this catches echo.HTTPError from
// middleware and anything a handler let escape.
func httpErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		code := apperrors.ErrCodeInternalError
		message := "internal server error"

		if appErr, ok := apperrors.AsAppError(err); ok {
			status = appErr.StatusCode
			code = appErr.Code
			message = appErr.Message
		} else if httpErr, ok := err.(*echo.HTTPError); ok {
			status = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
			switch status {
			case http.StatusUnauthorized:
				code = apperrors.ErrCodeUnauthorized
			case http.StatusNotFound:
				code = apperrors.ErrCodeNotFound
			case http.StatusBadRequest:
				code = apperrors.ErrCodeBadRequest
			}
		}

		if status >= http.StatusInternalServerError {
			log.Error("Unhandled request error", "error", err, "path", c.Request().URL.Path)
		}

		if writeErr := c.JSON(status, map[string]any{
			"error": message,
			"code":  code,
		}); writeErr != nil {
			log.Error("Failed to write error response", "error", writeErr)
		}
	}
}
