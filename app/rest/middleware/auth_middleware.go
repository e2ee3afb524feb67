package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"auth-gateway/app/domain"
	"auth-gateway/app/port"
	"auth-gateway/app/utils/logger"
)

const userContextKey = "current_user"

// AuthMiddleware gates protected routes. Beyond requiring an
// authenticated session it runs the consistency check against the
// identity the fronting proxy asserted for this request, evicting
// sessions whose federated user no longer matches.
type AuthMiddleware struct {
	sessions     port.SessionUsecase
	cookies      *SessionMiddleware
	proxyEnabled bool
	proxyHeader  string
	logger       *slog.Logger
}

func NewAuthMiddleware(sessions port.SessionUsecase, cookies *SessionMiddleware, proxyEnabled bool, proxyHeader string, log *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:     sessions,
		cookies:      cookies,
		proxyEnabled: proxyEnabled,
		proxyHeader:  proxyHeader,
		logger:       logger.WithComponent(log, "auth_middleware"),
	}
}

// RequireAuth rejects unauthenticated requests and enforces session
// consistency for federated accounts.
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := SessionFromContext(c)

			user, err := m.sessions.CurrentUser(c.Request().Context(), session)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			if err := m.checkConsistency(c, session, user); err != nil {
				// The eviction path has already written the 401; the
				// handler must not run for the evicted identity.
				if errors.Is(err, domain.ErrSSOUserMismatch) {
					return nil
				}
				return err
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// checkConsistency runs the asserted-identity comparison. On mismatch it
// destroys the session, clears the cookie and writes the 401 itself, then
// returns ErrSSOUserMismatch so the caller stops the chain.
func (m *AuthMiddleware) checkConsistency(c echo.Context, session *domain.Session, user *domain.User) error {
	asserted := m.AssertedIdentity(c)

	err := m.sessions.ValidateConsistency(c.Request().Context(), user, asserted)
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrSSOUserMismatch) {
		if writeErr := m.EvictMismatch(c, session); writeErr != nil {
			return writeErr
		}
		return domain.ErrSSOUserMismatch
	}

	m.logger.Error("Consistency validation failed", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

// AssertedIdentity returns the proxy-asserted identity for this request,
// or empty. The header is only read when the deployment is configured to
// trust a fronting proxy; in any other topology the header is
// attacker-controllable and must be ignored.
func (m *AuthMiddleware) AssertedIdentity(c echo.Context) string {
	if !m.proxyEnabled {
		return ""
	}
	return c.Request().Header.Get(m.proxyHeader)
}

// EvictMismatch is the shared eviction path for handlers that run the
// consistency check themselves.
func (m *AuthMiddleware) EvictMismatch(c echo.Context, session *domain.Session) error {
	if err := m.sessions.Destroy(c.Request().Context(), session); err != nil {
		m.logger.Error("Failed to destroy mismatched session",
			"session_id", logger.TruncateToken(session.ID), "error", err)
	}
	m.cookies.ClearCookie(c)
	return c.JSON(http.StatusUnauthorized, map[string]any{
		"error":  "session no longer matches the authenticated identity",
		"reason": "sso_user_mismatch",
	})
}

// UserFromContext returns the user bound by RequireAuth, or nil.
func UserFromContext(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}
