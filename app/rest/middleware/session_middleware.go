package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"auth-gateway/app/domain"
	"auth-gateway/app/port"
	"auth-gateway/app/utils/logger"
	"auth-gateway/app/utils/security"
)

const sessionContextKey = "session"

// SessionMiddleware binds every request to a server-side session. The
// cookie carries the session identifier signed with the session secret;
// a request with no cookie, a bad signature or a dead session gets a
// fresh anonymous session transparently.
type SessionMiddleware struct {
	sessions   port.SessionUsecase
	cookieName string
	secret     string
	logger     *slog.Logger
}

func NewSessionMiddleware(sessions port.SessionUsecase, cookieName, secret string, log *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
		secret:     secret,
		logger:     logger.WithComponent(log, "session_middleware"),
	}
}

// Load resolves or creates the request session and stores it in the echo
// context under "session".
func (m *SessionMiddleware) Load() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			if session := m.fromCookie(c); session != nil {
				c.Set(sessionContextKey, session)
				return next(c)
			}

			session, err := m.sessions.Start(ctx)
			if err != nil {
				m.logger.Error("Failed to start session", "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
			}

			m.WriteCookie(c, session)
			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

func (m *SessionMiddleware) fromCookie(c echo.Context) *domain.Session {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	sessionID, ok := security.VerifySignedToken(cookie.Value, m.secret)
	if !ok {
		m.logger.Warn("Session cookie failed signature check")
		return nil
	}

	session, err := m.sessions.Get(c.Request().Context(), sessionID)
	if err != nil {
		m.logger.Debug("Session lookup failed",
			"session_id", logger.TruncateToken(sessionID), "error", err)
		return nil
	}
	return session
}

// WriteCookie sets the signed session cookie. SameSite is Lax because the
// federated callback arrives as a cross-site top-level navigation; the
// Secure flag follows the effective scheme, which echo derives from
// X-Forwarded-Proto when the proxy sets it.
func (m *SessionMiddleware) WriteCookie(c echo.Context, session *domain.Session) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    security.SignToken(session.ID, m.secret),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})
}

// ClearCookie instructs the client to drop the session cookie. Required on
// logout and eviction: some clients keep cookies for their configured
// lifetime regardless of server-side state.
func (m *SessionMiddleware) ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// SessionFromContext returns the session bound by Load, or nil.
func SessionFromContext(c echo.Context) *domain.Session {
	session, _ := c.Get(sessionContextKey).(*domain.Session)
	return session
}
