package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"auth-gateway/app/domain"
	"auth-gateway/app/port"
	custommw "auth-gateway/app/rest/middleware"
	"auth-gateway/app/utils/logger"
)

// FederatedHandler drives the browser-facing legs of the federated login
// flow. Callback outcomes are reported by redirecting to the frontend
// with a query parameter, because the callback is a top-level navigation
// from the provider, not an API call the frontend made.
type FederatedHandler struct {
	fedAuth     port.FederatedAuthUsecase
	sessions    port.SessionUsecase
	cookies     *custommw.SessionMiddleware
	frontendURL string
	logger      *slog.Logger
}

func NewFederatedHandler(
	fedAuth port.FederatedAuthUsecase,
	sessions port.SessionUsecase,
	cookies *custommw.SessionMiddleware,
	frontendURL string,
	log *slog.Logger,
) *FederatedHandler {
	return &FederatedHandler{
		fedAuth:     fedAuth,
		sessions:    sessions,
		cookies:     cookies,
		frontendURL: frontendURL,
		logger:      logger.WithComponent(log, "federated_handler"),
	}
}

type SSOConfigResponse struct {
	Enabled bool `json:"enabled"`
}

// Config handles GET /v1/auth/sso/config.
func (h *FederatedHandler) Config(c echo.Context) error {
	return c.JSON(http.StatusOK, SSOConfigResponse{Enabled: h.fedAuth.Enabled()})
}

// Login handles GET /v1/auth/sso/login: issue the state and send the
// browser to the provider.
func (h *FederatedHandler) Login(c echo.Context) error {
	if !h.fedAuth.Enabled() {
		return c.JSON(http.StatusBadRequest, ErrorsResponse{Errors: []string{"federated login is not configured"}})
	}

	session := custommw.SessionFromContext(c)

	authURL, err := h.fedAuth.Begin(c.Request().Context(), session)
	if err != nil {
		h.logger.Error("Failed to begin federated login", "error", err)
		return h.redirectError(c, err)
	}

	return c.Redirect(http.StatusFound, authURL)
}

// Callback handles GET /v1/auth/sso/callback. All outcomes leave by
// redirect; errors carry a machine-readable code for the frontend.
func (h *FederatedHandler) Callback(c echo.Context) error {
	ctx := c.Request().Context()
	session := custommw.SessionFromContext(c)

	// The provider reported failure (user cancelled, consent denied). The
	// state is still consumed so the aborted flow cannot be resumed; if the
	// consumed state cannot be persisted the flow aborts rather than leave
	// a replayable state in the store.
	if providerErr := c.QueryParam("error"); providerErr != "" {
		h.logger.Warn("Provider returned an error on callback", "provider_error", providerErr)
		session.ConsumeCSRFState()
		if err := h.sessions.Save(ctx, session); err != nil {
			h.logger.Error("Failed to persist consumed state", "error", err)
			return h.redirectWithCode(c, "session_persistence_failure")
		}
		return h.redirectWithCode(c, "provider_error")
	}

	user, err := h.fedAuth.Complete(ctx, session, c.QueryParam("state"), c.QueryParam("code"))
	if err != nil {
		h.logger.Warn("Federated callback failed", "error", err,
			"session_id", logger.TruncateToken(session.ID))
		return h.redirectError(c, err)
	}

	fresh, err := h.sessions.Login(ctx, session, user.ID, true)
	if err != nil {
		h.logger.Error("Session rotation failed on federated login", "error", err)
		return h.redirectWithCode(c, "session_persistence_failure")
	}

	h.cookies.WriteCookie(c, fresh)
	return h.redirectWithCode(c, "")
}

// Logout handles GET /v1/auth/sso/logout: destroy the local session and
// hand the browser to the provider's logout endpoint when one is
// configured, so the provider-side SSO session ends too.
func (h *FederatedHandler) Logout(c echo.Context) error {
	if err := h.destroySession(c); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorsResponse{Errors: []string{"internal error"}})
	}

	if logoutURL := h.fedAuth.ProviderLogoutURL(); logoutURL != "" {
		return c.Redirect(http.StatusFound, logoutURL)
	}
	return c.Redirect(http.StatusFound, h.frontendURL)
}

// LogoutLocal handles GET /v1/auth/sso/logout/local: destroy only the
// local session, leaving the provider session alone. The next visit will
// silently re-authenticate through the provider.
func (h *FederatedHandler) LogoutLocal(c echo.Context) error {
	if err := h.destroySession(c); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorsResponse{Errors: []string{"internal error"}})
	}
	return c.Redirect(http.StatusFound, h.frontendURL)
}

func (h *FederatedHandler) destroySession(c echo.Context) error {
	session := custommw.SessionFromContext(c)
	if err := h.sessions.Destroy(c.Request().Context(), session); err != nil {
		h.logger.Error("Failed to destroy session on federated logout", "error", err)
		return err
	}
	h.cookies.ClearCookie(c)
	return nil
}

func (h *FederatedHandler) redirectError(c echo.Context, err error) error {
	return h.redirectWithCode(c, errorCode(err))
}

// redirectWithCode sends the browser back to the frontend, with
// ?login=success on the happy path or ?error=<code> otherwise.
func (h *FederatedHandler) redirectWithCode(c echo.Context, code string) error {
	target, err := url.Parse(h.frontendURL)
	if err != nil {
		target = &url.URL{Path: "/"}
	}

	query := target.Query()
	if code == "" {
		query.Set("login", "success")
	} else {
		query.Set("error", code)
	}
	target.RawQuery = query.Encode()

	return c.Redirect(http.StatusFound, target.String())
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrStateMismatch):
		return "state_mismatch"
	case errors.Is(err, domain.ErrMissingEmailClaim):
		return "missing_email_claim"
	case errors.Is(err, domain.ErrProviderUnavailable):
		return "provider_unavailable"
	case errors.Is(err, domain.ErrFederatedDisabled):
		return "federated_disabled"
	case errors.Is(err, domain.ErrConflict):
		return "account_conflict"
	case errors.Is(err, domain.ErrSessionPersistence):
		return "session_persistence_failure"
	default:
		return "internal_error"
	}
}
