package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"auth-gateway/app/domain"
	"auth-gateway/app/port"
	custommw "auth-gateway/app/rest/middleware"
	"auth-gateway/app/utils/logger"
	"auth-gateway/app/utils/validator"
)

// AuthHandler handles local authentication and the identity query.
type AuthHandler struct {
	localAuth port.LocalAuthUsecase
	sessions  port.SessionUsecase
	cookies   *custommw.SessionMiddleware
	authMW    *custommw.AuthMiddleware
	validator *validator.Validator
	logger    *slog.Logger
}

func NewAuthHandler(
	localAuth port.LocalAuthUsecase,
	sessions port.SessionUsecase,
	cookies *custommw.SessionMiddleware,
	authMW *custommw.AuthMiddleware,
	log *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		localAuth: localAuth,
		sessions:  sessions,
		cookies:   cookies,
		authMW:    authMW,
		validator: validator.New(),
		logger:    logger.WithComponent(log, "auth_handler"),
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Name     string `json:"name" validate:"required,max=255"`
}

type UserResponse struct {
	User *domain.Profile `json:"user"`
}

type ErrorsResponse struct {
	Errors []string `json:"errors"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Login handles POST /v1/auth/login. Wrong password and unknown email
// produce the identical response so the endpoint cannot be used to probe
// for registered addresses.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorsResponse{Errors: []string{"malformed request body"}})
	}
	if err := h.validator.Validate(&req); err != nil {
		return h.validationFailure(c, err)
	}

	ctx := c.Request().Context()

	user, err := h.localAuth.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, ErrorsResponse{Errors: []string{"invalid email or password"}})
		}
		h.logger.Error("Local login failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorsResponse{Errors: []string{"internal error"}})
	}

	session, err := h.sessions.Login(ctx, custommw.SessionFromContext(c), user.ID, false)
	if err != nil {
		h.logger.Error("Session rotation failed on login", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorsResponse{Errors: []string{"internal error"}})
	}

	h.cookies.WriteCookie(c, session)
	return c.JSON(http.StatusOK, UserResponse{User: user.Profile()})
}

// Register handles POST /v1/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorsResponse{Errors: []string{"malformed request body"}})
	}
	if err := h.validator.Validate(&req); err != nil {
		return h.validationFailure(c, err)
	}

	ctx := c.Request().Context()

	user, err := h.localAuth.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return c.JSON(http.StatusConflict, ErrorsResponse{Errors: []string{"an account with this email already exists"}})
		}
		h.logger.Error("Registration failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorsResponse{Errors: []string{"internal error"}})
	}

	session, err := h.sessions.Login(ctx, custommw.SessionFromContext(c), user.ID, false)
	if err != nil {
		h.logger.Error("Session rotation failed on registration", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorsResponse{Errors: []string{"internal error"}})
	}

	h.cookies.WriteCookie(c, session)
	return c.JSON(http.StatusCreated, UserResponse{User: user.Profile()})
}

// Logout handles GET /v1/auth/logout: the server-side record is deleted
// and the cookie explicitly expired.
func (h *AuthHandler) Logout(c echo.Context) error {
	session := custommw.SessionFromContext(c)
	if err := h.sessions.Destroy(c.Request().Context(), session); err != nil {
		h.logger.Error("Failed to destroy session on logout", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorsResponse{Errors: []string{"internal error"}})
	}

	h.cookies.ClearCookie(c)
	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}

// CurrentUser handles GET /v1/current_user. An unauthenticated session is
// not an error here; the response is {"user": null}. The consistency check
// runs on this endpoint too, because the frontend polls it and a stale
// session must be evicted before any domain data is served.
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	ctx := c.Request().Context()
	session := custommw.SessionFromContext(c)

	user, err := h.sessions.CurrentUser(ctx, session)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusOK, UserResponse{User: nil})
		}
		h.logger.Error("Failed to resolve current user", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorsResponse{Errors: []string{"internal error"}})
	}

	if err := h.sessions.ValidateConsistency(ctx, user, h.authMW.AssertedIdentity(c)); err != nil {
		if errors.Is(err, domain.ErrSSOUserMismatch) {
			return h.authMW.EvictMismatch(c, session)
		}
		h.logger.Error("Consistency validation failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorsResponse{Errors: []string{"internal error"}})
	}

	return c.JSON(http.StatusOK, UserResponse{User: user.Profile()})
}

func (h *AuthHandler) validationFailure(c echo.Context, err error) error {
	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		return c.JSON(http.StatusBadRequest, ErrorsResponse{Errors: vErr.Messages()})
	}
	return c.JSON(http.StatusBadRequest, ErrorsResponse{Errors: []string{"invalid request"}})
}
