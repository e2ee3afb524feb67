package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"auth-gateway/app/domain"
	mock_port "auth-gateway/app/mocks"
)

const assertedHeader = "X-Forwarded-User"

func newAuthMiddleware(t *testing.T, proxyEnabled bool) (*AuthMiddleware, *mock_port.MockSessionUsecase) {
	t.Helper()
	ctrl := gomock.NewController(t)
	sessions := mock_port.NewMockSessionUsecase(ctrl)
	log := discardLogger()
	cookies := NewSessionMiddleware(sessions, testCookieName, testSecret, log)
	return NewAuthMiddleware(sessions, cookies, proxyEnabled, assertedHeader, log), sessions
}

func runRequireAuth(m *AuthMiddleware, req *http.Request, session *domain.Session) (*httptest.ResponseRecorder, *domain.User, error) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if session != nil {
		c.Set("session", session)
	}

	var bound *domain.User
	err := m.RequireAuth()(func(c echo.Context) error {
		bound = UserFromContext(c)
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, bound, err
}

func mustFederatedUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewFederatedUser("alice@example.com", "Alice Example", "sub-1", "https://idp.example.com")
	require.NoError(t, err)
	return user
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	t.Run("unauthenticated session is rejected", func(t *testing.T) {
		m, sessions := newAuthMiddleware(t, false)
		session := mustNewSession(t)

		sessions.EXPECT().CurrentUser(gomock.Any(), session).Return(nil, domain.ErrUnauthorized)

		_, _, err := runRequireAuth(m, httptest.NewRequest(http.MethodGet, "/", nil), session)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("authenticated session binds the user", func(t *testing.T) {
		m, sessions := newAuthMiddleware(t, false)
		session := mustNewSession(t)
		user := mustFederatedUser(t)
		session.Attach(user.ID, true)

		sessions.EXPECT().CurrentUser(gomock.Any(), session).Return(user, nil)
		sessions.EXPECT().ValidateConsistency(gomock.Any(), user, "").Return(nil)

		rec, bound, err := runRequireAuth(m, httptest.NewRequest(http.MethodGet, "/", nil), session)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Same(t, user, bound)
	})

	t.Run("identity mismatch destroys the session and clears the cookie", func(t *testing.T) {
		m, sessions := newAuthMiddleware(t, true)
		session := mustNewSession(t)
		user := mustFederatedUser(t)
		session.Attach(user.ID, true)

		sessions.EXPECT().CurrentUser(gomock.Any(), session).Return(user, nil)
		sessions.EXPECT().
			ValidateConsistency(gomock.Any(), user, "someone-else").
			Return(domain.ErrSSOUserMismatch)
		sessions.EXPECT().Destroy(gomock.Any(), session).Return(nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(assertedHeader, "someone-else")

		rec, bound, err := runRequireAuth(m, req, session)

		require.NoError(t, err)
		assert.Nil(t, bound, "the request must not reach the handler")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "sso_user_mismatch", resp["reason"])

		cookie := responseCookie(rec, testCookieName)
		require.NotNil(t, cookie, "eviction must expire the cookie")
		assert.Empty(t, cookie.Value)
	})

	t.Run("mismatch response carries no handler output", func(t *testing.T) {
		m, sessions := newAuthMiddleware(t, true)
		session := mustNewSession(t)
		user := mustFederatedUser(t)
		session.Attach(user.ID, true)

		sessions.EXPECT().CurrentUser(gomock.Any(), session).Return(user, nil)
		sessions.EXPECT().
			ValidateConsistency(gomock.Any(), user, "someone-else").
			Return(domain.ErrSSOUserMismatch)
		sessions.EXPECT().Destroy(gomock.Any(), session).Return(nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(assertedHeader, "someone-else")
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.Set("session", session)

		handlerRan := false
		err := m.RequireAuth()(func(c echo.Context) error {
			handlerRan = true
			return c.String(http.StatusOK, "previous user's account data")
		})(c)

		require.NoError(t, err)
		assert.False(t, handlerRan, "the protected handler must not execute")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.NotContains(t, rec.Body.String(), "account data")

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "sso_user_mismatch", resp["reason"])
	})

	t.Run("matching asserted identity passes through", func(t *testing.T) {
		m, sessions := newAuthMiddleware(t, true)
		session := mustNewSession(t)
		user := mustFederatedUser(t)
		session.Attach(user.ID, true)

		sessions.EXPECT().CurrentUser(gomock.Any(), session).Return(user, nil)
		sessions.EXPECT().
			ValidateConsistency(gomock.Any(), user, "alice@example.com").
			Return(nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(assertedHeader, "alice@example.com")

		rec, _, err := runRequireAuth(m, req, session)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuthMiddleware_AssertedIdentity(t *testing.T) {
	t.Run("header is ignored when proxy trust is disabled", func(t *testing.T) {
		m, _ := newAuthMiddleware(t, false)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(assertedHeader, "spoofed@example.com")
		c := echo.New().NewContext(req, httptest.NewRecorder())

		assert.Empty(t, m.AssertedIdentity(c))
	})

	t.Run("header is read when proxy trust is enabled", func(t *testing.T) {
		m, _ := newAuthMiddleware(t, true)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(assertedHeader, "alice@example.com")
		c := echo.New().NewContext(req, httptest.NewRecorder())

		assert.Equal(t, "alice@example.com", m.AssertedIdentity(c))
	})
}
