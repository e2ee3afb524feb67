package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"auth-gateway/app/domain"
	mock_port "auth-gateway/app/mocks"
	custommw "auth-gateway/app/rest/middleware"
)

const testFrontendURL = "https://app.example.com"

type federatedHandlerFixture struct {
	fedAuth  *mock_port.MockFederatedAuthUsecase
	sessions *mock_port.MockSessionUsecase
	handler  *FederatedHandler
}

func newFederatedHandlerFixture(t *testing.T) *federatedHandlerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	fedAuth := mock_port.NewMockFederatedAuthUsecase(ctrl)
	sessions := mock_port.NewMockSessionUsecase(ctrl)
	log := discardLogger()

	cookies := custommw.NewSessionMiddleware(sessions, testCookieName, "test-session-secret", log)

	return &federatedHandlerFixture{
		fedAuth:  fedAuth,
		sessions: sessions,
		handler:  NewFederatedHandler(fedAuth, sessions, cookies, testFrontendURL, log),
	}
}

func redirectQuery(t *testing.T, rec *httptest.ResponseRecorder) url.Values {
	t.Helper()
	location := rec.Header().Get(echoHeaderLocation)
	require.NotEmpty(t, location, "expected a redirect")
	target, err := url.Parse(location)
	require.NoError(t, err)
	return target.Query()
}

const echoHeaderLocation = "Location"

func TestFederatedHandler_Config(t *testing.T) {
	f := newFederatedHandlerFixture(t)
	f.fedAuth.EXPECT().Enabled().Return(true)

	c, rec := echoContext(httptest.NewRequest(http.MethodGet, "/v1/auth/sso/config", nil), nil)

	require.NoError(t, f.handler.Config(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"enabled":true}`, rec.Body.String())
}

func TestFederatedHandler_Login(t *testing.T) {
	t.Run("redirects to the provider authorization URL", func(t *testing.T) {
		f := newFederatedHandlerFixture(t)
		session := newTestSession(t)

		f.fedAuth.EXPECT().Enabled().Return(true)
		f.fedAuth.EXPECT().
			Begin(gomock.Any(), session).
			Return("https://idp.example.com/authorize?state=abc", nil)

		c, rec := echoContext(httptest.NewRequest(http.MethodGet, "/v1/auth/sso/login", nil), session)

		require.NoError(t, f.handler.Login(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://idp.example.com/authorize?state=abc", rec.Header().Get(echoHeaderLocation))
	})

	t.Run("rejects when federated login is not configured", func(t *testing.T) {
		f := newFederatedHandlerFixture(t)
		f.fedAuth.EXPECT().Enabled().Return(false)

		c, rec := echoContext(httptest.NewRequest(http.MethodGet, "/v1/auth/sso/login", nil), newTestSession(t))

		require.NoError(t, f.handler.Login(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Errors)
	})

	t.Run("state persistence failure redirects with an error code", func(t *testing.T) {
		f := newFederatedHandlerFixture(t)
		session := newTestSession(t)

		f.fedAuth.EXPECT().Enabled().Return(true)
		f.fedAuth.EXPECT().
			Begin(gomock.Any(), session).
			Return("", domain.ErrSessionPersistence)

		c, rec := echoContext(httptest.NewRequest(http.MethodGet, "/v1/auth/sso/login", nil), session)

		require.NoError(t, f.handler.Login(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "session_persistence_failure", redirectQuery(t, rec).Get("error"))
	})
}

func TestFederatedHandler_Callback(t *testing.T) {
	t.Run("successful completion rotates the session and redirects", func(t *testing.T) {
		f := newFederatedHandlerFixture(t)
		session := newTestSession(t)
		user, err := domain.NewFederatedUser("alice@example.com", "Alice Example", "sub-1", "https://idp.example.com")
		require.NoError(t, err)
		fresh := newTestSession(t)
		fresh.Attach(user.ID, true)

		f.fedAuth.EXPECT().
			Complete(gomock.Any(), session, "state-1", "code-1").
			Return(user, nil)
		f.sessions.EXPECT().
			Login(gomock.Any(), session, user.ID, true).
			Return(fresh, nil)

		c, rec := echoContext(httptest.NewRequest(http.MethodGet,
			"/v1/auth/sso/callback?state=state-1&code=code-1", nil), session)

		require.NoError(t, f.handler.Callback(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "success", redirectQuery(t, rec).Get("login"))

		cookie := findCookie(t, rec, testCookieName)
		require.NotNil(t, cookie, "callback must set the rotated session cookie")
	})

	t.Run("provider error consumes the pending state", func(t *testing.T) {
		f := newFederatedHandlerFixture(t)
		session := newTestSession(t)
		session.SetCSRFState("pending-state")

		f.sessions.EXPECT().
			Save(gomock.Any(), session).
			DoAndReturn(func(_ any, s *domain.Session) error {
				assert.Nil(t, s.CSRFState, "aborted flow must not leave a replayable state")
				return nil
			})

		c, rec := echoContext(httptest.NewRequest(http.MethodGet,
			"/v1/auth/sso/callback?error=access_denied", nil), session)

		require.NoError(t, f.handler.Callback(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "provider_error", redirectQuery(t, rec).Get("error"))
	})

	t.Run("provider error with an unpersistable state aborts", func(t *testing.T) {
		f := newFederatedHandlerFixture(t)
		session := newTestSession(t)
		session.SetCSRFState("pending-state")

		f.sessions.EXPECT().
			Save(gomock.Any(), session).
			Return(domain.ErrSessionPersistence)

		c, rec := echoContext(httptest.NewRequest(http.MethodGet,
			"/v1/auth/sso/callback?error=access_denied", nil), session)

		require.NoError(t, f.handler.Callback(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "session_persistence_failure", redirectQuery(t, rec).Get("error"))
	})

	t.Run("each failure maps to its redirect code", func(t *testing.T) {
		cases := []struct {
			name string
			err  error
			code string
		}{
			{"state mismatch", domain.ErrStateMismatch, "state_mismatch"},
			{"missing email claim", domain.ErrMissingEmailClaim, "missing_email_claim"},
			{"provider unavailable", domain.ErrProviderUnavailable, "provider_unavailable"},
			{"federated disabled", domain.ErrFederatedDisabled, "federated_disabled"},
			{"account conflict", domain.ErrConflict, "account_conflict"},
			{"persistence failure", domain.ErrSessionPersistence, "session_persistence_failure"},
			{"anything else", assert.AnError, "internal_error"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				f := newFederatedHandlerFixture(t)
				session := newTestSession(t)

				f.fedAuth.EXPECT().
					Complete(gomock.Any(), session, "state-1", "code-1").
					Return(nil, tc.err)

				c, rec := echoContext(httptest.NewRequest(http.MethodGet,
					"/v1/auth/sso/callback?state=state-1&code=code-1", nil), session)

				require.NoError(t, f.handler.Callback(c))
				assert.Equal(t, http.StatusFound, rec.Code)
				assert.Equal(t, tc.code, redirectQuery(t, rec).Get("error"))
			})
		}
	})

	t.Run("rotation failure after completion redirects with persistence code", func(t *testing.T) {
		f := newFederatedHandlerFixture(t)
		session := newTestSession(t)
		user, err := domain.NewFederatedUser("alice@example.com", "Alice Example", "sub-1", "https://idp.example.com")
		require.NoError(t, err)

		f.fedAuth.EXPECT().
			Complete(gomock.Any(), session, "state-1", "code-1").
			Return(user, nil)
		f.sessions.EXPECT().
			Login(gomock.Any(), session, user.ID, true).
			Return(nil, domain.ErrSessionPersistence)

		c, rec := echoContext(httptest.NewRequest(http.MethodGet,
			"/v1/auth/sso/callback?state=state-1&code=code-1", nil), session)

		require.NoError(t, f.handler.Callback(c))
		assert.Equal(t, "session_persistence_failure", redirectQuery(t, rec).Get("error"))
	})
}

func TestFederatedHandler_Logout(t *testing.T) {
	t.Run("redirects to the provider logout endpoint when configured", func(t *testing.T) {
		f := newFederatedHandlerFixture(t)
		session := newTestSession(t)

		f.sessions.EXPECT().Destroy(gomock.Any(), session).Return(nil)
		f.fedAuth.EXPECT().ProviderLogoutURL().Return("https://idp.example.com/logout")

		c, rec := echoContext(httptest.NewRequest(http.MethodGet, "/v1/auth/sso/logout", nil), session)

		require.NoError(t, f.handler.Logout(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://idp.example.com/logout", rec.Header().Get(echoHeaderLocation))
		require.NotNil(t, findCookie(t, rec, testCookieName))
	})

	t.Run("falls back to the frontend without a provider logout URL", func(t *testing.T) {
		f := newFederatedHandlerFixture(t)
		session := newTestSession(t)

		f.sessions.EXPECT().Destroy(gomock.Any(), session).Return(nil)
		f.fedAuth.EXPECT().ProviderLogoutURL().Return("")

		c, rec := echoContext(httptest.NewRequest(http.MethodGet, "/v1/auth/sso/logout", nil), session)

		require.NoError(t, f.handler.Logout(c))
		assert.Equal(t, testFrontendURL, rec.Header().Get(echoHeaderLocation))
	})

	t.Run("local logout leaves the provider session alone", func(t *testing.T) {
		f := newFederatedHandlerFixture(t)
		session := newTestSession(t)

		f.sessions.EXPECT().Destroy(gomock.Any(), session).Return(nil)

		c, rec := echoContext(httptest.NewRequest(http.MethodGet, "/v1/auth/sso/logout/local", nil), session)

		require.NoError(t, f.handler.LogoutLocal(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, testFrontendURL, rec.Header().Get(echoHeaderLocation))
	})
}
