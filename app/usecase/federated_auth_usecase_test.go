package usecase

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"auth-gateway/app/domain"
	mock_port "auth-gateway/app/mocks"
	"auth-gateway/app/utils/logger"
)

type federatedMocks struct {
	provider *mock_port.MockProviderGateway
	sessions *mock_port.MockSessionRepository
	users    *mock_port.MockUserRepository
}

func newFederatedAuthUseCase(t *testing.T, ctrl *gomock.Controller) (*FederatedAuthUseCase, *federatedMocks) {
	t.Helper()

	log, err := logger.NewWithWriter("error", io.Discard)
	require.NoError(t, err)

	m := &federatedMocks{
		provider: mock_port.NewMockProviderGateway(ctrl),
		sessions: mock_port.NewMockSessionRepository(ctrl),
		users:    mock_port.NewMockUserRepository(ctrl),
	}
	linker := NewAccountLinker(m.users, true, log)
	return NewFederatedAuthUseCase(m.provider, m.sessions, m.users, linker, log), m
}

func TestFederatedAuthUseCase_Begin(t *testing.T) {
	t.Run("persists the state before returning the URL", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newFederatedAuthUseCase(t, ctrl)
		session, err := domain.NewSession(time.Hour)
		require.NoError(t, err)

		m.provider.EXPECT().Enabled().Return(true).AnyTimes()
		m.sessions.EXPECT().
			Update(gomock.Any(), session).
			DoAndReturn(func(_ context.Context, s *domain.Session) error {
				require.NotNil(t, s.CSRFState)
				assert.Len(t, *s.CSRFState, 64)
				return nil
			})
		m.provider.EXPECT().
			AuthCodeURL(gomock.Any()).
			DoAndReturn(func(state string) string {
				return "https://idp.example.com/authorize?state=" + state
			})

		url, err := uc.Begin(context.Background(), session)
		require.NoError(t, err)
		require.NotNil(t, session.CSRFState)
		assert.True(t, strings.HasSuffix(url, *session.CSRFState))
	})

	t.Run("state persistence failure aborts the flow", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newFederatedAuthUseCase(t, ctrl)
		session, err := domain.NewSession(time.Hour)
		require.NoError(t, err)

		m.provider.EXPECT().Enabled().Return(true).AnyTimes()
		m.sessions.EXPECT().
			Update(gomock.Any(), session).
			Return(assert.AnError)

		_, err = uc.Begin(context.Background(), session)
		assert.ErrorIs(t, err, domain.ErrSessionPersistence)
	})

	t.Run("disabled federated login", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newFederatedAuthUseCase(t, ctrl)
		m.provider.EXPECT().Enabled().Return(false)

		session, err := domain.NewSession(time.Hour)
		require.NoError(t, err)

		_, err = uc.Begin(context.Background(), session)
		assert.ErrorIs(t, err, domain.ErrFederatedDisabled)
	})
}

func TestFederatedAuthUseCase_Complete(t *testing.T) {
	identity := &domain.FederatedIdentity{
		Subject: "sub-1",
		Issuer:  "https://idp.example.com",
		Email:   "alice@example.com",
		Name:    "Alice Example",
	}

	newSessionWithState := func(t *testing.T, state string) *domain.Session {
		t.Helper()
		session, err := domain.NewSession(time.Hour)
		require.NoError(t, err)
		session.SetCSRFState(state)
		return session
	}

	t.Run("successful callback", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newFederatedAuthUseCase(t, ctrl)
		session := newSessionWithState(t, "state-abc")

		existing, err := domain.NewFederatedUser(identity.Email, identity.Name, identity.Subject, identity.Issuer)
		require.NoError(t, err)

		m.provider.EXPECT().Enabled().Return(true).AnyTimes()
		m.sessions.EXPECT().
			Update(gomock.Any(), session).
			DoAndReturn(func(_ context.Context, s *domain.Session) error {
				// The state is cleared before the outcome is known.
				assert.Nil(t, s.CSRFState)
				return nil
			})
		m.provider.EXPECT().
			Authenticate(gomock.Any(), "code-1").
			Return(identity, nil)
		m.users.EXPECT().
			FindByFederated(gomock.Any(), "sub-1", "https://idp.example.com").
			Return(existing, nil)
		m.users.EXPECT().
			RecordLogin(gomock.Any(), existing.ID).
			Return(nil)

		user, err := uc.Complete(context.Background(), session, "state-abc", "code-1")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, user.ID)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("state mismatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newFederatedAuthUseCase(t, ctrl)
		session := newSessionWithState(t, "state-abc")

		m.provider.EXPECT().Enabled().Return(true).AnyTimes()
		m.sessions.EXPECT().
			Update(gomock.Any(), session).
			Return(nil)

		_, err := uc.Complete(context.Background(), session, "state-tampered", "code-1")
		assert.ErrorIs(t, err, domain.ErrStateMismatch)
	})

	t.Run("missing stored state rejects a replayed callback", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newFederatedAuthUseCase(t, ctrl)
		session, err := domain.NewSession(time.Hour)
		require.NoError(t, err)

		m.provider.EXPECT().Enabled().Return(true).AnyTimes()
		m.sessions.EXPECT().
			Update(gomock.Any(), session).
			Return(nil)

		_, err = uc.Complete(context.Background(), session, "state-abc", "code-1")
		assert.ErrorIs(t, err, domain.ErrStateMismatch)
	})

	t.Run("state is consumed even when the exchange fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newFederatedAuthUseCase(t, ctrl)
		session := newSessionWithState(t, "state-abc")

		m.provider.EXPECT().Enabled().Return(true).AnyTimes()
		m.sessions.EXPECT().
			Update(gomock.Any(), session).
			Return(nil)
		m.provider.EXPECT().
			Authenticate(gomock.Any(), "code-1").
			Return(nil, domain.ErrProviderUnavailable)

		_, err := uc.Complete(context.Background(), session, "state-abc", "code-1")
		assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
		assert.Nil(t, session.CSRFState)
	})

	t.Run("failure to persist the consumed state aborts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newFederatedAuthUseCase(t, ctrl)
		session := newSessionWithState(t, "state-abc")

		m.provider.EXPECT().Enabled().Return(true).AnyTimes()
		m.sessions.EXPECT().
			Update(gomock.Any(), session).
			Return(assert.AnError)

		_, err := uc.Complete(context.Background(), session, "state-abc", "code-1")
		assert.ErrorIs(t, err, domain.ErrSessionPersistence)
	})

	t.Run("missing email claim surfaces unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uc, m := newFederatedAuthUseCase(t, ctrl)
		session := newSessionWithState(t, "state-abc")

		m.provider.EXPECT().Enabled().Return(true).AnyTimes()
		m.sessions.EXPECT().
			Update(gomock.Any(), session).
			Return(nil)
		m.provider.EXPECT().
			Authenticate(gomock.Any(), "code-1").
			Return(nil, domain.ErrMissingEmailClaim)

		_, err := uc.Complete(context.Background(), session, "state-abc", "code-1")
		assert.ErrorIs(t, err, domain.ErrMissingEmailClaim)
	})
}

func TestFederatedAuthUseCase_ProviderLogoutURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newFederatedAuthUseCase(t, ctrl)
	m.provider.EXPECT().Enabled().Return(true).AnyTimes()
	m.provider.EXPECT().LogoutURL().Return("https://idp.example.com/logout")

	assert.Equal(t, "https://idp.example.com/logout", uc.ProviderLogoutURL())
}
