package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidCredentials, "invalid email or password"),
			want: "INVALID_CREDENTIALS: invalid email or password",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeDatabaseError, "query failed", fmt.Errorf("connection reset")),
			want: "DATABASE_ERROR: query failed (caused by: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := Wrap(ErrCodeInternalError, "something broke", cause)

	assert.ErrorIs(t, err, cause)
}

func TestGetHTTPStatusCode(t *testing.T) {
	tests := []struct {
		name string
		code ErrorCode
		want int
	}{
		{"invalid credentials", ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{"sso user mismatch", ErrCodeSSOUserMismatch, http.StatusUnauthorized},
		{"federated disabled", ErrCodeFederatedDisabled, http.StatusBadRequest},
		{"state mismatch", ErrCodeStateMismatch, http.StatusBadRequest},
		{"provider unavailable", ErrCodeProviderUnavailable, http.StatusServiceUnavailable},
		{"missing email claim", ErrCodeMissingEmailClaim, http.StatusInternalServerError},
		{"session persistence", ErrCodeSessionPersistenceFailure, http.StatusInternalServerError},
		{"user exists", ErrCodeUserExists, http.StatusConflict},
		{"rate limited", ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{"unknown code", ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code, "msg").StatusCode)
		})
	}
}

func TestGetHTTPStatusCode_NonAppError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatusCode(errors.New("plain")))
}

func TestAsAppError(t *testing.T) {
	inner := New(ErrCodeStateMismatch, "login state did not match")
	wrapped := fmt.Errorf("callback failed: %w", inner)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeStateMismatch, appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestWithContext(t *testing.T) {
	err := New(ErrCodeSSOUserMismatch, "mismatch").
		WithContext("path", "/v1/current_user").
		WithContext("session_id", "abcd1234")

	assert.Equal(t, "/v1/current_user", err.Context["path"])
	assert.Equal(t, "abcd1234", err.Context["session_id"])
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeProviderUnavailable, GetErrorCode(ErrProviderUnavailable))
	assert.Equal(t, ErrCodeInternalError, GetErrorCode(errors.New("plain")))
}
