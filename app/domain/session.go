package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session identifier length in random bytes (64 hex characters on the wire)
const sessionIDBytes = 32

// Session is a server-side session record addressed by an opaque identifier
// stored in a cookie. The identifier is rotated on every authentication
// transition; the CSRF state is single-use and present only while a federated
// login is in flight.
type Session struct {
	ID             string     `json:"id"`
	UserID         *uuid.UUID `json:"user_id,omitempty"`
	CSRFState      *string    `json:"-"`
	FederatedLogin bool       `json:"federated_login"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ExpiresAt      time.Time  `json:"expires_at"`
}

// NewSession creates an empty (anonymous) session with a fresh identifier
func NewSession(duration time.Duration) (*Session, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("session duration must be positive")
	}

	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(duration),
	}, nil
}

// IsExpired returns true if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsAuthenticated returns true if the session denotes an authenticated principal
func (s *Session) IsAuthenticated() bool {
	return s.UserID != nil && !s.IsExpired()
}

// Attach binds an authenticated user to the session. Callers must only invoke
// this on a freshly created session; reusing a pre-auth identifier would
// defeat the fixation defense.
func (s *Session) Attach(userID uuid.UUID, federated bool) {
	s.UserID = &userID
	s.FederatedLogin = federated
	s.UpdatedAt = time.Now()
}

// SetCSRFState stores the state token for an in-flight federated login
func (s *Session) SetCSRFState(state string) {
	s.CSRFState = &state
	s.UpdatedAt = time.Now()
}

// ConsumeCSRFState clears the stored state and returns its previous value.
// The state is single-use: it is consumed whether or not the callback that
// presents it succeeds.
func (s *Session) ConsumeCSRFState() (string, bool) {
	if s.CSRFState == nil {
		return "", false
	}
	state := *s.CSRFState
	s.CSRFState = nil
	s.UpdatedAt = time.Now()
	return state, true
}

func newSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}
