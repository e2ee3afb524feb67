package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		userName string
		hash     string
		wantErr  bool
	}{
		{
			name:     "valid local user",
			email:    "alice@example.org",
			userName: "Alice",
			hash:     "$2a$10$abcdefghijklmnopqrstuv",
			wantErr:  false,
		},
		{
			name:    "empty email",
			email:   "",
			hash:    "$2a$10$abcdefghijklmnopqrstuv",
			wantErr: true,
		},
		{
			name:    "invalid email format",
			email:   "not-an-email",
			hash:    "$2a$10$abcdefghijklmnopqrstuv",
			wantErr: true,
		},
		{
			name:    "missing password hash",
			email:   "alice@example.org",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewLocalUser(tt.email, tt.userName, tt.hash)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, user.Email)
			assert.True(t, user.HasPassword())
			assert.False(t, user.IsFederated())
			assert.NotEmpty(t, user.PublicID)
			assert.NotEqual(t, user.ID.String(), user.PublicID)
		})
	}
}

func TestNewFederatedUser(t *testing.T) {
	user, err := NewFederatedUser("bob@example.org", "", "sub-456", "https://idp.example.org")
	require.NoError(t, err)

	assert.True(t, user.IsFederated())
	assert.False(t, user.HasPassword())
	// Display name falls back to the email local-part
	assert.Equal(t, "bob", user.Name)

	_, err = NewFederatedUser("bob@example.org", "Bob", "", "https://idp.example.org")
	assert.Error(t, err)
}

func TestUser_LinkFederated(t *testing.T) {
	tests := []struct {
		name    string
		user    func() *User
		subject string
		issuer  string
		wantErr error
	}{
		{
			name: "link local account",
			user: func() *User {
				u, _ := NewLocalUser("alice@example.org", "Alice", "hash")
				return u
			},
			subject: "sub-123",
			issuer:  "https://idp.example.org",
		},
		{
			name: "re-link same identity is idempotent",
			user: func() *User {
				u, _ := NewFederatedUser("alice@example.org", "Alice", "sub-123", "https://idp.example.org")
				return u
			},
			subject: "sub-123",
			issuer:  "https://idp.example.org",
		},
		{
			name: "conflicting identity rejected",
			user: func() *User {
				u, _ := NewFederatedUser("alice@example.org", "Alice", "sub-123", "https://idp.example.org")
				return u
			},
			subject: "sub-999",
			issuer:  "https://idp.example.org",
			wantErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.user()
			err := u.LinkFederated(tt.subject, tt.issuer)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, u.IsFederated())
			assert.Equal(t, tt.subject, *u.FederatedSubject)
		})
	}
}

func TestUser_MatchesAssertedIdentity(t *testing.T) {
	user, err := NewFederatedUser("alice@example.org", "Alice Liddell", "sub-123", "https://idp.example.org")
	require.NoError(t, err)

	tests := []struct {
		name     string
		asserted string
		want     bool
	}{
		{"matches email", "alice@example.org", true},
		{"matches display name", "Alice Liddell", true},
		{"matches email local-part", "alice", true},
		{"different user rejected", "bob", false},
		{"different email rejected", "bob@example.org", false},
		{"empty assertion rejected", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, user.MatchesAssertedIdentity(tt.asserted))
		})
	}
}

func TestUser_Profile(t *testing.T) {
	user, err := NewFederatedUser("alice@example.org", "Alice", "sub-123", "https://idp.example.org")
	require.NoError(t, err)

	profile := user.Profile()
	assert.Equal(t, user.PublicID, profile.ID)
	assert.Equal(t, "alice@example.org", profile.Email)
	assert.True(t, profile.Federated)
}
