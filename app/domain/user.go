package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents an identity record. A user may carry a password hash, a
// federated identity linkage, or both; a linked account supports either
// login path.
type User struct {
	ID               uuid.UUID  `json:"id"`
	PublicID         string     `json:"public_id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	PasswordHash     *string    `json:"-"` // Exclude from JSON
	FederatedSubject *string    `json:"-"`
	FederatedIssuer  *string    `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
}

// Profile is the external-facing representation of a user. Only the public
// identifier leaves the service; the internal row ID never does.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Federated bool   `json:"federated"`
}

// NewLocalUser creates a password-credentialed user with validation
func NewLocalUser(email, name, passwordHash string) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	publicID, err := newPublicID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		ID:           uuid.New(),
		PublicID:     publicID,
		Email:        email,
		Name:         name,
		PasswordHash: &passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NewFederatedUser creates a user from federated identity claims. The row has
// no password hash; local login stays unavailable unless one is set later.
func NewFederatedUser(email, name, subject, issuer string) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if subject == "" || issuer == "" {
		return nil, fmt.Errorf("federated subject and issuer are required")
	}
	if name == "" {
		name = emailLocalPart(email)
	}

	publicID, err := newPublicID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		ID:               uuid.New(),
		PublicID:         publicID,
		Email:            email,
		Name:             name,
		FederatedSubject: &subject,
		FederatedIssuer:  &issuer,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// IsFederated returns true if the user is linked to a federated identity
func (u *User) IsFederated() bool {
	return u.FederatedSubject != nil && u.FederatedIssuer != nil
}

// HasPassword returns true if local password login is available
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// LinkFederated attaches a federated identity to an existing local account.
// A user already linked to a different subject cannot be re-linked.
func (u *User) LinkFederated(subject, issuer string) error {
	if subject == "" || issuer == "" {
		return fmt.Errorf("federated subject and issuer are required")
	}
	if u.IsFederated() {
		if *u.FederatedSubject == subject && *u.FederatedIssuer == issuer {
			return nil
		}
		return ErrConflict
	}
	u.FederatedSubject = &subject
	u.FederatedIssuer = &issuer
	u.UpdatedAt = time.Now()
	return nil
}

// MatchesAssertedIdentity reports whether a proxy-asserted identity string
// denotes this user. The proxy may assert an email or a username depending
// on configuration, so the email, the display name and the email local-part
// are all accepted.
func (u *User) MatchesAssertedIdentity(asserted string) bool {
	if asserted == "" {
		return false
	}
	if asserted == u.Email {
		return true
	}
	if u.Name != "" && asserted == u.Name {
		return true
	}
	return asserted == emailLocalPart(u.Email)
}

// Profile returns the external-facing representation
func (u *User) Profile() *Profile {
	return &Profile{
		ID:        u.PublicID,
		Email:     u.Email,
		Name:      u.Name,
		Federated: u.IsFederated(),
	}
}

// RecordLogin updates the last login timestamp
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	return nil
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

func newPublicID() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate public ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}
