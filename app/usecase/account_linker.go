package usecase

import (
	"context"
	"errors"
	"log/slog"

	"auth-gateway/app/domain"
	"auth-gateway/app/port"
	"auth-gateway/app/utils/logger"
)

// AccountLinker resolves a federated identity to a local account,
// creating or linking one on first login. Concurrent first logins for the
// same identity are arbitrated by the store's unique constraints: a loser
// sees domain.ErrUserAlreadyExists and re-reads the winner's row instead
// of failing the login.
type AccountLinker struct {
	users           port.UserRepository
	autoLinkByEmail bool
	logger          *slog.Logger
}

func NewAccountLinker(users port.UserRepository, autoLinkByEmail bool, log *slog.Logger) *AccountLinker {
	return &AccountLinker{
		users:           users,
		autoLinkByEmail: autoLinkByEmail,
		logger:          logger.WithComponent(log, "account_linker"),
	}
}

// Resolve returns the local account for the identity, in order of
// preference: an account already bound to the (subject, issuer) pair, an
// existing account with the same email that gets the pair linked onto it,
// or a brand-new federated account.
func (l *AccountLinker) Resolve(ctx context.Context, identity *domain.FederatedIdentity) (*domain.User, error) {
	user, err := l.users.FindByFederated(ctx, identity.Subject, identity.Issuer)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if l.autoLinkByEmail {
		user, err := l.linkByEmail(ctx, identity)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	return l.createFederated(ctx, identity)
}

func (l *AccountLinker) linkByEmail(ctx context.Context, identity *domain.FederatedIdentity) (*domain.User, error) {
	user, err := l.users.FindByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}

	if user.IsFederated() {
		// Same email, different provider identity. Refuse to rebind.
		if *user.FederatedSubject == identity.Subject && *user.FederatedIssuer == identity.Issuer {
			return user, nil
		}
		l.logger.Warn("Account with matching email is bound to another identity",
			"user_id", user.PublicID)
		return nil, domain.ErrConflict
	}

	err = l.users.LinkFederated(ctx, user.ID, identity.Subject, identity.Issuer)
	switch {
	case err == nil:
		if linkErr := user.LinkFederated(identity.Subject, identity.Issuer); linkErr != nil {
			return nil, linkErr
		}
		l.logger.Info("Linked federated identity to existing account",
			"user_id", user.PublicID, "issuer", identity.Issuer)
		return user, nil

	case errors.Is(err, domain.ErrUserAlreadyExists), errors.Is(err, domain.ErrConflict):
		// Lost a race: either the pair got bound elsewhere or this row got
		// linked concurrently. Re-read and accept whatever won.
		return l.reRead(ctx, identity)

	default:
		return nil, err
	}
}

func (l *AccountLinker) createFederated(ctx context.Context, identity *domain.FederatedIdentity) (*domain.User, error) {
	user, err := domain.NewFederatedUser(identity.Email, identity.Name, identity.Subject, identity.Issuer)
	if err != nil {
		return nil, err
	}

	err = l.users.Create(ctx, user)
	switch {
	case err == nil:
		l.logger.Info("Created federated account",
			"user_id", user.PublicID, "issuer", identity.Issuer)
		return user, nil

	case errors.Is(err, domain.ErrUserAlreadyExists):
		return l.reRead(ctx, identity)

	default:
		return nil, err
	}
}

// reRead fetches the account that won a concurrent create or link.
func (l *AccountLinker) reRead(ctx context.Context, identity *domain.FederatedIdentity) (*domain.User, error) {
	user, err := l.users.FindByFederated(ctx, identity.Subject, identity.Issuer)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	// The duplicate was on email rather than the federated pair.
	user, err = l.users.FindByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}

	if user.IsFederated() {
		if *user.FederatedSubject == identity.Subject && *user.FederatedIssuer == identity.Issuer {
			return user, nil
		}
		return nil, domain.ErrConflict
	}

	if !l.autoLinkByEmail {
		return nil, domain.ErrConflict
	}

	if err := l.users.LinkFederated(ctx, user.ID, identity.Subject, identity.Issuer); err != nil {
		return nil, err
	}
	if err := user.LinkFederated(identity.Subject, identity.Issuer); err != nil {
		return nil, err
	}
	return user, nil
}
