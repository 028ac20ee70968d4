package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type service struct {
	accounts Repository
	hasher   PasswordHasher
	tokens   *Tokens

	// dummyHash is verified against when an email is unknown so that
	// login takes the same time whether or not the account exists.
	dummyHash string
}

func NewService(accounts Repository, hasher PasswordHasher, tokens *Tokens) (Service, error) {
	dummy, err := hasher.Hash(string(NewID()))
	if err != nil {
		return nil, err
	}
	return &service{accounts: accounts, hasher: hasher, tokens: tokens, dummyHash: dummy}, nil
}

// RegisterAccount stores a new account and returns its id and a fresh session token.
// Nothing is stored and no token is issued when any step fails.
func (svc *service) RegisterAccount(ctx context.Context, r registerAccountRequest) (ID, string, error) {
	acc, err := NewAccount(r.FirstName, r.LastName, r.Email)
	if err != nil {
		return "", "", err
	}

	if r.Password == "" {
		return "", "", ErrInvalidPassword
	}

	if _, err := svc.accounts.FindByEmail(ctx, acc.Email); err == nil {
		return "", "", ErrExistingEmail
	} else if !errors.Is(err, ErrNotFound) {
		return "", "", fmt.Errorf("error finding account: %w", err)
	}

	hash, err := svc.hasher.Hash(r.Password)
	if err != nil {
		return "", "", err
	}

	acc.ID = NewID()
	acc.CredentialHash = hash
	acc.CreatedAt = time.Now().UTC()

	if err = svc.accounts.Store(ctx, acc); err != nil {
		if errors.Is(err, ErrExistingEmail) {
			return "", "", ErrExistingEmail
		}
		return "", "", fmt.Errorf("error saving account: %w", err)
	}

	token, err := svc.tokens.Issue(acc.Email)
	if err != nil {
		return "", "", fmt.Errorf("error issuing token: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("email", acc.Email).Str("account_id", string(acc.ID)).Msg("account registered")
	return acc.ID, token, nil
}

// ValidateCredentials returns a session token for a matching email and password.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (svc *service) ValidateCredentials(ctx context.Context, r validateCredentialsRequest) (string, error) {
	acc, err := svc.accounts.FindByEmail(ctx, r.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("error finding account: %w", err)
	}

	hash := svc.dummyHash
	if acc != nil {
		hash = acc.CredentialHash
	}

	if !svc.hasher.Verify(r.Password, hash) || acc == nil {
		zerolog.Ctx(ctx).Debug().Msg("login rejected")
		return "", ErrInvalidCredentials
	}

	token, err := svc.tokens.Issue(acc.Email)
	if err != nil {
		return "", fmt.Errorf("error issuing token: %w", err)
	}
	return token, nil
}

func (svc *service) GetProfile(ctx context.Context, subject, email string) (Profile, error) {
	if subject != email {
		return Profile{}, ErrForbidden
	}

	acc, err := svc.accounts.FindByEmail(ctx, email)
	if err != nil {
		return Profile{}, err
	}
	return acc.Profile(), nil
}

// UpdateProfile merges r into the stored account. Only fields that are present
// and differ from the stored value are written; a non-blank password is hashed.
// A missing account is created.
func (svc *service) UpdateProfile(ctx context.Context, subject, email string, r updateProfileRequest) (UpdateResult, error) {
	if subject != email {
		return UpdateResult{}, ErrForbidden
	}

	existing, err := svc.accounts.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return UpdateResult{}, fmt.Errorf("error finding account: %w", err)
	}

	var c Changes
	if existing == nil {
		c.FirstName, c.LastName, c.Image = r.FirstName, r.LastName, r.Image
	} else {
		c.FirstName = changed(r.FirstName, existing.FirstName)
		c.LastName = changed(r.LastName, existing.LastName)
		c.Image = changed(r.Image, existing.Image)
	}

	if r.Password != nil && strings.TrimSpace(*r.Password) != "" {
		hash, err := svc.hasher.Hash(*r.Password)
		if err != nil {
			return UpdateResult{}, err
		}
		c.CredentialHash = &hash
	}

	if c.Empty() {
		return UpdateResult{}, nil
	}

	res, err := svc.accounts.UpsertByEmail(ctx, email, c)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("error updating account: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("email", email).Bool("created", res.UpsertedCount > 0).Msg("profile updated")
	return UpdateResult{Write: &res}, nil
}

func changed(in *string, stored string) *string {
	if in == nil || *in == stored {
		return nil
	}
	return in
}
