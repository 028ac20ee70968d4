package auth

import (
	"context"
	"sync"
	"time"
)

type accountRepository struct {
	mu       sync.Mutex
	accounts map[string]*Account
}

func NewAccountRepository() Repository {
	return &accountRepository{accounts: map[string]*Account{}}
}

func (repo *accountRepository) Store(_ context.Context, acc *Account) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.accounts[acc.Email]; ok {
		return ErrExistingEmail
	}
	a := *acc
	repo.accounts[acc.Email] = &a
	return nil
}

func (repo *accountRepository) FindByEmail(_ context.Context, email string) (*Account, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if a, ok := repo.accounts[email]; ok {
		acc := *a
		return &acc, nil
	}
	return nil, ErrNotFound
}

func (repo *accountRepository) UpsertByEmail(_ context.Context, email string, c Changes) (UpsertResult, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	acc, ok := repo.accounts[email]
	if !ok {
		acc = &Account{ID: NewID(), Email: email, CreatedAt: time.Now().UTC()}
		repo.accounts[email] = acc
		applyChanges(acc, c)
		return UpsertResult{UpsertedCount: 1}, nil
	}

	before := *acc
	applyChanges(acc, c)
	res := UpsertResult{MatchedCount: 1}
	if *acc != before {
		res.ModifiedCount = 1
	}
	return res, nil
}

func applyChanges(acc *Account, c Changes) {
	if c.FirstName != nil {
		acc.FirstName = *c.FirstName
	}
	if c.LastName != nil {
		acc.LastName = *c.LastName
	}
	if c.Image != nil {
		acc.Image = *c.Image
	}
	if c.CredentialHash != nil {
		acc.CredentialHash = *c.CredentialHash
	}
}
