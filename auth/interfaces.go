package auth

import "context"

type Service interface {
	RegisterAccount(ctx context.Context, r registerAccountRequest) (ID, string, error)
	ValidateCredentials(ctx context.Context, r validateCredentialsRequest) (string, error)
	GetProfile(ctx context.Context, subject, email string) (Profile, error)
	UpdateProfile(ctx context.Context, subject, email string, r updateProfileRequest) (UpdateResult, error)
}

// Repository is the credential store. Accounts are keyed by email.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	// Store inserts acc and returns ErrExistingEmail if its email is taken.
	Store(ctx context.Context, acc *Account) error
	UpsertByEmail(ctx context.Context, email string, c Changes) (UpsertResult, error)
}

// Changes is the write set of a profile update. Nil fields are left untouched.
type Changes struct {
	FirstName,
	LastName,
	Image,
	CredentialHash *string
}

func (c Changes) Empty() bool {
	return c.FirstName == nil && c.LastName == nil && c.Image == nil && c.CredentialHash == nil
}

type UpsertResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
}

// UpdateResult reports the outcome of UpdateProfile. Write is nil when nothing changed.
type UpdateResult struct {
	Write *UpsertResult
}

func (r UpdateResult) Changed() bool {
	return r.Write != nil
}

func (r UpdateResult) Created() bool {
	return r.Write != nil && r.Write.UpsertedCount > 0
}

type registerAccountRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type validateCredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Image     *string `json:"image"`
	Password  *string `json:"password"`
}
