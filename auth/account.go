package auth

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rs/xid"
)

type Account struct {
	ID             ID
	Email          string
	FirstName      string
	LastName       string
	Image          string
	CredentialHash string
	CreatedAt      time.Time
}

type ID string

// Profile is the public projection of an Account. It never carries credential material.
type Profile struct {
	ID        ID     `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Image     string `json:"image,omitempty"`
}

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidName        = errors.New("first name and last name are required")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrExistingEmail      = errors.New("Email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("account not found")
)

var emailRegexp = regexp.MustCompile(`^\S+@\S+\.\S+$`)

//NewAccount validates names and email and returns a new Account if
// arguments are valid. The email is kept exactly as given.
func NewAccount(firstName, lastName, email string) (*Account, error) {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, ErrInvalidName
	}

	if !emailRegexp.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	return &Account{FirstName: firstName, LastName: lastName, Email: email}, nil
}

func (a *Account) Profile() Profile {
	return Profile{ID: a.ID, Email: a.Email, FirstName: a.FirstName, LastName: a.LastName, Image: a.Image}
}

func NewID() ID {
	return ID(xid.New().String())
}

func isValidID(id string) bool {
	if _, err := xid.FromString(id); err != nil {
		return false
	}
	return true
}
