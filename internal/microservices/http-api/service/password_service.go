package service

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"bookshelf/internal/middleware/auth"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// PasswordHasher turns a submitted password into its stored form and checks
// a candidate against a stored value.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, candidate string) error
}

// NewPasswordHasher returns the hasher for PASSWORD_HASHING.
func NewPasswordHasher(mode string, bcryptCost int) (PasswordHasher, error) {
	switch mode {
	case "", "plain":
		return PlainHasher{}, nil
	case "bcrypt":
		return BcryptHasher{Cost: bcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hashing mode %q", mode)
	}
}

// PlainHasher stores passwords as submitted and compares by equality.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainHasher) Compare(stored, candidate string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	return auth.HashPassword(password, h.Cost)
}

func (h BcryptHasher) Compare(stored, candidate string) error {
	if err := auth.VerifyPassword(stored, candidate); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
