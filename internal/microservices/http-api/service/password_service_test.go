package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher(t *testing.T) {
	h, err := NewPasswordHasher("plain", 0)
	require.NoError(t, err)
	assert.IsType(t, PlainHasher{}, h)

	h, err = NewPasswordHasher("bcrypt", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, BcryptHasher{Cost: bcrypt.MinCost}, h)

	_, err = NewPasswordHasher("rot13", 0)
	assert.Error(t, err)
}

func TestPlainHasher(t *testing.T) {
	h := PlainHasher{}

	stored, err := h.Hash("strongpass")
	require.NoError(t, err)
	assert.Equal(t, "strongpass", stored)

	assert.NoError(t, h.Compare(stored, "strongpass"))
	assert.ErrorIs(t, h.Compare(stored, "strongpas"), ErrInvalidCredentials)
	assert.ErrorIs(t, h.Compare(stored, ""), ErrInvalidCredentials)
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	stored, err := h.Hash("strongpass")
	require.NoError(t, err)
	assert.NotEqual(t, "strongpass", stored)

	assert.NoError(t, h.Compare(stored, "strongpass"))
	assert.ErrorIs(t, h.Compare(stored, "wrongpass"), ErrInvalidCredentials)
	assert.ErrorIs(t, h.Compare("not-a-hash", "strongpass"), ErrInvalidCredentials)
}
