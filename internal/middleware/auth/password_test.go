package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("strongpass", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "strongpass", hash)

	assert.NoError(t, VerifyPassword(hash, "strongpass"))
	assert.Error(t, VerifyPassword(hash, "wrongpass"))
}

func TestHashPassword_CostOutOfRange(t *testing.T) {
	hash, err := HashPassword("strongpass", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
