package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, VerifyPassword(hash, "hunter2"))
	assert.False(t, VerifyPassword(hash, "hunter3"))
	assert.False(t, VerifyPassword("not-a-hash", "hunter2"))
}

func TestHashPasswordLength(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes), bcrypt.MinCost)
	assert.NoError(t, err)

	_, err = HashPassword(strings.Repeat("a", MaxPasswordBytes+1), bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestBurnVerifyDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { BurnVerify("whatever", bcrypt.MinCost) })
}
