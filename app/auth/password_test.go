package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("anarkali@123")
	require.NoError(t, err)

	parts := strings.SplitN(hash, ".", 2)
	require.Len(t, parts, 2, "hash should be key.salt")
	assert.Len(t, parts[0], 128, "64-byte key hex encoded")
	assert.Len(t, parts[1], 32, "16-byte salt hex encoded")

	ok, err := VerifyPassword("anarkali@123", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPasswordMismatch(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	ok, err := VerifyPassword("wrong-horse", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("whatever", "not-a-valid-hash")
	assert.Error(t, err)

	_, err = VerifyPassword("whatever", "zzzz.zzzz")
	assert.Error(t, err)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "fresh salt per hash")
}
