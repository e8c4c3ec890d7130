package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyRoundTrip(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.Len(t, hashed.Salt, 32)
	assert.Len(t, hashed.Hash, 128)

	assert.True(t, VerifyPassword("correct horse battery staple", hashed.Salt, hashed.Hash))
	assert.False(t, VerifyPassword("wrong password", hashed.Salt, hashed.Hash))
}

func TestVerifyRejectsEmptyCredentials(t *testing.T) {
	assert.False(t, VerifyPassword("anything", "", ""))

	hashed, err := HashPassword("anything")
	require.NoError(t, err)
	assert.False(t, VerifyPassword("anything", "", hashed.Hash))
	assert.False(t, VerifyPassword("anything", hashed.Salt, ""))
}

func TestSaltsAreUnique(t *testing.T) {
	a, err := HashPassword("same password")
	require.NoError(t, err)
	b, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.Hash, b.Hash)
}
