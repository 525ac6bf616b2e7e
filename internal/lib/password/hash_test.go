package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := GetHash("secret123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, CompareHash(hash, "secret123"))
}

func TestCompareHashWrongPassword(t *testing.T) {
	hash, err := GetHash("secret123")
	require.NoError(t, err)

	assert.Error(t, CompareHash(hash, "wrongpassword"))
}

func TestGetHashUniqueSalts(t *testing.T) {
	first, err := GetHash("secret123")
	require.NoError(t, err)
	second, err := GetHash("secret123")
	require.NoError(t, err)

	// bcrypt встраивает соль, хэши одного пароля не совпадают
	assert.NotEqual(t, first, second)
}
