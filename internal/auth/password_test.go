package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientHashIsDeterministic(t *testing.T) {
	salt := "aabbcc"
	h1 := ClientHash("secret", salt)
	h2 := ClientHash("secret", salt)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 128) // hex of sha512
}

func TestClientHashVariesWithSaltAndPassword(t *testing.T) {
	assert.NotEqual(t, ClientHash("secret", "salt-a"), ClientHash("secret", "salt-b"))
	assert.NotEqual(t, ClientHash("secret", "salt-a"), ClientHash("other", "salt-a"))
}

func TestHashPasswordNonDeterministicVerifyDeterministic(t *testing.T) {
	input := ClientHash("hunter2", "somesalt")

	h1, err := HashPassword(input)
	require.NoError(t, err)
	h2, err := HashPassword(input)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword(input, h1))
	assert.True(t, CheckPassword(input, h2))
}

func TestCheckPasswordRejectsWrongInput(t *testing.T) {
	salt := "somesalt"
	h, err := HashPassword(ClientHash("right", salt))
	require.NoError(t, err)
	assert.False(t, CheckPassword(ClientHash("wrong", salt), h))
}
