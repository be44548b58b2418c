package auth

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStores(t *testing.T) (*SaltStore, *CredentialStore) {
	t.Helper()
	dir := t.TempDir()
	return NewSaltStore(dir), NewCredentialStore(dir, zerolog.Nop())
}

func TestLoadWithoutBootstrap(t *testing.T) {
	_, creds := newTestStores(t)
	_, err := creds.Load()
	assert.True(t, errors.Is(err, ErrNoCredentials))
}

func TestBootstrapCreatesVerifiableDefault(t *testing.T) {
	salts, creds := newTestStores(t)
	require.NoError(t, creds.Bootstrap(salts))

	rec, err := creds.Load()
	require.NoError(t, err)
	assert.Equal(t, "admin", rec.Username)

	// The stored hash must verify against exactly what a real client would
	// send when logging in with admin/admin.
	salt, err := salts.Get()
	require.NoError(t, err)
	assert.True(t, CheckPassword(ClientHash("admin", salt), rec.PasswordHash))
	assert.False(t, CheckPassword(ClientHash("wrongpass", salt), rec.PasswordHash))
}

func TestBootstrapIsIdempotent(t *testing.T) {
	salts, creds := newTestStores(t)
	require.NoError(t, creds.Bootstrap(salts))
	first, err := creds.Load()
	require.NoError(t, err)

	require.NoError(t, creds.Bootstrap(salts))
	second, err := creds.Load()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBootstrapLeavesExistingRecordAlone(t *testing.T) {
	salts, creds := newTestStores(t)
	custom := Credentials{Username: "alice", PasswordHash: "$2a$10$notarealhash"}
	require.NoError(t, creds.Save(custom))

	require.NoError(t, creds.Bootstrap(salts))
	rec, err := creds.Load()
	require.NoError(t, err)
	assert.Equal(t, custom, rec)
}

func TestSaveReplacesWholeRecord(t *testing.T) {
	salts, creds := newTestStores(t)
	require.NoError(t, creds.Bootstrap(salts))

	next := Credentials{Username: "bob", PasswordHash: "$2a$10$other"}
	require.NoError(t, creds.Save(next))
	rec, err := creds.Load()
	require.NoError(t, err)
	assert.Equal(t, next, rec)
}
