package auth

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	salts := NewSaltStore(dir)
	creds := NewCredentialStore(dir, zerolog.Nop())
	svc := NewService(salts, creds, NewTokenService("test-secret", 0), zerolog.Nop())
	require.NoError(t, svc.Bootstrap())
	return svc
}

func (s *Service) clientHash(t *testing.T, password string) string {
	t.Helper()
	salt, err := s.PublicSalt()
	require.NoError(t, err)
	return ClientHash(password, salt)
}

func TestLoginDefaultCredentials(t *testing.T) {
	svc := newTestService(t)
	token, err := svc.Login("admin", svc.clientHash(t, "admin"))
	require.NoError(t, err)

	username, err := svc.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Login("admin", svc.clientHash(t, "wrongpass"))
	assert.True(t, errors.Is(err, ErrBadCredentials))
}

func TestLoginUnknownUsernameSameError(t *testing.T) {
	svc := newTestService(t)
	_, wrongUser := svc.Login("nobody", svc.clientHash(t, "admin"))
	_, wrongPass := svc.Login("admin", svc.clientHash(t, "nope"))
	// No username enumeration: both failures look identical.
	assert.Equal(t, wrongPass, wrongUser)
}

func TestLoginMissingFields(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Login("", "")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestChangePasswordOnlyIssuesFreshToken(t *testing.T) {
	svc := newTestService(t)
	res, err := svc.ChangeCredentials("admin", svc.clientHash(t, "admin"), "", svc.clientHash(t, "newpass"))
	require.NoError(t, err)
	assert.False(t, res.ReloginRequired)
	require.NotEmpty(t, res.Token)

	username, err := svc.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	_, err = svc.Login("admin", svc.clientHash(t, "admin"))
	assert.Error(t, err)
	_, err = svc.Login("admin", svc.clientHash(t, "newpass"))
	assert.NoError(t, err)
}

func TestChangeUsernameForcesRelogin(t *testing.T) {
	svc := newTestService(t)
	res, err := svc.ChangeCredentials("admin", svc.clientHash(t, "admin"), "operator", "")
	require.NoError(t, err)
	assert.True(t, res.ReloginRequired)
	assert.Empty(t, res.Token)

	_, err = svc.Login("admin", svc.clientHash(t, "admin"))
	assert.Error(t, err)
	// Password unchanged, only the username moved.
	_, err = svc.Login("operator", svc.clientHash(t, "admin"))
	assert.NoError(t, err)
}

func TestChangeBothFields(t *testing.T) {
	svc := newTestService(t)
	res, err := svc.ChangeCredentials("admin", svc.clientHash(t, "admin"), "operator", svc.clientHash(t, "newpass"))
	require.NoError(t, err)
	assert.True(t, res.ReloginRequired)

	_, err = svc.Login("operator", svc.clientHash(t, "newpass"))
	assert.NoError(t, err)
}

func TestChangeRejectsWrongCurrentPassword(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ChangeCredentials("admin", svc.clientHash(t, "guess"), "", svc.clientHash(t, "newpass"))
	assert.True(t, errors.Is(err, ErrBadCredentials))
}

func TestChangeRejectsStaleTokenUsername(t *testing.T) {
	svc := newTestService(t)
	// Token minted for a username that no longer matches the record.
	_, err := svc.ChangeCredentials("ghost", svc.clientHash(t, "admin"), "", svc.clientHash(t, "newpass"))
	assert.True(t, errors.Is(err, ErrBadCredentials))
}

func TestChangeRequiresSomethingToChange(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ChangeCredentials("admin", svc.clientHash(t, "admin"), "", "")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.ChangeCredentials("admin", "", "operator", "")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestChangeSameUsernameIsPasswordOnly(t *testing.T) {
	svc := newTestService(t)
	res, err := svc.ChangeCredentials("admin", svc.clientHash(t, "admin"), "admin", svc.clientHash(t, "newpass"))
	require.NoError(t, err)
	assert.False(t, res.ReloginRequired)
	assert.NotEmpty(t, res.Token)
}
