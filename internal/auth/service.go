package auth

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

var (
	// ErrValidation marks missing or malformed request fields.
	ErrValidation = errors.New("missing required fields")
	// ErrBadCredentials is deliberately generic: login and credential-change
	// failures never reveal whether the username or the password was wrong.
	ErrBadCredentials = errors.New("invalid username or password")
)

// Service orchestrates login and credential changes over the salt store,
// credential store and token service.
type Service struct {
	salts  *SaltStore
	creds  *CredentialStore
	tokens *TokenService
	log    zerolog.Logger
}

func NewService(salts *SaltStore, creds *CredentialStore, tokens *TokenService, log zerolog.Logger) *Service {
	return &Service{salts: salts, creds: creds, tokens: tokens, log: log}
}

// PublicSalt returns the installation's public salt, creating it on first
// use. The endpoint serving it stays unauthenticated: the salt is needed
// before login is possible and is not secret.
func (s *Service) PublicSalt() (string, error) {
	return s.salts.Get()
}

// Bootstrap ensures a credential record exists, creating the default one on
// a fresh installation.
func (s *Service) Bootstrap() error {
	return s.creds.Bootstrap(s.salts)
}

// Login verifies a client-hashed password against the stored record and
// issues a bearer token.
func (s *Service) Login(username, clientHashedPassword string) (string, error) {
	if username == "" || clientHashedPassword == "" {
		return "", ErrValidation
	}
	rec, err := s.creds.Load()
	if err != nil {
		return "", err
	}
	if rec.Username != username || !CheckPassword(clientHashedPassword, rec.PasswordHash) {
		s.log.Debug().Str("username", username).Msg("login rejected")
		return "", ErrBadCredentials
	}
	return s.tokens.Issue(rec.Username)
}

// ChangeResult reports the outcome of a credential change. When the username
// changed the old token's claims are stale, so no replacement token is issued
// and the client must log in again. A password-only change returns a fresh
// token so the session continues uninterrupted.
type ChangeResult struct {
	Token           string
	ReloginRequired bool
}

// ChangeCredentials verifies the current password and applies a username
// and/or password change as a single whole-record replacement. tokenUser is
// the username carried by the caller's bearer token; it must still match the
// stored record, guarding against a token issued before an earlier change.
func (s *Service) ChangeCredentials(tokenUser, currentClientHashedPassword, newUsername, newClientHashedPassword string) (ChangeResult, error) {
	newUsername = strings.TrimSpace(newUsername)
	if currentClientHashedPassword == "" || (newUsername == "" && newClientHashedPassword == "") {
		return ChangeResult{}, ErrValidation
	}
	rec, err := s.creds.Load()
	if err != nil {
		return ChangeResult{}, err
	}
	if rec.Username != tokenUser {
		return ChangeResult{}, ErrBadCredentials
	}
	if !CheckPassword(currentClientHashedPassword, rec.PasswordHash) {
		return ChangeResult{}, ErrBadCredentials
	}

	usernameChanged := false
	if newUsername != "" && newUsername != rec.Username {
		rec.Username = newUsername
		usernameChanged = true
	}
	if newClientHashedPassword != "" {
		hash, err := HashPassword(newClientHashedPassword)
		if err != nil {
			return ChangeResult{}, err
		}
		rec.PasswordHash = hash
	}
	if err := s.creds.Save(rec); err != nil {
		return ChangeResult{}, err
	}
	s.log.Info().Bool("usernameChanged", usernameChanged).Msg("credentials updated")

	if usernameChanged {
		return ChangeResult{ReloginRequired: true}, nil
	}
	token, err := s.tokens.Issue(rec.Username)
	if err != nil {
		return ChangeResult{}, err
	}
	return ChangeResult{Token: token}, nil
}
