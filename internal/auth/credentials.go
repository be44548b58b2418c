package auth

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"mvremote/internal/store"
)

const (
	credentialsFileName = "credentials.json"

	defaultUsername = "admin"
	defaultPassword = "admin"
)

// ErrNoCredentials is returned by Load when no credential record has ever
// been written.
var ErrNoCredentials = errors.New("no credentials configured")

// Credentials is the single username/password-hash record of the
// installation. PasswordHash is always the slow hash of a client-hashed
// password, never of a plaintext.
type Credentials struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// CredentialStore persists the credential record as a human-inspectable JSON
// file. Writes replace the whole record atomically; concurrent writers are
// last-write-wins.
type CredentialStore struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

func NewCredentialStore(dataDir string, log zerolog.Logger) *CredentialStore {
	return &CredentialStore{path: filepath.Join(dataDir, credentialsFileName), log: log}
}

func (c *CredentialStore) Load() (Credentials, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *CredentialStore) load() (Credentials, error) {
	var rec Credentials
	err := store.ReadJSON(c.path, &rec)
	if errors.Is(err, store.ErrNotFound) {
		return Credentials{}, ErrNoCredentials
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("load credentials: %w", err)
	}
	return rec, nil
}

func (c *CredentialStore) Save(rec Credentials) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := store.WriteJSON(c.path, rec); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// Bootstrap creates the default admin/admin record if none exists. The stored
// hash is derived exactly the way a real client would derive it (client hash
// of the literal "admin" with the public salt, then the slow hash), so the
// bootstrap record is verifiable through the normal login path. Safe to call
// repeatedly; only the first call on a fresh installation writes anything.
func (c *CredentialStore) Bootstrap(salts *SaltStore) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.load()
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNoCredentials) {
		return err
	}

	salt, err := salts.Get()
	if err != nil {
		return err
	}
	hash, err := HashPassword(ClientHash(defaultPassword, salt))
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}
	rec := Credentials{Username: defaultUsername, PasswordHash: hash}
	if err := store.WriteJSON(c.path, rec); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	c.log.Warn().
		Str("file", c.path).
		Msg("no credentials found, created default admin/admin - change them immediately via /api/auth/change-credentials")
	return nil
}
