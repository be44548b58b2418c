package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"mvremote/internal/store"
)

const saltFileName = "public-salt.json"

type saltRecord struct {
	Salt string `json:"salt"`
}

// SaltStore holds the single public salt for the installation. The salt is
// not secret; its only security property is that it is public and fixed.
// Rotating it would invalidate every hash derived from it, so once written
// it is never replaced.
type SaltStore struct {
	path string
	mu   sync.Mutex
}

func NewSaltStore(dataDir string) *SaltStore {
	return &SaltStore{path: filepath.Join(dataDir, saltFileName)}
}

// Get returns the persisted salt, generating and persisting a fresh 256-bit
// value on first use. Concurrent first calls are serialized so every caller
// observes the same value. A persistence failure is fatal to the call: the
// installation cannot proceed without a durable salt.
func (s *SaltStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec saltRecord
	err := store.ReadJSON(s.path, &rec)
	if err == nil && rec.Salt != "" {
		return rec.Salt, nil
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("load public salt: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate public salt: %w", err)
	}
	rec.Salt = hex.EncodeToString(buf)
	if err := store.WriteJSON(s.path, rec); err != nil {
		return "", fmt.Errorf("persist public salt: %w", err)
	}
	return rec.Salt, nil
}
