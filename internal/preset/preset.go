package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"mvremote/internal/store"
)

const presetsFileName = "presets.json"

var (
	ErrNotFound  = errors.New("preset not found")
	ErrDuplicate = errors.New("preset already exists")
)

// Order is the playback order of a preset directory.
type Order string

const (
	OrderShuffle Order = "shuffle"
	OrderNormal  Order = "normal"
)

// Item is one preset directory the remote UI can trigger playback of.
type Item struct {
	ID       string `json:"id"`
	MainPath string `json:"mainPath"`
	Order    Order  `json:"order"`
	Name     string `json:"name,omitempty"`
}

// Store persists the preset list as a JSON file. Earlier releases stored a
// bare array of path strings; Load migrates that shape to full records.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, presetsFileName)}
}

func (s *Store) List() ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Add(mainPath string, order Order, name string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.MainPath == mainPath {
			return nil, ErrDuplicate
		}
	}
	if order == "" {
		order = OrderShuffle
	}
	items = append(items, Item{
		ID:       uuid.NewString(),
		MainPath: mainPath,
		Order:    order,
		Name:     name,
	})
	if err := s.save(items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) Remove(id string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return nil, err
	}
	kept := items[:0]
	found := false
	for _, it := range items {
		if it.ID == id {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return nil, ErrNotFound
	}
	if err := s.save(kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *Store) load() ([]Item, error) {
	var raw json.RawMessage
	err := store.ReadJSON(s.path, &raw)
	if errors.Is(err, store.ErrNotFound) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err == nil && valid(items) {
		return items, nil
	}

	// Legacy schema: a plain array of directory paths.
	var paths []string
	if err := json.Unmarshal(raw, &paths); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	items = make([]Item, 0, len(paths))
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		items = append(items, Item{
			ID:       uuid.NewString(),
			MainPath: p,
			Order:    OrderShuffle,
		})
	}
	return items, nil
}

func valid(items []Item) bool {
	for _, it := range items {
		if it.ID == "" || it.MainPath == "" {
			return false
		}
	}
	return true
}

func (s *Store) save(items []Item) error {
	return store.WriteJSON(s.path, items)
}
