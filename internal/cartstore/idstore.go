package cartstore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// IDStore persists the active cart id across sessions. An empty result means
// "no active cart".
type IDStore interface {
	Get() (string, bool)
	Set(id string) error
	Clear() error
}

// FileIDStore keeps the cart id in a single file, the durable analogue of a
// browser storage key.
type FileIDStore struct {
	path string
}

func NewFileIDStore(path string) *FileIDStore {
	return &FileIDStore{path: path}
}

func (f *FileIDStore) Get() (string, bool) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", false
	}
	id := strings.TrimSpace(string(data))
	if id == "" {
		return "", false
	}
	return id, true
}

func (f *FileIDStore) Set(id string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(id+"\n"), 0o600)
}

func (f *FileIDStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemoryIDStore holds the cart id in memory only.
type MemoryIDStore struct {
	mu sync.Mutex
	id string
}

func NewMemoryIDStore() *MemoryIDStore {
	return &MemoryIDStore{}
}

func (m *MemoryIDStore) Get() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id, m.id != ""
}

func (m *MemoryIDStore) Set(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id = id
	return nil
}

func (m *MemoryIDStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id = ""
	return nil
}
