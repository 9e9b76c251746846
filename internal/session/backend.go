// ABOUTME: Key-value backends for persisted session state
// ABOUTME: In-memory map for degraded mode and a JSON file in the config directory

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Backend stores string values by key. The session store owns locking for
// multi-key updates; backends only need to be safe for single calls.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryBackend keeps values for the lifetime of the process
type MemoryBackend struct {
	store sync.Map
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Get(key string) (string, bool, error) {
	val, ok := m.store.Load(key)
	if !ok {
		return "", false, nil
	}
	return val.(string), true, nil
}

func (m *MemoryBackend) Set(key, value string) error {
	m.store.Store(key, value)
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.store.Delete(key)
	return nil
}

// FileName is the session file created inside the config directory
const FileName = "session.json"

// FileBackend persists values as a flat JSON object on disk. Every write
// rewrites the whole file, which is fine for three small keys.
type FileBackend struct {
	mu     sync.Mutex
	dir    string
	values map[string]string
}

// NewFileBackend creates a backend rooted at dir. The file is read lazily.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Path returns the location of the session file
func (f *FileBackend) Path() string {
	return filepath.Join(f.dir, FileName)
}

func (f *FileBackend) load() error {
	if f.values != nil {
		return nil
	}
	if f.dir == "" {
		return errors.New("session: no config directory")
	}

	data, err := os.ReadFile(f.Path())
	if errors.Is(err, os.ErrNotExist) {
		f.values = map[string]string{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading session file: %w", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		// Corrupt file, start fresh
		slog.Debug("Ignoring unreadable session file", "path", f.Path(), "error", err)
		values = map[string]string{}
	}
	f.values = values
	return nil
}

func (f *FileBackend) flush() error {
	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.Path(), data, 0600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

func (f *FileBackend) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.load(); err != nil {
		return "", false, err
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *FileBackend) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.load(); err != nil {
		return err
	}
	f.values[key] = value
	return f.flush()
}

func (f *FileBackend) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.load(); err != nil {
		return err
	}
	if _, ok := f.values[key]; !ok {
		return nil
	}
	delete(f.values, key)
	return f.flush()
}
