// Package credstore persists client-side session state (principal, raw
// credentials, precomputed Basic auth header) across process restarts. It
// is the only component that touches durable session storage.
//
// The file store keeps a single JSON document with owner-only permissions.
// When a Sealer is supplied the document is additionally encrypted at
// rest; the backend's per-request Basic authentication means the raw
// password has to be retained either way.
package credstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/finconsgroup/zooadmin/pkg/cryptox"
	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

// DefaultPath returns the conventional session file location,
// ~/.zooadmin/session.json. It falls back to a relative path when the
// home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".zooadmin", "session.json")
}

// FileStore is a zoosdk.SessionStore backed by a single file.
type FileStore struct {
	path   string
	sealer *cryptox.Sealer

	mu sync.Mutex
}

// NewFileStore returns a FileStore writing to path. A nil sealer stores
// the document as plain JSON.
func NewFileStore(path string, sealer *cryptox.Sealer) *FileStore {
	return &FileStore{path: path, sealer: sealer}
}

// Save replaces the stored session state. The parent directory is created
// on demand with owner-only permissions.
func (s *FileStore) Save(state zoosdk.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("credstore: marshal session: %w", err)
	}

	if s.sealer != nil {
		if data, err = s.sealer.Seal(data); err != nil {
			return fmt.Errorf("credstore: seal session: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("credstore: create directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("credstore: write session file: %w", err)
	}
	return nil
}

// Load reads the stored state. A missing file is not an error; it reports
// no state present. Unreadable or undecodable content is an error so the
// session layer can force a clean logout.
func (s *FileStore) Load() (zoosdk.SessionState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return zoosdk.SessionState{}, false, nil
	}
	if err != nil {
		return zoosdk.SessionState{}, false, fmt.Errorf("credstore: read session file: %w", err)
	}

	if s.sealer != nil {
		if data, err = s.sealer.Open(data); err != nil {
			return zoosdk.SessionState{}, false, fmt.Errorf("credstore: unseal session: %w", err)
		}
	}

	var state zoosdk.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return zoosdk.SessionState{}, false, fmt.Errorf("credstore: parse session file: %w", err)
	}
	return state, true, nil
}

// Clear removes the session file. Clearing an absent file is a no-op.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("credstore: remove session file: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory zoosdk.SessionStore for tests.
type MemoryStore struct {
	mu      sync.Mutex
	state   zoosdk.SessionState
	present bool

	// Corrupt simulates unreadable storage: Load fails until Clear.
	Corrupt bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Save replaces the stored state.
func (m *MemoryStore) Save(state zoosdk.SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.present = true
	return nil
}

// Load returns the stored state, or an error while Corrupt is set.
func (m *MemoryStore) Load() (zoosdk.SessionState, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Corrupt {
		return zoosdk.SessionState{}, false, errors.New("credstore: storage corrupt")
	}
	return m.state, m.present, nil
}

// Clear wipes the stored state and any simulated corruption.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = zoosdk.SessionState{}
	m.present = false
	m.Corrupt = false
	return nil
}
