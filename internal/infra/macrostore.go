package infra

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/telek/telek/internal/domain"
)

// JSONMacroStore persists macro definitions as a JSON file. Writes go
// through a temp file and rename so a crash mid-write never corrupts the
// store.
type JSONMacroStore struct {
	mu   sync.Mutex
	path string
}

// NewJSONMacroStore creates a store backed by the given file.
func NewJSONMacroStore(path string) *JSONMacroStore {
	return &JSONMacroStore{path: path}
}

// DefaultMacroPath returns the well-known macro file location.
func DefaultMacroPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "telek", "macros.json")
	}
	return filepath.Join(home, ".config", "telek", "macros.json")
}

// Load reads the macro file. A missing file yields an empty MacroFile.
func (s *JSONMacroStore) Load() (domain.MacroFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.MacroFile{}, nil
		}
		return domain.MacroFile{}, fmt.Errorf("failed to read macro file: %w", err)
	}

	var file domain.MacroFile
	if err := json.Unmarshal(data, &file); err != nil {
		return domain.MacroFile{}, fmt.Errorf("failed to parse macro file: %w", err)
	}
	return file, nil
}

// Save writes the macro file atomically.
func (s *JSONMacroStore) Save(file domain.MacroFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode macro file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create macro dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".macros-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write macro file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync macro file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace macro file: %w", err)
	}
	return nil
}

// Ensure JSONMacroStore implements domain.MacroStore.
var _ domain.MacroStore = (*JSONMacroStore)(nil)
