// internal/highscore/store.go
package highscore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// FileStore persists a table as a JSON file.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the table from disk. A missing file yields an empty table.
func (s *FileStore) Load(capacity int) (*Table, error) {
	t := NewTable(capacity)
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read high scores %s: %w", s.Path, err)
	}
	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse high scores %s: %w", s.Path, err)
	}
	t.load(entries)
	return t, nil
}

// Save writes the table through a temporary file so a crash never leaves half a file.
func (s *FileStore) Save(t *Table) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	b, err := json.MarshalIndent(t.Entries(), "", "  ")
	if err != nil {
		return err
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("failed to write high scores: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("failed to replace high scores: %w", err)
	}
	log.Printf("Saved %d high score(s) to %s", t.Len(), s.Path)
	return nil
}
