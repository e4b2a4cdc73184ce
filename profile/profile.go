// Package profile persists the company identity across editing sessions.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	receiptstudio "github.com/lvillar/receiptstudio"
)

// Store loads and saves the company profile. Load returns (nil, nil) when no
// profile has been saved yet; callers fall back to the built-in defaults.
type Store interface {
	Load() (*receiptstudio.Company, error)
	Save(receiptstudio.Company) error
}

// FileStore keeps the profile as a JSON file on disk.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load() (*receiptstudio.Company, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile: reading %s: %w", s.Path, err)
	}
	var c receiptstudio.Company
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("profile: parsing %s: %w", s.Path, err)
	}
	return &c, nil
}

func (s *FileStore) Save(c receiptstudio.Company) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("profile: encoding: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("profile: creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("profile: writing %s: %w", s.Path, err)
	}
	return nil
}

// MemStore is an in-memory store for tests and throwaway sessions.
type MemStore struct {
	company *receiptstudio.Company
	saves   int
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Load() (*receiptstudio.Company, error) {
	if s.company == nil {
		return nil, nil
	}
	c := *s.company
	return &c, nil
}

func (s *MemStore) Save(c receiptstudio.Company) error {
	s.company = &c
	s.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (s *MemStore) Saves() int { return s.saves }
