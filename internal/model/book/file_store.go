package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
)

// FileStore persists the collection as an indented JSON array in a single file.
//
// A missing or unparsable file loads as an empty collection. Save overwrites
// the file in place; a crash mid-write can truncate it.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore backed by path. The file is not touched
// until the first Load or Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and parses the backing file.
func (s *FileStore) Load(_ context.Context) (Collection, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var books Collection
	if err := json.Unmarshal(data, &books); err != nil {
		log.Printf("[books] %s is not a valid book list, treating as empty: %v", s.path, err)
		return Collection{}, nil
	}
	if books == nil {
		books = Collection{}
	}
	return books, nil
}

// Save writes the full collection, replacing the previous file contents.
func (s *FileStore) Save(_ context.Context, books Collection) error {
	if books == nil {
		books = Collection{}
	}
	data, err := json.MarshalIndent(books, "", "    ")
	if err != nil {
		return fmt.Errorf("encode books: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
