// Package store keeps persisted model records on disk, one directory per
// derived model name, with at most one previous generation kept as backup
package store

import "errors"
import "fmt"
import "os"
import "path/filepath"

import "github.com/sasha-s/go-deadlock"

// BackupSuffix is appended to the record directory of the previous generation
const BackupSuffix = ".old"

const tmpSuffix = ".tmp"

// Store is a directory of model records
type Store struct {
	base string
	mu   deadlock.Mutex
}

// New returns a store rooted at base. The directory is created on first save.
func New(base string) *Store {
	return &Store{base: base}
}

// Base returns the root directory
func (s *Store) Base() string {
	return s.base
}

// Paths returns the current and the backup record directory of name
func (s *Store) Paths(name string) (current, backup string) {
	current = filepath.Join(s.base, name)
	return current, current + BackupSuffix
}

// Exists reports whether a current record of name exists
func (s *Store) Exists(name string) bool {
	current, _ := s.Paths(name)
	fi, err := os.Stat(current)
	return err == nil && fi.IsDir()
}

// Save calls write with a fresh temporary directory, then rotates the current
// record into the backup, dropping any older backup, and moves the temporary
// directory into place. If write fails nothing on disk changes.
func (s *Store) Save(name string, write func(dir string) error) error {
	if name == "" {
		return errors.New("store: empty record name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, backup := s.Paths(name)
	tmp := current + tmpSuffix
	if err := os.RemoveAll(tmp); err != nil {
		return err
	}
	if err := os.MkdirAll(tmp, 0755); err != nil {
		return err
	}
	if err := write(tmp); err != nil {
		os.RemoveAll(tmp)
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	if err := os.RemoveAll(backup); err != nil {
		os.RemoveAll(tmp)
		return err
	}
	if _, err := os.Stat(current); err == nil {
		if err := os.Rename(current, backup); err != nil {
			os.RemoveAll(tmp)
			return err
		}
	}
	return os.Rename(tmp, current)
}
