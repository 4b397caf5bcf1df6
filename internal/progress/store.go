// Package progress persists which decks have been completed in each
// direction. Completion is tied to the deck's content hash, so an
// edited deck comes back as unfinished.
package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// Direction is the side of the cards a review session showed first.
type Direction string

const (
	Front Direction = "front" // Thai shown, meaning recalled
	Back  Direction = "back"  // meaning shown, Thai recalled
)

// entry is the stored state for one deck.
type entry struct {
	Hash  string `json:"hash"`
	Front bool   `json:"front"`
	Back  bool   `json:"back"`
}

// Store reads and writes progress.json. All methods are safe for
// concurrent use.
type Store struct {
	path string

	mu      sync.Mutex
	entries map[string]entry
}

// Open loads the store at path, starting empty if the file does not
// exist. A file that fails to parse is discarded rather than blocking
// startup.
func Open(path string) (*Store, error) {
	s := &Store{path: path, entries: make(map[string]entry)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read progress file: %w", err)
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		log.Warn("Discarding unreadable progress file", "path", path, "error", err)
		s.entries = make(map[string]entry)
	}
	return s, nil
}

// Completed reports whether the deck has been finished in the given
// direction. A stored hash that no longer matches the deck's hash
// means the deck changed, so nothing counts as completed.
func (s *Store) Completed(deckID, hash string, dir Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[deckID]
	if !ok || e.Hash != hash {
		return false
	}
	if dir == Front {
		return e.Front
	}
	return e.Back
}

// MarkComplete records that the deck was finished in the given
// direction and saves the file. A hash change clears the other
// direction's flag first.
func (s *Store) MarkComplete(deckID, hash string, dir Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[deckID]
	if !ok || e.Hash != hash {
		e = entry{Hash: hash}
	}
	if dir == Front {
		e.Front = true
	} else {
		e.Back = true
	}
	s.entries[deckID] = e
	return s.saveLocked()
}

// Reset forgets the deck's progress and saves the file.
func (s *Store) Reset(deckID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[deckID]; !ok {
		return nil
	}
	delete(s.entries, deckID)
	return s.saveLocked()
}

// saveLocked writes the file through a temp file and a rename so a
// crash never leaves a truncated progress.json behind.
func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "progress-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
