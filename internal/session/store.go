package session

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sync"
)

// Keys for the values a view hands to the next one
const (
	KeyDocument         = "document"          // current result document, serialized JSON
	KeyValidationErrors = "validationErrors"  // last validation violations
	KeyFilename         = "filename"          // original filename of the document
	KeyIndexURL         = "indexUrl"          // index manifest URL
	KeyIndexFiles       = "indexFiles"        // resolved index file list
	KeyFileURL          = "fileUrl"           // current file URL
	KeyInitialParams    = "initialParams"     // one-shot view params, consumed then cleared
)

// Store is the ephemeral string-keyed session state, persisted as a single
// JSON file so a subsequent command in the same session can pick the state
// up. It replaces ad hoc cross-view memory with an explicit object: values
// in, values out, cleared on navigate-away.
type Store struct {
	mu   sync.Mutex
	path string

	// loadSeq implements last-load-wins: every load takes a ticket and a
	// stale fetch completing after a newer one is discarded on write.
	loadSeq  uint64
	savedSeq uint64
}

// New creates a Store persisting under dir (created on first write)
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, "session.json")}
}

// Path returns the backing file location
func (s *Store) Path() string {
	return s.path
}

func (s *Store) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session state: %w", err)
	}
	state := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse session state: %w", err)
	}
	return state, nil
}

func (s *Store) write(state map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}

// Put stores one value under key
func (s *Store) Put(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(key, value)
}

func (s *Store) put(key string, value interface{}) error {
	state, err := s.read()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal session value %q: %w", key, err)
	}
	state[key] = raw
	return s.write(state)
}

// Get reads one value into out, reporting whether the key was present
func (s *Store) Get(key string, out interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return false, err
	}
	raw, ok := state[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("parse session value %q: %w", key, err)
	}
	return true, nil
}

// Take reads one value and deletes it: one-shot values like the initial
// view params are consumed once then cleared.
func (s *Store) Take(key string, out interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return false, err
	}
	raw, ok := state[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("parse session value %q: %w", key, err)
	}
	delete(state, key)
	if err := s.write(state); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes one key
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.read()
	if err != nil {
		return err
	}
	delete(state, key)
	return s.write(state)
}

// Clear wipes the whole session (the navigate-away policy)
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session state: %w", err)
	}
	return nil
}

// BeginLoad takes a ticket for a new document load. CompleteLoad with an
// older ticket than the newest completed one is discarded, so the last
// load issued always wins regardless of fetch completion order.
func (s *Store) BeginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadSeq++
	return s.loadSeq
}

// CompleteLoad stores the loaded document unless a newer load already
// completed. It reports whether the document was kept.
func (s *Store) CompleteLoad(ticket uint64, document interface{}, filename string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket <= s.savedSeq {
		return false, nil
	}
	s.savedSeq = ticket

	if err := s.put(KeyDocument, document); err != nil {
		return false, err
	}
	if err := s.put(KeyFilename, filename); err != nil {
		return false, err
	}
	return true, nil
}

// Fingerprint returns a cheap content hash of the persisted state, used by
// the watcher to detect externally updated data. A missing file hashes to
// zero.
func (s *Store) Fingerprint() (uint64, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("fingerprint session state: %w", err)
	}
	h := fnv.New64a()
	_, _ = h.Write(data)
	return h.Sum64(), nil
}
