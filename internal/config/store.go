// Package config implements the flat key/value configuration store: loads
// ".ph.conf"-style files into memory and serves lookups to the rest of the
// core. Go's value semantics satisfy the "caller owns a fresh copy"
// invariant the original C implementation had to enforce by hand — a
// returned string shares no backing storage with the internal map.
package config

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/phkaiser13/phgit/internal/status"
)

// Store is a process-wide flat key/value configuration store. The zero
// value is ready to use.
type Store struct {
	mu     sync.Mutex
	values map[string]string
}

// New returns an empty, ready-to-use Store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Load reads filename line by line, parsing "key = value" pairs. Empty
// lines and lines whose first non-whitespace character is '#' are
// skipped. The first '=' on a line splits key from value; both sides are
// re-trimmed. Lines with an empty key, or with no '=' at all, are skipped
// (malformed input is not fatal). A missing file is not an error: the
// store ends up empty and Load still returns SUCCESS. Any prior state is
// fully cleared before the new file is read.
func (s *Store) Load(filename string) status.Status {
	s.mu.Lock()
	s.values = make(map[string]string)
	s.mu.Unlock()

	f, err := os.Open(filename)
	if err != nil {
		// Absent config is a valid empty configuration, not a failure.
		return status.SUCCESS
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sep := strings.IndexByte(line, '=')
		if sep < 0 {
			continue
		}
		key := strings.TrimSpace(line[:sep])
		value := strings.TrimSpace(line[sep+1:])
		if key == "" {
			continue
		}
		s.Set(key, value)
	}
	if err := scanner.Err(); err != nil {
		return status.IO
	}
	return status.SUCCESS
}

// Get returns the value for key and whether it was found. The returned
// string is an independent copy; mutating it (conceptually — Go strings
// are immutable) can never affect internal state.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set adds or updates key's value. Both strings are effectively copied by
// Go's string semantics; the caller need not keep them alive afterward.
func (s *Store) Set(key, value string) status.Status {
	if key == "" {
		return status.INVALID_ARGS
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return status.SUCCESS
}

// Cleanup discards all in-memory configuration state.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
}

// ProviderAddress returns the configured API address for a secret provider,
// stored under the key "provider.<name>.address".
func (s *Store) ProviderAddress(name string) (string, bool) {
	return s.Get("provider." + name + ".address")
}

// ProviderToken returns the configured access token for a secret provider,
// stored under the key "provider.<name>.token".
func (s *Store) ProviderToken(name string) (string, bool) {
	return s.Get("provider." + name + ".token")
}
