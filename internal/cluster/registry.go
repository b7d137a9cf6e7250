// Package cluster implements the lazily-loaded cluster registry: the list
// of named Kubernetes clusters parsed from "config/clusters.yaml" plus the
// active-cluster selection used when a handler omits an explicit --cluster
// flag.
package cluster

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/phkaiser13/phgit/internal/status"
)

// Entry is a single cluster record. Only the name is ever consumed; the
// source line may carry other YAML fields, all of which are ignored.
type Entry struct {
	Name string
}

// ConfigStore is the subset of internal/config.Store the registry needs
// for the kube.current_cluster fallback. Declared as an interface here
// so tests can supply a trivial stand-in without importing internal/config.
type ConfigStore interface {
	Get(key string) (string, bool)
}

// Registry holds the lazily-loaded list of clusters and the active
// selection. Its path and config store are unexported and set only by
// New, so callers obtain one via New.
type Registry struct {
	mu     sync.Mutex
	path   string
	config ConfigStore

	loaded  bool
	entries []Entry
	active  string
	hasSet  bool

	cachedFallback    string
	fallbackResolved  bool
}

// New returns a Registry that lazily parses path on first use and falls
// back to config's "kube.current_cluster" key when no active cluster has
// been explicitly set.
func New(path string, config ConfigStore) *Registry {
	return &Registry{path: path, config: config}
}

// ensureLoaded parses the cluster file exactly once. The parser is
// deliberately minimal: it scans every line for the literal marker
// "- name:", takes everything after it, strips any trailing CR/LF, strips
// leading whitespace and double-quotes, cuts the value at the next
// double-quote, trims remaining whitespace, and discards results that end
// up empty. This mirrors the original
// line-scan parser; it is not a YAML parser and must not become one.
func (r *Registry) ensureLoaded() {
	if r.loaded {
		return
	}
	r.loaded = true

	f, err := os.Open(r.path)
	if err != nil {
		r.entries = nil
		return
	}
	defer f.Close()

	const marker = "- name:"
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.Index(line, marker)
		if idx < 0 {
			continue
		}
		value := line[idx+len(marker):]
		value = strings.TrimRight(value, "\r\n")
		value = strings.TrimLeft(value, " \t\"")
		if end := strings.IndexByte(value, '"'); end >= 0 {
			value = value[:end]
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		r.entries = append(r.entries, Entry{Name: value})
	}
}

// List returns an independent copy of the loaded cluster entries, loading
// them on first call. The returned slice shares no storage with the
// registry's internal state.
func (r *Registry) List() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLoaded()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// SetActive marks name as the active cluster. It succeeds only if name
// appears in the loaded cluster list.
func (r *Registry) SetActive(name string) status.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLoaded()
	for _, e := range r.entries {
		if e.Name == name {
			r.active = name
			r.hasSet = true
			return status.SUCCESS
		}
	}
	return status.NOT_FOUND
}

// GetActive returns the explicitly set active cluster if any; otherwise it
// falls back to the config store's "kube.current_cluster" key, caching the
// result so repeated calls are stable for the life of the registry.
func (r *Registry) GetActive() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hasSet {
		return r.active, true
	}
	if !r.fallbackResolved {
		r.fallbackResolved = true
		if r.config != nil {
			if v, ok := r.config.Get("kube.current_cluster"); ok {
				r.cachedFallback = v
			}
		}
	}
	if r.cachedFallback == "" {
		return "", false
	}
	return r.cachedFallback, true
}

// Cleanup resets the registry to its unloaded, no-active-cluster state.
func (r *Registry) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = false
	r.entries = nil
	r.active = ""
	r.hasSet = false
	r.cachedFallback = ""
	r.fallbackResolved = false
}
