// Package workspace tracks per-user CLI state that lives outside any
// document: the list of recently opened documents. The registry is a
// JSON file under the user's config directory, so `canvas recent` works
// across shells and sessions.
package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MaxRecent bounds how many documents the registry remembers.
const MaxRecent = 15

// RecentEntry records one opened document.
type RecentEntry struct {
	Path     string    `json:"path"`
	Title    string    `json:"title"`
	OpenedAt time.Time `json:"opened_at"`
}

// Registry is a file-backed list of recently opened documents.
type Registry struct {
	mu   sync.Mutex
	path string
}

// NewRegistry creates a registry stored in the given directory.
// If baseDir is empty, defaults to ~/.config/canvas/
func NewRegistry(baseDir string) (*Registry, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "canvas")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return &Registry{path: filepath.Join(baseDir, "recent.json")}, nil
}

// Touch records that the document at path was opened now.
// The path is stored absolute so entries stay valid across working
// directories. Existing entries for the same path are replaced.
func (r *Registry) Touch(path, title string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Path != abs {
			kept = append(kept, e)
		}
	}
	kept = append(kept, RecentEntry{Path: abs, Title: title, OpenedAt: time.Now()})

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].OpenedAt.After(kept[j].OpenedAt)
	})
	if len(kept) > MaxRecent {
		kept = kept[:MaxRecent]
	}
	return r.save(kept)
}

// List returns recent documents, most recently opened first.
// Entries whose file no longer exists are dropped from the result but
// kept on disk, so a document on a temporarily unmounted volume is not
// forgotten.
func (r *Registry) List() ([]RecentEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return nil, err
	}

	live := entries[:0]
	for _, e := range entries {
		if _, err := os.Stat(e.Path); err == nil {
			live = append(live, e)
		}
	}
	return live, nil
}

// Clear empties the registry.
func (r *Registry) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove registry: %w", err)
	}
	return nil
}

// Path returns the registry file location.
func (r *Registry) Path() string {
	return r.path
}

func (r *Registry) load() ([]RecentEntry, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	var entries []RecentEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt registry is not worth failing the command over.
		return nil, nil
	}
	return entries, nil
}

func (r *Registry) save(entries []RecentEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0600); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}
