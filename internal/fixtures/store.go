package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/seocopilot/seo-copilot/internal/apperr"
)

// Store provides read access to canned SERP payloads used for demos and
// tests in place of live provider calls.
type Store interface {
	Retrieve(name string) ([]byte, error)
	List() ([]string, error)
}

// LocalStore serves fixtures from a directory of static JSON files.
type LocalStore struct {
	dir string
}

// Ensure LocalStore implements Store
var _ Store = (*LocalStore)(nil)

// NewLocalStore creates a fixture store rooted at dir.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Retrieve reads one fixture file by bare name (no path separators).
func (s *LocalStore) Retrieve(name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return nil, apperr.NotFound(fmt.Sprintf("unknown fixture: %s", name))
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.NotFound(fmt.Sprintf("unknown fixture: %s", name))
		}
		return nil, fmt.Errorf("failed to read fixture %s: %w", name, err)
	}

	return data, nil
}

// List returns the JSON fixture files available in the store.
func (s *LocalStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
