package registry

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/pkgview/pkg/errors"
)

// Store supplies package records. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the record for name, or an error with code
	// PACKAGE_NOT_FOUND when the store has no such package.
	Get(ctx context.Context, name string) (*PackageRecord, error)

	// List returns the names of all packages, sorted.
	List(ctx context.Context) ([]string, error)
}

// FileStore reads packuments from a directory. Each package lives in
// <dir>/<name>.json; scoped packages in <dir>/@scope/<name>.json.
// Files are read on every call.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory must exist.
func NewFileStore(dir string) (*FileStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open registry directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the root directory of the store.
func (s *FileStore) Dir() string { return s.dir }

// Get reads and decodes the record for name.
func (s *FileStore) Get(ctx context.Context, name string) (*PackageRecord, error) {
	if err := errors.ValidateNpmPackageName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodePackageNotFound, "package %s not found", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read package %s", name)
	}

	rec, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if rec.Name != name {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "record in %s.json is named %q", name, rec.Name)
	}
	return rec, nil
}

// List walks the directory for *.json files.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.ToSlash(rel), ".json")
		if errors.ValidateNpmPackageName(name) == nil {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list %s", s.dir)
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, filepath.FromSlash(name)+".json")
}

// MemoryStore holds records in memory. Useful for tests and for serving a
// single record file.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*PackageRecord
}

// NewMemoryStore creates a store holding recs.
func NewMemoryStore(recs ...*PackageRecord) *MemoryStore {
	s := &MemoryStore{records: make(map[string]*PackageRecord, len(recs))}
	for _, r := range recs {
		s.Put(r)
	}
	return s
}

// Put adds or replaces a record.
func (s *MemoryStore) Put(rec *PackageRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Name] = rec
}

// Get returns the record for name.
func (s *MemoryStore) Get(ctx context.Context, name string) (*PackageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[name]
	if !ok {
		return nil, errors.New(errors.ErrCodePackageNotFound, "package %s not found", name)
	}
	return rec, nil
}

// List returns all record names, sorted.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Ensure both stores implement Store.
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// LoadFile decodes a single packument file.
func LoadFile(path string) (*PackageRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "record file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return Decode(data)
}
