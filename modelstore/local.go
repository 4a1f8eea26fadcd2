// SPDX-License-Identifier: MIT

package modelstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalStore keeps each name as a file below a root directory.
type LocalStore struct {
	root string
}

// NewLocalStore returns a store rooted at root. The directory is created on
// the first Put.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Put writes through a temporary file and renames it into place.
func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return storeErrorf("LocalStore.Put", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	dst := s.path(name)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return storeErrorf("LocalStore.Put", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tmp-*")
	if err != nil {
		return storeErrorf("LocalStore.Put", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return storeErrorf("LocalStore.Put", err)
	}
	if err = tmp.Close(); err != nil {
		return storeErrorf("LocalStore.Put", err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return storeErrorf("LocalStore.Put", err)
	}

	return nil
}

// Get reads the file for name.
func (s *LocalStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, storeErrorf("LocalStore.Get", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storeErrorf("LocalStore.Get", ErrNotFound)
	}
	if err != nil {
		return nil, storeErrorf("LocalStore.Get", err)
	}

	return data, nil
}

// Delete removes the file for name.
func (s *LocalStore) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return storeErrorf("LocalStore.Delete", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(s.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return storeErrorf("LocalStore.Delete", err)
	}

	return nil
}

// List walks the root and returns the names starting with prefix.
// A missing root lists as empty.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == s.root {
				return filepath.SkipDir
			}
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		if name := filepath.ToSlash(rel); strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, storeErrorf("LocalStore.List", err)
	}
	sort.Strings(names)

	return names, nil
}
