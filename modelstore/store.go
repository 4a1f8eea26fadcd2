// SPDX-License-Identifier: MIT

package modelstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/katalvlaran/esh/model"
)

var (
	// ErrNotFound is returned when a name does not exist.
	ErrNotFound = errors.New("modelstore: not found")

	// ErrInvalidName rejects empty, absolute or escaping names.
	ErrInvalidName = errors.New("modelstore: invalid name")
)

// Store is a named blob store.
type Store interface {
	// Put writes data under name, replacing any previous value.
	Put(ctx context.Context, name string, data []byte) error
	// Get returns the data stored under name or ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)
	// Delete removes name. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the names starting with prefix, sorted ascending.
	List(ctx context.Context, prefix string) ([]string, error)
}

func storeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// checkName validates a slash-separated relative name.
func checkName(name string) error {
	if name == "" || strings.HasPrefix(name, "/") || path.Clean(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." || seg == "." {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}

	return nil
}

// joinKey prefixes name with a backend root, if any.
func joinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return path.Join(prefix, name)
}

// listKey is the listing prefix for names starting with prefix below root.
func listKey(root, prefix string) string {
	if root == "" {
		return prefix
	}

	return strings.TrimSuffix(root, "/") + "/" + prefix
}

// trimKey is the inverse of joinKey.
func trimKey(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return strings.TrimPrefix(strings.TrimPrefix(key, prefix), "/")
}

// SaveModel encodes m and stores it under name.
func SaveModel(ctx context.Context, s Store, name string, m *model.Model, c model.Compression) error {
	blob, err := model.Encode(m, c)
	if err != nil {
		return storeErrorf("SaveModel", err)
	}
	if err = s.Put(ctx, name, blob); err != nil {
		return storeErrorf("SaveModel", err)
	}

	return nil
}

// LoadModel fetches and decodes the model stored under name.
func LoadModel(ctx context.Context, s Store, name string) (*model.Model, error) {
	blob, err := s.Get(ctx, name)
	if err != nil {
		return nil, storeErrorf("LoadModel", err)
	}
	m, err := model.Decode(blob)
	if err != nil {
		return nil, storeErrorf("LoadModel", err)
	}

	return m, nil
}
