// SPDX-License-Identifier: MIT

package modelstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
)

// keyPrefix namespaces model blobs inside the database.
const keyPrefix = "model/"

// BadgerOptions configures a BadgerStore.
type BadgerOptions struct {
	// Dir holds the database files. Required unless InMemory is set.
	Dir string

	// InMemory keeps everything in memory (tests, scratch runs).
	InMemory bool

	// Logger receives badger's own log lines. nil silences them.
	Logger *slog.Logger
}

// BadgerStore keeps models in an embedded Badger database.
type BadgerStore struct {
	db *badger.DB
}

// slogBadger routes badger.Logger calls to slog.
type slogBadger struct {
	l *slog.Logger
}

func (s slogBadger) Errorf(f string, args ...any) {
	s.l.Error(strings.TrimSpace(fmt.Sprintf(f, args...)), "component", "badger")
}

func (s slogBadger) Warningf(f string, args ...any) {
	s.l.Warn(strings.TrimSpace(fmt.Sprintf(f, args...)), "component", "badger")
}

func (s slogBadger) Infof(f string, args ...any) {
	s.l.Debug(strings.TrimSpace(fmt.Sprintf(f, args...)), "component", "badger")
}

func (s slogBadger) Debugf(f string, args ...any) {
	s.l.Debug(strings.TrimSpace(fmt.Sprintf(f, args...)), "component", "badger")
}

// silentBadger drops badger output.
type silentBadger struct{}

func (silentBadger) Errorf(string, ...any)   {}
func (silentBadger) Warningf(string, ...any) {}
func (silentBadger) Infof(string, ...any)    {}
func (silentBadger) Debugf(string, ...any)   {}

var (
	_ badger.Logger = slogBadger{}
	_ badger.Logger = silentBadger{}
)

// OpenBadgerStore opens (or creates) the database described by opts.
func OpenBadgerStore(opts BadgerOptions) (*BadgerStore, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, storeErrorf("OpenBadgerStore", errors.New("modelstore: BadgerOptions.Dir is required for on-disk mode"))
	}
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		dbOpts = badger.DefaultOptions("").WithInMemory(true)
	}
	if opts.Logger != nil {
		dbOpts = dbOpts.WithLogger(slogBadger{l: opts.Logger})
	} else {
		dbOpts = dbOpts.WithLogger(silentBadger{})
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, storeErrorf("OpenBadgerStore", err)
	}

	return &BadgerStore{db: db}, nil
}

// Close releases the database.
func (s *BadgerStore) Close() error { return s.db.Close() }

// Put stores data under name.
func (s *BadgerStore) Put(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return storeErrorf("BadgerStore.Put", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+name), data)
	})
	if err != nil {
		return storeErrorf("BadgerStore.Put", err)
	}

	return nil
}

// Get returns a copy of the value stored under name.
func (s *BadgerStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, storeErrorf("BadgerStore.Get", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + name))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, storeErrorf("BadgerStore.Get", ErrNotFound)
	}
	if err != nil {
		return nil, storeErrorf("BadgerStore.Get", err)
	}

	return val, nil
}

// Delete removes name.
func (s *BadgerStore) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return storeErrorf("BadgerStore.Delete", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + name))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return storeErrorf("BadgerStore.Delete", err)
	}

	return nil
}

// List iterates keys only; badger keys are already sorted.
func (s *BadgerStore) List(ctx context.Context, prefix string) ([]string, error) {
	p := []byte(keyPrefix + prefix)
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.PrefetchValues = false
		iterOpts.Prefix = p
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), keyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, storeErrorf("BadgerStore.List", err)
	}

	return names, nil
}
