// Package jsonfile implements the persistence layer on top of flat JSON
// documents, one file per collection. It is the default backend for local
// runs and needs no external services.
//
// Writers are serialized with a process-level mutex and every write rewrites
// the whole collection file atomically (temp file + rename). Concurrent
// processes sharing one data directory can still lose updates to each other;
// use the postgres backend when that matters.
package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

const (
	productsFile  = "products.json"
	ordersFile    = "orders.json"
	customersFile = "users.json"
)

// Store owns the data directory and the writer lock shared by all
// collections.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore creates the data directory if needed and returns a store rooted
// at it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create data dir %s", dir)
	}

	return &Store{dir: dir}, nil
}

// loadCollection reads one collection file. A missing file is an empty
// collection. Callers must hold the store lock.
func loadCollection[T any](store *Store, filename, key string) ([]T, error) {
	raw, err := os.ReadFile(filepath.Join(store.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}

		return nil, errors.Wrapf(err, "read %s", filename)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(err, "decode %s", filename)
	}

	items := []T{}
	if payload, ok := doc[key]; ok {
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, errors.Wrapf(err, "decode %s.%s", filename, key)
		}
	}

	return items, nil
}

// saveCollection atomically rewrites one collection file. Callers must hold
// the store lock.
func saveCollection[T any](store *Store, filename, key string, items []T) error {
	raw, err := json.MarshalIndent(map[string]any{key: items}, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encode %s", filename)
	}

	tmp, err := os.CreateTemp(store.dir, filename+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "create temp file for %s", filename)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrapf(err, "write temp file for %s", filename)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return errors.Wrapf(err, "close temp file for %s", filename)
	}

	if err := os.Rename(tmpName, filepath.Join(store.dir, filename)); err != nil {
		os.Remove(tmpName)

		return errors.Wrapf(err, "replace %s", filename)
	}

	return nil
}
