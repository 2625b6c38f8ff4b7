// ABOUTME: Badger-backed key-value training log store.
// ABOUTME: Records are JSON values under typed key prefixes, resolved by ID prefix seek.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/sirupsen/logrus"

	"github.com/agranty/no-days-lost-sub000/internal/metrics"
)

// BackendKV labels Badger operations in metrics.
const BackendKV = "kv"

const (
	BodyPartPrefix   = "bodypart:"
	ExercisePrefix   = "exercise:"
	SessionPrefix    = "session:"
	SetPrefix        = "set:"
	BodyWeightPrefix = "bodyweight:"
)

// KV is a Repository backed by an embedded Badger database.
// Badger has no foreign keys, so cascades and reference checks are done here.
type KV struct {
	db   *badger.DB
	path string
}

// KVDir returns the Badger directory inside a data directory.
func KVDir(dataDir string) string {
	return filepath.Join(dataDir, "kv")
}

// OpenKV opens or creates a Badger database in dir.
// Badger's internal logging goes to log at its own levels; a nil log silences it.
func OpenKV(dir string, log *logrus.Logger) (*KV, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return openKV(badger.DefaultOptions(dir), dir, log)
}

// OpenKVInMemory opens a Badger database that lives only in memory.
func OpenKVInMemory() (*KV, error) {
	return openKV(badger.DefaultOptions("").WithInMemory(true), "", nil)
}

func openKV(opts badger.Options, dir string, log *logrus.Logger) (*KV, error) {
	if log != nil {
		opts = opts.WithLogger(log.WithField("component", "badger"))
	} else {
		opts = opts.WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open kv store: %w", err)
	}
	return &KV{db: db, path: dir}, nil
}

// Path returns the Badger directory, empty for in-memory stores.
func (k *KV) Path() string {
	return k.path
}

// Close closes the Badger database.
func (k *KV) Close() error {
	if k.db != nil {
		return k.db.Close()
	}
	return nil
}

// observe starts timing op; the returned func records the final value of *err.
func (k *KV) observe(op string, err *error) func() {
	done := metrics.ObserveStore(BackendKV, op)
	return func() { done(*err) }
}

// insert stores v under key, failing if the key already exists.
func (k *KV) insert(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return k.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if err == nil {
			return fmt.Errorf("record already exists: %s", key)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set([]byte(key), data)
	})
}

// deleteKeys removes every key in one transaction.
func (k *KV) deleteKeys(keys ...string) error {
	return k.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

// listByPrefix returns all values with keys matching the given prefix.
func (k *KV) listByPrefix(prefix string) ([][]byte, error) {
	var results [][]byte
	err := k.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			results = append(results, val)
		}
		return nil
	})
	return results, err
}

// resolveKey finds the single key under typePrefix whose ID starts with idPrefix.
func (k *KV) resolveKey(typePrefix, idPrefix string) (string, error) {
	if idPrefix == "" {
		return "", notFound("empty ID")
	}

	var matches []string
	err := k.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(typePrefix + strings.ToLower(idPrefix))
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			matches = append(matches, string(it.Item().KeyCopy(nil)))
			if len(matches) > 1 {
				break
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if len(matches) == 0 {
		return "", notFound(idPrefix)
	}
	if len(matches) > 1 {
		return "", ambiguous(idPrefix)
	}
	return matches[0], nil
}

// getByIDPrefix retrieves a single value by ID prefix match.
func (k *KV) getByIDPrefix(typePrefix, idPrefix string) ([]byte, error) {
	key, err := k.resolveKey(typePrefix, idPrefix)
	if err != nil {
		return nil, err
	}

	var val []byte
	err = k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, notFound(idPrefix)
	}
	return val, err
}

// getRecord loads and decodes one record by ID prefix.
func getRecord[T any](k *KV, typePrefix, idPrefix string) (*T, error) {
	data, err := k.getByIDPrefix(typePrefix, idPrefix)
	if err != nil {
		return nil, err
	}
	return unmarshalJSON[T](data)
}

// listRecords decodes every record under typePrefix, skipping unreadable values.
func listRecords[T any](k *KV, typePrefix string) ([]*T, error) {
	all, err := k.listByPrefix(typePrefix)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(all))
	for _, data := range all {
		v, err := unmarshalJSON[T](data)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// unmarshalJSON is a helper to unmarshal JSON data.
func unmarshalJSON[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
