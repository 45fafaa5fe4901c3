package out

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	progressout "readtrack/internal/modules/progress/port/out"
)

type BadgerKVStore struct {
	db *badger.DB
}

// NewBadgerKVStore opens a badger directory. An empty path opens an
// in-memory instance.
func NewBadgerKVStore(path string) (progressout.KVStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil
	opts.SyncWrites = true
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerKVStore{db: db}, nil
}

func (s *BadgerKVStore) Get(_ context.Context, key string) (string, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return string(value), true, nil
}

func (s *BadgerKVStore) Set(_ context.Context, key, value string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *BadgerKVStore) Close() error {
	return s.db.Close()
}
