package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"

	badger "github.com/dgraph-io/badger/v4"
)

var documentKey = []byte("trainlog/user-data")

// BadgerStore is the durable backend of the persistence facade: writes
// to it happen asynchronously and are best effort, reads are preferred
// over the file store on load.
type BadgerStore struct {
	db *badger.DB
}

func NewBadgerStore(dataDir string) (*BadgerStore, error) {
	if dataDir == "" {
		return nil, errors.New("data dir cannot be empty")
	}
	dbPath := path.Join(dataDir, "badger")
	if err := os.MkdirAll(dbPath, 0o755); err != nil {
		return nil, fmt.Errorf("create badger dir %s: %w", dbPath, err)
	}

	opts := badger.DefaultOptions(dbPath).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	return &BadgerStore{db: db}, nil
}

// NewInMemoryBadgerStore opens a throwaway in-memory instance, used in tests.
func NewInMemoryBadgerStore() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger db: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (bs *BadgerStore) Name() string {
	return "badger"
}

func (bs *BadgerStore) Read(_ context.Context) ([]byte, error) {
	var data []byte
	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(documentKey)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("read document from badger: %w", err)
	}
	return data, nil
}

func (bs *BadgerStore) Write(_ context.Context, data []byte) error {
	err := bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(documentKey, data)
	})
	if err != nil {
		return fmt.Errorf("write document to badger: %w", err)
	}
	return nil
}

func (bs *BadgerStore) Delete(_ context.Context) error {
	err := bs.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(documentKey)
	})
	if err != nil {
		return fmt.Errorf("delete document from badger: %w", err)
	}
	return nil
}

func (bs *BadgerStore) Close() error {
	return bs.db.Close()
}
