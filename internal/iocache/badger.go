package iocache

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/gnames/gnsys"
	"github.com/gnames/symbdb/pkg/frame"
)

// BadgerCache keeps artifacts in a Badger v4 key/value store.
type BadgerCache struct {
	dir string
	db  *badger.DB
}

// NewBadgerCache opens (or creates) a Badger store in dir.
func NewBadgerCache(dir string) (*BadgerCache, error) {
	if err := gnsys.MakeDir(dir); err != nil {
		slog.Error("Cannot create cache directory", "error", err, "dir", dir)
		return nil, OpenError(dir, err)
	}

	options := badger.DefaultOptions(dir)
	options.Logger = nil // Disable badger's internal logging

	db, err := badger.Open(options)
	if err != nil {
		slog.Error("Cannot open cache database", "error", err, "dir", dir)
		return nil, OpenError(dir, err)
	}
	slog.Info("Cache database opened", "dir", dir)
	return &BadgerCache{dir: dir, db: db}, nil
}

// Has implements cache.Cache.
func (c *BadgerCache) Has(key string) bool {
	err := c.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		return err
	})
	return err == nil
}

// Get implements cache.Cache.
func (c *BadgerCache) Get(key string) (*frame.Frame, error) {
	var val []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, ReadError(key, err)
	}

	res, err := decode(bytes.NewReader(val))
	if err != nil {
		slog.Error("Cannot decode cached table", "error", err, "key", key)
		return nil, DecodeError(key, c.dir, err)
	}
	slog.Debug("Cache hit", "key", key, "rows", res.Len())
	return res, nil
}

// Put implements cache.Cache. A Badger transaction either stores the
// whole value or nothing.
func (c *BadgerCache) Put(key string, f *frame.Frame) error {
	val, err := encode(f)
	if err != nil {
		return WriteError(key, err)
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), val)
	})
	if err != nil {
		return WriteError(key, err)
	}
	slog.Debug("Table cached", "key", key, "rows", f.Len(), "bytes", len(val))
	return nil
}

// List implements cache.Manager.
func (c *BadgerCache) List() ([]string, error) {
	var res []string
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			res = append(res, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, ReadError(c.dir, err)
	}
	slices.Sort(res)
	return res, nil
}

// Delete implements cache.Manager.
func (c *BadgerCache) Delete(key string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return DeleteError(key, err)
	}
	return nil
}

// Close implements cache.Manager.
func (c *BadgerCache) Close() error {
	if c.db == nil {
		slog.Warn("Cache database is already closed")
		return nil
	}

	err := c.db.Close()
	c.db = nil
	if err != nil {
		slog.Error("Cannot close cache database", "error", err)
		return err
	}

	slog.Info("Cache database closed")
	return nil
}
