// Package cache provides the contract of the table cache. Each query
// result is kept as one artifact under a fixed key. An artifact is created
// once and never invalidated automatically: its presence is the only
// signal that a query does not need to run again.
//
// At most one process may use a cache location at a time, there is no
// locking.
package cache

import (
	"context"

	"github.com/gnames/symbdb/pkg/frame"
)

// Keys of cached tables.
const (
	KeyOccurrenceIDs = "occid"
	KeyOccurrences   = "tbl_omoccurrences"
	KeyCollections   = "tbl_omcollections"
	KeyInstitutions  = "tbl_institutions"
	KeyTaxaEnumTree  = "tbl_taxaenumtree"
	KeyTaxa          = "tbl_taxa"
	KeyTaxonUnits    = "tbl_taxonunits"
)

// Keys returns all keys in the order they are created during a dump.
func Keys() []string {
	return []string{
		KeyTaxonUnits, KeyOccurrenceIDs, KeyOccurrences, KeyCollections,
		KeyInstitutions, KeyTaxaEnumTree, KeyTaxa,
	}
}

// Cache keeps query results by key.
type Cache interface {
	// Has reports if an artifact exists for the key.
	Has(key string) bool

	// Get returns the artifact of the key. It is an error to Get a key
	// that does not exist.
	Get(key string) (*frame.Frame, error)

	// Put stores an artifact under the key, replacing an existing one.
	Put(key string, f *frame.Frame) error
}

// Manager is a Cache that can also be inspected and cleaned up.
type Manager interface {
	Cache

	// List returns keys of existing artifacts.
	List() ([]string, error)

	// Delete removes the artifact of the key. Deleting a missing key is
	// not an error.
	Delete(key string) error

	// Close releases resources of the cache.
	Close() error
}

// Memoize returns the artifact of the key if it exists, without calling
// fetch. Otherwise it calls fetch and stores the result. Nothing is stored
// when fetch fails.
func Memoize(
	ctx context.Context,
	c Cache,
	key string,
	fetch func(context.Context) (*frame.Frame, error),
) (*frame.Frame, bool, error) {
	if c.Has(key) {
		res, err := c.Get(key)
		if err != nil {
			return nil, false, err
		}
		return res, true, nil
	}

	res, err := fetch(ctx)
	if err != nil {
		return nil, false, err
	}
	if err = c.Put(key, res); err != nil {
		return nil, false, err
	}
	return res, false, nil
}
