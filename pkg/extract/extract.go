// Package extract selects the records of a snapshot from the source
// database. Occurrences are selected by a region, all other tables by
// membership of their keys in ids collected from previously extracted
// tables. Every result is memoized in the table cache.
package extract

import (
	"context"
	"log/slog"

	"github.com/gnames/symbdb/pkg/cache"
	"github.com/gnames/symbdb/pkg/frame"
	"github.com/gnames/symbdb/pkg/region"
	"github.com/gnames/symbdb/pkg/schema"
	"github.com/gnames/symbdb/pkg/source"
)

// Extractor runs filtered queries against a Source.
type Extractor struct {
	src   source.Source
	cache cache.Cache
}

// New creates an Extractor.
func New(src source.Source, c cache.Cache) *Extractor {
	return &Extractor{src: src, cache: c}
}

// Occurrences returns occid, collid and tidinterpreted of occurrences
// that belong to the region.
func (e *Extractor) Occurrences(
	ctx context.Context,
	rgn region.Region,
) (*frame.Frame, error) {
	q := source.Query{
		Table: schema.OccurrenceIDs,
		Where: source.Within{Region: rgn},
	}
	res, hit, err := cache.Memoize(ctx, e.cache, cache.KeyOccurrenceIDs,
		func(ctx context.Context) (*frame.Frame, error) {
			res, err := e.src.Fetch(ctx, q)
			if err != nil {
				return nil, OccurrencesError(err)
			}
			return res, nil
		},
	)
	if err != nil {
		return nil, err
	}
	logResult(cache.KeyOccurrenceIDs, res, hit)
	return res, nil
}

// OccurrenceRecords returns full records of the given occurrences.
func (e *Extractor) OccurrenceRecords(
	ctx context.Context,
	occids []int64,
) (*frame.Frame, error) {
	return e.members(ctx, cache.KeyOccurrences,
		schema.Occurrences, schema.OccID, occids)
}

// Collections returns collections with the given ids.
func (e *Extractor) Collections(
	ctx context.Context,
	collids []int64,
) (*frame.Frame, error) {
	return e.members(ctx, cache.KeyCollections,
		schema.Collections, schema.CollID, collids)
}

// Institutions returns institutions with the given ids.
func (e *Extractor) Institutions(
	ctx context.Context,
	iids []int64,
) (*frame.Frame, error) {
	return e.members(ctx, cache.KeyInstitutions,
		schema.Institutions, schema.IID, iids)
}

// Taxa returns taxa with the given ids.
func (e *Extractor) Taxa(
	ctx context.Context,
	tids []int64,
) (*frame.Frame, error) {
	return e.members(ctx, cache.KeyTaxa, schema.Taxa, schema.Tid, tids)
}

// TaxonUnits returns the whole table of taxonomic ranks.
func (e *Extractor) TaxonUnits(ctx context.Context) (*frame.Frame, error) {
	q := source.Query{Table: schema.TaxonUnits}
	res, hit, err := cache.Memoize(ctx, e.cache, cache.KeyTaxonUnits,
		func(ctx context.Context) (*frame.Frame, error) {
			res, err := e.src.Fetch(ctx, q)
			if err != nil {
				return nil, TableError(q.Table.Name, err)
			}
			return res, nil
		},
	)
	if err != nil {
		return nil, err
	}
	logResult(cache.KeyTaxonUnits, res, hit)
	return res, nil
}

// members selects rows of a table whose field is one of ids. An empty
// list of ids does not reach the source, but its empty result is cached
// like any other.
func (e *Extractor) members(
	ctx context.Context,
	key string,
	tbl schema.Table,
	field string,
	ids []int64,
) (*frame.Frame, error) {
	q := source.Query{
		Table: tbl,
		Where: source.In{Field: field, Values: ids},
	}
	res, hit, err := cache.Memoize(ctx, e.cache, key,
		func(ctx context.Context) (*frame.Frame, error) {
			if source.Empty(q.Where) {
				return frame.New(tbl), nil
			}
			res, err := e.src.Fetch(ctx, q)
			if err != nil {
				return nil, TableError(tbl.Name, err)
			}
			return res, nil
		},
	)
	if err != nil {
		return nil, err
	}
	logResult(key, res, hit)
	return res, nil
}

func logResult(key string, f *frame.Frame, hit bool) {
	if hit {
		slog.Info("Table is taken from cache", "key", key, "rows", f.Len())
		return
	}
	slog.Info("Table is extracted from source", "key", key, "rows", f.Len())
}
