// Package closure finds the taxonomic closure of a set of taxa: the taxa
// themselves and all their ancestors, following parent pointers of the
// taxonomic tree to the roots.
//
// Ancestors are collected one level at a time. Every id that was ever
// queued is remembered, so an id is fetched at most once and cycles in
// the source data do not prevent termination.
package closure

import (
	"context"
	"log/slog"
	"slices"

	"github.com/gnames/symbdb/pkg/cache"
	"github.com/gnames/symbdb/pkg/frame"
	"github.com/gnames/symbdb/pkg/schema"
	"github.com/gnames/symbdb/pkg/source"
)

// Resolver computes taxonomic closures.
type Resolver struct {
	src      source.Source
	cache    cache.Cache
	table    schema.Table
	key      string
	progress func(round, newIDs int)
}

// Result of a closure resolution.
type Result struct {
	// Frame contains parent-pointer rows of every taxon of the closure.
	Frame *frame.Frame

	// Rounds is the number of fetch rounds. It is zero when the result
	// came from the cache.
	Rounds int

	// Missing are requested ids that returned no rows.
	Missing []int64

	// FromCache is true when no query was sent to the source.
	FromCache bool
}

// Option changes Resolver settings.
type Option func(*Resolver)

// OptProgress sets a callback that is called after every round with the
// round number and the number of ids queued for the next round.
func OptProgress(fn func(round, newIDs int)) Option {
	return func(r *Resolver) {
		r.progress = fn
	}
}

// OptTable sets the descriptor of the parent-pointer table. The table
// must have integer tid and parenttid fields.
func OptTable(t schema.Table) Option {
	return func(r *Resolver) {
		r.table = t
	}
}

// OptCacheKey sets the key the closure is cached under.
func OptCacheKey(key string) Option {
	return func(r *Resolver) {
		r.key = key
	}
}

// New creates a Resolver.
func New(src source.Source, c cache.Cache, opts ...Option) *Resolver {
	res := &Resolver{
		src:   src,
		cache: c,
		table: schema.TaxaEnumTree,
		key:   cache.KeyTaxaEnumTree,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Resolve returns parent-pointer rows of the initial taxa and all their
// ancestors. When the closure is already cached, the cached table is
// returned and the source is not queried.
func (r *Resolver) Resolve(
	ctx context.Context,
	initial []int64,
) (*Result, error) {
	if r.cache.Has(r.key) {
		f, err := r.cache.Get(r.key)
		if err != nil {
			return nil, err
		}
		slog.Info("Taxonomic closure is taken from cache",
			"key", r.key, "rows", f.Len())
		return &Result{Frame: f, FromCache: true}, nil
	}

	res, err := r.walk(ctx, initial)
	if err != nil {
		return nil, err
	}

	if len(res.Missing) > 0 {
		slog.Warn("Some taxa are absent from the taxonomic tree",
			"table", r.table.Name, "count", len(res.Missing))
	}

	if err = r.cache.Put(r.key, res.Frame); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Resolver) walk(
	ctx context.Context,
	initial []int64,
) (*Result, error) {
	acc := newAccumulator(r.table)
	visited := make(map[int64]struct{})
	frontier := make([]int64, 0, len(initial))
	for _, id := range initial {
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}
		frontier = append(frontier, id)
	}
	slices.Sort(frontier)

	res := &Result{}
	found := make(map[int64]struct{})
	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		q := source.Query{
			Table: r.table,
			Where: source.In{Field: schema.Tid, Values: frontier},
		}
		rows, err := r.src.Fetch(ctx, q)
		if err != nil {
			return nil, FetchError(r.table.Name, res.Rounds+1, err)
		}
		res.Rounds++

		if err = acc.add(rows); err != nil {
			return nil, err
		}

		next := nextFrontier(rows, visited, found)
		for _, id := range frontier {
			if _, ok := found[id]; !ok {
				res.Missing = append(res.Missing, id)
			}
		}

		slog.Debug("Closure round finished",
			"round", res.Rounds, "fetched", rows.Len(), "new", len(next))
		if r.progress != nil {
			r.progress(res.Rounds, len(next))
		}
		frontier = next
	}

	res.Frame = acc.frame
	return res, nil
}

// nextFrontier collects parents of this round's rows that were never
// queued before, marking them visited. Roots and self-references are not
// followed. Ids that have rows are recorded in found.
func nextFrontier(
	rows *frame.Frame,
	visited, found map[int64]struct{},
) []int64 {
	var res []int64
	for i := range rows.Len() {
		tid, ok := rows.Int(schema.Tid, i)
		if !ok {
			continue
		}
		found[tid] = struct{}{}

		parent, ok := rows.Int(schema.ParentTid, i)
		if !ok || parent == tid {
			continue
		}
		if _, ok := visited[parent]; ok {
			continue
		}
		visited[parent] = struct{}{}
		res = append(res, parent)
	}
	slices.Sort(res)
	return res
}
