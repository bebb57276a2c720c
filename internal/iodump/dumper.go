// Package iodump implements the symbdb.Dumper interface. It runs all
// phases of a snapshot extraction against a source database and writes
// the output SQLite file.
// This is an impure I/O package.
package iodump

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/symbdb/internal/ioschema"
	"github.com/gnames/symbdb/pkg/cache"
	"github.com/gnames/symbdb/pkg/closure"
	"github.com/gnames/symbdb/pkg/config"
	"github.com/gnames/symbdb/pkg/extract"
	"github.com/gnames/symbdb/pkg/frame"
	"github.com/gnames/symbdb/pkg/region"
	"github.com/gnames/symbdb/pkg/schema"
	"github.com/gnames/symbdb/pkg/source"
	"github.com/gnames/symbdb/pkg/symbdb"
)

const phases = 8

// connector is a Source that has to be connected before the first query.
type connector interface {
	Connect(ctx context.Context) error
}

// dumper implements the Dumper interface.
type dumper struct {
	cfg   *config.Config
	src   source.Source
	cache cache.Cache
	quiet bool
}

// Option changes settings of a Dumper.
type Option func(*dumper)

// OptQuiet turns off console messages and progress bars. Logs are still
// written.
func OptQuiet(b bool) Option {
	return func(d *dumper) {
		d.quiet = b
	}
}

// New creates a new Dumper. If src needs a connection, it is connected
// only when some table is not cached yet.
func New(
	cfg *config.Config,
	src source.Source,
	c cache.Cache,
	opts ...Option,
) symbdb.Dumper {
	res := &dumper{cfg: cfg, src: src, cache: c}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Region returns the region of the config.
func Region(cfg *config.Config) region.Region {
	box := region.BBox{
		MinLat: cfg.Filter.MinLatitude,
		MaxLat: cfg.Filter.MaxLatitude,
		MinLon: cfg.Filter.MinLongitude,
		MaxLon: cfg.Filter.MaxLongitude,
	}
	return region.New(box, cfg.Filter.Countries, cfg.Filter.States)
}

// Dump runs all phases in order. Any error stops the run.
func (d *dumper) Dump(ctx context.Context) (*symbdb.Summary, error) {
	startTime := time.Now()
	slog.Info("Starting snapshot extraction")

	if err := d.connect(ctx); err != nil {
		return nil, err
	}

	ext := extract.New(d.src, d.cache)
	res := &symbdb.Summary{
		Output: d.cfg.OutputPath(),
		Counts: make(map[string]int),
	}
	var tables []*frame.Frame
	keep := func(f *frame.Frame) {
		tables = append(tables, f)
		res.Counts[f.Table] = f.Len()
	}

	d.info("(1/%d) Extracting taxonomic ranks...", phases)
	units, err := ext.TaxonUnits(ctx)
	if err != nil {
		return nil, err
	}
	keep(units)
	d.rows(units)

	if err = d.checkCancel(ctx); err != nil {
		return nil, err
	}
	d.info("(2/%d) Selecting occurrences of the region...", phases)
	occIDs, err := ext.Occurrences(ctx, Region(d.cfg))
	if err != nil {
		return nil, err
	}
	d.rows(occIDs)

	if err = d.checkCancel(ctx); err != nil {
		return nil, err
	}
	d.info("(3/%d) Extracting occurrence records...", phases)
	occs, err := ext.OccurrenceRecords(ctx, occIDs.Distinct(schema.OccID))
	if err != nil {
		return nil, err
	}
	d.rows(occs)

	if err = d.checkCancel(ctx); err != nil {
		return nil, err
	}
	d.info("(4/%d) Extracting collections...", phases)
	colls, err := ext.Collections(ctx, occIDs.Distinct(schema.CollID))
	if err != nil {
		return nil, err
	}
	d.rows(colls)

	if err = d.checkCancel(ctx); err != nil {
		return nil, err
	}
	d.info("(5/%d) Extracting institutions...", phases)
	insts, err := ext.Institutions(ctx, colls.Distinct(schema.IID))
	if err != nil {
		return nil, err
	}
	keep(insts)
	keep(colls)
	d.rows(insts)

	if err = d.checkCancel(ctx); err != nil {
		return nil, err
	}
	d.info("(6/%d) Resolving taxonomic closure...", phases)
	resolver := closure.New(d.src, d.cache, closure.OptProgress(d.round))
	cl, err := resolver.Resolve(ctx, occIDs.Distinct(schema.TidInterpreted))
	if err != nil {
		return nil, err
	}
	keep(cl.Frame)
	res.ClosureRounds = cl.Rounds
	d.rows(cl.Frame)

	if err = d.checkCancel(ctx); err != nil {
		return nil, err
	}
	d.info("(7/%d) Extracting taxa...", phases)
	taxa, err := ext.Taxa(ctx, cl.Frame.Distinct(schema.Tid))
	if err != nil {
		return nil, err
	}
	keep(taxa)
	keep(occs)
	d.rows(taxa)

	if err = d.checkCancel(ctx); err != nil {
		return nil, err
	}
	d.info("(8/%d) Writing <em>%s</em>...", phases, res.Output)
	out := ioschema.New(res.Output, schema.CreateScript,
		ioschema.OptWithCanonicals(d.cfg.Output.WithCanonicals),
		ioschema.OptJobsNumber(d.cfg.JobsNumber),
		ioschema.OptProgress(!d.quiet),
		ioschema.OptMetadata(d.metadata()),
	)
	res.Created, err = out.Materialize(ctx, tables...)
	if err != nil {
		return nil, err
	}
	if !res.Created {
		d.message("<em>Output file exists already, it is not changed</em>")
	}

	res.Duration = time.Since(startTime)
	slog.Info("Snapshot extraction complete",
		"output", res.Output,
		"created", res.Created,
		"closure_rounds", res.ClosureRounds,
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	return res, nil
}

// connect connects the source unless every table is cached already.
func (d *dumper) connect(ctx context.Context) error {
	c, ok := d.src.(connector)
	if !ok {
		return nil
	}
	for _, k := range cache.Keys() {
		if !d.cache.Has(k) {
			return c.Connect(ctx)
		}
	}
	slog.Info("All tables are cached, source database is not used")
	return nil
}

func (d *dumper) checkCancel(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return CancelledError(ctx.Err())
	default:
		return nil
	}
}

func (d *dumper) round(round, newIDs int) {
	slog.Info("Closure round finished", "round", round, "new_ids", newIDs)
	if newIDs > 0 {
		d.message("Round %d: found %s new taxa", round,
			humanize.Comma(int64(newIDs)))
	}
}

func (d *dumper) rows(f *frame.Frame) {
	d.message("<em>%s: %s rows</em>", f.Table, humanize.Comma(int64(f.Len())))
}

func (d *dumper) metadata() map[string]string {
	f := d.cfg.Filter
	return map[string]string{
		"source_driver":   d.cfg.Source.Driver,
		"source_database": d.cfg.Source.Database,
		"bbox": fmt.Sprintf("%g,%g,%g,%g",
			f.MinLatitude, f.MaxLatitude, f.MinLongitude, f.MaxLongitude),
		"countries": strings.Join(f.Countries, ";"),
		"states":    strings.Join(f.States, ";"),
	}
}

func (d *dumper) info(msg string, vars ...any) {
	if !d.quiet {
		gn.Info(msg, vars...)
	}
}

func (d *dumper) message(msg string, vars ...any) {
	if !d.quiet {
		gn.Message(msg, vars...)
	}
}
