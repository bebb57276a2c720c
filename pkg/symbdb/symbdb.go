// Package symbdb defines top-level contracts of a snapshot extraction.
package symbdb

import (
	"context"
	"time"

	"github.com/gnames/symbdb/pkg/frame"
)

// Dumper runs a whole extraction: it selects records of a region from the
// source database, resolves their taxonomic closure and writes the
// snapshot file.
// Config is provided during construction.
type Dumper interface {
	// Dump runs all phases of the extraction. Tables that are already
	// cached are not queried again.
	Dump(ctx context.Context) (*Summary, error)
}

// Materializer writes a snapshot into a SQLite file.
type Materializer interface {
	// Exists reports if the output file is present.
	Exists() bool

	// Create creates an empty output database from the schema script.
	// It returns false without an error if the file already exists.
	Create(ctx context.Context) (bool, error)

	// Materialize creates the output database and populates it with
	// tables. The file appears only after all data and a completeness
	// marker are written. It returns false without an error if the file
	// already exists.
	Materialize(ctx context.Context, tables ...*frame.Frame) (bool, error)
}

// Summary describes a finished extraction.
type Summary struct {
	// Output is the path to the snapshot file.
	Output string

	// Created is false when the snapshot file already existed.
	Created bool

	// Counts are numbers of rows per table.
	Counts map[string]int

	// ClosureRounds is the number of rounds of the taxonomic closure,
	// zero if the closure was cached.
	ClosureRounds int

	// Duration is the wall time of the extraction.
	Duration time.Duration
}
