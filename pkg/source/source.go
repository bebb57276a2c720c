// Package source describes the read-only relational database records are
// extracted from. Queries are expressed as a table descriptor and a
// predicate, so the same query can be answered by a SQL server or by an
// in-memory table.
package source

import (
	"context"

	"github.com/gnames/symbdb/pkg/frame"
	"github.com/gnames/symbdb/pkg/region"
	"github.com/gnames/symbdb/pkg/schema"
)

// Source answers queries against the source database.
type Source interface {
	// Fetch runs a query and returns its result as a Frame that follows
	// the query's table descriptor.
	Fetch(ctx context.Context, q Query) (*frame.Frame, error)

	// Close releases resources of the Source.
	Close() error
}

// Query selects fields of Table from rows that satisfy Where.
// A nil Where selects all rows.
type Query struct {
	Table schema.Table
	Where Predicate
}

// Predicate is a row filter. It is either In or Within.
type Predicate interface {
	isPredicate()
}

// In selects rows where an integer field is one of Values. Rows with NULL
// in the field never match.
type In struct {
	Field  string
	Values []int64
}

func (In) isPredicate() {}

// Within selects occurrence rows that belong to a Region.
type Within struct {
	Region region.Region
}

func (Within) isPredicate() {}

// Empty reports if a predicate can never match any row, so a query with
// it does not need to be sent to the Source.
func Empty(p Predicate) bool {
	in, ok := p.(In)
	return ok && len(in.Values) == 0
}
