package source

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/gnames/symbdb/pkg/frame"
	"github.com/gnames/symbdb/pkg/region"
	"github.com/gnames/symbdb/pkg/schema"
)

// Memory is a Source that keeps tables in memory. It records every query
// it receives.
type Memory struct {
	mu      sync.Mutex
	tables  map[string]*frame.Frame
	queries []Query
	failOn  map[string]error
}

// NewMemory creates an empty in-memory Source.
func NewMemory() *Memory {
	return &Memory{
		tables: make(map[string]*frame.Frame),
		failOn: make(map[string]error),
	}
}

// Add registers a table. A table with the same name is replaced.
func (m *Memory) Add(f *frame.Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[f.Table] = f
}

// FailOn makes every query of a table return err.
func (m *Memory) FailOn(table string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failOn[table] = err
}

// Queries returns all queries received so far.
func (m *Memory) Queries() []Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.queries)
}

// Fetch implements Source.
func (m *Memory) Fetch(ctx context.Context, q Query) (*frame.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, q)

	if err := m.failOn[q.Table.Name]; err != nil {
		return nil, err
	}
	src, ok := m.tables[q.Table.Name]
	if !ok {
		return nil, fmt.Errorf("table %s does not exist", q.Table.Name)
	}

	match, err := matcher(src, q.Where)
	if err != nil {
		return nil, err
	}

	res := frame.New(q.Table)
	for i := range src.Len() {
		if !match(i) {
			continue
		}
		if err = res.AppendRow(src, i); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Close implements Source.
func (m *Memory) Close() error {
	return nil
}

func matcher(f *frame.Frame, p Predicate) (func(int) bool, error) {
	switch w := p.(type) {
	case nil:
		return func(int) bool { return true }, nil
	case In:
		if f.Index(w.Field) < 0 {
			return nil, fmt.Errorf("field %s does not exist in %s", w.Field, f.Table)
		}
		set := make(map[int64]struct{}, len(w.Values))
		for _, v := range w.Values {
			set[v] = struct{}{}
		}
		return func(i int) bool {
			v, ok := f.Int(w.Field, i)
			if !ok {
				return false
			}
			_, ok = set[v]
			return ok
		}, nil
	case Within:
		return func(i int) bool {
			return w.Region.Match(record(f, i))
		}, nil
	default:
		return nil, fmt.Errorf("unknown predicate %T", p)
	}
}

func record(f *frame.Frame, i int) region.Record {
	var res region.Record
	if v, ok := f.Get(schema.Latitude, i); ok && v != nil {
		lat := v.(float64)
		res.Lat = &lat
	}
	if v, ok := f.Get(schema.Longitude, i); ok && v != nil {
		lon := v.(float64)
		res.Lon = &lon
	}
	if v, ok := f.Get(schema.Country, i); ok && v != nil {
		res.Country = v.(string)
	}
	if v, ok := f.Get(schema.StateProvince, i); ok && v != nil {
		res.State = v.(string)
	}
	return res
}
