package closure

import (
	"github.com/gnames/symbdb/pkg/frame"
	"github.com/gnames/symbdb/pkg/schema"
)

type edge struct {
	tid, parent int64
	root        bool
}

// accumulator collects rows of all rounds, dropping rows that repeat an
// already collected (tid, parenttid) pair.
type accumulator struct {
	frame *frame.Frame
	seen  map[edge]struct{}
}

func newAccumulator(t schema.Table) *accumulator {
	return &accumulator{
		frame: frame.New(t),
		seen:  make(map[edge]struct{}),
	}
}

func (a *accumulator) add(rows *frame.Frame) error {
	for i := range rows.Len() {
		tid, _ := rows.Int(schema.Tid, i)
		parent, ok := rows.Int(schema.ParentTid, i)
		e := edge{tid: tid, parent: parent, root: !ok}
		if _, dup := a.seen[e]; dup {
			continue
		}
		a.seen[e] = struct{}{}
		if err := a.frame.AppendRow(rows, i); err != nil {
			return err
		}
	}
	return nil
}
