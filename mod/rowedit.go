package mod

import (
	"fmt"

	"github.com/modforge/respatch/debug"
	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/resolve"
)

// CellAssign sets one cell of the targeted row.
type CellAssign struct {
	Column string
	V      resolve.Value
}

// TokenStore commits one token after the row edit: the source resolver is
// evaluated against the edited row and written into the memory store.
type TokenStore struct {
	ID     int
	Source resolve.Value
}

// applyRowEdits runs the cell assignments and then the token stores of a
// table entry against row. Cells are assigned first so that token stores
// observe the edited state.
func applyRowEdits(c *Ctx, t *ir.Table, row *ir.Row, cells []CellAssign, stores []TokenStore) error {
	ctx := &resolve.Context{Mem: c.Mem, Table: t, Row: row}
	for _, ca := range cells {
		s, err := resolve.EvalString(ca.V, ctx)
		if err != nil {
			return fmt.Errorf("cell %q: %w", ca.Column, err)
		}
		row.SetCell(ca.Column, s)
	}
	for _, ts := range stores {
		v, err := ts.Source.Eval(ctx)
		if err != nil {
			return fmt.Errorf("token %d: %w", ts.ID, err)
		}
		if debug.Op() {
			debug.Logf("store 2DAMEMORY%d = %q\n", ts.ID, v.String())
		}
		c.Mem.SetToken(ts.ID, v)
	}
	return nil
}
