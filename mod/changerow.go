package mod

import (
	"github.com/modforge/respatch/debug"
	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/resolve"
)

// ChangeRow edits the cells of an existing row. A missing target is logged
// and skipped; the rest of the entry list continues.
type ChangeRow struct {
	Name   string
	Target resolve.Target
	Cells  []CellAssign
	Stores []TokenStore
}

func (op *ChangeRow) ApplyTable(c *Ctx, t *ir.Table) error {
	ctx := &resolve.Context{Mem: c.Mem, Table: t}
	i, err := op.Target.Find(ctx)
	if err != nil {
		return err
	}
	if i < 0 {
		c.Warnf("%s: no %s, skipped", op, op.Target)
		return nil
	}
	if debug.Op() {
		debug.Logf("%s at row %d\n", op, i)
	}
	return applyRowEdits(c, t, t.Rows[i], op.Cells, op.Stores)
}

func (op *ChangeRow) String() string {
	return "ChangeRow " + op.Name
}
