package mod

import (
	"fmt"
	"strconv"

	"github.com/modforge/respatch/debug"
	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/resolve"
)

// AddRow appends a row, or with ExclusiveColumn set behaves as
// update-or-insert: when a row already holds the intended value in the
// exclusive column, that row is edited in place instead.
type AddRow struct {
	Name            string
	ExclusiveColumn string
	Label           resolve.Value
	Cells           []CellAssign
	Stores          []TokenStore
}

func (op *AddRow) ApplyTable(c *Ctx, t *ir.Table) error {
	if op.ExclusiveColumn != "" {
		row, err := op.findExclusive(c, t)
		if err != nil {
			return err
		}
		if row != nil {
			if debug.Op() {
				debug.Logf("%s updates row %d via exclusive column %q\n", op, t.IndexOf(row), op.ExclusiveColumn)
			}
			return applyRowEdits(c, t, row, op.Cells, op.Stores)
		}
	}
	label, err := op.newLabel(c, t)
	if err != nil {
		return err
	}
	row := t.NewRow(label)
	return applyRowEdits(c, t, row, op.Cells, op.Stores)
}

// findExclusive evaluates the intended value of the exclusive column and
// looks the table up by it.
func (op *AddRow) findExclusive(c *Ctx, t *ir.Table) (*ir.Row, error) {
	var v resolve.Value
	for _, ca := range op.Cells {
		if ca.Column == op.ExclusiveColumn {
			v = ca.V
			break
		}
	}
	if v == nil {
		return nil, fmt.Errorf("%s: exclusive column %q has no assigned value", op, op.ExclusiveColumn)
	}
	ctx := &resolve.Context{Mem: c.Mem, Table: t}
	s, err := resolve.EvalString(v, ctx)
	if err != nil {
		return nil, err
	}
	_, row := t.RowByCell(op.ExclusiveColumn, s)
	return row, nil
}

func (op *AddRow) newLabel(c *Ctx, t *ir.Table) (string, error) {
	if op.Label == nil {
		return strconv.Itoa(len(t.Rows)), nil
	}
	ctx := &resolve.Context{Mem: c.Mem, Table: t}
	return resolve.EvalString(op.Label, ctx)
}

func (op *AddRow) String() string {
	return "AddRow " + op.Name
}
