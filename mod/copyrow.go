package mod

import (
	"fmt"
	"strconv"

	"github.com/modforge/respatch/debug"
	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/resolve"
)

// CopyRow clones an existing row into a new one (or, with ExclusiveColumn,
// onto an already-matching row) and then applies cell overrides. A missing
// source is fatal: there is nothing to clone from.
type CopyRow struct {
	Name            string
	Source          resolve.Target
	ExclusiveColumn string
	NewLabel        resolve.Value
	Cells           []CellAssign
	Stores          []TokenStore
}

func (op *CopyRow) ApplyTable(c *Ctx, t *ir.Table) error {
	ctx := &resolve.Context{Mem: c.Mem, Table: t}
	si, err := op.Source.Find(ctx)
	if err != nil {
		return err
	}
	if si < 0 {
		return fmt.Errorf("%w: %s: no %s", ErrSourceNotFound, op, op.Source)
	}
	src := t.Rows[si]

	dst, err := op.findExclusive(c, t, src)
	if err != nil {
		return err
	}
	if dst == nil {
		label, err := op.newLabel(c, t)
		if err != nil {
			return err
		}
		dst = t.NewRow(label)
	} else if debug.Op() {
		debug.Logf("%s updates row %d via exclusive column %q\n", op, t.IndexOf(dst), op.ExclusiveColumn)
	}
	for _, col := range t.Columns {
		dst.SetCell(col, src.Cell(col))
	}
	return applyRowEdits(c, t, dst, op.Cells, op.Stores)
}

// findExclusive looks up the row the copy would collide with: the intended
// value of the exclusive column is the override when one is given, else the
// source row's current value.
func (op *CopyRow) findExclusive(c *Ctx, t *ir.Table, src *ir.Row) (*ir.Row, error) {
	if op.ExclusiveColumn == "" {
		return nil, nil
	}
	v := src.Cell(op.ExclusiveColumn)
	for _, ca := range op.Cells {
		if ca.Column != op.ExclusiveColumn {
			continue
		}
		ctx := &resolve.Context{Mem: c.Mem, Table: t, Row: src}
		s, err := resolve.EvalString(ca.V, ctx)
		if err != nil {
			return nil, err
		}
		v = s
		break
	}
	_, row := t.RowByCell(op.ExclusiveColumn, v)
	return row, nil
}

func (op *CopyRow) newLabel(c *Ctx, t *ir.Table) (string, error) {
	if op.NewLabel == nil {
		return strconv.Itoa(len(t.Rows)), nil
	}
	ctx := &resolve.Context{Mem: c.Mem, Table: t}
	return resolve.EvalString(op.NewLabel, ctx)
}

func (op *CopyRow) String() string {
	return "CopyRow " + op.Name
}
