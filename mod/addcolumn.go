package mod

import (
	"fmt"

	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/resolve"
)

// IndexOverride sets the new column's value at a row position.
type IndexOverride struct {
	Index int
	V     resolve.Value
}

// LabelOverride sets the new column's value at the first row with a label.
type LabelOverride struct {
	Label string
	V     resolve.Value
}

// AddColumn appends a column seeded with Default to every row, applies the
// positional and label-keyed overrides, and then runs token stores whose
// sources read the new column's final value at a row. The stores persist
// the value, not the row identity.
type AddColumn struct {
	Name    string
	Column  string
	Default string
	Indexed []IndexOverride
	Labeled []LabelOverride
	Stores  []TokenStore
}

func (op *AddColumn) ApplyTable(c *Ctx, t *ir.Table) error {
	if err := t.AddColumn(op.Column, op.Default); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, ov := range op.Indexed {
		row := t.RowAt(ov.Index)
		if row == nil {
			c.Warnf("%s: no row at %d, override skipped", op, ov.Index)
			continue
		}
		if err := op.override(c, t, row, ov.V); err != nil {
			return err
		}
	}
	for _, ov := range op.Labeled {
		_, row := t.RowByLabel(ov.Label)
		if row == nil {
			c.Warnf("%s: no row labeled %q, override skipped", op, ov.Label)
			continue
		}
		if err := op.override(c, t, row, ov.V); err != nil {
			return err
		}
	}
	ctx := &resolve.Context{Mem: c.Mem, Table: t, Column: op.Column}
	for _, ts := range op.Stores {
		v, err := ts.Source.Eval(ctx)
		if err != nil {
			return fmt.Errorf("%s: token %d: %w", op, ts.ID, err)
		}
		c.Mem.SetToken(ts.ID, v)
	}
	return nil
}

func (op *AddColumn) override(c *Ctx, t *ir.Table, row *ir.Row, v resolve.Value) error {
	ctx := &resolve.Context{Mem: c.Mem, Table: t, Row: row, Column: op.Column}
	s, err := resolve.EvalString(v, ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	row.SetCell(op.Column, s)
	return nil
}

func (op *AddColumn) String() string {
	return "AddColumn " + op.Name
}
