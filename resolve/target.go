package resolve

import (
	"fmt"
	"strconv"

	"github.com/modforge/respatch/debug"
	"github.com/modforge/respatch/memory"
)

// Target locates the row a table op acts on. Find returns the row's current
// position, or -1 when no row matches; hard failures (undefined tokens, a
// path where a scalar is needed) are errors.
type Target interface {
	Find(ctx *Context) (int, error)
	String() string
}

// ByIndex targets the row at an explicit position. The position itself may
// be memory-driven.
type ByIndex struct {
	V Value
}

func (t ByIndex) Find(ctx *Context) (int, error) {
	s, err := EvalString(t.V, ctx)
	if err != nil {
		return -1, err
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, fmt.Errorf("%w: row index %q is not a number", memory.ErrTypeMismatch, s)
	}
	if ctx.Table.RowAt(i) == nil {
		return -1, nil
	}
	return i, nil
}

func (t ByIndex) String() string {
	return fmt.Sprintf("row at %s", t.V)
}

// ByLabel targets the first row with a matching label.
type ByLabel struct {
	V Value
}

func (t ByLabel) Find(ctx *Context) (int, error) {
	label, err := EvalString(t.V, ctx)
	if err != nil {
		return -1, err
	}
	i, _ := ctx.Table.RowByLabel(label)
	if debug.Resolve() {
		debug.Logf("target label %q -> row %d\n", label, i)
	}
	return i, nil
}

func (t ByLabel) String() string {
	return fmt.Sprintf("row labeled %s", t.V)
}

// ByCell targets the first row whose cell in Column matches.
type ByCell struct {
	Column string
	V      Value
}

func (t ByCell) Find(ctx *Context) (int, error) {
	v, err := EvalString(t.V, ctx)
	if err != nil {
		return -1, err
	}
	i, _ := ctx.Table.RowByCell(t.Column, v)
	return i, nil
}

func (t ByCell) String() string {
	return fmt.Sprintf("row with %s=%s", t.Column, t.V)
}
