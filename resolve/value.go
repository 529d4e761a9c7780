package resolve

import (
	"fmt"
	"strconv"

	"github.com/modforge/respatch/debug"
	"github.com/modforge/respatch/memory"
)

// Value resolves to a concrete value against the apply-time context. The
// result is a memory.Value: memory references may surface a structural
// path, and it is the consumer's job to accept or reject that.
type Value interface {
	Eval(ctx *Context) (memory.Value, error)
	String() string
}

// Constant is a literal, used verbatim.
type Constant string

func (c Constant) Eval(*Context) (memory.Value, error) {
	return memory.StringValue(c), nil
}

func (c Constant) String() string {
	return strconv.Quote(string(c))
}

// RowIndex yields the current position of the row being processed. It is
// storage-only: valid as a token-store source, never as a cell value.
type RowIndex struct{}

func (RowIndex) Eval(ctx *Context) (memory.Value, error) {
	if ctx.Row == nil || ctx.Table == nil {
		return nil, fmt.Errorf("%w: RowIndex outside a row context", ErrSyntax)
	}
	i := ctx.Table.IndexOf(ctx.Row)
	if i < 0 {
		return nil, fmt.Errorf("%w: current row is not in the table", ErrSyntax)
	}
	return memory.StringValue(strconv.Itoa(i)), nil
}

func (RowIndex) String() string { return "RowIndex" }

// RowLabel yields the label of the row being processed. Storage-only.
type RowLabel struct{}

func (RowLabel) Eval(ctx *Context) (memory.Value, error) {
	if ctx.Row == nil {
		return nil, fmt.Errorf("%w: RowLabel outside a row context", ErrSyntax)
	}
	return memory.StringValue(ctx.Row.Label), nil
}

func (RowLabel) String() string { return "RowLabel" }

// CellValue yields the named column's cell in the row being processed.
// Storage-only.
type CellValue string

func (c CellValue) Eval(ctx *Context) (memory.Value, error) {
	if ctx.Row == nil {
		return nil, fmt.Errorf("%w: column %q outside a row context", ErrSyntax, string(c))
	}
	return memory.StringValue(ctx.Row.Cell(string(c))), nil
}

func (c CellValue) String() string {
	return fmt.Sprintf("cell %q", string(c))
}

// MemoryRef yields the token store value at its id.
type MemoryRef int

func (m MemoryRef) Eval(ctx *Context) (memory.Value, error) {
	v, err := ctx.Mem.Token(int(m))
	if err != nil {
		return nil, err
	}
	if debug.Resolve() {
		debug.Logf("2DAMEMORY%d -> %s %q\n", int(m), v.Kind(), v.String())
	}
	return v, nil
}

func (m MemoryRef) String() string {
	return fmt.Sprintf("2DAMEMORY%d", int(m))
}

// StrRefMemory yields the string-reference store value at its id, rendered
// as a decimal string.
type StrRefMemory int

func (m StrRefMemory) Eval(ctx *Context) (memory.Value, error) {
	v, err := ctx.Mem.StrRef(int(m))
	if err != nil {
		return nil, err
	}
	return memory.StringValue(strconv.FormatInt(int64(v), 10)), nil
}

func (m StrRefMemory) String() string {
	return fmt.Sprintf("StrRef%d", int(m))
}

// High scans the current state of the table, over numeric row labels when
// Column is empty or the named column otherwise, and yields one more than
// the maximum found, so assigning the result always produces a fresh
// value. An all-non-numeric scan yields 0.
type High struct {
	Column string
}

func (h High) Eval(ctx *Context) (memory.Value, error) {
	if ctx.Table == nil {
		return nil, fmt.Errorf("%w: High() outside a table context", ErrSyntax)
	}
	max, ok := ctx.Table.Highest(h.Column)
	if !ok {
		return memory.StringValue("0"), nil
	}
	return memory.StringValue(strconv.FormatInt(max+1, 10)), nil
}

func (h High) String() string {
	return fmt.Sprintf("High(%s)", h.Column)
}

// ColumnAtIndex yields the value of the column being added at the row at
// the given position. Valid only in column-add token stores.
type ColumnAtIndex int

func (c ColumnAtIndex) Eval(ctx *Context) (memory.Value, error) {
	if ctx.Table == nil || ctx.Column == "" {
		return nil, fmt.Errorf("%w: I%d outside a column-add context", ErrSyntax, int(c))
	}
	r := ctx.Table.RowAt(int(c))
	if r == nil {
		return nil, fmt.Errorf("%w: I%d: no row at %d", ErrSyntax, int(c), int(c))
	}
	return memory.StringValue(r.Cell(ctx.Column)), nil
}

func (c ColumnAtIndex) String() string {
	return fmt.Sprintf("I%d", int(c))
}

// ColumnAtLabel yields the value of the column being added at the first row
// with the given label. Valid only in column-add token stores.
type ColumnAtLabel string

func (c ColumnAtLabel) Eval(ctx *Context) (memory.Value, error) {
	if ctx.Table == nil || ctx.Column == "" {
		return nil, fmt.Errorf("%w: L%s outside a column-add context", ErrSyntax, string(c))
	}
	_, r := ctx.Table.RowByLabel(string(c))
	if r == nil {
		return nil, fmt.Errorf("%w: L%s: no row labeled %q", ErrSyntax, string(c), string(c))
	}
	return memory.StringValue(r.Cell(ctx.Column)), nil
}

func (c ColumnAtLabel) String() string {
	return fmt.Sprintf("L%s", string(c))
}

// EvalString evaluates v and requires a plain string result, rejecting
// structural paths for consumers with no use for them.
func EvalString(v Value, ctx *Context) (string, error) {
	mv, err := v.Eval(ctx)
	if err != nil {
		return "", err
	}
	if mv.Kind() != memory.StringKind {
		return "", fmt.Errorf("%w: %s resolved to a %s, need a string",
			memory.ErrTypeMismatch, v, mv.Kind())
	}
	return mv.String(), nil
}

// EvalInt evaluates v and requires an integer result.
func EvalInt(v Value, ctx *Context) (int64, error) {
	s, err := EvalString(v, ctx)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s resolved to %q, need an integer",
			memory.ErrTypeMismatch, v, s)
	}
	return n, nil
}
