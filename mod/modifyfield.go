package mod

import (
	"fmt"

	"github.com/modforge/respatch/debug"
	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/resolve"
)

// ModifyField navigates to Path and assigns the resolved value. A missing
// target is logged and skipped. When the value resolves to a structural
// path, the current value at that location is copied in, never the path
// text (see resolveFieldValue).
type ModifyField struct {
	Name string
	Path ir.StructuralPath
	V    resolve.Value
}

func (op *ModifyField) ApplyTree(c *Ctx, root *ir.Node) error {
	node, err := root.At(op.Path)
	if err != nil {
		c.Warnf("%s: %v, skipped", op, err)
		return nil
	}
	s, err := resolveFieldValue(c, root, op.V)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if debug.Op() {
		debug.Logf("%s sets %q = %q\n", op, op.Path.String(), s)
	}
	if err := setFieldValue(node, s); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (op *ModifyField) String() string {
	return "ModifyField " + op.Name
}
