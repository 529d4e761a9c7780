package mod

import (
	"fmt"

	"github.com/modforge/respatch/debug"
	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/memory"
	"github.com/modforge/respatch/resolve"
)

// resolveFieldValue evaluates a tree-op value resolver. When the resolver
// surfaces a structural path (a memory reference to a stored field path),
// the engine navigates to that location and uses its current value; the
// path text itself is never assigned to a field.
func resolveFieldValue(c *Ctx, root *ir.Node, v resolve.Value) (string, error) {
	mv, err := v.Eval(&resolve.Context{Mem: c.Mem})
	if err != nil {
		return "", err
	}
	p, ok := mv.(memory.PathValue)
	if !ok {
		return mv.String(), nil
	}
	node, err := root.At(ir.StructuralPath(p))
	if err != nil {
		return "", fmt.Errorf("dereferencing %s: %w", v, err)
	}
	if debug.Resolve() {
		debug.Logf("%s dereferenced %q -> %q\n", v, p.String(), node.ValueString())
	}
	return node.ValueString(), nil
}

func setFieldValue(node *ir.Node, s string) error {
	if err := node.SetValue(s); err != nil {
		return fmt.Errorf("%w: %v", memory.ErrTypeMismatch, err)
	}
	return nil
}
