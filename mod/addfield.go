package mod

import (
	"fmt"

	"github.com/modforge/respatch/debug"
	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/memory"
	"github.com/modforge/respatch/resolve"
)

// AddField creates a field, struct or list node under Path. StorePath lists
// token ids that receive the created node's structural path (not its value).
// Children are applied relative to the created node, so lists of structs
// can be built in one entry.
type AddField struct {
	Name      string
	Path      ir.StructuralPath
	Label     string
	Type      ir.Type
	StructID  int
	V         resolve.Value
	StorePath []int
	Children  []*AddField
}

func (op *AddField) ApplyTree(c *Ctx, root *ir.Node) error {
	return op.applyAt(c, root, root)
}

// applyAt creates op's node with op.Path taken relative to base.
func (op *AddField) applyAt(c *Ctx, root, base *ir.Node) error {
	parent, err := base.At(op.Path)
	if err != nil {
		c.Warnf("%s: %v, skipped", op, err)
		return nil
	}
	node, err := op.build(c, root)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch parent.Type {
	case ir.ListType:
		if node.Type != ir.StructType {
			return fmt.Errorf("%s: cannot add a %s to a list", op, node.Type)
		}
		if _, err := parent.Append(node); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	case ir.StructType:
		if err := parent.SetField(op.Label, node); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	default:
		return fmt.Errorf("%s: cannot add under a %s node", op, parent.Type)
	}
	if len(op.StorePath) > 0 {
		p := node.PathTo()
		if debug.Op() {
			debug.Logf("%s stores path %q\n", op, p.String())
		}
		for _, id := range op.StorePath {
			c.Mem.SetToken(id, memory.PathValue(p))
		}
	}
	for _, child := range op.Children {
		if err := child.applyAt(c, root, node); err != nil {
			return err
		}
	}
	return nil
}

func (op *AddField) build(c *Ctx, root *ir.Node) (*ir.Node, error) {
	switch op.Type {
	case ir.StructType:
		return ir.NewStruct(op.StructID), nil
	case ir.ListType:
		return ir.NewList(), nil
	}
	node := &ir.Node{Type: op.Type}
	if op.V == nil {
		return node, nil
	}
	s, err := resolveFieldValue(c, root, op.V)
	if err != nil {
		return nil, err
	}
	if err := setFieldValue(node, s); err != nil {
		return nil, err
	}
	return node, nil
}

func (op *AddField) String() string {
	return "AddField " + op.Name
}
