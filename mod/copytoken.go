package mod

import (
	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/memory"
)

// CopyToken copies one token slot to another inside a tree section. With
// Deref set, a source holding a structural path is resolved against the
// live tree and the value at that location is stored; without it the
// stored value is copied verbatim, which is how a not-yet-created field's
// path propagates between tokens.
type CopyToken struct {
	Name  string
	Dst   int
	Src   int
	Deref bool
}

func (op *CopyToken) ApplyTree(c *Ctx, root *ir.Node) error {
	v, err := c.Mem.Token(op.Src)
	if err != nil {
		return err
	}
	if p, ok := v.(memory.PathValue); ok && op.Deref {
		node, err := root.At(ir.StructuralPath(p))
		if err != nil {
			return err
		}
		v = memory.StringValue(node.ValueString())
	}
	c.Mem.SetToken(op.Dst, v)
	return nil
}

func (op *CopyToken) String() string {
	return "CopyToken " + op.Name
}
